package main

import (
	"fmt"
	"os"

	"github.com/medicare/clinicctl/internal/cli"
	"github.com/medicare/clinicctl/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinicctl: %v\n", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinicctl: %v\n", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clinicctl: %v\n", err)
		os.Exit(1)
	}
}
