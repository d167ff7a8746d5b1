// Package cli renders the booking application's screens as commands.
// Each command is a composition layer only: it reads session and query
// state, guards on authentication and load failures, and delegates
// every mutation to the data-access services.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/medicare/clinicctl/internal/api"
	"github.com/medicare/clinicctl/internal/appointments"
	"github.com/medicare/clinicctl/internal/cache"
	"github.com/medicare/clinicctl/internal/config"
	"github.com/medicare/clinicctl/internal/notify"
	"github.com/medicare/clinicctl/internal/session"
	"github.com/medicare/clinicctl/internal/tokenstore"
	"github.com/medicare/clinicctl/pkg/logger"
)

// App wires the long-lived pieces every command shares: one session
// manager, one API client, one cache.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	out     io.Writer
	notify  notify.Notifier
	session *session.Manager
	appts   *appointments.Service
	api     *api.Client
	tokens  tokenstore.Store
	cache   *cache.Cache
}

// NewApp builds the application graph from configuration.
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	})

	tokens, err := newTokenStore(cfg.Tokens)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewTerminal(out)
	client := api.NewClient(api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, tokens, log)

	sess := session.NewManager(client, tokens, notifier, log)
	store := cache.New()

	return &App{
		cfg:     cfg,
		log:     log,
		out:     out,
		notify:  notifier,
		session: sess,
		appts:   appointments.NewService(client, store, sess, notifier, log),
		api:     client,
		tokens:  tokens,
		cache:   store,
	}, nil
}

func newTokenStore(cfg config.TokensConfig) (tokenstore.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return tokenstore.NewFile(cfg.Path), nil
	case "redis":
		return tokenstore.NewRedis(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown token store backend %q", cfg.Backend)
	}
}

// NewRootCommand assembles the command tree. The startup session check
// runs before any command so each view sees settled session state.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "clinicctl",
		Short: "MediCare clinic booking client",
		Long: `clinicctl books and manages medical appointments with the MediCare
clinic over its booking API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.session.Restore(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runHome(cmd)
		},
	}

	root.AddCommand(
		newLoginCommand(app),
		newSignupCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newServicesCommand(app),
		newDoctorsCommand(app),
		newAboutCommand(app),
		newContactCommand(app),
		newBookCommand(app),
		newAppointmentsCommand(app),
	)

	return root
}

// runHome is the landing screen.
func (a *App) runHome(cmd *cobra.Command) error {
	fmt.Fprintln(a.out, "MediCare — your health, our priority")
	fmt.Fprintln(a.out)

	if user, ok := a.session.Current(); ok {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", user.Name, user.Email)
		fmt.Fprintln(a.out, "Run 'clinicctl appointments list' to see your appointments.")
	} else {
		fmt.Fprintln(a.out, "You are not signed in.")
		fmt.Fprintln(a.out, "Run 'clinicctl login' or 'clinicctl signup' to get started.")
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Browse 'clinicctl services' and 'clinicctl doctors', then book")
	fmt.Fprintln(a.out, "with 'clinicctl book'. See 'clinicctl --help' for everything else.")
	return nil
}

// requireAuth is the login-prompt guard shown by authenticated views.
func (a *App) requireAuth() error {
	if a.session.IsAuthenticated() {
		return nil
	}
	fmt.Fprintln(a.out, "Login Required")
	fmt.Fprintln(a.out, "Please login to view your appointments: run 'clinicctl login'")
	return session.ErrNotAuthenticated
}
