package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newServicesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "Browse the clinic's service catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := app.api.ListServices(cmd.Context())
			if err != nil {
				app.notify.Error("Failed to load services. Please try again.")
				return err
			}

			if len(services) == 0 {
				fmt.Fprintln(app.out, "No services are currently offered.")
				return nil
			}

			w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERVICE\tDURATION\tPRICE\tDESCRIPTION")
			for _, svc := range services {
				if !svc.IsActive {
					continue
				}
				fmt.Fprintf(w, "%s\t%d min\t%s\t%s\n",
					svc.Name, svc.DurationMinutes, svc.Price, svc.Description)
			}
			return w.Flush()
		},
	}
}

func newDoctorsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctors [id]",
		Short: "Browse the doctor directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return app.showDoctor(cmd, args[0])
			}

			doctors, err := app.api.ListDoctors(cmd.Context())
			if err != nil {
				app.notify.Error("Failed to load doctors. Please try again.")
				return err
			}

			if len(doctors) == 0 {
				fmt.Fprintln(app.out, "No doctors are currently listed.")
				return nil
			}

			w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DOCTOR\tSPECIALTY\tEXPERIENCE\tFEE")
			for _, doc := range doctors {
				if !doc.IsAvailable {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d years\t%s\n",
					doc.Profile.Name, doc.Specialty, doc.YearsExperience, doc.ConsultationFee)
			}
			return w.Flush()
		},
	}
}

func (a *App) showDoctor(cmd *cobra.Command, id string) error {
	doc, err := a.api.GetDoctor(cmd.Context(), id)
	if err != nil {
		a.notify.Error("Failed to load doctor. Please try again.")
		return err
	}

	fmt.Fprintf(a.out, "%s — %s\n", doc.Profile.Name, doc.Specialty)
	fmt.Fprintf(a.out, "Experience: %d years\n", doc.YearsExperience)
	fmt.Fprintf(a.out, "Consultation fee: %s\n", doc.ConsultationFee)
	if doc.Bio != "" {
		fmt.Fprintf(a.out, "\n%s\n", doc.Bio)
	}
	return nil
}
