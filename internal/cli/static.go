package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medicare/clinicctl/internal/contact"
)

func newAboutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "About the MediCare clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.out, "About MediCare")
			fmt.Fprintln(app.out)
			fmt.Fprintln(app.out, "MediCare is a full-service medical clinic providing consultations,")
			fmt.Fprintln(app.out, "diagnostics and follow-up care. Book an appointment online, manage")
			fmt.Fprintln(app.out, "your schedule and stay on top of your healthcare.")
			fmt.Fprintln(app.out)
			fmt.Fprintf(app.out, "Email: %s\n", app.cfg.Clinic.Email)
			fmt.Fprintf(app.out, "Phone: %s\n", app.cfg.Clinic.Phone)
			return nil
		},
	}
}

// newContactCommand is the general contact screen; per-appointment
// inquiries live under 'appointments contact'.
func newContactCommand(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact the clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.out, "Contact MediCare")
			fmt.Fprintf(app.out, "Email: %s\n", app.cfg.Clinic.Email)
			fmt.Fprintf(app.out, "Phone: %s\n", app.cfg.Clinic.Phone)

			if message == "" {
				return nil
			}

			name := "Patient"
			if user, ok := app.session.Current(); ok {
				name = user.Name
			}

			draft := contact.Draft{
				To:      app.cfg.Clinic.Email,
				Subject: "General Inquiry",
				Body:    fmt.Sprintf("%s\n\nBest regards,\n%s", message, name),
			}

			if app.cfg.SMTP.Enabled() {
				if err := contact.NewSender(app.cfg.SMTP).Send(draft); err != nil {
					app.notify.Error("Failed to send message. Please try again.")
					return err
				}
				app.notify.Success("Message sent to the clinic.")
				return nil
			}

			fmt.Fprintln(app.out)
			fmt.Fprintln(app.out, "Open this link in your mail client to send your message:")
			fmt.Fprintln(app.out, draft.MailtoLink())
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "message to send the clinic")
	return cmd
}
