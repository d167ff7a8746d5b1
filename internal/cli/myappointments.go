package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/medicare/clinicctl/internal/appointments"
	"github.com/medicare/clinicctl/internal/contact"
	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/report"
)

func newAppointmentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"my-appointments"},
		Short:   "View and manage your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAppointmentsList(cmd)
		},
	}

	cmd.AddCommand(
		newAppointmentsListCommand(app),
		newAppointmentsShowCommand(app),
		newAppointmentsRescheduleCommand(app),
		newAppointmentsCancelCommand(app),
		newAppointmentsRemoveCommand(app),
		newAppointmentsReportCommand(app),
		newAppointmentsContactCommand(app),
	)
	return cmd
}

func newAppointmentsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAppointmentsList(cmd)
		},
	}
}

func (a *App) runAppointmentsList(cmd *cobra.Command) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	list, err := a.appts.List(cmd.Context())
	if err != nil {
		fmt.Fprintln(a.out, "Error Loading Appointments")
		fmt.Fprintln(a.out, "Failed to fetch your appointments. Please try again later.")
		fmt.Fprintln(a.out, "Retry with 'clinicctl appointments list'.")
		return err
	}

	counts := appointments.CountByStatus(list)
	fmt.Fprintf(a.out, "Confirmed: %d   Pending: %d   Completed: %d   Cancelled: %d\n\n",
		counts[model.AppointmentStatusConfirmed],
		counts[model.AppointmentStatusPending],
		counts[model.AppointmentStatusCompleted],
		counts[model.AppointmentStatusCancelled])

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No Appointments Found")
		fmt.Fprintln(a.out, "You haven't scheduled any appointments yet.")
		fmt.Fprintln(a.out, "Book your first one with 'clinicctl book'.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTIME\tDOCTOR\tSERVICE\tSTATUS")
	for _, apt := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			apt.ShortID(), apt.Date, apt.Time, apt.Doctor, apt.Service, apt.Status)
	}
	return w.Flush()
}

func newAppointmentsShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one appointment in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Appointment #%s (%s)\n", apt.ShortID(), apt.Status)
			fmt.Fprintf(app.out, "Date:     %s %s\n", apt.Date, apt.Time)
			fmt.Fprintf(app.out, "Doctor:   %s\n", apt.Doctor)
			fmt.Fprintf(app.out, "Service:  %s\n", apt.Service)
			if apt.Symptoms != "" {
				fmt.Fprintf(app.out, "Symptoms: %s\n", apt.Symptoms)
			}
			if apt.Notes != "" {
				fmt.Fprintf(app.out, "Notes:    %s\n", indentLines(apt.Notes, "          "))
			}
			return nil
		},
	}
}

func newAppointmentsRescheduleCommand(app *App) *cobra.Command {
	var date, timeOfDay, reason string

	cmd := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Move an appointment to a new date and time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Pre-populate from the current record, as the dialog did.
			if date == "" {
				date = apt.Date
			}
			if timeOfDay == "" {
				fmt.Fprintln(app.out, "Available time slots:")
				fmt.Fprintf(app.out, "  %s\n", strings.Join(rescheduleSlots, "  "))
				timeOfDay = apt.Time
			}

			updated, err := app.appts.Reschedule(cmd.Context(), *apt, date, timeOfDay, reason)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Appointment #%s moved to %s at %s (pending confirmation).\n",
				updated.ShortID(), updated.Date, updated.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "new time (HH:MM)")
	cmd.Flags().StringVar(&reason, "reason", "", "why the appointment moved")
	return cmd
}

func newAppointmentsCancelCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending or confirmed appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(fmt.Sprintf(
				"Are you sure you want to cancel your appointment with %s on %s? [y/N] ",
				apt.Doctor, apt.Date)) {
				fmt.Fprintln(app.out, "Cancellation aborted.")
				return nil
			}

			if _, err := app.appts.Cancel(cmd.Context(), *apt); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func newAppointmentsRemoveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an appointment record outright",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.appts.Remove(cmd.Context(), apt.ID)
		},
	}
	return cmd
}

func newAppointmentsReportCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Download the medical report for an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			user, _ := app.session.Current()
			content, err := report.Render(report.Params{
				PatientName: user.Name,
				Appointment: *apt,
				GeneratedAt: time.Now(),
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = report.FileName(*apt)
			}
			if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
				app.notify.Error("Failed to save the medical report")
				return err
			}

			app.notify.Success("Medical report downloaded successfully!")
			fmt.Fprintf(app.out, "Saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "report file path")
	return cmd
}

func newAppointmentsContactCommand(app *App) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "contact <id>",
		Short: "Compose an inquiry about an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			apt, err := app.appts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			user, _ := app.session.Current()
			draft := contact.BuildDraft(*apt, user.Name, app.cfg.Clinic.Email)

			if send && app.cfg.SMTP.Enabled() {
				if err := contact.NewSender(app.cfg.SMTP).Send(draft); err != nil {
					app.notify.Error("Failed to send inquiry. Please try again.")
					return err
				}
				app.notify.Success("Inquiry sent to the clinic.")
				return nil
			}

			fmt.Fprintln(app.out, "Open this link in your mail client to send your inquiry:")
			fmt.Fprintln(app.out, draft.MailtoLink())
			app.notify.Info(fmt.Sprintf("You can also call us at %s", app.cfg.Clinic.Phone))
			return nil
		},
	}

	cmd.Flags().BoolVar(&send, "send", false, "send via SMTP instead of printing a mailto link")
	return cmd
}

func confirm(question string) bool {
	fmt.Fprint(os.Stderr, question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func indentLines(text, prefix string) string {
	return strings.ReplaceAll(text, "\n", "\n"+prefix)
}
