package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medicare/clinicctl/internal/model"
)

// rescheduleSlots are the half-hour slots offered when picking a time.
var rescheduleSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

func newBookCommand(app *App) *cobra.Command {
	var req model.CreateAppointmentRequest

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a new appointment",
		Example: `  clinicctl book --doctor "Dr. Sarah Johnson" --service "Cardiology Checkup" \
      --date 2024-05-01 --time 09:00 --symptoms "chest pain"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			if req.Time == "" {
				fmt.Fprintln(app.out, "Available time slots:")
				fmt.Fprintf(app.out, "  %s\n", strings.Join(rescheduleSlots, "  "))
				return fmt.Errorf("missing --time")
			}

			apt, err := app.appts.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Appointment #%s booked for %s at %s with %s.\n",
				apt.ShortID(), apt.Date, apt.Time, apt.Doctor)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Doctor, "doctor", "", "doctor name (see 'clinicctl doctors')")
	cmd.Flags().StringVar(&req.Service, "service", "", "service name (see 'clinicctl services')")
	cmd.Flags().StringVar(&req.Date, "date", "", "appointment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Time, "time", "", "appointment time (HH:MM)")
	cmd.Flags().StringVar(&req.Symptoms, "symptoms", "", "symptoms to share with the doctor")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "additional notes")

	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
