package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your MediCare account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			if err := app.session.Login(cmd.Context(), email, password); err != nil {
				return err
			}

			if user, ok := app.session.Current(); ok {
				fmt.Fprintf(app.out, "Welcome back, %s!\n", user.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newSignupCommand(app *App) *cobra.Command {
	var email, password, confirm, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a MediCare patient account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = prompt("Email: ")
			}
			if name == "" {
				name = prompt("Full name: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}
			if confirm == "" {
				confirm = prompt("Confirm password: ")
			}

			if password != confirm {
				app.notify.Error("Passwords do not match")
				return fmt.Errorf("passwords do not match")
			}

			if _, err := app.session.Signup(cmd.Context(), email, password, name); err != nil {
				return err
			}

			fmt.Fprintln(app.out, "Account created. Run 'clinicctl login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and delete stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.session.Logout()
			// No cached data may cross into the next session.
			app.cache.Flush()
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			user, _ := app.session.Current()
			fmt.Fprintf(app.out, "ID:    %s\n", user.ID)
			fmt.Fprintf(app.out, "Email: %s\n", user.Email)
			fmt.Fprintf(app.out, "Name:  %s\n", user.Name)

			if exp := app.tokenExpiry(); !exp.IsZero() {
				fmt.Fprintf(app.out, "Token: expires %s\n", exp.Format("2006-01-02 15:04 MST"))
			}
			return nil
		},
	}
}

// tokenExpiry reads the expiry claim from the stored access token for
// display. The token is not verified here; the server remains the
// authority on validity.
func (a *App) tokenExpiry() time.Time {
	pair, err := a.tokens.Load()
	if err != nil || pair.Empty() {
		return time.Time{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(pair.Access, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
