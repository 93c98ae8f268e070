package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Shield Hub account",
	Long: `Authenticates against the Shield Hub backend and stores the session
token locally. Accounts with one-time codes enabled are prompted for the
code after the password.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	username := loginUsername
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&username).
				Validate(notBlank("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(notBlank("password")),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	username = strings.TrimSpace(username)

	otpEnabled, err := app.client.CheckOTP(ctx, username)
	if err != nil {
		return friendlyErr(err)
	}

	if otpEnabled {
		var otpCode string
		otpForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("One-time code").
					Description("Enter the code from your authenticator app.").
					Value(&otpCode).
					Validate(notBlank("code")),
			),
		)
		if err := otpForm.Run(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
		res, err := app.client.LoginWithOTP(ctx, username, password, strings.TrimSpace(otpCode))
		if err != nil {
			return friendlyErr(err)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Signed in as %s (%s)", res.Name, res.Username)))
		return nil
	}

	res, err := app.client.Login(ctx, username, password)
	if err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Signed in as %s (%s)", res.Name, res.Username)))
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
