package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/api"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Shield Hub account",
	Long: `Creates an account on the Shield Hub backend. Email and phone number
are optional but one of them is needed later for username recovery.`,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	var req api.RegisterRequest
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&req.Username).
				Validate(notBlank("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.Password).
				Validate(notBlank("password")),
			huh.NewInput().
				Title("Display name").
				Value(&req.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Email (optional)").
				Placeholder("you@example.com").
				Value(&req.Email),
			huh.NewInput().
				Title("Phone number (optional)").
				Value(&req.PhoneNumber),
			huh.NewConfirm().
				Title("Create this account?").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	if !confirmed {
		fmt.Println(dimStyle.Render("Registration cancelled."))
		return nil
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)

	if err := app.client.Register(ctx, req); err != nil {
		return friendlyErr(err)
	}

	fmt.Println(successStyle.Render("Account created"))
	fmt.Println(dimStyle.Render("Sign in with: shieldhub login"))
	return nil
}
