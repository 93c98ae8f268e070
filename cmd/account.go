package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your Shield Hub account",
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	RunE:  runChangePassword,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email>",
	Short: "Request a password reset mail",
	Args:  cobra.ExactArgs(1),
	RunE:  runResetPassword,
}

var findIDCmd = &cobra.Command{
	Use:   "find-id <email-or-phone>",
	Short: "Recover your username via email or phone number",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindID,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Permanently delete the account",
	RunE:  runWithdraw,
}

func init() {
	accountCmd.AddCommand(changePasswordCmd, resetPasswordCmd, findIDCmd, withdrawCmd)
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	var current, next string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&current).
				Validate(notBlank("current password")),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&next).
				Validate(notBlank("new password")),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}

	if err := app.client.ChangePassword(ctx, current, next); err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render("Password changed"))
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	email := strings.TrimSpace(args[0])
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if err := app.client.ResetPassword(ctx, email); err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render("Reset mail sent — check your inbox"))
	return nil
}

func runFindID(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	identifier := strings.TrimSpace(args[0])
	if identifier == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if err := app.client.FindID(ctx, identifier); err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render("Recovery message sent"))
	return nil
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	var password string
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				Description("Confirm your password to delete the account.").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(notBlank("password")),
			huh.NewConfirm().
				Title("Permanently delete this account? This cannot be undone.").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	if !confirmed {
		fmt.Println(dimStyle.Render("Account deletion cancelled."))
		return nil
	}

	if err := app.client.DeleteAccount(ctx, password); err != nil {
		return friendlyErr(err)
	}
	fmt.Println(successStyle.Render("Account deleted. Local session cleared."))
	return nil
}
