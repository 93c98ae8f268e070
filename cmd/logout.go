package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	if !app.sessions.Current().LoggedIn() {
		fmt.Println(dimStyle.Render("Not signed in."))
		return nil
	}

	// Local credentials are removed even if the server call fails.
	if err := app.client.Logout(ctx); err != nil {
		fmt.Println(warnStyle.Render("Server logout failed; local session cleared."))
		return nil
	}
	fmt.Println(successStyle.Render("Signed out."))
	return nil
}
