package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/internal/database"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

var encryptOut string

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Encrypt a file via the protection service",
	Long: `Uploads the file to the Shield Hub crypto service and saves the
returned archive (ciphertext plus key material) as <name>_encrypted.zip.
Keep the archive's key file safe; it is required for decryption.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncrypt,
}

func init() {
	encryptCmd.Flags().StringVar(&encryptOut, "out", "", "output path (default: <name>_encrypted.zip)")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	fmt.Println(dimStyle.Render("Encrypting " + filepath.Base(path) + " ..."))
	archive, err := app.client.EncryptFile(ctx, path)
	if err != nil {
		return friendlyErr(err)
	}

	out := encryptOut
	if out == "" {
		out = filepath.Base(path) + "_encrypted.zip"
	}
	if err := os.WriteFile(out, archive, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Println(successStyle.Render("Encrypted archive written to " + out))
	recordFileAction(app, filepath.Base(path), models.HistoryTypeEncrypt)
	return nil
}

// recordFileAction appends a file operation to the local history.
// Failures are silent; the user's file work already succeeded.
func recordFileAction(app *app, title, entryType string) {
	ctx := context.Background()

	db, err := database.New(app.cfg.Database)
	if err != nil {
		return
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(ctx); err != nil {
		return
	}
	_ = history.NewStore(db, app.bus).Append(ctx, models.HistoryEntry{
		Title:  title,
		Status: "completed",
		Type:   entryType,
	})
}
