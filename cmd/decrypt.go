package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

var decryptOut string

var decryptCmd = &cobra.Command{
	Use:   "decrypt <encrypted-file> <key-file>",
	Short: "Decrypt a file via the protection service",
	Long: `Uploads the encrypted file and its key file to the Shield Hub crypto
service and writes the recovered plaintext. The output name defaults to the
encrypted file's name with the _encrypted.zip suffix stripped; override it
with --out.`,
	Args: cobra.ExactArgs(2),
	RunE: runDecrypt,
}

func init() {
	decryptCmd.Flags().StringVar(&decryptOut, "out", "", "output path for the recovered file")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	encPath, keyPath := args[0], args[1]
	for _, p := range []string{encPath, keyPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("cannot read %s: %w", p, err)
		}
	}

	out := decryptOut
	if out == "" {
		out = originalName(encPath)
	}

	fmt.Println(dimStyle.Render("Decrypting ..."))
	plain, err := app.client.DecryptFile(ctx, encPath, keyPath, out)
	if err != nil {
		return friendlyErr(err)
	}

	if err := os.WriteFile(out, plain, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Println(successStyle.Render("Recovered file written to " + out))
	recordFileAction(app, out, models.HistoryTypeDecrypt)
	return nil
}

// originalName strips the _encrypted.zip suffix the encrypt command adds.
func originalName(encPath string) string {
	base := filepath.Base(encPath)
	if trimmed := strings.TrimSuffix(base, "_encrypted.zip"); trimmed != base && trimmed != "" {
		return trimmed
	}
	return base + ".decrypted"
}
