package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EncryptFile uploads the file at path to the crypto service and returns the
// encrypted archive bytes (a zip containing ciphertext and key material).
func (c *Client) EncryptFile(ctx context.Context, path string) ([]byte, error) {
	body, contentType, err := multipartBody(map[string]string{"file": path}, nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "POST", "/api/files/encrypt", body, contentType, true, maxFileBody)
}

// DecryptFile uploads an encrypted file plus its key file and returns the
// restored original bytes. originalName tells the service which archive
// member to restore.
func (c *Client) DecryptFile(ctx context.Context, encryptedPath, keyPath, originalName string) ([]byte, error) {
	body, contentType, err := multipartBody(
		map[string]string{"file": encryptedPath, "keyFile": keyPath},
		map[string]string{"originalFileName": originalName},
	)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "POST", "/api/files/decrypt", body, contentType, true, maxFileBody)
}

// multipartBody builds a multipart form from file fields and plain fields.
func multipartBody(files map[string]string, fields map[string]string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for field, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening %s: %w", path, err)
		}
		part, err := w.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, "", fmt.Errorf("building form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close() //nolint:errcheck
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}
		f.Close() //nolint:errcheck
	}
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("building form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalising form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
