// Package drive uploads receipt and logo attachments to Google Drive and
// returns shareable links for the spreadsheet to reference. An upload is a
// precondition gate: if it fails, the table write that wanted the link is
// aborted before any cell changes.
package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/jmallet/sheetbook/internal/sheetdb"
)

// Uploader stores a binary attachment and returns a shareable link.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// Client implements Uploader on the Drive API.
type Client struct {
	svc    *drive.Service
	logger *slog.Logger
	folder string
}

// NewClient creates a Drive uploader. folder may be empty to upload into
// the Drive root.
func NewClient(ctx context.Context, creds sheetdb.CredentialSource, folder string, logger *slog.Logger) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(tokenSource{ctx: ctx, creds: creds}))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{svc: svc, folder: folder, logger: logger}, nil
}

// Upload stores the file, makes it readable by anyone with the link, and
// returns the link.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name}
	if c.folder != "" {
		meta.Parents = []string{c.folder}
	}

	file, err := c.svc.Files.Create(meta).Media(r).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := c.svc.Permissions.Create(file.Id, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to share %s: %w", name, err)
	}

	c.logger.Info("uploaded attachment", "name", name, "link", file.WebViewLink)
	return file.WebViewLink, nil
}

type tokenSource struct {
	ctx   context.Context
	creds sheetdb.CredentialSource
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	return s.creds.Token(s.ctx)
}
