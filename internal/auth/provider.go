// Package auth supplies the short-lived bearer credential every spreadsheet
// call carries. Acquiring one may require interactive user consent in a
// browser, so only a single re-authentication may be in flight at a time.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/jmallet/sheetbook/internal/common"
)

// Config holds OAuth2 configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
}

// Provider hands out access tokens, refreshing or re-acquiring them as
// needed. A second concurrent interactive acquisition is rejected with
// ErrAuthInProgress rather than queued, so the user never sees two consent
// prompts at once.
type Provider struct {
	cfg      *oauth2.Config
	logger   *slog.Logger
	tokenFl  string
	mu       sync.Mutex
	token    *oauth2.Token
	inFlight bool
}

// NewProvider creates a token provider. If a saved token exists at
// cfg.TokenFile it is loaded; otherwise the first Token call triggers an
// interactive consent flow.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	p := &Provider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  "http://localhost:8910/callback",
			Scopes:       []string{sheets.SpreadsheetsScope, drive.DriveFileScope},
		},
		tokenFl: cfg.TokenFile,
		logger:  logger,
	}

	if cfg.TokenFile != "" {
		if tok, err := LoadToken(cfg.TokenFile); err == nil {
			p.token = tok
		}
	}
	return p
}

// Token returns a valid access token, refreshing a stale one or running the
// interactive consent flow when nothing usable is saved. Every failure maps
// to ErrNoCredential so accessors can abort before any network call.
func (p *Provider) Token(ctx context.Context) (*oauth2.Token, error) {
	p.mu.Lock()
	if p.token != nil && p.token.Valid() {
		tok := p.token
		p.mu.Unlock()
		return tok, nil
	}

	if p.token != nil && p.token.RefreshToken != "" {
		// Refresh without user interaction.
		source := p.cfg.TokenSource(ctx, p.token)
		p.mu.Unlock()

		tok, err := source.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: refresh failed: %v", common.ErrNoCredential, err)
		}

		p.mu.Lock()
		p.token = tok
		p.mu.Unlock()
		p.save(tok)
		return tok, nil
	}

	if p.inFlight {
		p.mu.Unlock()
		return nil, common.ErrAuthInProgress
	}
	p.inFlight = true
	p.mu.Unlock()

	tok, err := p.interactive(ctx)

	p.mu.Lock()
	p.inFlight = false
	if err == nil {
		p.token = tok
	}
	p.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNoCredential, err)
	}
	p.save(tok)
	return tok, nil
}

// interactive runs the browser consent flow: a local callback server
// receives the authorization code, which is exchanged for a token.
func (p *Provider) interactive(ctx context.Context) (*oauth2.Token, error) {
	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	server := &http.Server{Addr: ":8910", Handler: mux}

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication failed</h1><p>No authorization code received. Please try again.</p></body></html>")
			return
		}
		codeChan <- code
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()

	authURL := p.cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	p.logger.Info("authentication required; visit this URL to continue", "url", authURL)

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout: no response within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(ctx)
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		p.logger.Warn("error shutting down callback server", "error", err)
	}

	token, err := p.cfg.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func (p *Provider) save(tok *oauth2.Token) {
	if p.tokenFl == "" {
		return
	}
	if err := SaveToken(p.tokenFl, tok); err != nil {
		p.logger.Warn("failed to save token", "error", err, "file", p.tokenFl)
	}
}

// Static returns a provider-compatible source that always hands back the
// same token. Tests and service-account setups use it.
func Static(accessToken string) StaticSource {
	return StaticSource{token: &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}}
}

// StaticSource is a fixed-token credential source.
type StaticSource struct {
	token *oauth2.Token
}

// Token implements the credential source contract.
func (s StaticSource) Token(_ context.Context) (*oauth2.Token, error) {
	return s.token, nil
}
