package auth

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jmallet/sheetbook/internal/common"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, SaveToken(path, tok))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.WithinDuration(t, tok.Expiry, loaded.Expiry, time.Second)
}

func TestLoadTokenMissingFile(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestProviderLoadsSavedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	saved := &oauth2.Token{
		AccessToken: "saved-access",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}
	require.NoError(t, SaveToken(path, saved))

	p := NewProvider(Config{ClientID: "id", ClientSecret: "secret", TokenFile: path}, testLogger())

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saved-access", tok.AccessToken)
}

func TestTokenValidFastPath(t *testing.T) {
	p := NewProvider(Config{ClientID: "id", ClientSecret: "secret"}, testLogger())
	p.token = &oauth2.Token{
		AccessToken: "live",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "live", tok.AccessToken)
}

func TestTokenRejectsConcurrentInteractiveFlow(t *testing.T) {
	p := NewProvider(Config{ClientID: "id", ClientSecret: "secret"}, testLogger())
	p.inFlight = true

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, common.ErrAuthInProgress)
}

func TestStaticSource(t *testing.T) {
	source := Static("fixed")
	tok, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", tok.AccessToken)
	assert.True(t, tok.Valid())
}
