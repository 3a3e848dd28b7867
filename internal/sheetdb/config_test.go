package sheetdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{ClientID: "id", ClientSecret: "secret", SpreadsheetID: "sheet"},
		},
		{
			name:    "missing credentials",
			cfg:     Config{SpreadsheetID: "sheet"},
			wantErr: "OAuth client credentials",
		},
		{
			name:    "missing spreadsheet id",
			cfg:     Config{ClientID: "id", ClientSecret: "secret"},
			wantErr: "spreadsheet id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("SHEETBOOK_CLIENT_ID", "env-id")
	t.Setenv("SHEETBOOK_CLIENT_SECRET", "env-secret")
	t.Setenv("SHEETBOOK_SPREADSHEET_ID", "env-sheet")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "env-sheet", cfg.SpreadsheetID)
	assert.Equal(t, "Sheetbook Ledger", cfg.Title)
	assert.NoError(t, cfg.Validate())
}

func TestConfigEnvDoesNotOverrideExplicit(t *testing.T) {
	t.Setenv("SHEETBOOK_CLIENT_ID", "env-id")

	cfg := Config{ClientID: "explicit"}
	cfg.LoadFromEnv()
	assert.Equal(t, "explicit", cfg.ClientID)
}
