package sheetdb

import (
	"fmt"
	"os"
)

// Config holds the configuration for the spreadsheet client.
type Config struct {
	ClientID      string
	ClientSecret  string
	TokenFile     string
	SpreadsheetID string
	Title         string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Title: "Sheetbook Ledger",
	}
}

// LoadFromEnv fills unset fields from environment variables.
func (c *Config) LoadFromEnv() {
	if c.ClientID == "" {
		c.ClientID = os.Getenv("SHEETBOOK_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		c.ClientSecret = os.Getenv("SHEETBOOK_CLIENT_SECRET")
	}
	if c.TokenFile == "" {
		c.TokenFile = os.Getenv("SHEETBOOK_TOKEN_FILE")
	}
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("SHEETBOOK_SPREADSHEET_ID")
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing OAuth client credentials")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("missing spreadsheet id; run 'sheetbook provision' or set one in config")
	}
	return nil
}
