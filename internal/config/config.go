// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmallet/sheetbook/internal/auth"
	"github.com/jmallet/sheetbook/internal/sheetdb"
)

// LoadSheetConfig loads spreadsheet configuration with this precedence:
// viper (config file or SHEETBOOK_ env vars), then direct environment
// variables, then defaults.
func LoadSheetConfig() sheetdb.Config {
	cfg := sheetdb.DefaultConfig()

	if v := viper.GetString("sheet.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheet.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheet.token_file"); v != "" {
		cfg.TokenFile = expandPath(v)
	}
	if v := viper.GetString("sheet.spreadsheet_id"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := viper.GetString("sheet.title"); v != "" {
		cfg.Title = v
	}

	cfg.LoadFromEnv()

	if cfg.TokenFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.TokenFile = filepath.Join(home, ".config", "sheetbook", "token.json")
		}
	}
	return cfg
}

// AuthConfig derives the token provider configuration.
func AuthConfig(cfg sheetdb.Config) auth.Config {
	return auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenFile:    cfg.TokenFile,
	}
}

// UploadFolder returns the Drive folder id for attachments, if configured.
func UploadFolder() string {
	return viper.GetString("sheet.upload_folder")
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
