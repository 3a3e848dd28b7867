package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jmallet/sheetbook/internal/auth"
	"github.com/jmallet/sheetbook/internal/config"
	"github.com/jmallet/sheetbook/internal/drive"
	"github.com/jmallet/sheetbook/internal/ledger"
	"github.com/jmallet/sheetbook/internal/model"
	"github.com/jmallet/sheetbook/internal/sheetdb"
)

// initLedger wires the token provider, spreadsheet client, and uploader.
func initLedger(ctx context.Context) (*ledger.Ledger, error) {
	cfg := config.LoadSheetConfig()
	provider := auth.NewProvider(config.AuthConfig(cfg), slog.Default())

	store, err := sheetdb.NewClient(ctx, cfg, provider, slog.Default())
	if err != nil {
		return nil, err
	}

	uploader, err := drive.NewClient(ctx, provider, config.UploadFolder(), slog.Default())
	if err != nil {
		return nil, err
	}

	return ledger.New(store, uploader, slog.Default()), nil
}

// fileOrNil avoids handing a typed nil to an io.Reader parameter.
func fileOrNil(f *os.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

// newTable returns a tabwriter for aligned list output.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// parseAmount parses a user-supplied amount argument strictly; lenient
// parsing is for cells coming out of the sheet, not for command input.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// parseDate validates a user-supplied MM/DD/YYYY date argument.
func parseDate(s string) (string, error) {
	if _, err := model.ParseDateStrict(s); err != nil {
		return "", fmt.Errorf("invalid date %q, want MM/DD/YYYY", s)
	}
	return s, nil
}
