package sheetdb

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jmallet/sheetbook/internal/model"
)

// Provision creates and seeds a fresh backing spreadsheet: one tab per
// logical table, header rows written and protected, the reserved default
// company with its counter row, and three starter categories. The column
// layout written here is the contract the codec decodes against.
//
// This runs once per user; everything else in the package assumes the
// layout it produces.
func Provision(ctx context.Context, cfg Config, creds CredentialSource, logger *slog.Logger) (string, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return "", fmt.Errorf("missing OAuth client credentials")
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(tokenSourceAdapter{ctx: ctx, creds: creds}))
	if err != nil {
		return "", fmt.Errorf("failed to create sheets service: %w", err)
	}

	c := newClientWithAPI(&googleAPI{svc: svc}, creds, logger)
	return c.provision(ctx, cfg.Title)
}

func (c *Client) provision(ctx context.Context, title string) (string, error) {
	if err := c.checkCredential(ctx); err != nil {
		return "", err
	}

	doc := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, t := range allTables() {
		doc.Sheets = append(doc.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				Title: t.Tab,
				GridProperties: &sheets.GridProperties{
					FrozenRowCount: 1,
				},
			},
		})
	}

	spreadsheetID, err := c.api.createSpreadsheet(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	for _, t := range allTables() {
		header := make([]any, len(t.Headers))
		for i, h := range t.Headers {
			header[i] = h
		}
		if err := c.api.updateValues(ctx, t.headerRange(), [][]any{header}); err != nil {
			return "", fmt.Errorf("failed to write %s header: %w", t.Tab, err)
		}
	}

	if err := c.protectHeaders(ctx); err != nil {
		return "", err
	}

	if err := c.seed(ctx); err != nil {
		return "", err
	}

	c.logger.Info("provisioned spreadsheet", "id", spreadsheetID, "title", title)
	return spreadsheetID, nil
}

// protectHeaders warns on edits to row 1 of every tab and bolds it.
func (c *Client) protectHeaders(ctx context.Context) error {
	props, err := c.api.sheetProperties(ctx)
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	var requests []*sheets.Request
	for _, t := range allTables() {
		sheetID, ok := props[t.Tab]
		if !ok {
			return fmt.Errorf("provisioned tab %s missing from metadata", t.Tab)
		}

		headerRange := &sheets.GridRange{
			SheetId:       sheetID,
			StartRowIndex: 0,
			EndRowIndex:   1,
		}

		requests = append(requests,
			&sheets.Request{
				AddProtectedRange: &sheets.AddProtectedRangeRequest{
					ProtectedRange: &sheets.ProtectedRange{
						Range:       headerRange,
						Description: "Header row",
						WarningOnly: true,
					},
				},
			},
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: headerRange,
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
		)
	}

	if err := c.api.batchUpdate(ctx, requests); err != nil {
		return fmt.Errorf("failed to protect headers: %w", err)
	}
	return nil
}

// seed writes the reserved default company, its counter, and the starter
// categories.
func (c *Client) seed(ctx context.Context) error {
	company := model.Company{
		ID:            model.DefaultCompanyID,
		Name:          "My Company",
		InvoicePrefix: "INV-",
	}
	if err := c.AppendCompany(ctx, company); err != nil {
		return err
	}

	counter := model.InvoiceCounter{CompanyID: model.DefaultCompanyID, NextNumber: 1}
	if err := c.AppendInvoiceCounter(ctx, counter); err != nil {
		return err
	}

	seedCategories := []model.Category{
		{ID: model.NewRecordID("Salary"), Name: "Salary", Type: model.CategoryTypeIncome},
		{ID: model.NewRecordID("Rent"), Name: "Rent", Type: model.CategoryTypeExpense},
		{ID: model.NewRecordID("Supplies"), Name: "Supplies", Type: model.CategoryTypeExpense},
	}
	for _, cat := range seedCategories {
		if err := c.AppendCategory(ctx, cat); err != nil {
			return err
		}
	}
	return nil
}
