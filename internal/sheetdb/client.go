package sheetdb

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jmallet/sheetbook/internal/common"
)

// CredentialSource supplies the short-lived bearer credential for every
// call. Acquiring one may require interactive user consent; a nil token or
// an error means no network call is attempted at all.
type CredentialSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// api is the narrow surface of the backing document service the adapter
// uses: range-addressed read/write, range append, batched structural edits,
// and a metadata read for tab ids. The fake in fake.go implements the same
// surface for tests.
type api interface {
	getValues(ctx context.Context, rng string) ([][]any, error)
	updateValues(ctx context.Context, rng string, values [][]any) error
	appendValues(ctx context.Context, rng string, values [][]any) error
	batchUpdate(ctx context.Context, requests []*sheets.Request) error
	sheetProperties(ctx context.Context) (map[string]int64, error)
	createSpreadsheet(ctx context.Context, doc *sheets.Spreadsheet) (string, error)
}

// Client is the spreadsheet-as-database adapter. All accessors live on it.
//
// No operation retries and none caches: every failure is terminal for that
// invocation, and every list call re-reads the document, because concurrent
// editors can have reshuffled row positions at any time.
type Client struct {
	api    api
	creds  CredentialSource
	logger *slog.Logger
}

// NewClient creates a client over the real Sheets API.
func NewClient(ctx context.Context, cfg Config, creds CredentialSource, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(tokenSourceAdapter{ctx: ctx, creds: creds}))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		api:    &googleAPI{svc: svc, spreadsheetID: cfg.SpreadsheetID},
		creds:  creds,
		logger: logger,
	}, nil
}

// newClientWithAPI wires an arbitrary api implementation; tests use it with
// the in-memory fake.
func newClientWithAPI(a api, creds CredentialSource, logger *slog.Logger) *Client {
	return &Client{api: a, creds: creds, logger: logger}
}

// checkCredential gates every operation: no credential, no network call.
func (c *Client) checkCredential(ctx context.Context) error {
	tok, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNoCredential, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return common.ErrNoCredential
	}
	return nil
}

// resolveSheetID maps a tab title to the document's internal numeric sheet
// id, required for structural edits. One metadata read per call; positions
// can change between calls, so nothing is cached.
func (c *Client) resolveSheetID(ctx context.Context, tab string) (int64, error) {
	props, err := c.api.sheetProperties(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	id, ok := props[tab]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrTabNotFound, tab)
	}
	return id, nil
}

// readTable reads the full data span of a table and normalizes every cell
// to a string. Short rows stay short; the codec pads them.
func (c *Client) readTable(ctx context.Context, t Table) ([][]string, error) {
	if err := c.checkCredential(ctx); err != nil {
		return nil, err
	}

	values, err := c.api.getValues(ctx, t.dataRange())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.Tab, err)
	}

	rows := make([][]string, len(values))
	for i, raw := range values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return rows, nil
}

// appendRow writes one encoded record, letting the service pick the first
// free row. The assigned position is not reported back; callers that need
// it must re-list.
func (c *Client) appendRow(ctx context.Context, t Table, cells []any) error {
	if err := c.checkCredential(ctx); err != nil {
		return err
	}

	if err := c.api.appendValues(ctx, t.dataRange(), [][]any{cells}); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.Tab, err)
	}

	c.logger.Debug("appended row", "tab", t.Tab)
	return nil
}

// updateRow overwrites the full tracked column span of one data row.
func (c *Client) updateRow(ctx context.Context, t Table, pos int, cells []any) error {
	if err := c.checkCredential(ctx); err != nil {
		return err
	}
	if pos < 1 {
		return fmt.Errorf("%w: %s row %d", common.ErrRowOutOfRange, t.Tab, pos)
	}

	if err := c.api.updateValues(ctx, t.rowRange(pos), [][]any{cells}); err != nil {
		return fmt.Errorf("failed to update %s row %d: %w", t.Tab, pos, err)
	}
	return nil
}

// updateCell overwrites a single cell of one data row. Used for the
// single-field cases: invoice status, bill status, counter value.
func (c *Client) updateCell(ctx context.Context, t Table, col string, pos int, value any) error {
	if err := c.checkCredential(ctx); err != nil {
		return err
	}
	if pos < 1 {
		return fmt.Errorf("%w: %s row %d", common.ErrRowOutOfRange, t.Tab, pos)
	}

	if err := c.api.updateValues(ctx, t.cellRange(col, pos), [][]any{{value}}); err != nil {
		return fmt.Errorf("failed to update %s!%s row %d: %w", t.Tab, col, pos, err)
	}
	return nil
}

// deleteRow removes one data row structurally, shifting every subsequent
// row up by one. Callers must discard any retained positions for the tab.
func (c *Client) deleteRow(ctx context.Context, t Table, pos int) error {
	if err := c.checkCredential(ctx); err != nil {
		return err
	}
	if pos < 1 {
		return fmt.Errorf("%w: %s row %d", common.ErrRowOutOfRange, t.Tab, pos)
	}

	sheetID, err := c.resolveSheetID(ctx, t.Tab)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: deleteRowRange(sheetID, pos),
		},
	}
	if err := c.api.batchUpdate(ctx, []*sheets.Request{req}); err != nil {
		return fmt.Errorf("failed to delete %s row %d: %w", t.Tab, pos, err)
	}

	c.logger.Debug("deleted row", "tab", t.Tab, "pos", pos)
	return nil
}

// deleteRowRange converts a 1-based header-exclusive data position into the
// 0-based half-open sheet interval the API wants. Data row 1 is sheet row 2,
// which is 0-based index 1.
func deleteRowRange(sheetID int64, pos int) *sheets.DimensionRange {
	return &sheets.DimensionRange{
		SheetId:    sheetID,
		Dimension:  "ROWS",
		StartIndex: int64(pos),
		EndIndex:   int64(pos) + 1,
	}
}

// tokenSourceAdapter lets the HTTP transport pull tokens from the same
// provider the accessors gate on.
type tokenSourceAdapter struct {
	ctx   context.Context
	creds CredentialSource
}

func (a tokenSourceAdapter) Token() (*oauth2.Token, error) {
	return a.creds.Token(a.ctx)
}

// googleAPI is the production implementation of the api interface.
type googleAPI struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (g *googleAPI) getValues(ctx context.Context, rng string) ([][]any, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleAPI) updateValues(ctx context.Context, rng string, values [][]any) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (g *googleAPI) appendValues(ctx context.Context, rng string, values [][]any) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleAPI) batchUpdate(ctx context.Context, requests []*sheets.Request) error {
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func (g *googleAPI) sheetProperties(ctx context.Context) (map[string]int64, error) {
	doc, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	props := make(map[string]int64, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			props[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return props, nil
}

func (g *googleAPI) createSpreadsheet(ctx context.Context, doc *sheets.Spreadsheet) (string, error) {
	created, err := g.svc.Spreadsheets.Create(doc).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	g.spreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}
