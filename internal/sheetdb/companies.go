package sheetdb

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/jmallet/sheetbook/internal/model"
)

// ListCompanies returns every company row, in sheet order.
func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := c.readTable(ctx, companiesTable)
	if err != nil {
		return nil, err
	}

	var companies []model.Company
	for i, row := range rows {
		rec := decodeCompany(row, i+1)
		if rec.Empty() {
			continue
		}
		companies = append(companies, rec)
	}
	return companies, nil
}

// AppendCompany writes a new company row.
func (c *Client) AppendCompany(ctx context.Context, company model.Company) error {
	return c.appendRow(ctx, companiesTable, encodeCompany(company))
}

// UpdateCompanyAt overwrites the company row at pos.
func (c *Client) UpdateCompanyAt(ctx context.Context, pos int, company model.Company) error {
	return c.updateRow(ctx, companiesTable, pos, encodeCompany(company))
}

// DeleteCompanyAt removes the company row at pos. Positions retained for
// the Companies tab are invalid afterwards.
func (c *Client) DeleteCompanyAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, companiesTable, pos)
}

// DeleteCompanyAndCounterAt removes a company row and its counter row in a
// single batched structural request, so the two deletes are atomic with
// respect to each other: both happen or neither does. counterPos may be 0
// when the counter row is missing, in which case only the company row goes.
func (c *Client) DeleteCompanyAndCounterAt(ctx context.Context, companyPos, counterPos int) error {
	if err := c.checkCredential(ctx); err != nil {
		return err
	}

	companySheet, err := c.resolveSheetID(ctx, companiesTable.Tab)
	if err != nil {
		return err
	}

	requests := []*sheets.Request{
		{DeleteDimension: &sheets.DeleteDimensionRequest{Range: deleteRowRange(companySheet, companyPos)}},
	}

	if counterPos > 0 {
		counterSheet, err := c.resolveSheetID(ctx, countersTable.Tab)
		if err != nil {
			return err
		}
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{Range: deleteRowRange(counterSheet, counterPos)},
		})
	}

	if err := c.api.batchUpdate(ctx, requests); err != nil {
		return fmt.Errorf("failed to delete company row %d: %w", companyPos, err)
	}

	c.logger.Info("deleted company row", "company_pos", companyPos, "counter_pos", counterPos)
	return nil
}
