package sheetdb

import (
	"context"

	"github.com/jmallet/sheetbook/internal/model"
)

// ListCategories returns every category row, in sheet order.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := c.readTable(ctx, categoriesTable)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	for i, row := range rows {
		rec := decodeCategory(row, i+1)
		if rec.Empty() {
			continue
		}
		categories = append(categories, rec)
	}
	return categories, nil
}

// AppendCategory writes a new category row.
func (c *Client) AppendCategory(ctx context.Context, category model.Category) error {
	return c.appendRow(ctx, categoriesTable, encodeCategory(category))
}

// UpdateCategoryAt overwrites the category row at pos.
func (c *Client) UpdateCategoryAt(ctx context.Context, pos int, category model.Category) error {
	return c.updateRow(ctx, categoriesTable, pos, encodeCategory(category))
}

// DeleteCategoryAt removes the category row at pos.
func (c *Client) DeleteCategoryAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, categoriesTable, pos)
}
