package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Acme", want: "acme"},
		{name: "spaces", in: "Acme Consulting", want: "acme-consulting"},
		{name: "punctuation run", in: "Bob's  Bait & Tackle", want: "bob-s-bait-tackle"},
		{name: "leading and trailing", in: "  --Acme!  ", want: "acme"},
		{name: "digits", in: "Studio 54", want: "studio-54"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewRecordID(t *testing.T) {
	id := NewRecordID("Acme Consulting")
	assert.True(t, strings.HasPrefix(id, "acme-consulting-"), "id %q", id)

	suffix := strings.TrimPrefix(id, "acme-consulting-")
	assert.Regexp(t, `^\d+$`, suffix)
}

func TestFormatInvoiceID(t *testing.T) {
	assert.Equal(t, "INV-007", FormatInvoiceID("INV-", 7))
	assert.Equal(t, "INV-042", FormatInvoiceID("INV-", 42))
	assert.Equal(t, "ACME1000", FormatInvoiceID("ACME", 1000))
}

func TestValidInvoiceStatus(t *testing.T) {
	for _, s := range []string{"Draft", "Sent", "Paid", "Void"} {
		assert.True(t, ValidInvoiceStatus(s), s)
	}
	assert.False(t, ValidInvoiceStatus("paid"))
	assert.False(t, ValidInvoiceStatus(""))
	assert.False(t, ValidInvoiceStatus("Overdue"))
}

func TestValidCategoryType(t *testing.T) {
	assert.True(t, ValidCategoryType("Income"))
	assert.True(t, ValidCategoryType("Expense"))
	assert.False(t, ValidCategoryType("income"))
	assert.False(t, ValidCategoryType(""))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "03/09/2024", FormatDate(d))
}

func TestParseDateStrict(t *testing.T) {
	d, err := ParseDateStrict("03/09/2024")
	assert.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 9, d.Day())

	_, err = ParseDateStrict("2024-03-09")
	assert.Error(t, err)
}

func TestEmptyPredicates(t *testing.T) {
	assert.True(t, Company{}.Empty())
	assert.False(t, Company{Name: "Acme"}.Empty())
	assert.True(t, Category{}.Empty())
	assert.True(t, Transaction{}.Empty())
	assert.True(t, Bill{}.Empty())
	assert.True(t, Invoice{}.Empty())
	assert.True(t, InvoiceCounter{}.Empty())
	assert.False(t, InvoiceCounter{CompanyID: "default", NextNumber: 1}.Empty())
}
