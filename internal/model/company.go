// Package model defines the record types stored in the backing spreadsheet.
package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultCompanyID is the reserved id of the seed company row. The row is
// created by provisioning and must never be deleted.
const DefaultCompanyID = "default"

// Company represents a business entity that issues invoices.
type Company struct {
	ID            string
	Name          string
	InvoicePrefix string
	LogoURL       string
	RowPos        int
}

// Empty reports whether the record carries no meaningful data. Rows decoded
// from padding at the end of a range read are dropped with this predicate.
func (c Company) Empty() bool {
	return c.ID == "" && c.Name == ""
}

// NewRecordID builds an id from a slugified name and the current timestamp,
// e.g. "acme-consulting-1718822400000".
func NewRecordID(name string) string {
	return fmt.Sprintf("%s-%d", Slugify(name), time.Now().UnixMilli())
}

// Slugify lowercases a name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
