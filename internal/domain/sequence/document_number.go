package sequence

import (
	"strconv"
	"strings"
)

// DocumentNumber is a formatted, human-readable document number.
// Format: <TypePrefix>[-<ScopeToken>]-<value>, e.g. "FG-D1-1" or "RM-7".
// Uniqueness is guaranteed only for numbers minted through Counter.Advance;
// the administrative override path may attach arbitrary values, including
// duplicates, and never moves the counter.
type DocumentNumber string

// String returns the document number as a plain string
func (n DocumentNumber) String() string {
	return string(n)
}

// IsZero reports whether no document number has been assigned
func (n DocumentNumber) IsZero() bool {
	return n == ""
}

// FormatDocumentNumber renders a counter value as a document number
func FormatDocumentNumber(documentType DocumentType, scope string, value int64) DocumentNumber {
	parts := make([]string, 0, 3)
	parts = append(parts, documentType.Prefix())
	if scope != GlobalScope {
		parts = append(parts, scope)
	}
	parts = append(parts, strconv.FormatInt(value, 10))
	return DocumentNumber(strings.Join(parts, "-"))
}
