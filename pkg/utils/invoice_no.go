package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// FormatInvoiceNo renders a sequence number as the zero-padded invoice
// number printed on documents, e.g. sequence 42 becomes "INV-000042".
func FormatInvoiceNo(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
