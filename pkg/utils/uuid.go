package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID is the first eight hex digits of id in upper case, the receipt
// number printed for customers.
func ShortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
