package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug. Arabic text is
// transliterated.
func Slugify(s string) string {
	return slug.Make(s)
}

// FormatReference builds a sequential document reference such as QT-000042.
func FormatReference(prefix string, number int) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "-")
	if prefix == "" {
		prefix = "QT"
	}
	return fmt.Sprintf("%s-%06d", strings.ToUpper(prefix), number)
}

// DocumentFilename returns a download filename built from the customer name
// and the document reference.
func DocumentFilename(customerName, reference string) string {
	name := slug.Make(strings.TrimSpace(customerName + " " + reference))
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}
