package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewRequestID generates an id for correlating log lines of one request
func NewRequestID() string {
	return uuid.New().String()
}

// GenerateInvoiceNo generates a unique invoice number such as INV-1A2B3C4D
func GenerateInvoiceNo(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}
