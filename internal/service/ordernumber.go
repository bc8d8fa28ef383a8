package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Suffix alphabet omits 0/O and 1/I so order numbers survive being read
// over the phone.
const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const orderNumberSuffixLen = 6

// newOrderNumber generates a human-referenceable order number of the form
// ORD-20250114-K7N3QX. The date prefix keeps numbers roughly sortable and
// lets support staff eyeball the order's age; the random suffix avoids
// leaking order volume the way a sequence would.
func newOrderNumber(now time.Time) (string, error) {
	buf := make([]byte, orderNumberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	suffix := make([]byte, orderNumberSuffixLen)
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}

	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix), nil
}
