// Package util provides utility functions for the product catalog.
package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a RFC4122-compliant v4 UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

// ParseProductID parses a product id given on a command line or URL path.
func ParseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
