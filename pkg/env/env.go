package env

import (
	"os"
	"strings"
)

// Prefix namespaces every variable the catalog reads.
const Prefix = "BAKERY"

// Key returns the fully prefixed name for a short variable name.
func Key(name string) string {
	return Prefix + "_" + strings.ToUpper(name)
}

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
