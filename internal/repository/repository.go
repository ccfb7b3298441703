// Package repository provides data access layer implementations for the application.
package repository

import "strings"

// feedOrder is the canonical post ordering: newest first, ties resolved by
// insertion order so feed pages are deterministic.
const feedOrder = "pub_date DESC, id ASC"

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite spells it out.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
