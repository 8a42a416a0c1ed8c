package utils

// ToPtr returns a pointer to v. Used for the tri-state boolean columns
// and optional audit fields on the models.
func ToPtr[T any](v T) *T {
	return &v
}

// IsTrue reports whether b points at true. Nil reads as false, matching
// how the soft-delete columns treat an absent flag.
func IsTrue(b *bool) bool {
	return b != nil && *b
}
