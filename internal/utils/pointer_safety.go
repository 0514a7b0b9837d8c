package utils

// Value dereferences v, returning the zero value for a nil pointer. Useful
// for optional backend payload fields like the expanded tenant record.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v. Used for optional values such as a route's
// required role.
func Ptr[T any](v T) *T {
	return &v
}
