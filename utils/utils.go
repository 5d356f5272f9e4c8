package utils

import "strconv"

// Pointer returns a pointer to the given value.
func Pointer[T any](v T) *T {
	return &v
}

// ParseUint safely parses a string to uint, returning 0 on failure.
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}

// PaginatedResponse structure for paginated results.
type PaginatedResponse struct {
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
