package dto

// ListParams carries the raw listing inputs from the query string.
// Page stays a string on purpose: non-numeric input means "no
// pagination", it is never a validation error.
type ListParams struct {
	Search    string              `json:"search" query:"search"`
	Page      string              `json:"page" query:"page"`
	All       bool                `json:"all" query:"all"`
	OrderBy   string              `json:"orderBy" query:"orderBy"`
	SortOrder string              `json:"sortOrder" query:"sortOrder"` // "asc" or "desc", default desc
	Filters   map[string][]string `json:"filters"`
}
