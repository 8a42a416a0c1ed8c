package dto

// Envelope status values
const (
	StatusOK    = "OK"
	StatusFatal = "FATAL"
)

// Change status values reported under data.changes.status
const (
	ChangeInserted    = "INSERTED"
	ChangePatched     = "PATCHED"
	ChangeSoftDeleted = "VDELETION"
	ChangeCreated     = "CREATED"
	ChangeModified    = "MODIFIED"
	ChangePurged      = "PURGED"
)

// APIResponse is the uniform response envelope. Successful responses
// carry Status "OK", the payload and the handling time in milliseconds.
// Failures carry Status "FATAL" with a message and, for validation
// failures, a field-to-message issues map.
type APIResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Data      any               `json:"data,omitempty"`
	DeltaUsed *int64            `json:"deltaUsed,omitempty"`
	Issues    map[string]string `json:"issues,omitempty"`
}

// Changes describes the outcome of a mutation
type Changes struct {
	Status   string `json:"status"`
	Affected *int64 `json:"affected,omitempty"`
	Entity   any    `json:"entity,omitempty"`
}

// MutationData wraps a Changes block as the data payload of a mutation response
type MutationData struct {
	Changes Changes `json:"changes"`
}

// ListData is the data payload of a listing response: the page of rows
// plus the total count under the same predicates
type ListData struct {
	Count int64 `json:"count"`
	Rows  any   `json:"rows"`
}

// FilterOptionsData is the data payload of a filter options response:
// per filter name, the distinct values available for it
type FilterOptionsData struct {
	Filters map[string][]string `json:"filters"`
}
