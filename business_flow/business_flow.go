// Package businessflow contains the business logic for the application.
package businessflow

import (
	"strconv"
	"strings"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
)

const RequestIDKey = "X-Request-ID"

// Session is the authenticated caller's identity, resolved by the auth
// middleware and passed explicitly into every flow that stamps audit
// columns. A nil *Session means an unauthenticated caller.
type Session struct {
	SessionID uint
	Token     string
	UserID    uint
	Email     string
	Name      string
}

// ClientMetadata holds client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToSessionUserDTO converts a session's user snapshot to its public shape
func ToSessionUserDTO(session models.UserSession) dto.SessionUserDTO {
	return dto.SessionUserDTO{
		UserID: session.UserID,
		Email:  session.UserEmail,
		Name:   session.UserName,
	}
}

// BuildListQuery translates raw listing params into the immutable query
// descriptor. Non-numeric page input leaves the query unwindowed, it is
// never an error.
func BuildListQuery(params *dto.ListParams) repository.ListQuery {
	var q repository.ListQuery
	if params == nil {
		return q
	}

	q = q.WithSearch(params.Search)

	for field, values := range params.Filters {
		q = q.WithIn(field, values)
	}

	if params.OrderBy != "" {
		q = q.WithSort(params.OrderBy, strings.EqualFold(params.SortOrder, "asc"))
	}

	if params.All {
		return q.WithAll()
	}
	if page, err := strconv.Atoi(strings.TrimSpace(params.Page)); err == nil {
		q = q.WithPage(page)
	}

	return q
}

// DedupeIDs returns the distinct ids of a bulk request, preserving order.
func DedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
