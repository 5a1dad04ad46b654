package services

import (
	"strings"

	"github.com/google/uuid"

	"pollbox/internal/domain/user"
)

// Action names a thing a caller wants to do to a resource.
type Action string

const (
	ActionUpdatePoll Action = "poll.update"
	ActionDeletePoll Action = "poll.delete"
)

// Policy is the single place access rules live. Every handler and service
// asks it instead of re-deriving admin or ownership checks inline.
type Policy struct {
	adminEmails map[string]struct{}
}

func NewPolicy(adminEmails []string) *Policy {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allow[email] = struct{}{}
	}
	return &Policy{adminEmails: allow}
}

// IsAdmin classifies a caller as admin when their email is on the
// allow-list, their email contains "admin", or their role is "admin".
// The substring match is a known-loose rule carried over from the
// original deployment; callers depend on it, so it stays.
func (p *Policy) IsAdmin(u user.User) bool {
	if _, ok := p.adminEmails[u.Email]; ok {
		return true
	}
	if strings.Contains(u.Email, "admin") {
		return true
	}
	return u.Role == user.RoleAdmin
}

// IsOwner reports whether the caller owns the resource. Exact id match,
// no case folding.
func (p *Policy) IsOwner(callerID, resourceOwnerID uuid.UUID) bool {
	return callerID == resourceOwnerID
}

// Can evaluates whether the caller may perform action on a resource owned
// by resourceOwnerID.
func (p *Policy) Can(caller user.User, action Action, resourceOwnerID uuid.UUID) bool {
	switch action {
	case ActionUpdatePoll:
		return p.IsOwner(caller.ID, resourceOwnerID)
	case ActionDeletePoll:
		return p.IsOwner(caller.ID, resourceOwnerID) || p.IsAdmin(caller)
	default:
		return false
	}
}
