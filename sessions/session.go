package sessions

import (
	"strings"

	"github.com/jrsteele09/go-care-portal/internal/utils"
)

// Payload is the verified content of a session token. Name and LastName may be
// empty; SessionID is only present when the login produced a correlation id.
type Payload struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	LastName    string  `json:"lastName"`
	CreatedAt   string  `json:"createdAt"`
	LastLoginAt string  `json:"lastLoginAt"`
	SessionID   *string `json:"sessionId,omitempty"`
}

func (p Payload) HasSessionID() bool {
	return utils.Value(p.SessionID) != ""
}

// DisplayName prefers the full name, then the local part of the email, then the id.
func (p Payload) DisplayName() string {
	if full := strings.TrimSpace(p.Name + " " + p.LastName); full != "" {
		return full
	}
	if local, _, _ := strings.Cut(p.Email, "@"); local != "" {
		return local
	}
	return p.ID
}
