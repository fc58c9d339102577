package auth

import "github.com/rogerio-castellano/stock-dashboard/internal/models"

// Source tells how a principal was resolved.
type Source string

const (
	SourceCredential Source = "credential"
	SourceDemoBypass Source = "demo-bypass"
)

const GuestSubjectID = "guest"

// Principal is the identity and role resolved for one request.
type Principal struct {
	SubjectID string
	Role      models.Role
	Source    Source
}

// IsGuest reports whether the principal came from the demo bypass.
func (p Principal) IsGuest() bool {
	return p.Source == SourceDemoBypass
}

// DemoBypass lets a fixed sentinel token stand in for an admin login.
// It exists for demo deployments only and skips signature verification.
type DemoBypass struct {
	Enabled bool
	Token   string
}

func (d DemoBypass) matches(token string) bool {
	return d.Enabled && d.Token != "" && token == d.Token
}

func guestPrincipal() Principal {
	return Principal{
		SubjectID: GuestSubjectID,
		Role:      models.RoleAdmin,
		Source:    SourceDemoBypass,
	}
}
