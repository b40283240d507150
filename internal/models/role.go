package models

import "fmt"

// Role is the closed set of participant roles. Scheduling permissions come
// from the capability table below, not from role comparisons at call sites.
type Role string

const (
	RoleManager  Role = "manager"  // gestionnaire
	RoleTenant   Role = "tenant"   // locataire
	RoleProvider Role = "provider" // prestataire
	RoleAdmin    Role = "admin"
)

type Capabilities struct {
	CanPropose bool
	CanAccept  bool
	CanReject  bool
}

// Managers and admins propose availability; tenants and providers respond to
// it. A manager never accepts on behalf of the parties who have to show up.
var roleCapabilities = map[Role]Capabilities{
	RoleManager:  {CanPropose: true},
	RoleAdmin:    {CanPropose: true},
	RoleProvider: {CanPropose: true, CanAccept: true, CanReject: true},
	RoleTenant:   {CanAccept: true, CanReject: true},
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Capabilities() Capabilities {
	return roleCapabilities[r]
}

// Responder reports whether the role takes part in slot responses. Responders
// are the roles counted when deciding that every responder has rejected every
// slot.
func (r Role) Responder() bool {
	caps := roleCapabilities[r]
	return caps.CanAccept || caps.CanReject
}
