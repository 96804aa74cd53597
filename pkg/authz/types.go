// Package authz provides the decoded actor identity for the deliveries
// backend. Requests arrive with a bearer token issued by the auth service;
// this package verifies it and exposes the actor (role, user id, company id)
// to downstream handlers.
package authz

// Role is the user_type carried by the auth token.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleDriver     Role = "DRIVER"
	RoleMaster     Role = "MASTER"
	RoleOperator   Role = "OPERATOR"
	RoleClient     Role = "CLIENT"
)

// Actor represents the authenticated user making a request.
type Actor struct {
	UserID    int64
	Name      string
	Role      Role
	CompanyID int64
}

// IsDriver reports whether the actor authenticates as a driver.
func (a Actor) IsDriver() bool { return a.Role == RoleDriver }

// IsBackOffice reports whether the actor has an operational dashboard role.
// Back-office roles bypass delivery ownership checks but not status or
// receipt preconditions.
func (a Actor) IsBackOffice() bool {
	return a.Role == RoleAdmin || a.Role == RoleSupervisor
}

// IsMaster reports whether the actor holds the platform-wide role that
// bypasses company scoping.
func (a Actor) IsMaster() bool { return a.Role == RoleMaster }
