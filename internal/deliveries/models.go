// Package deliveries implements the visibility, ownership and lifecycle
// rules for delivery records. A delivery belongs to exactly one company;
// who may see or change it depends on the actor's role and on how the
// actor's user account relates to the company's driver registry.
package deliveries

import (
	"strings"
	"time"
)

// Company is the tenant boundary. Every other entity carries its id.
type Company struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Active    bool      `gorm:"column:active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (Company) TableName() string { return "companies" }

// User is an account with a role. Drivers additionally have a row in the
// drivers registry; the two id spaces are reconciled by the Resolver.
type User struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Role      string    `gorm:"column:user_type;not null"`
	CompanyID *int64    `gorm:"column:company_id;index"`
	Active    bool      `gorm:"column:active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (User) TableName() string { return "users" }

// Driver links a user account to a company-scoped driver profile.
// Historical data entry did not always keep user_id populated correctly,
// so consumers must never assume the link is clean.
type Driver struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index:idx_driver_user_company,priority:1"`
	CompanyID int64     `gorm:"column:company_id;index:idx_driver_user_company,priority:2;not null"`
	CNHNumber string    `gorm:"column:cnh_number"`
	Active    bool      `gorm:"column:active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (Driver) TableName() string { return "drivers" }

// Delivery is the unit of work. driver_id is nullable and ambiguous: older
// rows may store a drivers.id or a users.id, so matching against it always
// goes through the union-of-identities check.
type Delivery struct {
	ID                   int64      `gorm:"primaryKey;column:id"`
	CompanyID            int64      `gorm:"column:company_id;index;not null"`
	DriverID             *int64     `gorm:"column:driver_id;index"`
	CreatedByUserID      int64      `gorm:"column:created_by_user_id"`
	ClientID             *int64     `gorm:"column:client_id;index"`
	Status               string     `gorm:"column:status;not null;default:PENDING"`
	NFNumber             string     `gorm:"column:nf_number;index"`
	DeliveryDateExpected *time.Time `gorm:"column:delivery_date_expected"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

// TableName returns the GORM table name.
func (Delivery) TableName() string { return "deliveries" }

// Delivery statuses. Portuguese values are legacy rows written by the
// first version of the mobile app; both spellings stay queryable.
const (
	StatusPending     = "PENDING"
	StatusInTransit   = "IN_TRANSIT"
	StatusDelivered   = "DELIVERED"
	StatusCancelled   = "CANCELLED"
	StatusRefused     = "REFUSED"
	StatusProblem     = "PROBLEM"
	StatusReattempted = "REATTEMPTED"

	legacyPending   = "PENDENTE"
	legacyInTransit = "EM_ANDAMENTO"
	legacyDelivered = "REALIZADA"
	legacyCancelled = "CANCELADA"
	legacyRefused   = "RECUSADA"
	legacyCompleted = "COMPLETED"
	legacyFinished  = "FINALIZADA"
)

// openStatuses are unresolved/in-progress deliveries. They stay visible to
// drivers regardless of date so old unfinished work is never hidden.
var openStatuses = []string{
	StatusPending, StatusInTransit, legacyPending, legacyInTransit,
	StatusProblem, StatusReattempted,
}

// completedStatuses are terminal: deliveries in these states are immutable
// by deletion and cannot leave the state.
var completedStatuses = []string{
	StatusDelivered, legacyDelivered, legacyCompleted, legacyFinished,
}

// knownStatuses are the values accepted for status mutation.
var knownStatuses = map[string]struct{}{
	StatusPending:     {},
	StatusInTransit:   {},
	StatusDelivered:   {},
	StatusCancelled:   {},
	StatusRefused:     {},
	StatusProblem:     {},
	StatusReattempted: {},
	legacyPending:     {},
	legacyInTransit:   {},
	legacyDelivered:   {},
	legacyCancelled:   {},
	legacyRefused:     {},
	legacyCompleted:   {},
	legacyFinished:    {},
}

// NormalizeStatus upper-cases and trims a status value for comparison.
func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsCompleted reports whether a status (case-insensitive) is terminal.
func IsCompleted(status string) bool {
	n := NormalizeStatus(status)
	for _, c := range completedStatuses {
		if n == c {
			return true
		}
	}
	return false
}

// IsKnownStatus reports whether a status value is accepted for mutation.
func IsKnownStatus(status string) bool {
	_, ok := knownStatuses[NormalizeStatus(status)]
	return ok
}
