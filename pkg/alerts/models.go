// Package alerts records operational alerts raised by the backend, such as
// a delivery being removed by a driver. Alerts are an observability side
// channel: writing one must never fail the business operation that raised
// it. Durable storage is the source of truth; a small process-wide cache
// of the most recent records serves as a fallback read path.
package alerts

import "time"

// Alert types.
const (
	TypeDeliveryDeleted = "delivery_deleted"
	TypeGeneric         = "generic"
)

// Alert severities.
const (
	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Alert is the event handed to the recorder by a producer. Missing fields
// are filled in by normalization before persisting.
type Alert struct {
	Type         string
	Severity     string
	Title        string
	Message      string
	CompanyID    int64
	DeliveryID   string
	NFNumber     string
	DriverID     int64
	DriverName   string
	VehicleLabel string
	ActorID      int64
	ActorName    string
	ActorRole    string
	OccurredAt   time.Time
}

// AlertRecord is the GORM model for a persisted alert. Records are
// append-only; nothing updates them after creation.
type AlertRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Type        string    `gorm:"column:type;index;not null"`
	Severity    string    `gorm:"column:severity;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	CompanyID   int64     `gorm:"column:company_id;index;not null"`
	DeliveryID  string    `gorm:"column:delivery_id;index"`
	DriverID    int64     `gorm:"column:driver_id"`
	DriverName  string    `gorm:"column:driver_name"`
	ActorID     int64     `gorm:"column:actor_id"`
	ActorName   string    `gorm:"column:actor_name"`
	ActorRole   string    `gorm:"column:actor_role"`
	OccurredAt  time.Time `gorm:"column:occurred_at;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (AlertRecord) TableName() string { return "alerts" }
