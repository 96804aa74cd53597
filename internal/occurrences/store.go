// Package occurrences stores delivery occurrences: refusals, failed
// attempts, address problems and other events reported from the road.
package occurrences

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Occurrence is an event reported against a delivery.
type Occurrence struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	DeliveryID  int64     `gorm:"column:delivery_id;index;not null"`
	CompanyID   int64     `gorm:"column:company_id;index;not null"`
	Kind        string    `gorm:"column:kind;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (Occurrence) TableName() string { return "occurrences" }

// Store provides database operations for occurrences.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the occurrences table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Occurrence{})
}

// Report records an occurrence for a delivery.
func (s *Store) Report(ctx context.Context, o *Occurrence) error {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("report occurrence: %w", err)
	}
	return nil
}

// ListByDelivery returns the occurrences for a delivery, oldest first.
func (s *Store) ListByDelivery(ctx context.Context, deliveryID int64) ([]Occurrence, error) {
	var out []Occurrence
	err := s.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list occurrences for delivery %d: %w", deliveryID, err)
	}
	return out, nil
}

// RemoveForDelivery deletes all occurrences referencing the delivery. It
// runs inside the caller's transaction during cascade deletion.
func (s *Store) RemoveForDelivery(ctx context.Context, tx *gorm.DB, deliveryID int64) error {
	if err := tx.WithContext(ctx).Where("delivery_id = ?", deliveryID).Delete(&Occurrence{}).Error; err != nil {
		return fmt.Errorf("remove occurrences for delivery %d: %w", deliveryID, err)
	}
	return nil
}
