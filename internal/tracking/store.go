// Package tracking stores GPS points reported by the driver mobile app.
// The deliveries core consumes the cascade removal; position ingestion has
// its own service.
package tracking

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TrackingPoint is a single GPS sample tied to a delivery.
type TrackingPoint struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	DeliveryID int64     `gorm:"column:delivery_id;index;not null"`
	DriverID   int64     `gorm:"column:driver_id;index"`
	Lat        float64   `gorm:"column:lat;not null"`
	Lng        float64   `gorm:"column:lng;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;index"`
}

// TableName returns the GORM table name.
func (TrackingPoint) TableName() string { return "tracking_points" }

// Store provides database operations for tracking points.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tracking_points table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&TrackingPoint{})
}

// Append records a GPS sample.
func (s *Store) Append(ctx context.Context, p *TrackingPoint) error {
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("append tracking point: %w", err)
	}
	return nil
}

// LastPosition returns the most recent sample for a driver, or nil when the
// driver has never reported.
func (s *Store) LastPosition(ctx context.Context, driverID int64) (*TrackingPoint, error) {
	var p TrackingPoint
	err := s.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("recorded_at DESC").
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("last position for driver %d: %w", driverID, err)
	}
	return &p, nil
}

// RemoveForDelivery deletes all points referencing the delivery. It runs
// inside the caller's transaction during cascade deletion.
func (s *Store) RemoveForDelivery(ctx context.Context, tx *gorm.DB, deliveryID int64) error {
	if err := tx.WithContext(ctx).Where("delivery_id = ?", deliveryID).Delete(&TrackingPoint{}).Error; err != nil {
		return fmt.Errorf("remove tracking points for delivery %d: %w", deliveryID, err)
	}
	return nil
}
