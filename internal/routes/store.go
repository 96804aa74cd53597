// Package routes stores the association between deliveries and planned
// routes. Route planning itself lives in the routing service.
package routes

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RouteAssignment places a delivery at a position within a route.
type RouteAssignment struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	RouteID    int64     `gorm:"column:route_id;index;not null"`
	DeliveryID int64     `gorm:"column:delivery_id;index;not null"`
	Position   int       `gorm:"column:position;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (RouteAssignment) TableName() string { return "route_assignments" }

// Store provides database operations for route assignments.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the route_assignments table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&RouteAssignment{})
}

// Assign places a delivery on a route.
func (s *Store) Assign(ctx context.Context, a *RouteAssignment) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("assign delivery to route: %w", err)
	}
	return nil
}

// ListByRoute returns the assignments of a route ordered by position.
func (s *Store) ListByRoute(ctx context.Context, routeID int64) ([]RouteAssignment, error) {
	var out []RouteAssignment
	err := s.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("position ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list assignments for route %d: %w", routeID, err)
	}
	return out, nil
}

// RemoveForDelivery deletes all assignments referencing the delivery. It
// runs inside the caller's transaction during cascade deletion.
func (s *Store) RemoveForDelivery(ctx context.Context, tx *gorm.DB, deliveryID int64) error {
	if err := tx.WithContext(ctx).Where("delivery_id = ?", deliveryID).Delete(&RouteAssignment{}).Error; err != nil {
		return fmt.Errorf("remove route assignments for delivery %d: %w", deliveryID, err)
	}
	return nil
}
