// Package receipts holds the delivery-receipt records produced by the OCR
// ingestion service. The deliveries core only consumes the existence check
// and the cascade removal; upload and text extraction live elsewhere.
package receipts

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Receipt is a scanned proof-of-delivery document attached to a delivery.
type Receipt struct {
	ID               int64     `gorm:"primaryKey;column:id"`
	DeliveryID       int64     `gorm:"column:delivery_id;index;not null"`
	CompanyID        int64     `gorm:"column:company_id;index;not null"`
	FileKey          string    `gorm:"column:file_key;not null"`
	UploadedByUserID int64     `gorm:"column:uploaded_by_user_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName returns the GORM table name.
func (Receipt) TableName() string { return "receipts" }

// Store provides database operations for receipts.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the receipts table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Receipt{})
}

// Attach records a receipt for a delivery.
func (s *Store) Attach(ctx context.Context, r *Receipt) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("attach receipt: %w", err)
	}
	return nil
}

// HasForDelivery reports whether the delivery still has an attached receipt.
func (s *Store) HasForDelivery(ctx context.Context, deliveryID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Receipt{}).
		Where("delivery_id = ?", deliveryID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count receipts for delivery %d: %w", deliveryID, err)
	}
	return count > 0, nil
}

// RemoveForDelivery deletes all receipts referencing the delivery. It runs
// inside the caller's transaction during cascade deletion.
func (s *Store) RemoveForDelivery(ctx context.Context, tx *gorm.DB, deliveryID int64) error {
	if err := tx.WithContext(ctx).Where("delivery_id = ?", deliveryID).Delete(&Receipt{}).Error; err != nil {
		return fmt.Errorf("remove receipts for delivery %d: %w", deliveryID, err)
	}
	return nil
}
