package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store provides append-only operations for alert records plus the
// process-wide recent cache.
type Store struct {
	db     *gorm.DB
	cache  *recentCache
	logger *slog.Logger
}

// NewStore creates a new Store. cacheSize bounds the in-memory recent
// buffer; values below 1 fall back to the default of 50.
func NewStore(db *gorm.DB, cacheSize int, logger *slog.Logger) *Store {
	if cacheSize < 1 {
		cacheSize = DefaultConfig().CacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, cache: newRecentCache(cacheSize), logger: logger}
}

// AutoMigrate creates or updates the alerts table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&AlertRecord{})
}

// Record normalizes and persists an alert, then refreshes the recent
// cache. A cache refresh failure is logged but does not fail the write;
// the durable row is already the source of truth.
func (s *Store) Record(ctx context.Context, a Alert) error {
	rec := Normalize(a)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	s.refreshCache(ctx)
	return nil
}

// Recent returns the most recent alerts for a company from durable
// storage, newest first. limit defaults to 20 and caps at 100.
func (s *Store) Recent(ctx context.Context, companyID int64, limit int) ([]AlertRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var out []AlertRecord
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list recent alerts: %w", err)
	}
	return out, nil
}

// CachedRecent returns the process-wide recent buffer, newest first. The
// buffer is global, not per company; it exists as a degraded read path for
// when storage is briefly unreachable.
func (s *Store) CachedRecent() []AlertRecord {
	return s.cache.Snapshot()
}

// CacheLen returns the number of records currently cached.
func (s *Store) CacheLen() int {
	return s.cache.Len()
}

// DeleteOlderThan deletes alerts that occurred before the cutoff.
// Returns the number of deleted records.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("occurred_at < ?", cutoff).Delete(&AlertRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete old alerts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// refreshCache reloads the newest records into the recent buffer.
func (s *Store) refreshCache(ctx context.Context) {
	var records []AlertRecord
	err := s.db.WithContext(ctx).
		Order("occurred_at DESC, id DESC").
		Limit(s.cache.maxSize).
		Find(&records).Error
	if err != nil {
		s.logger.Warn("alert cache refresh failed", "error", err)
		return
	}
	s.cache.Replace(records)
}

// typeTitles are the default titles applied when the producer supplies none.
var typeTitles = map[string]string{
	TypeDeliveryDeleted: "Entrega removida",
}

// Normalize fills defaults and synthesizes the description for an alert.
// Severity defaults to danger for delivery deletions and info otherwise;
// the occurrence time defaults to now when the producer left it zero.
func Normalize(a Alert) AlertRecord {
	if a.Type == "" {
		a.Type = TypeGeneric
	}
	if a.Severity == "" {
		if a.Type == TypeDeliveryDeleted {
			a.Severity = SeverityDanger
		} else {
			a.Severity = SeverityInfo
		}
	}
	if a.Title == "" {
		if t, ok := typeTitles[a.Type]; ok {
			a.Title = t
		} else {
			a.Title = "Alerta operacional"
		}
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}

	return AlertRecord{
		ID:          uuid.New().String(),
		Type:        a.Type,
		Severity:    a.Severity,
		Title:       a.Title,
		Description: describe(a),
		CompanyID:   a.CompanyID,
		DeliveryID:  a.DeliveryID,
		DriverID:    a.DriverID,
		DriverName:  a.DriverName,
		ActorID:     a.ActorID,
		ActorName:   a.ActorName,
		ActorRole:   a.ActorRole,
		OccurredAt:  a.OccurredAt,
	}
}

// describe concatenates the human message with the delivery, driver,
// vehicle and actor details. The actor is only named when it differs from
// the driver, so a driver deleting their own delivery is not attributed
// twice.
func describe(a Alert) string {
	var parts []string
	if a.Message != "" {
		parts = append(parts, a.Message)
	}
	if a.NFNumber != "" {
		parts = append(parts, "NF "+a.NFNumber)
	}
	if a.DriverName != "" {
		parts = append(parts, "Motorista: "+a.DriverName)
	}
	if a.VehicleLabel != "" {
		parts = append(parts, "Veiculo: "+a.VehicleLabel)
	}
	if a.ActorName != "" && a.ActorName != a.DriverName {
		parts = append(parts, "Acao por: "+a.ActorName)
	}
	return strings.Join(parts, " | ")
}
