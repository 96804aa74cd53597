package deliveries

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/alerts"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// DependentRemover is the contract the store needs from the subsystems
// holding rows that reference a delivery: remove everything for the given
// delivery inside the supplied transaction.
type DependentRemover interface {
	RemoveForDelivery(ctx context.Context, tx *gorm.DB, deliveryID int64) error
}

// AlertSink receives operational alerts. Emission is best-effort; the
// store never fails a business operation over a sink error.
type AlertSink interface {
	Record(ctx context.Context, a alerts.Alert) error
}

// DeleteResult reports the outcome of a deletion. AlertRecorded
// distinguishes "operation succeeded, side effect failed" from full
// success; the deletion itself is already durable either way.
type DeleteResult struct {
	AlertRecorded bool
}

// Store implements the delivery lifecycle operations on top of the
// visibility filter and the ownership guard.
type Store struct {
	db         *gorm.DB
	resolver   *Resolver
	visibility *Visibility
	guard      *Guard
	alerts     AlertSink

	// Cascade order is fixed: occurrences, route associations, tracking
	// points, then the delivery row itself.
	occurrences DependentRemover
	routeLinks  DependentRemover
	tracking    DependentRemover

	logger *slog.Logger
}

// NewStore creates a Store wired to its collaborating subsystems.
func NewStore(
	gdb *gorm.DB,
	receipts ReceiptChecker,
	occurrences, routeLinks, tracking DependentRemover,
	alertSink AlertSink,
	logger *slog.Logger,
) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	resolver := NewResolver(gdb, logger)
	return &Store{
		db:          gdb,
		resolver:    resolver,
		visibility:  NewVisibility(resolver),
		guard:       NewGuard(resolver, receipts, logger),
		alerts:      alertSink,
		occurrences: occurrences,
		routeLinks:  routeLinks,
		tracking:    tracking,
		logger:      logger,
	}
}

// AutoMigrate creates or updates the tables owned by the deliveries core.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Company{}, &User{}, &Driver{}, &Delivery{})
}

// List returns the deliveries the actor may see, honoring the filters and
// the role-specific default date window, oldest first.
func (s *Store) List(ctx context.Context, actor authz.Actor, f ListFilter) ([]Delivery, error) {
	var out []Delivery
	q := s.visibility.Apply(ctx, s.db.WithContext(ctx), actor, f)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return out, nil
}

// Get fetches a single delivery within the actor's company. Driver actors
// may only read deliveries they own.
func (s *Store) Get(ctx context.Context, actor authz.Actor, id int64) (*Delivery, error) {
	d, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.IsDriver() {
		if err := s.guard.checkOwnership(ctx, d, actor, "view"); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// UpdateStatus moves a delivery to newStatus after the ownership guard
// admits the mutation. The stored value is the normalized upper-case form.
func (s *Store) UpdateStatus(ctx context.Context, actor authz.Actor, id int64, newStatus string) (*Delivery, error) {
	d, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.guard.CanMutateStatus(ctx, d, actor, newStatus); err != nil {
		return nil, err
	}

	normalized := NormalizeStatus(newStatus)
	result := s.db.WithContext(ctx).Model(&Delivery{}).
		Where("id = ? AND company_id = ?", d.ID, d.CompanyID).
		Updates(map[string]any{
			"status":     normalized,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update delivery %d status: %w", d.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		// Row vanished between fetch and update: a concurrent delete won.
		return nil, notFound("delivery %d not found", d.ID)
	}

	d.Status = normalized
	return d, nil
}

// Delete removes a delivery and its dependent rows. The cascade runs inside
// a single transaction so a partial teardown can never be observed; the
// alert emission afterwards is best-effort and never fails the deletion.
// A second delete of the same id finds no row and reports NOT_FOUND, which
// keeps the operation idempotent in effect.
func (s *Store) Delete(ctx context.Context, actor authz.Actor, id int64) (DeleteResult, error) {
	d, err := s.fetch(ctx, actor, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if err := s.guard.CanDelete(ctx, d, actor); err != nil {
		return DeleteResult{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.occurrences.RemoveForDelivery(ctx, tx, d.ID); err != nil {
			return err
		}
		if err := s.routeLinks.RemoveForDelivery(ctx, tx, d.ID); err != nil {
			return err
		}
		if err := s.tracking.RemoveForDelivery(ctx, tx, d.ID); err != nil {
			return err
		}

		result := tx.Where("id = ?", d.ID).Delete(&Delivery{})
		if result.Error != nil {
			return fmt.Errorf("delete delivery %d: %w", d.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("delivery %d not found", d.ID)
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	return DeleteResult{AlertRecorded: s.emitDeletionAlert(ctx, d, actor)}, nil
}

// fetch loads a delivery scoped to the actor's company. Absence is a
// NOT_FOUND rule outcome, never a bare gorm error.
func (s *Store) fetch(ctx context.Context, actor authz.Actor, id int64) (*Delivery, error) {
	var d Delivery
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if !actor.IsMaster() {
		q = q.Where("company_id = ?", actor.CompanyID)
	}
	if err := q.First(&d).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("delivery %d not found", id)
		}
		return nil, fmt.Errorf("fetch delivery %d: %w", id, err)
	}
	return &d, nil
}

// emitDeletionAlert records the delivery_deleted alert. Failures are logged
// and swallowed; reports whether the alert was durably recorded.
func (s *Store) emitDeletionAlert(ctx context.Context, d *Delivery, actor authz.Actor) bool {
	if s.alerts == nil {
		return false
	}

	message := "Entrega removida"
	driverName := ""
	var driverID int64
	if d.DriverID != nil {
		driverID = *d.DriverID
	}
	if actor.IsDriver() {
		message = "Entrega removida pelo motorista"
		driverName = actor.Name
	} else if driverID > 0 {
		driverName = s.lookupDriverName(ctx, driverID, d.CompanyID)
	}

	alert := alerts.Alert{
		Type:       alerts.TypeDeliveryDeleted,
		Message:    message,
		CompanyID:  d.CompanyID,
		DeliveryID: strconv.FormatInt(d.ID, 10),
		NFNumber:   d.NFNumber,
		DriverID:   driverID,
		DriverName: driverName,
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		ActorRole:  string(actor.Role),
	}

	if err := s.alerts.Record(ctx, alert); err != nil {
		s.logger.Warn("delivery deletion alert not recorded",
			"deliveryID", d.ID, "error", err)
		return false
	}
	return true
}

// lookupDriverName resolves the display name behind an ambiguous driver_id
// value. Best-effort: any miss returns the empty string.
func (s *Store) lookupDriverName(ctx context.Context, rawDriverID, companyID int64) string {
	ids, ok := s.resolver.Resolve(ctx, rawDriverID, companyID)
	if !ok {
		return ""
	}
	var u User
	if err := s.db.WithContext(ctx).Select("name").First(&u, "id = ?", ids.UserID).Error; err != nil {
		return ""
	}
	return u.Name
}
