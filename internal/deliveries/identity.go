package deliveries

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// DriverIdentifiers is the canonical id pair for one physical driver:
// the drivers-registry row id and the underlying user account id.
type DriverIdentifiers struct {
	DriverID int64
	UserID   int64
}

// Resolver reconciles the two identity spaces (users, drivers) that both
// describe the same person. Data entry did not always keep them linked, so
// a raw id handed to the resolver may live in either space.
type Resolver struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(db *gorm.DB, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{db: db, logger: logger}
}

// Resolve looks up the driver record matching rawID in either id space,
// scoped to the company. Returns (zero, false) when the inputs are absent,
// no row exists, or the datastore errors. Resolution is a narrowing step,
// not a security boundary; absence means "no narrowing possible" and must
// never fail the caller.
func (r *Resolver) Resolve(ctx context.Context, rawID, companyID int64) (DriverIdentifiers, bool) {
	if rawID <= 0 || companyID <= 0 {
		return DriverIdentifiers{}, false
	}

	var d Driver
	err := r.db.WithContext(ctx).
		Where("(id = ? OR user_id = ?) AND company_id = ?", rawID, rawID, companyID).
		Limit(1).
		First(&d).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			r.logger.Warn("driver identity resolution degraded to not-found",
				"rawID", rawID, "companyID", companyID, "error", err)
		}
		return DriverIdentifiers{}, false
	}

	return DriverIdentifiers{DriverID: d.ID, UserID: d.UserID}, true
}
