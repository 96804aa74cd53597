package deliveries

import (
	"context"
	"time"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
	"gorm.io/gorm"
)

// effectiveDateExpr is the date every "today" and range filter runs
// against: the expected delivery date when present, else the creation
// date. Never created_at alone.
const effectiveDateExpr = "DATE(COALESCE(delivery_date_expected, created_at))"

// ListFilter holds the optional query filters accepted by the listing
// endpoint. Zero values mean "not supplied".
type ListFilter struct {
	Status    string
	ClientID  int64
	DriverID  int64
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// Visibility builds the admissible query scope for delivery listings.
// It owns the tenant-isolation invariant: every query it produces is
// narrowed to the actor's company with no cross-tenant path.
type Visibility struct {
	resolver *Resolver
}

// NewVisibility creates a Visibility backed by the given identity resolver.
func NewVisibility(resolver *Resolver) *Visibility {
	return &Visibility{resolver: resolver}
}

// Apply narrows q to the rows the actor may see, honoring the explicit
// filters and the role-specific default date window. Result ordering is
// ascending by created_at so list consumers see a stable oldest-first order.
func (v *Visibility) Apply(ctx context.Context, q *gorm.DB, actor authz.Actor, f ListFilter) *gorm.DB {
	q = q.Where("company_id = ?", actor.CompanyID)

	if actor.IsDriver() {
		q = q.Where("driver_id IN ?", v.driverIdentitySet(ctx, actor))
	} else if f.DriverID > 0 {
		// Manually-entered ids must keep working even when they don't
		// resolve against the registry, hence the literal fallback.
		if ids, ok := v.resolver.Resolve(ctx, f.DriverID, actor.CompanyID); ok {
			q = q.Where("driver_id IN ?", uniqueIDs(ids.DriverID, ids.UserID))
		} else {
			q = q.Where("driver_id = ?", f.DriverID)
		}
	}

	if f.Status != "" {
		q = q.Where("UPPER(status) = ?", NormalizeStatus(f.Status))
	}
	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}

	switch {
	case f.StartDate != "" || f.EndDate != "":
		// Explicit dates always win over the default window.
		if f.StartDate != "" {
			q = q.Where(effectiveDateExpr+" >= ?", f.StartDate)
		}
		if f.EndDate != "" {
			q = q.Where(effectiveDateExpr+" <= ?", f.EndDate)
		}
	case f.Status == "":
		today := time.Now().Format("2006-01-02")
		if actor.IsDriver() {
			// Drivers keep seeing unresolved old deliveries in addition
			// to today's work.
			q = q.Where(effectiveDateExpr+" = ? OR UPPER(status) IN ?", today, openStatuses)
		} else {
			// Operational dashboards default to today only.
			q = q.Where(effectiveDateExpr+" = ?", today)
		}
	}

	return q.Order("created_at ASC")
}

// driverIdentitySet returns the driver_id values that may tag a delivery
// belonging to this driver actor. Historical rows stored either a drivers.id
// or a users.id, so the set is the union of both spaces. When nothing
// resolves the set narrows to the actor's own user id (fail-closed).
func (v *Visibility) driverIdentitySet(ctx context.Context, actor authz.Actor) []int64 {
	ids, ok := v.resolver.Resolve(ctx, actor.UserID, actor.CompanyID)
	if !ok {
		return []int64{actor.UserID}
	}
	return uniqueIDs(actor.UserID, ids.DriverID, ids.UserID)
}

// uniqueIDs deduplicates positive ids preserving order.
func uniqueIDs(ids ...int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
