package deliveries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// ReceiptChecker is the narrow contract the guard needs from the receipt
// subsystem: whether a delivery still has an attached receipt.
type ReceiptChecker interface {
	HasForDelivery(ctx context.Context, deliveryID int64) (bool, error)
}

// Guard decides whether an actor may mutate or delete a specific delivery.
// Role checks and identity-set intersection happen here, per record, after
// the visibility filter has already scoped the fetch.
type Guard struct {
	resolver *Resolver
	receipts ReceiptChecker
	logger   *slog.Logger
}

// NewGuard creates a Guard.
func NewGuard(resolver *Resolver, receipts ReceiptChecker, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{resolver: resolver, receipts: receipts, logger: logger}
}

// CanDelete checks the deletion preconditions for a delivery. It returns a
// *RuleError describing the specific denial, a wrapped store error when the
// receipt check itself fails, or nil when deletion may proceed.
//
// Completed deliveries are immutable by deletion regardless of role, and a
// delivery with an attached receipt requires the receipt to be removed
// first. These two rules bind every actor; only the ownership intersection
// is bypassed for back-office and master roles.
func (g *Guard) CanDelete(ctx context.Context, d *Delivery, actor authz.Actor) error {
	if IsCompleted(d.Status) {
		return preconditionFailed("delivery %d is %s and cannot be removed", d.ID, d.Status)
	}

	attached, err := g.receipts.HasForDelivery(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("check receipt for delivery %d: %w", d.ID, err)
	}
	if attached {
		return preconditionFailed("delivery %d has an attached receipt; remove the receipt first", d.ID)
	}

	return g.checkOwnership(ctx, d, actor, "remove")
}

// CanMutateStatus checks whether the actor may move the delivery to
// newStatus. Transitions out of a completed status are denied for everyone.
func (g *Guard) CanMutateStatus(ctx context.Context, d *Delivery, actor authz.Actor, newStatus string) error {
	if !IsKnownStatus(newStatus) {
		return preconditionFailed("unknown delivery status %q", newStatus)
	}
	if IsCompleted(d.Status) && NormalizeStatus(newStatus) != NormalizeStatus(d.Status) {
		return preconditionFailed("delivery %d is %s and cannot change status", d.ID, d.Status)
	}
	return g.checkOwnership(ctx, d, actor, "update")
}

// checkOwnership enforces the role policy: back-office and master roles
// bypass the identity intersection, drivers must own the record, every
// other role is denied outright.
func (g *Guard) checkOwnership(ctx context.Context, d *Delivery, actor authz.Actor, verb string) error {
	if actor.IsBackOffice() || actor.IsMaster() {
		return nil
	}
	if !actor.IsDriver() {
		return forbidden("role %s may not %s deliveries", actor.Role, verb)
	}

	ids := []int64{actor.UserID}
	if resolved, ok := g.resolver.Resolve(ctx, actor.UserID, actor.CompanyID); ok {
		ids = uniqueIDs(actor.UserID, resolved.DriverID, resolved.UserID)
	}

	for _, id := range ids {
		if d.DriverID != nil && *d.DriverID == id {
			return nil
		}
		if d.CreatedByUserID == id {
			return nil
		}
	}

	g.logger.Info("delivery ownership denied",
		"deliveryID", d.ID, "actorID", actor.UserID, "verb", verb)
	return forbidden("delivery %d does not belong to this driver", d.ID)
}
