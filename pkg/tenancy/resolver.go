package tenancy

import (
	"fmt"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// ResolveScope derives the tenant boundary from an authenticated actor.
// MASTER actors get a bypass scope; every other role must carry a company id.
func ResolveScope(actor authz.Actor) (CompanyScope, error) {
	if actor.IsMaster() {
		return CompanyScope{CompanyID: actor.CompanyID, Bypass: true}, nil
	}
	if actor.CompanyID <= 0 {
		return CompanyScope{}, fmt.Errorf("actor %d has no company scope", actor.UserID)
	}
	return CompanyScope{CompanyID: actor.CompanyID}, nil
}
