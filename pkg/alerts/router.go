package alerts

import (
	"github.com/go-chi/chi/v5"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// Router creates a chi.Router for the alerts API. Drivers have no alert
// surface; listing is restricted to back-office and platform roles.
func Router(store *Store) chi.Router {
	r := chi.NewRouter()

	r.With(authz.RequireRoles(
		authz.RoleAdmin, authz.RoleSupervisor, authz.RoleMaster, authz.RoleOperator,
	)).Get("/", ListAlertsHandler(store))

	return r
}
