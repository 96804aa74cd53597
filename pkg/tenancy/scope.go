package tenancy

import "gorm.io/gorm"

// Apply narrows a query to the scope's company. Bypass scopes (MASTER)
// leave the query untouched; every other caller gets company_id filtering
// with no opt-out.
func Apply(q *gorm.DB, scope CompanyScope) *gorm.DB {
	if scope.Bypass {
		return q
	}
	return q.Where("company_id = ?", scope.CompanyID)
}
