package repository

import (
	"github.com/imovelhub/crm-api/internal/domain"
	"gorm.io/gorm"
)

// ApplyDataScope narrows a query to the given data scope. Each constrained
// dimension becomes a WHERE clause; unconstrained dimensions add nothing, so
// super admin queries run unchanged.
//
// An empty non-nil set is skipped rather than matching nothing: the scope
// builder only emits an empty dimension together with a narrower constraint
// (a self-only scope carries empty areas plus the user's own id), and that
// narrower clause is what enforces the restriction.
//
// Every list query over scoped entities must pass through here; handlers and
// services never build company or area filters by hand.
func ApplyDataScope(query *gorm.DB, scope domain.DataScope) *gorm.DB {
	return applyDataScopeColumns(query, scope, "company_id", "area_id", "id")
}

// ApplyLeadScope is ApplyDataScope for the leads table, where the user
// dimension maps to the owning seller.
func ApplyLeadScope(query *gorm.DB, scope domain.DataScope) *gorm.DB {
	return applyDataScopeColumns(query, scope, "company_id", "area_id", "seller_id")
}

func applyDataScopeColumns(query *gorm.DB, scope domain.DataScope, companyCol, areaCol, userCol string) *gorm.DB {
	if !scope.CompanyIDs.All() && len(scope.CompanyIDs) > 0 {
		query = query.Where(companyCol+" IN ?", scope.CompanyIDs.Strings())
	}
	if !scope.AreaIDs.All() && len(scope.AreaIDs) > 0 {
		query = query.Where(areaCol+" IN ?", scope.AreaIDs.Strings())
	}
	if !scope.UserIDs.All() && len(scope.UserIDs) > 0 {
		query = query.Where(userCol+" IN ?", scope.UserIDs.Strings())
	}
	return query
}
