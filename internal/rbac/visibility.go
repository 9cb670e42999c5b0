// Package rbac implements the access-level hierarchy, the visibility matrix
// and the data-scope builder. Everything here is a pure function of the
// session user snapshot; no I/O, no wall-clock dependence.
package rbac

import "github.com/imovelhub/crm-api/internal/domain"

// visibilityMatrix is declared policy, not computed: one row per access level.
// The data-scope builder is the only consumer; resolvers never re-implement
// visibility logic.
var visibilityMatrix = map[domain.AccessLevel]domain.Visibility{
	domain.AccessSuperAdmin: {
		CanSeeOwnData:      true,
		CanSeeTeamData:     true,
		CanSeeManagedAreas: true,
		CanSeeAllCompany:   true,
		CanSeeAllCompanies: true,
	},
	domain.AccessDirector: {
		CanSeeOwnData:      true,
		CanSeeTeamData:     true,
		CanSeeManagedAreas: true,
		CanSeeAllCompany:   true,
		CanSeeAllCompanies: false,
	},
	domain.AccessSuperintendent: {
		CanSeeOwnData:      true,
		CanSeeTeamData:     true,
		CanSeeManagedAreas: true,
		CanSeeAllCompany:   false,
		CanSeeAllCompanies: false,
	},
	domain.AccessManager: {
		CanSeeOwnData:      true,
		CanSeeTeamData:     true,
		CanSeeManagedAreas: true,
		CanSeeAllCompany:   false,
		CanSeeAllCompanies: false,
	},
	domain.AccessSeller: {
		CanSeeOwnData:      true,
		CanSeeTeamData:     false,
		CanSeeManagedAreas: false,
		CanSeeAllCompany:   false,
		CanSeeAllCompanies: false,
	},
}

// VisibilityFor returns the visibility flags for an access level. Unknown
// levels get the zero value, which can see nothing.
func VisibilityFor(level domain.AccessLevel) domain.Visibility {
	return visibilityMatrix[level]
}
