package rbac

import (
	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// HasAccessLevelOrHigher reports whether level is ranked at or above required.
func HasAccessLevelOrHigher(level, required domain.AccessLevel) bool {
	return level.Rank() >= required.Rank()
}

// IsSuperAdmin reports whether the level is the global super admin role.
func IsSuperAdmin(level domain.AccessLevel) bool {
	return level == domain.AccessSuperAdmin
}

// IsDirectorOrHigher reports whether the level can see a whole company.
func IsDirectorOrHigher(level domain.AccessLevel) bool {
	return HasAccessLevelOrHigher(level, domain.AccessDirector)
}

// IsManagerOrHigher reports whether the level administers other users.
func IsManagerOrHigher(level domain.AccessLevel) bool {
	return HasAccessLevelOrHigher(level, domain.AccessManager)
}

// CanViewUserData checks whether the viewer may read data belonging to the
// target user, walking the visibility flags from widest to narrowest.
func CanViewUserData(viewer *domain.SessionUser, targetID uuid.UUID, targetCompanyID, targetAreaID *uuid.UUID) bool {
	visibility := VisibilityFor(viewer.AccessLevel)

	if visibility.CanSeeAllCompanies {
		return true
	}

	if viewer.ID == targetID {
		return visibility.CanSeeOwnData
	}

	if targetCompanyID == nil || viewer.CompanyID == nil || *viewer.CompanyID != *targetCompanyID {
		return false
	}

	if visibility.CanSeeAllCompany {
		return true
	}

	if targetAreaID != nil {
		if visibility.CanSeeManagedAreas {
			for _, id := range viewer.ManagedAreaIDs {
				if id == *targetAreaID {
					return true
				}
			}
		}
		if visibility.CanSeeTeamData && viewer.AreaID != nil && *viewer.AreaID == *targetAreaID {
			return true
		}
	}

	return false
}

// CanManageUser reports whether a user may administer accounts at the target
// level. Super admins manage everyone; everyone else only levels strictly
// below their own.
func CanManageUser(manager *domain.SessionUser, targetLevel domain.AccessLevel) bool {
	if IsSuperAdmin(manager.AccessLevel) {
		return true
	}
	return manager.AccessLevel.Rank() > targetLevel.Rank()
}
