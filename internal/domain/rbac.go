package domain

import "github.com/google/uuid"

// AccessLevel represents a user's position in the organizational hierarchy.
// Comparisons always go through the numeric rank table, never through
// declaration order or string comparison.
type AccessLevel string

const (
	AccessSuperAdmin     AccessLevel = "SUPER_ADMIN"
	AccessDirector       AccessLevel = "DIRECTOR"
	AccessSuperintendent AccessLevel = "SUPERINTENDENT"
	AccessManager        AccessLevel = "MANAGER"
	AccessSeller         AccessLevel = "SELLER"
)

// accessLevelRank is the single source of truth for hierarchy comparisons.
var accessLevelRank = map[AccessLevel]int{
	AccessSuperAdmin:     100,
	AccessDirector:       80,
	AccessSuperintendent: 60,
	AccessManager:        40,
	AccessSeller:         20,
}

// AccessLevelLabels provides the display names used by the dashboard UI
var AccessLevelLabels = map[AccessLevel]string{
	AccessSuperAdmin:     "Super Admin",
	AccessDirector:       "Diretor",
	AccessSuperintendent: "Superintendente",
	AccessManager:        "Gerente",
	AccessSeller:         "Vendedor",
}

// Rank returns the numeric rank of the access level, 0 for unknown levels.
func (a AccessLevel) Rank() int {
	return accessLevelRank[a]
}

// IsValid checks if the AccessLevel is a valid enum value
func (a AccessLevel) IsValid() bool {
	_, ok := accessLevelRank[a]
	return ok
}

// SessionUser is the authenticated user snapshot the resolution engine works
// from. It is built by the auth layer from the JWT claims plus a user lookup
// and never mutated afterwards.
type SessionUser struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	AccessLevel    AccessLevel `json:"accessLevel"`
	CompanyID      *uuid.UUID  `json:"companyId"`
	CompanyName    string      `json:"companyName,omitempty"`
	AreaID         *uuid.UUID  `json:"areaId"`
	ManagedAreaIDs []uuid.UUID `json:"managedAreaIds"`
}

// SessionFromUser builds a session snapshot from a stored user record.
func SessionFromUser(u *User, companyName string) *SessionUser {
	return &SessionUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		AccessLevel:    u.AccessLevel,
		CompanyID:      u.CompanyID,
		CompanyName:    companyName,
		AreaID:         u.AreaID,
		ManagedAreaIDs: u.ManagedAreaUUIDs(),
	}
}

// Visibility holds the per-level visibility flags consulted by the data-scope
// builder. The matrix in the rbac package is the only place these are set.
type Visibility struct {
	CanSeeOwnData      bool
	CanSeeTeamData     bool
	CanSeeManagedAreas bool
	CanSeeAllCompany   bool
	CanSeeAllCompanies bool
}

// IDSet is a set of entity ids in a data scope. A nil IDSet means "all":
// the dimension is unconstrained. An empty non-nil set matches nothing.
type IDSet []uuid.UUID

// All reports whether the dimension is unconstrained.
func (s IDSet) All() bool { return s == nil }

// Contains reports whether id is in the set. An unconstrained set contains
// every id.
func (s IDSet) Contains(id uuid.UUID) bool {
	if s.All() {
		return true
	}
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Strings returns the set as uuid strings, for use in SQL IN clauses.
func (s IDSet) Strings() []string {
	out := make([]string, len(s))
	for i, id := range s {
		out[i] = id.String()
	}
	return out
}

// DataScope is the concrete set of companies, areas and users a request may
// read. It is a conjunctive filter: every constrained dimension must match.
// A scope is computed fresh per request and never mutated after construction.
type DataScope struct {
	CompanyIDs IDSet
	AreaIDs    IDSet
	UserIDs    IDSet
}
