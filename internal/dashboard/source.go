package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// DataSource is the single interface the resolution engine consumes. It is
// injected into Resolve on every call; the engine holds no global data source.
//
// Implementations must return consistent snapshots per call: a failed or
// timed-out query fails the whole resolution rather than omitting rows, since
// summed totals must reflect either all sub-scopes or none.
type DataSource interface {
	LeadsByCompany(ctx context.Context, companyID uuid.UUID, filter DateFilter) ([]domain.Lead, error)
	LeadsByArea(ctx context.Context, areaID uuid.UUID, filter DateFilter) ([]domain.Lead, error)
	LeadsByAreas(ctx context.Context, areaIDs []uuid.UUID, filter DateFilter) ([]domain.Lead, error)
	LeadsBySeller(ctx context.Context, sellerID uuid.UUID, filter DateFilter) ([]domain.Lead, error)

	UsersByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.User, error)
	UsersByArea(ctx context.Context, areaID uuid.UUID) ([]domain.User, error)
	UsersByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]domain.User, error)

	AreasByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Area, error)
	// Area returns nil without error when the area does not exist.
	Area(ctx context.Context, areaID uuid.UUID) (*domain.Area, error)

	HasLevelInCompany(ctx context.Context, companyID uuid.UUID, level domain.AccessLevel) (bool, error)

	TeamMetrics(ctx context.Context, sellerIDs []uuid.UUID) (TeamMetrics, error)
	SellerRanking(ctx context.Context, sellerIDs []uuid.UUID) ([]SellerRanking, error)
}
