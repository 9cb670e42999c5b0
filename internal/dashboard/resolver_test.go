package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory DataSource backed by plain slices, enough to
// exercise every resolver path without a database.
type fakeSource struct {
	users   []domain.User
	areas   []domain.Area
	leads   []domain.Lead
	ranking []SellerRanking
	team    TeamMetrics

	leadsErr error
	usersErr error
}

func (f *fakeSource) LeadsByCompany(_ context.Context, companyID uuid.UUID, _ DateFilter) ([]domain.Lead, error) {
	if f.leadsErr != nil {
		return nil, f.leadsErr
	}
	var out []domain.Lead
	for _, l := range f.leads {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) LeadsByArea(_ context.Context, areaID uuid.UUID, _ DateFilter) ([]domain.Lead, error) {
	if f.leadsErr != nil {
		return nil, f.leadsErr
	}
	var out []domain.Lead
	for _, l := range f.leads {
		if l.AreaID == areaID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) LeadsByAreas(ctx context.Context, areaIDs []uuid.UUID, filter DateFilter) ([]domain.Lead, error) {
	var out []domain.Lead
	for _, id := range areaIDs {
		leads, err := f.LeadsByArea(ctx, id, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, leads...)
	}
	return out, nil
}

func (f *fakeSource) LeadsBySeller(_ context.Context, sellerID uuid.UUID, _ DateFilter) ([]domain.Lead, error) {
	if f.leadsErr != nil {
		return nil, f.leadsErr
	}
	var out []domain.Lead
	for _, l := range f.leads {
		if l.SellerID == sellerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) UsersByCompany(_ context.Context, companyID uuid.UUID) ([]domain.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	var out []domain.User
	for _, u := range f.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeSource) UsersByArea(ctx context.Context, areaID uuid.UUID) ([]domain.User, error) {
	return f.UsersByAreas(ctx, []uuid.UUID{areaID})
}

func (f *fakeSource) UsersByAreas(_ context.Context, areaIDs []uuid.UUID) ([]domain.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	ids := make(map[uuid.UUID]bool, len(areaIDs))
	for _, id := range areaIDs {
		ids[id] = true
	}
	var out []domain.User
	for _, u := range f.users {
		if u.AreaID != nil && ids[*u.AreaID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeSource) AreasByCompany(_ context.Context, companyID uuid.UUID) ([]domain.Area, error) {
	var out []domain.Area
	for _, a := range f.areas {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSource) Area(_ context.Context, areaID uuid.UUID) (*domain.Area, error) {
	for _, a := range f.areas {
		if a.ID == areaID {
			area := a
			return &area, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) HasLevelInCompany(ctx context.Context, companyID uuid.UUID, level domain.AccessLevel) (bool, error) {
	users, err := f.UsersByCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.AccessLevel == level {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSource) TeamMetrics(_ context.Context, _ []uuid.UUID) (TeamMetrics, error) {
	return f.team, nil
}

func (f *fakeSource) SellerRanking(_ context.Context, sellerIDs []uuid.UUID) ([]SellerRanking, error) {
	ids := make(map[uuid.UUID]bool, len(sellerIDs))
	for _, id := range sellerIDs {
		ids[id] = true
	}
	out := []SellerRanking{}
	for _, r := range f.ranking {
		if ids[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func newUser(name string, level domain.AccessLevel, companyID uuid.UUID, areaID *uuid.UUID) domain.User {
	return domain.User{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		Name:        name,
		AccessLevel: level,
		CompanyID:   &companyID,
		AreaID:      areaID,
	}
}

func soldLeads(companyID, areaID, sellerID uuid.UUID, sold, other int) []domain.Lead {
	leads := make([]domain.Lead, 0, sold+other)
	for i := 0; i < sold; i++ {
		leads = append(leads, domain.Lead{Status: domain.LeadStatusSold, CompanyID: companyID, AreaID: areaID, SellerID: sellerID})
	}
	for i := 0; i < other; i++ {
		leads = append(leads, domain.Lead{Status: domain.LeadStatusLead, CompanyID: companyID, AreaID: areaID, SellerID: sellerID})
	}
	return leads
}

func sessionFor(u domain.User) *domain.SessionUser {
	return &domain.SessionUser{
		ID:          u.ID,
		Name:        u.Name,
		AccessLevel: u.AccessLevel,
		CompanyID:   u.CompanyID,
		AreaID:      u.AreaID,
	}
}

func TestResolve_DirectorSuperintendentCascade(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	director := newUser("Diretora", domain.AccessDirector, companyID, nil)
	superA := newUser("Super A", domain.AccessSuperintendent, companyID, &areaID)
	superB := newUser("Super B", domain.AccessSuperintendent, companyID, &areaID)
	seller := newUser("Vendedor", domain.AccessSeller, companyID, &areaID)

	src := &fakeSource{
		users: []domain.User{director, superA, superB, seller},
		leads: soldLeads(companyID, areaID, seller.ID, 5, 45),
	}

	data, err := Resolve(context.Background(), sessionFor(director), DateFilter{Type: Filter30Days}, src)
	require.NoError(t, err)

	require.Len(t, data.Subordinates, 2)
	for _, row := range data.Subordinates {
		assert.Equal(t, SubordinateSuperintendent, row.Type)
		// Each superintendent row reflects the whole company's funnel.
		assert.Equal(t, 5, row.Metrics.SoldCount)
		assert.Equal(t, 45, row.Metrics.LeadCount)
	}
	assert.Equal(t, 10, data.TotalMetrics.SoldCount)
	assert.Equal(t, data.TotalMetrics, data.UserMetrics)
}

func TestResolve_DirectorFallsBackToManagers(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	director := newUser("Diretor", domain.AccessDirector, companyID, nil)
	manager := newUser("Gerente", domain.AccessManager, companyID, &areaID)
	seller := newUser("Vendedor", domain.AccessSeller, companyID, &areaID)

	src := &fakeSource{
		users: []domain.User{director, manager, seller},
		areas: []domain.Area{{BaseModel: domain.BaseModel{ID: areaID}, Name: "Zona Sul", CompanyID: companyID}},
		leads: soldLeads(companyID, areaID, seller.ID, 2, 3),
	}

	data, err := Resolve(context.Background(), sessionFor(director), DateFilter{Type: FilterToday}, src)
	require.NoError(t, err)

	require.Len(t, data.Subordinates, 1)
	row := data.Subordinates[0]
	assert.Equal(t, SubordinateManager, row.Type)
	assert.Equal(t, "Gerente (Zona Sul)", row.Name)
	assert.Equal(t, 2, row.Metrics.SoldCount)
}

func TestResolve_DirectorFallsBackToAreas(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	director := newUser("Diretor", domain.AccessDirector, companyID, nil)

	src := &fakeSource{
		users: []domain.User{director},
		areas: []domain.Area{{BaseModel: domain.BaseModel{ID: areaID}, Name: "Centro", CompanyID: companyID}},
		leads: soldLeads(companyID, areaID, uuid.New(), 1, 0),
	}

	data, err := Resolve(context.Background(), sessionFor(director), DateFilter{Type: FilterToday}, src)
	require.NoError(t, err)

	require.Len(t, data.Subordinates, 1)
	assert.Equal(t, SubordinateArea, data.Subordinates[0].Type)
	assert.Equal(t, "Centro", data.Subordinates[0].Name)
}

func TestResolve_DirectorWithoutCompanyIsEmpty(t *testing.T) {
	director := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessDirector}

	data, err := Resolve(context.Background(), director, DateFilter{Type: FilterToday}, &fakeSource{})
	require.NoError(t, err)

	assert.Empty(t, data.Subordinates)
	assert.Equal(t, LeadMetrics{}, data.TotalMetrics)
}

func TestResolve_ManagerSortsByTotalActivity(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	manager := newUser("Gerente", domain.AccessManager, companyID, &areaID)
	low := newUser("Baixo", domain.AccessSeller, companyID, &areaID)
	high := newUser("Alto", domain.AccessSeller, companyID, &areaID)
	mid := newUser("Médio", domain.AccessSeller, companyID, &areaID)

	leads := soldLeads(companyID, areaID, high.ID, 1, 5)
	leads = append(leads, soldLeads(companyID, areaID, mid.ID, 0, 4)...)
	leads = append(leads, soldLeads(companyID, areaID, low.ID, 0, 2)...)

	src := &fakeSource{
		users: []domain.User{manager, low, high, mid},
		leads: leads,
		ranking: []SellerRanking{
			{ID: high.ID, Name: "Alto", AvgResponseTime: 90},
		},
	}

	data, err := Resolve(context.Background(), sessionFor(manager), DateFilter{Type: Filter7Days}, src)
	require.NoError(t, err)

	require.Len(t, data.Subordinates, 3)
	assert.Equal(t, "Alto", data.Subordinates[0].Name)
	assert.Equal(t, "Médio", data.Subordinates[1].Name)
	assert.Equal(t, "Baixo", data.Subordinates[2].Name)

	require.NotNil(t, data.Subordinates[0].AvgResponseTime)
	assert.Equal(t, 90.0, *data.Subordinates[0].AvgResponseTime)
	assert.Nil(t, data.Subordinates[1].AvgResponseTime)

	assert.Equal(t, 12, data.TotalMetrics.LeadCount+data.TotalMetrics.SoldCount)
}

func TestResolve_SuperintendentWithoutAreasIsEmpty(t *testing.T) {
	companyID := uuid.New()
	super := &domain.SessionUser{
		ID:          uuid.New(),
		AccessLevel: domain.AccessSuperintendent,
		CompanyID:   &companyID,
	}

	data, err := Resolve(context.Background(), super, DateFilter{Type: Filter7Days}, &fakeSource{})
	require.NoError(t, err)

	assert.Empty(t, data.Subordinates)
	assert.Empty(t, data.SellerRanking)
	assert.Equal(t, LeadMetrics{}, data.TotalMetrics)
	assert.Equal(t, "Últimos 7 dias", data.Period.Label)
}

func TestResolve_SuperintendentManagedAreasWithoutManagers(t *testing.T) {
	companyID := uuid.New()
	areaA := uuid.New()
	areaB := uuid.New()

	sellerA := newUser("Vendedor A", domain.AccessSeller, companyID, &areaA)
	sellerB := newUser("Vendedor B", domain.AccessSeller, companyID, &areaB)

	super := &domain.SessionUser{
		ID:             uuid.New(),
		Name:           "Super",
		AccessLevel:    domain.AccessSuperintendent,
		CompanyID:      &companyID,
		ManagedAreaIDs: []uuid.UUID{areaA, areaB, uuid.New()}, // last one is stale
	}

	leads := soldLeads(companyID, areaA, sellerA.ID, 3, 0)
	leads = append(leads, soldLeads(companyID, areaB, sellerB.ID, 1, 2)...)

	src := &fakeSource{
		users: []domain.User{sellerA, sellerB},
		areas: []domain.Area{
			{BaseModel: domain.BaseModel{ID: areaA}, Name: "Norte", CompanyID: companyID},
			{BaseModel: domain.BaseModel{ID: areaB}, Name: "Sul", CompanyID: companyID},
		},
		leads: leads,
	}

	data, err := Resolve(context.Background(), super, DateFilter{Type: Filter30Days}, src)
	require.NoError(t, err)

	// The stale managed-area id yields no row.
	require.Len(t, data.Subordinates, 2)
	assert.Equal(t, "Norte", data.Subordinates[0].Name) // 3 sold sorts first
	assert.Equal(t, SubordinateArea, data.Subordinates[0].Type)
	assert.Equal(t, 4, data.TotalMetrics.SoldCount)
}

func TestResolve_SuperintendentPrefersManagerRows(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	manager := newUser("Gerente", domain.AccessManager, companyID, &areaID)
	seller := newUser("Vendedor", domain.AccessSeller, companyID, &areaID)

	super := &domain.SessionUser{
		ID:             uuid.New(),
		AccessLevel:    domain.AccessSuperintendent,
		CompanyID:      &companyID,
		ManagedAreaIDs: []uuid.UUID{areaID},
	}

	src := &fakeSource{
		users: []domain.User{manager, seller},
		areas: []domain.Area{{BaseModel: domain.BaseModel{ID: areaID}, Name: "Leste", CompanyID: companyID}},
		leads: soldLeads(companyID, areaID, seller.ID, 2, 1),
	}

	data, err := Resolve(context.Background(), super, DateFilter{Type: FilterToday}, src)
	require.NoError(t, err)

	require.Len(t, data.Subordinates, 1)
	assert.Equal(t, SubordinateManager, data.Subordinates[0].Type)
	assert.Equal(t, "Gerente (Leste)", data.Subordinates[0].Name)
}

func TestResolve_SellerSeesOnlyOwnLeads(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	seller := newUser("Vendedor", domain.AccessSeller, companyID, &areaID)
	other := newUser("Outro", domain.AccessSeller, companyID, &areaID)

	leads := soldLeads(companyID, areaID, seller.ID, 1, 2)
	leads = append(leads, soldLeads(companyID, areaID, other.ID, 5, 5)...)

	src := &fakeSource{
		users:   []domain.User{seller, other},
		leads:   leads,
		ranking: []SellerRanking{{ID: seller.ID, Name: "Vendedor"}},
	}

	data, err := Resolve(context.Background(), sessionFor(seller), DateFilter{Type: Filter30Days}, src)
	require.NoError(t, err)

	assert.Equal(t, 1, data.UserMetrics.SoldCount)
	assert.Equal(t, 2, data.UserMetrics.LeadCount)
	assert.Equal(t, data.UserMetrics, data.TotalMetrics)
	assert.Empty(t, data.Subordinates)
	require.Len(t, data.SellerRanking, 1)
	assert.Equal(t, seller.ID, data.SellerRanking[0].ID)
}

func TestResolve_SellerWithNoLeads(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()
	seller := newUser("Novato", domain.AccessSeller, companyID, &areaID)

	data, err := Resolve(context.Background(), sessionFor(seller), DateFilter{Type: FilterToday}, &fakeSource{})
	require.NoError(t, err)

	assert.Equal(t, LeadMetrics{}, data.UserMetrics)
	assert.Equal(t, 0.0, ConversionRate(data.UserMetrics.SoldCount, 0))
}

func TestResolve_UnknownAccessLevelIsEmpty(t *testing.T) {
	user := &domain.SessionUser{ID: uuid.New(), AccessLevel: domain.AccessLevel("INTERN")}

	data, err := Resolve(context.Background(), user, DateFilter{Type: FilterToday}, &fakeSource{})
	require.NoError(t, err)

	assert.Empty(t, data.Subordinates)
	assert.Equal(t, LeadMetrics{}, data.TotalMetrics)
}

func TestResolve_PropagatesSourceErrors(t *testing.T) {
	companyID := uuid.New()
	areaID := uuid.New()

	director := newUser("Diretor", domain.AccessDirector, companyID, nil)
	super := newUser("Super", domain.AccessSuperintendent, companyID, &areaID)
	boom := errors.New("connection reset")

	src := &fakeSource{
		users:    []domain.User{director, super},
		leadsErr: boom,
	}

	_, err := Resolve(context.Background(), sessionFor(director), DateFilter{Type: FilterToday}, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestResolve_TotalEqualsSumOfRows(t *testing.T) {
	companyID := uuid.New()
	areaA := uuid.New()

	manager := newUser("Gerente", domain.AccessManager, companyID, &areaA)
	s1 := newUser("Um", domain.AccessSeller, companyID, &areaA)
	s2 := newUser("Dois", domain.AccessSeller, companyID, &areaA)

	leads := soldLeads(companyID, areaA, s1.ID, 2, 7)
	leads = append(leads, soldLeads(companyID, areaA, s2.ID, 3, 1)...)

	src := &fakeSource{
		users: []domain.User{manager, s1, s2},
		leads: leads,
	}

	data, err := Resolve(context.Background(), sessionFor(manager), DateFilter{Type: Filter30Days}, src)
	require.NoError(t, err)

	assert.Equal(t, SumMetrics(metricsOf(data.Subordinates)), data.TotalMetrics)
	assert.Equal(t, 5, data.TotalMetrics.SoldCount)
	assert.Equal(t, 8, data.TotalMetrics.LeadCount)
}
