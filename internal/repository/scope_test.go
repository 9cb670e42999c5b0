package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scopedRow mirrors the columns the scope builder filters on.
type scopedRow struct {
	ID        string `gorm:"primaryKey"`
	CompanyID string
	AreaID    string
	SellerID  string
}

func setupScopeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&scopedRow{}))
	return db
}

func insertRow(t *testing.T, db *gorm.DB, company, area, seller uuid.UUID) string {
	t.Helper()
	row := scopedRow{
		ID:        uuid.New().String(),
		CompanyID: company.String(),
		AreaID:    area.String(),
		SellerID:  seller.String(),
	}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

func queryScoped(t *testing.T, db *gorm.DB, scope domain.DataScope) []string {
	t.Helper()
	var rows []scopedRow
	require.NoError(t, ApplyLeadScope(db.Model(&scopedRow{}), scope).Find(&rows).Error)
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestApplyLeadScope_UnconstrainedReturnsEverything(t *testing.T) {
	db := setupScopeTestDB(t)
	a := insertRow(t, db, uuid.New(), uuid.New(), uuid.New())
	b := insertRow(t, db, uuid.New(), uuid.New(), uuid.New())

	got := queryScoped(t, db, domain.DataScope{})

	assert.ElementsMatch(t, []string{a, b}, got)
}

func TestApplyLeadScope_CompanyDimension(t *testing.T) {
	db := setupScopeTestDB(t)
	company := uuid.New()
	mine := insertRow(t, db, company, uuid.New(), uuid.New())
	insertRow(t, db, uuid.New(), uuid.New(), uuid.New())

	got := queryScoped(t, db, domain.DataScope{
		CompanyIDs: domain.IDSet{company},
	})

	assert.Equal(t, []string{mine}, got)
}

func TestApplyLeadScope_AreaUnion(t *testing.T) {
	db := setupScopeTestDB(t)
	company := uuid.New()
	areaA := uuid.New()
	areaB := uuid.New()
	inA := insertRow(t, db, company, areaA, uuid.New())
	inB := insertRow(t, db, company, areaB, uuid.New())
	insertRow(t, db, company, uuid.New(), uuid.New())

	got := queryScoped(t, db, domain.DataScope{
		CompanyIDs: domain.IDSet{company},
		AreaIDs:    domain.IDSet{areaA, areaB},
	})

	assert.ElementsMatch(t, []string{inA, inB}, got)
}

// A self-only scope carries empty areas plus the user id. The empty area set
// must be skipped, not treated as "match nothing", or sellers would never see
// their own leads.
func TestApplyLeadScope_SelfOnlySkipsEmptyAreaSet(t *testing.T) {
	db := setupScopeTestDB(t)
	company := uuid.New()
	seller := uuid.New()
	own := insertRow(t, db, company, uuid.New(), seller)
	insertRow(t, db, company, uuid.New(), uuid.New())

	got := queryScoped(t, db, domain.DataScope{
		CompanyIDs: domain.IDSet{company},
		AreaIDs:    domain.IDSet{},
		UserIDs:    domain.IDSet{seller},
	})

	assert.Equal(t, []string{own}, got)
}

func TestApplyDataScope_UserDimensionUsesIDColumn(t *testing.T) {
	db := setupScopeTestDB(t)
	company := uuid.New()
	target := insertRow(t, db, company, uuid.New(), uuid.New())
	insertRow(t, db, company, uuid.New(), uuid.New())

	targetID, err := uuid.Parse(target)
	require.NoError(t, err)

	var rows []scopedRow
	scope := domain.DataScope{UserIDs: domain.IDSet{targetID}}
	require.NoError(t, ApplyDataScope(db.Model(&scopedRow{}), scope).Find(&rows).Error)

	require.Len(t, rows, 1)
	assert.Equal(t, target, rows[0].ID)
}
