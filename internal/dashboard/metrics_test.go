package dashboard

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func leadsWithStatuses(statuses ...domain.LeadStatus) []domain.Lead {
	leads := make([]domain.Lead, len(statuses))
	for i, s := range statuses {
		leads[i] = domain.Lead{Status: s}
	}
	return leads
}

func TestCalculateMetrics(t *testing.T) {
	leads := leadsWithStatuses(
		domain.LeadStatusLead, domain.LeadStatusLead,
		domain.LeadStatusQualified,
		domain.LeadStatusVisit,
		domain.LeadStatusCallback, domain.LeadStatusCallback, domain.LeadStatusCallback,
		domain.LeadStatusProposal,
		domain.LeadStatusSold,
		domain.LeadStatusLost,
	)

	m := CalculateMetrics(leads)

	assert.Equal(t, 2, m.LeadCount)
	assert.Equal(t, 1, m.QualifiedCount)
	assert.Equal(t, 1, m.VisitCount)
	assert.Equal(t, 3, m.CallbackCount)
	assert.Equal(t, 1, m.ProposalCount)
	assert.Equal(t, 1, m.SoldCount)
}

func TestCalculateMetrics_UnknownStatusIgnored(t *testing.T) {
	leads := []domain.Lead{
		{Status: domain.LeadStatus("NEGOTIATING")},
		{Status: domain.LeadStatusSold},
		{Status: domain.LeadStatus("")},
	}

	m := CalculateMetrics(leads)

	assert.Equal(t, 1, m.SoldCount)
	assert.Equal(t, LeadMetrics{SoldCount: 1}, m)
}

func TestCalculateMetrics_Empty(t *testing.T) {
	assert.Equal(t, LeadMetrics{}, CalculateMetrics(nil))
}

func TestSumMetrics_PermutationInvariant(t *testing.T) {
	list := []LeadMetrics{
		{LeadCount: 1, SoldCount: 2},
		{QualifiedCount: 3, VisitCount: 1},
		{CallbackCount: 5, ProposalCount: 2, SoldCount: 1},
		{LeadCount: 4},
	}
	expected := SumMetrics(list)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]LeadMetrics, len(list))
		copy(shuffled, list)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, SumMetrics(shuffled))
	}
}

func TestSumMetrics_Identity(t *testing.T) {
	m := LeadMetrics{LeadCount: 2, SoldCount: 1}

	assert.Equal(t, LeadMetrics{}, SumMetrics(nil))
	assert.Equal(t, m, SumMetrics([]LeadMetrics{m, {}}))
	assert.Equal(t, m, SumMetrics([]LeadMetrics{{}, m}))
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name     string
		sold     int
		total    int
		expected float64
	}{
		{"zero leads", 0, 0, 0},
		{"no sales", 0, 10, 0},
		{"half", 5, 10, 50},
		{"one third rounds to one decimal", 1, 3, 33.3},
		{"two thirds", 2, 3, 66.7},
		{"all sold", 4, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConversionRate(tt.sold, tt.total))
		})
	}
}

func TestRankSellers_OrdersByCompositeScore(t *testing.T) {
	fast := SellerRanking{ID: uuid.New(), Name: "Fast", PlaybookScore: 8, AvgResponseTime: 120, ConversionRate: 20}
	slow := SellerRanking{ID: uuid.New(), Name: "Slow", PlaybookScore: 5, AvgResponseTime: 5400, ConversionRate: 5}

	ranked := RankSellers([]SellerRanking{slow, fast})

	assert.Equal(t, "Fast", ranked[0].Name)
	assert.Equal(t, "Slow", ranked[1].Name)
}

func TestRankSellers_StableOnTies(t *testing.T) {
	first := SellerRanking{ID: uuid.New(), Name: "First", PlaybookScore: 7, AvgResponseTime: 300, ConversionRate: 10}
	second := first
	second.ID = uuid.New()
	second.Name = "Second"

	ranked := RankSellers([]SellerRanking{first, second})

	assert.Equal(t, "First", ranked[0].Name)
	assert.Equal(t, "Second", ranked[1].Name)
}

func TestRankSellers_DoesNotMutateInput(t *testing.T) {
	input := []SellerRanking{
		{Name: "Low", PlaybookScore: 1},
		{Name: "High", PlaybookScore: 9},
	}

	RankSellers(input)

	assert.Equal(t, "Low", input[0].Name)
}

func TestMeanResponseTime(t *testing.T) {
	assert.Nil(t, meanResponseTime(nil))

	mean := meanResponseTime([]SellerRanking{
		{AvgResponseTime: 100},
		{AvgResponseTime: 300},
	})
	assert.NotNil(t, mean)
	assert.Equal(t, 200.0, *mean)
}

func TestTotalActivity(t *testing.T) {
	m := LeadMetrics{LeadCount: 2, QualifiedCount: 1, VisitCount: 9, CallbackCount: 9, ProposalCount: 3, SoldCount: 4}
	assert.Equal(t, 10, m.TotalActivity())
}
