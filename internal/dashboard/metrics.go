package dashboard

import (
	"math"
	"sort"

	"github.com/imovelhub/crm-api/internal/domain"
)

// CalculateMetrics buckets a set of leads into funnel-stage counts in a single
// pass. Unknown statuses (and LOST, which has no counter) are simply not
// counted; they never cause an error.
func CalculateMetrics(leads []domain.Lead) LeadMetrics {
	var m LeadMetrics
	for _, lead := range leads {
		switch lead.Status {
		case domain.LeadStatusLead:
			m.LeadCount++
		case domain.LeadStatusQualified:
			m.QualifiedCount++
		case domain.LeadStatusVisit:
			m.VisitCount++
		case domain.LeadStatusCallback:
			m.CallbackCount++
		case domain.LeadStatusProposal:
			m.ProposalCount++
		case domain.LeadStatusSold:
			m.SoldCount++
		}
	}
	return m
}

// SumMetrics adds a list of metrics component-wise. The zero value is the
// identity element, and the operation is associative and commutative, so
// roll-ups are correct regardless of traversal order.
func SumMetrics(list []LeadMetrics) LeadMetrics {
	var total LeadMetrics
	for _, m := range list {
		total.LeadCount += m.LeadCount
		total.QualifiedCount += m.QualifiedCount
		total.VisitCount += m.VisitCount
		total.CallbackCount += m.CallbackCount
		total.ProposalCount += m.ProposalCount
		total.SoldCount += m.SoldCount
	}
	return total
}

// CompositeScore blends playbook adherence, response speed and conversion into
// the single ordering key of the seller ranking. Response time is normalized
// against one hour.
func CompositeScore(r SellerRanking) float64 {
	return r.PlaybookScore*0.4 +
		(1-float64(r.AvgResponseTime)/3600)*0.3 +
		r.ConversionRate*0.3
}

// RankSellers orders a ranking by composite score descending. The sort is
// stable: sellers with identical scores keep their retrieval order.
func RankSellers(ranking []SellerRanking) []SellerRanking {
	out := make([]SellerRanking, len(ranking))
	copy(out, ranking)
	sort.SliceStable(out, func(i, j int) bool {
		return CompositeScore(out[i]) > CompositeScore(out[j])
	})
	return out
}

// ConversionRate is sold leads over total leads as a percentage, rounded to
// one decimal. Zero leads yields 0, never a division by zero.
func ConversionRate(sold, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(sold)/float64(total)*1000) / 10
}

// rankingResponseTimes maps seller id to average response time for joining
// breakdown rows against a pre-fetched ranking.
func rankingResponseTimes(ranking []SellerRanking) map[string]int {
	m := make(map[string]int, len(ranking))
	for _, r := range ranking {
		m[r.ID.String()] = r.AvgResponseTime
	}
	return m
}

// meanResponseTime averages the response times of a subset of the ranking.
// Returns nil when the subset is empty so rows without sellers carry no
// measurement instead of a fake zero.
func meanResponseTime(ranking []SellerRanking) *float64 {
	if len(ranking) == 0 {
		return nil
	}
	var sum float64
	for _, r := range ranking {
		sum += float64(r.AvgResponseTime)
	}
	mean := sum / float64(len(ranking))
	return &mean
}
