// Package dashboard implements the access-scoped, hierarchy-aware metrics
// resolution engine. Given a session user, a date filter and a data source it
// computes the funnel and team-performance metrics that user may see, broken
// down by the next level of the hierarchy below them.
//
// The engine is stateless and read-only: every resolution is an independent
// computation against the injected DataSource, safe to run concurrently for
// different requests.
package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/domain"
)

// LeadMetrics holds the funnel-stage counters for a set of leads. The field
// set is fixed: QualifiedCount stays at zero unless legacy QUALIFIED leads are
// present, it is never omitted.
type LeadMetrics struct {
	LeadCount      int `json:"lead_count"`
	QualifiedCount int `json:"qualified_count"`
	VisitCount     int `json:"visit_count"`
	CallbackCount  int `json:"callback_count"`
	ProposalCount  int `json:"proposal_count"`
	SoldCount      int `json:"sold_count"`
}

// TotalActivity is the ordering key for the manager breakdown: leads worked
// plus leads closing (visits and callbacks are intermediate states).
func (m LeadMetrics) TotalActivity() int {
	return m.LeadCount + m.QualifiedCount + m.ProposalCount + m.SoldCount
}

// TeamMetrics holds the conversation-side performance counters for a set of
// sellers. Computed per seller-id set by the data source, never per lead.
type TeamMetrics struct {
	SellersOnline           int     `json:"sellers_online"`
	SellersOffline          int     `json:"sellers_offline"`
	NewConversations        int     `json:"new_conversations"`
	AvgResponseTime         int     `json:"avg_response_time"`
	AvgPlaybookScore        float64 `json:"avg_playbook_score"`
	LeadsWithoutResponse    int     `json:"leads_without_response"`
	AvgWeightedResponseTime int     `json:"avg_weighted_response_time"`
	ClientsNoResponse2h     int     `json:"clients_no_response_2h"`
	ClientsNoResponse24h    int     `json:"clients_no_response_24h"`
}

// SellerRanking is one seller's row in the performance ranking.
type SellerRanking struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	IsOnline             bool      `json:"is_online"`
	NewConversations     int       `json:"new_conversations"`
	AvgResponseTime      int       `json:"avg_response_time"`
	PlaybookScore        float64   `json:"playbook_score"`
	LeadsWithoutResponse int       `json:"leads_without_response"`
	TotalLeads           int       `json:"total_leads"`
	ConversionRate       float64   `json:"conversion_rate"`
}

// SubordinateType identifies what kind of entity a breakdown row represents.
type SubordinateType string

const (
	SubordinateSuperintendent SubordinateType = "superintendent"
	SubordinateManager        SubordinateType = "manager"
	SubordinateSeller         SubordinateType = "seller"
	SubordinateArea           SubordinateType = "area"
)

// SubordinateMetrics is one row of the hierarchy breakdown table: a
// superintendent, manager, seller or bare area with its own lead metrics.
// AvgResponseTime is nil when no seller in the row's scope has a measurement.
type SubordinateMetrics struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Type            SubordinateType    `json:"type"`
	AccessLevel     domain.AccessLevel `json:"access_level,omitempty"`
	Metrics         LeadMetrics        `json:"metrics"`
	AvgResponseTime *float64           `json:"avg_response_time,omitempty"`
}

// Period is the resolved date window with its display label.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// DashboardData is the complete resolver output. A caller always receives
// either a fully populated, internally consistent value or an error, never a
// partial one.
type DashboardData struct {
	UserMetrics   LeadMetrics          `json:"user_metrics"`
	TeamMetrics   TeamMetrics          `json:"team_metrics"`
	Subordinates  []SubordinateMetrics `json:"subordinates"`
	SellerRanking []SellerRanking      `json:"seller_ranking"`
	TotalMetrics  LeadMetrics          `json:"total_metrics"`
	Period        Period               `json:"period"`
}

// FilterType discriminates the supported date filters.
type FilterType string

const (
	FilterToday  FilterType = "today"
	Filter7Days  FilterType = "7days"
	Filter30Days FilterType = "30days"
	FilterCustom FilterType = "custom"
)

// DateFilter selects the time window of a dashboard request. Start and End
// are only consulted for FilterCustom.
type DateFilter struct {
	Type  FilterType `json:"type"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}
