package entities

import "time"

// ProposalKPI carries the per-proposal figures derived from one timeline.
type ProposalKPI struct {
	ID           string         `json:"id"`
	Code         string         `json:"code"`
	Status       ProposalStatus `json:"status"`
	AgingDays    float64        `json:"aging_days"`
	LeadTimeDays *float64       `json:"lead_time_days,omitempty"`
	Rework       bool           `json:"rework"`
}

// GroupMetrics is one row of a per-handler / per-consultant / per-operator
// ranking over the filtered proposal set.
type GroupMetrics struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
	Implanted  int     `json:"implanted"`
}

// MetricsReport is the KPI payload produced by the metrics engine for a
// creation-date range. Percentages and currency sums are rounded to two
// decimal places.
type MetricsReport struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalProposals int            `json:"total_proposals"`
	StatusCounts   map[string]int `json:"status_counts"`

	AvgAgingDays              float64 `json:"avg_aging_days"`
	AvgLeadTimeDays           float64 `json:"avg_lead_time_days"`
	AvgTimeToFirstAdvanceDays float64 `json:"avg_time_to_first_advance_days"`

	SLADays            int     `json:"sla_days"`
	SLACompliancePct   float64 `json:"sla_compliance_pct"`
	StagnationDays     int     `json:"stagnation_days"`
	StagnationEvents   int     `json:"stagnation_events"`
	ReworkPct          float64 `json:"rework_pct"`
	LossRatePct        float64 `json:"loss_rate_pct"`
	ForecastValue      float64 `json:"forecast_value"`
	ImplantedThisMonth int     `json:"implanted_this_month"`
	MonthEndProjection float64 `json:"month_end_projection"`

	Proposals    []ProposalKPI  `json:"proposals"`
	ByHandler    []GroupMetrics `json:"by_handler"`
	ByConsultant []GroupMetrics `json:"by_consultant"`
	ByOperator   []GroupMetrics `json:"by_operator"`
}
