package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"
)

var ErrInvalidDateRange = errors.New("invalid date range")

const (
	DefaultSLADays        = 30
	DefaultStagnationDays = 10
)

// MetricsConfig holds the operational thresholds of the report.
type MetricsConfig struct {
	SLADays        int
	StagnationDays int
}

func (c MetricsConfig) withDefaults() MetricsConfig {
	if c.SLADays <= 0 {
		c.SLADays = DefaultSLADays
	}
	if c.StagnationDays <= 0 {
		c.StagnationDays = DefaultStagnationDays
	}
	return c
}

// IMetricsUseCase is the read-only analytics engine: it pulls the proposals
// created in a date range, reconstructs their timelines from the audit trail
// and folds them into the operational KPI report.

type IMetricsUseCase interface {
	Report(ctx context.Context, actor entities.Identity, start, end time.Time) (entities.MetricsReport, error)
}

type MetricsUseCase struct {
	proposals interfaces.IProposalRepository
	audit     interfaces.IAuditRepository
	cfg       MetricsConfig

	// now is overridable in tests; aging and the month-end projection
	// depend on it.
	now func() time.Time
}

var _ IMetricsUseCase = (*MetricsUseCase)(nil)

func NewMetricsUseCase(proposals interfaces.IProposalRepository, audit interfaces.IAuditRepository, cfg MetricsConfig) *MetricsUseCase {
	return &MetricsUseCase{
		proposals: proposals,
		audit:     audit,
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *MetricsUseCase) Report(ctx context.Context, actor entities.Identity, start, end time.Time) (entities.MetricsReport, error) {
	if !actor.Role.IsManager() {
		return entities.MetricsReport{}, ErrForbidden
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return entities.MetricsReport{}, ErrInvalidDateRange
	}

	proposals, err := u.proposals.ListByCreatedRange(ctx, start, end)
	if err != nil {
		return entities.MetricsReport{}, err
	}
	log.Printf("[metrics][usecase] report start=%s end=%s proposals=%d", start.Format(time.DateOnly), end.Format(time.DateOnly), len(proposals))

	now := u.now()
	slaLimit := float64(u.cfg.SLADays)
	stagnationLimit := float64(u.cfg.StagnationDays)

	report := entities.MetricsReport{
		StartDate:      start,
		EndDate:        end,
		TotalProposals: len(proposals),
		StatusCounts:   map[string]int{},
		SLADays:        u.cfg.SLADays,
		StagnationDays: u.cfg.StagnationDays,
		Proposals:      make([]entities.ProposalKPI, 0, len(proposals)),
	}

	var (
		agingSum       float64
		leadSum        float64
		leadCount      int
		slaCompliant   int
		ttfaSum        float64
		ttfaCount      int
		reworkCount    int
		implanted      int
		declined       int
		forecast       float64
		implantedMonth int
	)

	byHandler := map[string]*entities.GroupMetrics{}
	byConsultant := map[string]*entities.GroupMetrics{}
	byOperator := map[string]*entities.GroupMetrics{}

	for _, p := range proposals {
		entries, err := u.audit.ListByProposalID(ctx, p.ID)
		if err != nil {
			return entities.MetricsReport{}, err
		}
		tl := BuildTimeline(p, entries)

		report.StatusCounts[string(p.Status)]++

		kpi := entities.ProposalKPI{ID: p.ID, Code: p.Code, Status: p.Status}

		// aging: time since the last recorded movement, whatever the status
		aging := daysBetween(tl[len(tl)-1].At, now)
		kpi.AgingDays = round2(aging)
		agingSum += aging

		// lead time: creation until the first arrival at implantado
		if at, ok := firstStatusAt(tl, entities.StatusImplantado); ok {
			lead := daysBetween(p.CreatedAt, at)
			if lead > 0 {
				rounded := round2(lead)
				kpi.LeadTimeDays = &rounded
				leadSum += lead
				leadCount++
				if lead <= slaLimit {
					slaCompliant++
				}
			}
			if at.Year() == now.Year() && at.Month() == now.Month() {
				implantedMonth++
			}
		}

		if len(tl) >= 2 {
			ttfaSum += daysBetween(tl[0].At, tl[1].At)
			ttfaCount++
		}

		for i := 1; i < len(tl); i++ {
			if daysBetween(tl[i-1].At, tl[i].At) > stagnationLimit {
				report.StagnationEvents++
			}
		}

		kpi.Rework = hasRework(tl)
		if kpi.Rework {
			reworkCount++
		}

		switch p.Status {
		case entities.StatusImplantado:
			implanted++
		case entities.StatusDeclinada:
			declined++
		default:
			forecast += p.Value * entities.StageProbability[p.Status]
		}

		accumulateGroup(byHandler, handlerKey(p), p)
		accumulateGroup(byConsultant, p.ConsultantName, p)
		accumulateGroup(byOperator, p.Operator, p)

		report.Proposals = append(report.Proposals, kpi)
	}

	if len(proposals) > 0 {
		report.AvgAgingDays = round2(agingSum / float64(len(proposals)))
		report.ReworkPct = round2(float64(reworkCount) / float64(len(proposals)) * 100)
	}
	if leadCount > 0 {
		report.AvgLeadTimeDays = round2(leadSum / float64(leadCount))
		report.SLACompliancePct = round2(float64(slaCompliant) / float64(leadCount) * 100)
	}
	if ttfaCount > 0 {
		report.AvgTimeToFirstAdvanceDays = round2(ttfaSum / float64(ttfaCount))
	}
	if implanted+declined > 0 {
		report.LossRatePct = round2(float64(declined) / float64(implanted+declined) * 100)
	}
	report.ForecastValue = round2(forecast)

	report.ImplantedThisMonth = implantedMonth
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	report.MonthEndProjection = round2(float64(implantedMonth) / float64(now.Day()) * float64(daysInMonth))

	report.ByHandler = sortedGroups(byHandler)
	report.ByConsultant = sortedGroups(byConsultant)
	report.ByOperator = sortedGroups(byOperator)

	return report, nil
}

func firstStatusAt(tl []entities.TimelineEvent, status entities.ProposalStatus) (time.Time, bool) {
	for _, ev := range tl {
		if ev.Status == status {
			return ev.At, true
		}
	}
	return time.Time{}, false
}

// hasRework reports whether the timeline revisits a status it already left.
// Audit entries only exist for real changes, so consecutive duplicates
// cannot occur.
func hasRework(tl []entities.TimelineEvent) bool {
	seen := map[entities.ProposalStatus]bool{}
	for _, ev := range tl {
		if seen[ev.Status] {
			return true
		}
		seen[ev.Status] = true
	}
	return false
}

func handlerKey(p entities.Proposal) string {
	if p.HandlerID == "" {
		return "unassigned"
	}
	return p.HandlerID
}

func accumulateGroup(groups map[string]*entities.GroupMetrics, key string, p entities.Proposal) {
	g, ok := groups[key]
	if !ok {
		g = &entities.GroupMetrics{Key: key}
		groups[key] = g
	}
	g.Count++
	g.TotalValue = round2(g.TotalValue + p.Value)
	if p.Status == entities.StatusImplantado {
		g.Implanted++
	}
}

func sortedGroups(groups map[string]*entities.GroupMetrics) []entities.GroupMetrics {
	out := make([]entities.GroupMetrics, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
