package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"corretora_xpto/internal/domain/entities"
	mock_interfaces "corretora_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMetricsUseCase_Report_Authorization(t *testing.T) {
	uc := NewMetricsUseCase(nil, nil, MetricsConfig{})

	for _, role := range []entities.Role{entities.RoleConsultor, entities.RoleAnalista} {
		_, err := uc.Report(context.Background(), entities.Identity{UserID: "u", Role: role}, day(2026, 2, 1), day(2026, 3, 1))
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestMetricsUseCase_Report_InvalidRange(t *testing.T) {
	uc := NewMetricsUseCase(nil, nil, MetricsConfig{})
	gestor := entities.Identity{UserID: "g-1", Role: entities.RoleGestor}

	if _, err := uc.Report(context.Background(), gestor, time.Time{}, day(2026, 3, 1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for zero start, got %v", err)
	}
	if _, err := uc.Report(context.Background(), gestor, day(2026, 3, 1), day(2026, 2, 1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for inverted range, got %v", err)
	}
}

func TestMetricsUseCase_Report_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
	audit := mock_interfaces.NewMockIAuditRepository(ctrl)
	uc := NewMetricsUseCase(proposals, audit, MetricsConfig{})

	start, end := day(2026, 2, 1), day(2026, 3, 1)
	proposals.EXPECT().ListByCreatedRange(gomock.Any(), start, end).Return(nil, nil)

	report, err := uc.Report(context.Background(), entities.Identity{UserID: "g-1", Role: entities.RoleGestor}, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalProposals != 0 || report.AvgAgingDays != 0 || report.SLACompliancePct != 0 {
		t.Fatalf("expected zeroed report, got %+v", report)
	}
	if report.SLADays != DefaultSLADays || report.StagnationDays != DefaultStagnationDays {
		t.Fatalf("expected default thresholds, got %+v", report)
	}
}

// Four proposals, figures computed by hand:
//
//	A: created feb/01, value 1000, Ana/Amil, handler an-1, implantado feb/11
//	   (lead 10d, compliant), moves feb/03 and feb/11.
//	B: created feb/01, value 2000, Ana/Unimed, unassigned, pendência; status
//	   path revisits análise (rework), last move feb/08.
//	C: created feb/10, value 3000, Bia/Amil, unassigned, declinada mar/01;
//	   17d gap (stagnation).
//	D: created feb/01, value 4000, Bia/Unimed, handler an-1, implantado
//	   mar/10 (lead 37d, over SLA, counts for march); 36d gap (stagnation).
//
// With now = mar/20: aging 37+40+19+10 = 106 (avg 26.5), lead avg 23.5,
// SLA 50%, TTFA (2+1+2+1)/4 = 1.5, stagnation 2, rework 25%, loss rate
// 33.33%, forecast 2000*0.15 = 300, projection 1/20*31 = 1.55.
func TestMetricsUseCase_Report_KPIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	proposalsRepo := mock_interfaces.NewMockIProposalRepository(ctrl)
	auditRepo := mock_interfaces.NewMockIAuditRepository(ctrl)
	uc := NewMetricsUseCase(proposalsRepo, auditRepo, MetricsConfig{})
	uc.now = func() time.Time { return day(2026, 3, 20) }

	start, end := day(2026, 2, 1), day(2026, 3, 1)

	pA := entities.Proposal{ID: "A", Code: "PROP-A", CNPJ: "11111111000111", Operator: "Amil", ConsultantName: "Ana", Value: 1000, Status: entities.StatusImplantado, CreatorID: "c-1", HandlerID: "an-1", CreatedAt: day(2026, 2, 1)}
	pB := entities.Proposal{ID: "B", Code: "PROP-B", CNPJ: "22222222000122", Operator: "Unimed", ConsultantName: "Ana", Value: 2000, Status: entities.StatusPendencia, CreatorID: "c-1", CreatedAt: day(2026, 2, 1)}
	pC := entities.Proposal{ID: "C", Code: "PROP-C", CNPJ: "33333333000133", Operator: "Amil", ConsultantName: "Bia", Value: 3000, Status: entities.StatusDeclinada, CreatorID: "c-2", CreatedAt: day(2026, 2, 10)}
	pD := entities.Proposal{ID: "D", Code: "PROP-D", CNPJ: "44444444000144", Operator: "Unimed", ConsultantName: "Bia", Value: 4000, Status: entities.StatusImplantado, CreatorID: "c-2", HandlerID: "an-1", CreatedAt: day(2026, 2, 1)}

	proposalsRepo.EXPECT().ListByCreatedRange(gomock.Any(), start, end).Return([]entities.Proposal{pA, pB, pC, pD}, nil)

	auditRepo.EXPECT().ListByProposalID(gomock.Any(), "A").Return([]entities.AuditEntry{
		statusEntry("a-1", day(2026, 2, 3), entities.StatusRecepcionado, entities.StatusAnalise),
		statusEntry("a-2", day(2026, 2, 11), entities.StatusAnalise, entities.StatusImplantado),
	}, nil)
	auditRepo.EXPECT().ListByProposalID(gomock.Any(), "B").Return([]entities.AuditEntry{
		statusEntry("b-1", day(2026, 2, 2), entities.StatusRecepcionado, entities.StatusAnalise),
		statusEntry("b-2", day(2026, 2, 4), entities.StatusAnalise, entities.StatusPendencia),
		statusEntry("b-3", day(2026, 2, 6), entities.StatusPendencia, entities.StatusAnalise),
		statusEntry("b-4", day(2026, 2, 8), entities.StatusAnalise, entities.StatusPendencia),
	}, nil)
	auditRepo.EXPECT().ListByProposalID(gomock.Any(), "C").Return([]entities.AuditEntry{
		statusEntry("c-1", day(2026, 2, 12), entities.StatusRecepcionado, entities.StatusAnalise),
		statusEntry("c-2", day(2026, 3, 1), entities.StatusAnalise, entities.StatusDeclinada),
	}, nil)
	auditRepo.EXPECT().ListByProposalID(gomock.Any(), "D").Return([]entities.AuditEntry{
		statusEntry("d-1", day(2026, 2, 2), entities.StatusRecepcionado, entities.StatusAnalise),
		statusEntry("d-2", day(2026, 3, 10), entities.StatusAnalise, entities.StatusImplantado),
	}, nil)

	report, err := uc.Report(context.Background(), entities.Identity{UserID: "g-1", Role: entities.RoleGestor}, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalProposals != 4 {
		t.Fatalf("expected 4 proposals, got %d", report.TotalProposals)
	}
	if report.StatusCounts[string(entities.StatusImplantado)] != 2 ||
		report.StatusCounts[string(entities.StatusPendencia)] != 1 ||
		report.StatusCounts[string(entities.StatusDeclinada)] != 1 {
		t.Fatalf("unexpected status counts: %+v", report.StatusCounts)
	}

	if report.AvgAgingDays != 26.5 {
		t.Fatalf("expected avg aging 26.5, got %v", report.AvgAgingDays)
	}
	if report.AvgLeadTimeDays != 23.5 {
		t.Fatalf("expected avg lead 23.5, got %v", report.AvgLeadTimeDays)
	}
	if report.SLACompliancePct != 50.0 {
		t.Fatalf("expected SLA 50%%, got %v", report.SLACompliancePct)
	}
	if report.AvgTimeToFirstAdvanceDays != 1.5 {
		t.Fatalf("expected TTFA 1.5, got %v", report.AvgTimeToFirstAdvanceDays)
	}
	if report.StagnationEvents != 2 {
		t.Fatalf("expected 2 stagnation events, got %d", report.StagnationEvents)
	}
	if report.ReworkPct != 25.0 {
		t.Fatalf("expected rework 25%%, got %v", report.ReworkPct)
	}
	if report.LossRatePct != 33.33 {
		t.Fatalf("expected loss rate 33.33%%, got %v", report.LossRatePct)
	}
	if report.ForecastValue != 300.0 {
		t.Fatalf("expected forecast 300, got %v", report.ForecastValue)
	}
	if report.ImplantedThisMonth != 1 {
		t.Fatalf("expected 1 implanted this month, got %d", report.ImplantedThisMonth)
	}
	if report.MonthEndProjection != 1.55 {
		t.Fatalf("expected projection 1.55, got %v", report.MonthEndProjection)
	}

	var kpiB entities.ProposalKPI
	for _, kpi := range report.Proposals {
		if kpi.ID == "B" {
			kpiB = kpi
		}
		if kpi.ID == "A" {
			if kpi.LeadTimeDays == nil || *kpi.LeadTimeDays != 10.0 {
				t.Fatalf("expected A lead 10, got %+v", kpi.LeadTimeDays)
			}
			if kpi.AgingDays != 37.0 {
				t.Fatalf("expected A aging 37, got %v", kpi.AgingDays)
			}
		}
	}
	if !kpiB.Rework {
		t.Fatalf("expected B flagged as rework")
	}
	if kpiB.LeadTimeDays != nil {
		t.Fatalf("B never implanted, lead must be nil: %+v", kpiB.LeadTimeDays)
	}

	if len(report.ByOperator) != 2 || report.ByOperator[0].Key != "Unimed" || report.ByOperator[0].TotalValue != 6000 {
		t.Fatalf("unexpected operator ranking: %+v", report.ByOperator)
	}
	if report.ByOperator[1].Key != "Amil" || report.ByOperator[1].Implanted != 1 {
		t.Fatalf("unexpected operator ranking: %+v", report.ByOperator)
	}
	if len(report.ByConsultant) != 2 || report.ByConsultant[0].Key != "Bia" || report.ByConsultant[0].TotalValue != 7000 {
		t.Fatalf("unexpected consultant ranking: %+v", report.ByConsultant)
	}
	// an-1 and unassigned tie on value, ties break on key.
	if len(report.ByHandler) != 2 || report.ByHandler[0].Key != "an-1" || report.ByHandler[1].Key != "unassigned" {
		t.Fatalf("unexpected handler ranking: %+v", report.ByHandler)
	}
	if report.ByHandler[0].Implanted != 2 || report.ByHandler[1].Implanted != 0 {
		t.Fatalf("unexpected handler implanted counts: %+v", report.ByHandler)
	}
}

func TestMetricsUseCase_Report_AuditErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	proposalsRepo := mock_interfaces.NewMockIProposalRepository(ctrl)
	auditRepo := mock_interfaces.NewMockIAuditRepository(ctrl)
	uc := NewMetricsUseCase(proposalsRepo, auditRepo, MetricsConfig{})

	start, end := day(2026, 2, 1), day(2026, 3, 1)
	proposalsRepo.EXPECT().ListByCreatedRange(gomock.Any(), start, end).Return([]entities.Proposal{{ID: "A", CreatedAt: day(2026, 2, 1)}}, nil)
	auditRepo.EXPECT().ListByProposalID(gomock.Any(), "A").Return(nil, errors.New("db"))

	_, err := uc.Report(context.Background(), entities.Identity{UserID: "g-1", Role: entities.RoleGestor}, start, end)
	if err == nil || err.Error() != "db" {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestMetricsConfig_Defaults(t *testing.T) {
	cfg := MetricsConfig{}.withDefaults()
	if cfg.SLADays != DefaultSLADays || cfg.StagnationDays != DefaultStagnationDays {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	cfg = MetricsConfig{SLADays: 45, StagnationDays: 5}.withDefaults()
	if cfg.SLADays != 45 || cfg.StagnationDays != 5 {
		t.Fatalf("explicit thresholds must survive: %+v", cfg)
	}
}
