package request

import (
	"errors"
	"testing"
	"time"
)

func TestProposalCreateRequest_ResolveTargetDate(t *testing.T) {
	r := ProposalCreateRequest{TargetDate: "2027-06-15"}
	got, err := r.ResolveTargetDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	r2 := ProposalCreateRequest{TargetDate: "2027-06-15T10:30:00Z"}
	got, err = r2.ResolveTargetDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 {
		t.Fatalf("expected RFC3339 to be accepted, got %v", got)
	}

	r3 := ProposalCreateRequest{}
	got, err = r3.ResolveTargetDate()
	if err != nil || !got.IsZero() {
		t.Fatalf("expected zero time for empty date, got %v / %v", got, err)
	}

	r4 := ProposalCreateRequest{TargetDate: "15/06/2027"}
	if _, err = r4.ResolveTargetDate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestProposalPatchRequest_ResolveTargetDate(t *testing.T) {
	r := ProposalPatchRequest{}
	got, err := r.ResolveTargetDate()
	if err != nil || got != nil {
		t.Fatalf("expected nil for absent date, got %v / %v", got, err)
	}

	s := "2027-01-10"
	r2 := ProposalPatchRequest{TargetDate: &s}
	got, err = r2.ResolveTargetDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}

	bad := "not-a-date"
	r3 := ProposalPatchRequest{TargetDate: &bad}
	if _, err = r3.ResolveTargetDate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestContainsCreatorField(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"creator_id", `{"creator_id":"u-1"}`, true},
		{"creator", `{"creator":"u-1"}`, true},
		{"criado_por", `{"criado_por":"u-1"}`, true},
		{"criado_por_id", `{"status":"análise","criado_por_id":"u-1"}`, true},
		{"clean patch", `{"status":"análise","value":100}`, false},
		{"creator as value only", `{"notes":"creator_id should not trigger"}`, false},
		{"malformed json", `{`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsCreatorField([]byte(tc.raw)); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
