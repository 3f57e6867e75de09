package request

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// ProposalCreateRequest is the submission payload accepted from consultants.
type ProposalCreateRequest struct {
	Code            string  `json:"code"`
	CNPJ            string  `json:"cnpj" binding:"required"`
	Operator        string  `json:"operator" binding:"required"`
	ConsultantName  string  `json:"consultant_name" binding:"required"`
	ConsultantEmail string  `json:"consultant_email" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required"`
	Value           float64 `json:"value" binding:"required"`
	TargetDate      string  `json:"target_date"`
	Notes           string  `json:"notes"`
}

func (r ProposalCreateRequest) ResolveTargetDate() (time.Time, error) {
	return parseDate(r.TargetDate)
}

// ProposalPatchRequest is the sparse patch payload. Nil fields are left
// unchanged. The creator is deliberately absent: authorship is write-once
// and ContainsCreatorField rejects payloads that try to smuggle it in.
type ProposalPatchRequest struct {
	Status          *string  `json:"status"`
	Quantity        *int     `json:"quantity"`
	Value           *float64 `json:"value"`
	TargetDate      *string  `json:"target_date"`
	Operator        *string  `json:"operator"`
	ConsultantName  *string  `json:"consultant_name"`
	ConsultantEmail *string  `json:"consultant_email"`
	Notes           *string  `json:"notes"`
}

func (r ProposalPatchRequest) ResolveTargetDate() (*time.Time, error) {
	if r.TargetDate == nil {
		return nil, nil
	}
	t, err := parseDate(*r.TargetDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// creatorFieldNames are the payload keys that would target the write-once
// creator attribute, in both naming conventions clients have used.
var creatorFieldNames = []string{"creator", "creator_id", "criado_por", "criado_por_id"}

// ContainsCreatorField reports whether the raw JSON body mentions the
// proposal's creator under any known key.
func ContainsCreatorField(raw []byte) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	for _, name := range creatorFieldNames {
		if _, ok := m[name]; ok {
			return true
		}
	}
	return false
}

// GoalTargetRequest adjusts a user's goal target value.
type GoalTargetRequest struct {
	TargetValue float64 `json:"target_value" binding:"required"`
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
