package response

import (
	"time"

	"corretora_xpto/internal/domain/entities"
)

type ProposalResponse struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	CNPJ            string     `json:"cnpj"`
	Operator        string     `json:"operator"`
	ConsultantName  string     `json:"consultant_name"`
	ConsultantEmail string     `json:"consultant_email"`
	Quantity        int        `json:"quantity"`
	Value           float64    `json:"value"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CreatorID       string     `json:"creator_id"`
	HandlerID       string     `json:"handler_id,omitempty"`
	HandledAt       *time.Time `json:"handled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	res := ProposalResponse{
		ID:              p.ID,
		Code:            p.Code,
		CNPJ:            p.CNPJ,
		Operator:        p.Operator,
		ConsultantName:  p.ConsultantName,
		ConsultantEmail: p.ConsultantEmail,
		Quantity:        p.Quantity,
		Value:           p.Value,
		Notes:           p.Notes,
		Status:          string(p.Status),
		CreatorID:       p.CreatorID,
		HandlerID:       p.HandlerID,
		CreatedAt:       p.CreatedAt,
	}
	if !p.TargetDate.IsZero() {
		t := p.TargetDate
		res.TargetDate = &t
	}
	if !p.HandledAt.IsZero() {
		t := p.HandledAt
		res.HandledAt = &t
	}
	return res
}
