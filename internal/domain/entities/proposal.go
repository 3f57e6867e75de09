package entities

import "time"

// ProposalStatus represents the lifecycle of an insurance proposal (proposta).
//
// Domain notes:
//   - Non-terminal statuses form an unordered graph: the operation allows any
//     non-terminal status to move to any other status, terminal included.
//   - "implantado" is the terminal success status and is the only status that
//     counts towards a user's goal ledger.
//   - "proposta declinada" is the terminal failure status.

type ProposalStatus string

const (
	StatusRecepcionado     ProposalStatus = "recepcionado"
	StatusAnalise          ProposalStatus = "análise"
	StatusPendencia        ProposalStatus = "pendência"
	StatusPleitoSeguradora ProposalStatus = "pleito seguradora"
	StatusBoletoLiberado   ProposalStatus = "boleto liberado"
	StatusImplantado       ProposalStatus = "implantado"
	StatusDeclinada        ProposalStatus = "proposta declinada"
)

// ProposalStatuses lists every valid status, pipeline order first, terminals last.
var ProposalStatuses = []ProposalStatus{
	StatusRecepcionado,
	StatusAnalise,
	StatusPendencia,
	StatusPleitoSeguradora,
	StatusBoletoLiberado,
	StatusImplantado,
	StatusDeclinada,
}

func (s ProposalStatus) IsValid() bool {
	for _, v := range ProposalStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ProposalStatus) IsTerminal() bool {
	return s == StatusImplantado || s == StatusDeclinada
}

// StageProbability is the heuristic closing weight per status used by the
// pipeline forecast. Terminal statuses are fixed at 1.0 / 0.0.
var StageProbability = map[ProposalStatus]float64{
	StatusRecepcionado:     0.05,
	StatusAnalise:          0.25,
	StatusPendencia:        0.15,
	StatusPleitoSeguradora: 0.40,
	StatusBoletoLiberado:   0.85,
	StatusImplantado:       1.0,
	StatusDeclinada:        0.0,
}

// Operators is the closed set of insurer operators accepted on a proposal.
var Operators = []string{
	"Amil",
	"Bradesco Saúde",
	"SulAmérica",
	"Unimed",
	"Porto Seguro",
	"NotreDame Intermédica",
	"Hapvida",
}

func IsValidOperator(name string) bool {
	for _, op := range Operators {
		if op == name {
			return true
		}
	}
	return false
}

// Proposal is the insurance proposal persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Assignment model:
//   - CreatorID is write-once, set on creation, never patchable.
//   - HandlerID is empty until an analyst claims the proposal; the claim is a
//     conditional write, so at most one analyst ever becomes the handler.

type Proposal struct {
	ID              string         `json:"id"`
	Code            string         `json:"code"`
	CNPJ            string         `json:"cnpj"`
	Operator        string         `json:"operator"`
	ConsultantName  string         `json:"consultant_name"`
	ConsultantEmail string         `json:"consultant_email"`
	Quantity        int            `json:"quantity"`
	Value           float64        `json:"value"`
	TargetDate      time.Time      `json:"target_date"`
	Notes           string         `json:"notes"`
	Status          ProposalStatus `json:"status"`
	CreatorID       string         `json:"creator_id"`
	HandlerID       string         `json:"handler_id,omitempty"`
	HandledAt       time.Time      `json:"handled_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (p Proposal) Claimed() bool {
	return p.HandlerID != ""
}

// ProposalPatch is a sparse field set applied by the transition engine.
// Nil pointers mean "leave unchanged". ClaimHandlerID, when set, folds an
// implicit claim into the same conditional write (claim-if-unclaimed-then-patch).
// RequireHandlerID, when set, makes the write conditional on the current handler.
type ProposalPatch struct {
	Status          *ProposalStatus
	Quantity        *int
	Value           *float64
	TargetDate      *time.Time
	Operator        *string
	ConsultantName  *string
	ConsultantEmail *string
	Notes           *string

	ClaimHandlerID   string
	ClaimHandledAt   time.Time
	RequireHandlerID string
}

func (p ProposalPatch) Empty() bool {
	return p.Status == nil && p.Quantity == nil && p.Value == nil &&
		p.TargetDate == nil && p.Operator == nil && p.ConsultantName == nil &&
		p.ConsultantEmail == nil && p.Notes == nil
}
