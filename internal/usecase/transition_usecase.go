package usecase

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProposalID       = errors.New("invalid proposal id")
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrProposalAlreadyClaimed  = errors.New("proposal already claimed")
	ErrForbidden               = errors.New("operation not allowed for this role")
	ErrCreatorImmutable        = errors.New("creator is immutable")
	ErrEmptyPatch              = errors.New("patch has no fields")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidOperator         = errors.New("invalid operator")
	ErrInvalidConsultantEmail  = errors.New("invalid consultant email")
	ErrPastTargetDate          = errors.New("target date must be today or later")
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrInvalidValue            = errors.New("invalid value")
	ErrInvalidCNPJ             = errors.New("invalid cnpj")
	ErrMissingConsultantFields = errors.New("missing consultant name or email")
)

// Read-after-write replication lag is absorbed with a short bounded retry.
// Logical conflicts are never retried; they surface as ErrProposalAlreadyClaimed.
const (
	proposalReadAttempts = 3
	proposalReadBackoff  = 100 * time.Millisecond
)

// CreateProposalInput is the consultant-facing submission payload.
type CreateProposalInput struct {
	Code            string
	CNPJ            string
	Operator        string
	ConsultantName  string
	ConsultantEmail string
	Quantity        int
	Value           float64
	TargetDate      time.Time
	Notes           string
}

// PatchInput is the sparse field set accepted by Patch. Nil means "leave
// unchanged". The creator is not representable here on purpose: authorship
// is write-once and the handler rejects any payload that mentions it.
type PatchInput struct {
	Status          *entities.ProposalStatus
	Quantity        *int
	Value           *float64
	TargetDate      *time.Time
	Operator        *string
	ConsultantName  *string
	ConsultantEmail *string
	Notes           *string
}

func (in PatchInput) empty() bool {
	return in.Status == nil && in.Quantity == nil && in.Value == nil &&
		in.TargetDate == nil && in.Operator == nil && in.ConsultantName == nil &&
		in.ConsultantEmail == nil && in.Notes == nil
}

func (in PatchInput) statusOnly() bool {
	return in.Quantity == nil && in.Value == nil && in.TargetDate == nil &&
		in.Operator == nil && in.ConsultantName == nil &&
		in.ConsultantEmail == nil && in.Notes == nil
}

// ITransitionUseCase is the proposal lifecycle state machine: it authorizes,
// validates and atomically applies claim and patch operations, and owns the
// audit / goal-ledger / notification side effects.

type ITransitionUseCase interface {
	Create(ctx context.Context, actor entities.Identity, in CreateProposalInput) (entities.Proposal, error)
	GetByID(ctx context.Context, actor entities.Identity, id string) (entities.Proposal, error)
	Claim(ctx context.Context, actor entities.Identity, proposalID string) (entities.Proposal, error)
	Patch(ctx context.Context, actor entities.Identity, proposalID string, in PatchInput) (entities.Proposal, error)
	AuditTrail(ctx context.Context, actor entities.Identity, proposalID string) ([]entities.AuditEntry, error)
}

type TransitionUseCase struct {
	proposals interfaces.IProposalRepository
	goals     interfaces.IGoalRepository
	recorder  *AuditRecorder
	notifier  interfaces.INotificationDispatcher
}

var _ ITransitionUseCase = (*TransitionUseCase)(nil)

func NewTransitionUseCase(
	proposals interfaces.IProposalRepository,
	goals interfaces.IGoalRepository,
	recorder *AuditRecorder,
	notifier interfaces.INotificationDispatcher,
) *TransitionUseCase {
	return &TransitionUseCase{proposals: proposals, goals: goals, recorder: recorder, notifier: notifier}
}

func (u *TransitionUseCase) Create(ctx context.Context, actor entities.Identity, in CreateProposalInput) (entities.Proposal, error) {
	if actor.Role != entities.RoleConsultor && actor.Role != entities.RoleAnalista {
		return entities.Proposal{}, ErrForbidden
	}
	cnpj := digitsOnly(in.CNPJ)
	if len(cnpj) != 14 {
		return entities.Proposal{}, ErrInvalidCNPJ
	}
	if !entities.IsValidOperator(in.Operator) {
		return entities.Proposal{}, ErrInvalidOperator
	}
	if strings.TrimSpace(in.ConsultantName) == "" || strings.TrimSpace(in.ConsultantEmail) == "" {
		return entities.Proposal{}, ErrMissingConsultantFields
	}
	if !isValidEmail(in.ConsultantEmail) {
		return entities.Proposal{}, ErrInvalidConsultantEmail
	}
	if in.Quantity <= 0 {
		return entities.Proposal{}, ErrInvalidQuantity
	}
	if in.Value <= 0 {
		return entities.Proposal{}, ErrInvalidValue
	}
	if !in.TargetDate.IsZero() && beforeToday(in.TargetDate) {
		return entities.Proposal{}, ErrPastTargetDate
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = "PROP-" + strings.ToUpper(id[:8])
	}
	p := entities.Proposal{
		ID:              id,
		Code:            code,
		CNPJ:            cnpj,
		Operator:        in.Operator,
		ConsultantName:  strings.TrimSpace(in.ConsultantName),
		ConsultantEmail: strings.TrimSpace(in.ConsultantEmail),
		Quantity:        in.Quantity,
		Value:           in.Value,
		TargetDate:      in.TargetDate,
		Notes:           in.Notes,
		Status:          entities.StatusRecepcionado,
		CreatorID:       actor.UserID,
		CreatedAt:       now,
	}
	created, err := u.proposals.Create(ctx, p)
	if err != nil {
		return entities.Proposal{}, err
	}
	log.Printf("[transition][usecase] proposal created id=%s code=%s creator=%s", created.ID, created.Code, created.CreatorID)
	return created, nil
}

func (u *TransitionUseCase) GetByID(ctx context.Context, actor entities.Identity, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}

	p, err := u.proposals.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	if !actor.Role.IsManager() && actor.Role != entities.RoleAnalista && p.CreatorID != actor.UserID {
		return entities.Proposal{}, ErrForbidden
	}
	return p, nil
}

// Claim makes the caller the exclusive handler of an unassigned proposal.
// The assignment is a single conditional write; losing the race is a
// business conflict surfaced to the caller, never retried.
func (u *TransitionUseCase) Claim(ctx context.Context, actor entities.Identity, proposalID string) (entities.Proposal, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if actor.Role != entities.RoleAnalista {
		return entities.Proposal{}, ErrForbidden
	}

	now := time.Now().UTC()
	claimed, err := u.proposals.Claim(ctx, proposalID, actor.UserID, now)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		cur, gerr := u.proposals.GetByID(ctx, proposalID)
		if gerr != nil {
			return entities.Proposal{}, gerr
		}
		if cur.ID == "" {
			return entities.Proposal{}, ErrProposalNotFound
		}
		log.Printf("[transition][usecase] claim conflict proposal_id=%s actor=%s holder=%s", proposalID, actor.UserID, cur.HandlerID)
		return entities.Proposal{}, ErrProposalAlreadyClaimed
	}
	if err != nil {
		return entities.Proposal{}, err
	}
	log.Printf("[transition][usecase] claim success proposal_id=%s handler=%s", claimed.ID, claimed.HandlerID)

	changes := entities.ChangeSet{
		entities.AuditFieldClaim: {
			Before: nil,
			After: map[string]interface{}{
				"handler_id": claimed.HandlerID,
				"handled_at": claimed.HandledAt.UTC().Format(time.RFC3339Nano),
			},
		},
	}
	if _, aerr := u.recorder.Record(ctx, claimed.ID, actor.UserID, changes); aerr != nil {
		log.Printf("[transition][usecase] audit append failed proposal_id=%s op=claim err=%v", claimed.ID, aerr)
	}
	u.notify(ctx, entities.EventProposalClaimed, claimed, actor.UserID)

	return claimed, nil
}

// Patch applies a role-restricted sparse update. For an analyst patching an
// unclaimed proposal they created, the claim is folded into the same
// conditional write (claim-if-unclaimed-then-patch); losing that race
// rejects the whole patch.
func (u *TransitionUseCase) Patch(ctx context.Context, actor entities.Identity, proposalID string, in PatchInput) (entities.Proposal, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if actor.Role == entities.RoleConsultor || !actor.Role.IsValid() {
		return entities.Proposal{}, ErrForbidden
	}
	if in.empty() {
		return entities.Proposal{}, ErrEmptyPatch
	}
	if err := validatePatchInput(in); err != nil {
		return entities.Proposal{}, err
	}

	current, err := u.getWithRetry(ctx, proposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if current.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}

	patch := entities.ProposalPatch{
		Status:          in.Status,
		Quantity:        in.Quantity,
		Value:           in.Value,
		TargetDate:      in.TargetDate,
		Operator:        in.Operator,
		ConsultantName:  in.ConsultantName,
		ConsultantEmail: in.ConsultantEmail,
		Notes:           in.Notes,
	}

	if actor.Role == entities.RoleAnalista {
		if !in.statusOnly() {
			return entities.Proposal{}, ErrForbidden
		}
		switch {
		case current.HandlerID == actor.UserID:
			patch.RequireHandlerID = actor.UserID
		case !current.Claimed() && current.CreatorID == actor.UserID:
			patch.ClaimHandlerID = actor.UserID
			patch.ClaimHandledAt = time.Now().UTC()
		default:
			return entities.Proposal{}, ErrForbidden
		}
	}

	updated, err := u.proposals.Patch(ctx, proposalID, patch)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		cur, gerr := u.proposals.GetByID(ctx, proposalID)
		if gerr != nil {
			return entities.Proposal{}, gerr
		}
		if cur.ID == "" {
			return entities.Proposal{}, ErrProposalNotFound
		}
		log.Printf("[transition][usecase] patch lost claim race proposal_id=%s actor=%s holder=%s", proposalID, actor.UserID, cur.HandlerID)
		return entities.Proposal{}, ErrProposalAlreadyClaimed
	}
	if err != nil {
		return entities.Proposal{}, err
	}

	u.applyGoalDelta(ctx, current, updated, in)

	if changes := u.recorder.Diff(current, updated); len(changes) > 0 {
		if _, aerr := u.recorder.Record(ctx, updated.ID, actor.UserID, changes); aerr != nil {
			log.Printf("[transition][usecase] audit append failed proposal_id=%s op=patch err=%v", updated.ID, aerr)
		}
	}
	u.notify(ctx, entities.EventProposalUpdated, updated, actor.UserID)

	return updated, nil
}

func (u *TransitionUseCase) AuditTrail(ctx context.Context, actor entities.Identity, proposalID string) ([]entities.AuditEntry, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, ErrInvalidProposalID
	}

	p, err := u.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, ErrProposalNotFound
	}
	if !actor.Role.IsManager() && p.CreatorID != actor.UserID {
		return nil, ErrForbidden
	}
	return u.recorder.repo.ListByProposalID(ctx, proposalID)
}

// applyGoalDelta moves the creator's achieved value when the patch crosses
// the "implantado" boundary. The delta is an atomic store-level increment;
// a failure here is logged and repaired later via goal recompute, it never
// fails the patch.
func (u *TransitionUseCase) applyGoalDelta(ctx context.Context, before, after entities.Proposal, in PatchInput) {
	if in.Status == nil {
		return
	}
	wasImplanted := before.Status == entities.StatusImplantado
	isImplanted := after.Status == entities.StatusImplantado
	if wasImplanted == isImplanted {
		return
	}

	value := before.Value
	if in.Value != nil {
		value = *in.Value
	}
	delta := value
	if wasImplanted {
		delta = -value
	}

	if err := u.goals.AddAchieved(ctx, before.CreatorID, delta); err != nil {
		log.Printf("[transition][usecase] goal delta failed proposal_id=%s user=%s delta=%.2f err=%v", before.ID, before.CreatorID, delta, err)
		return
	}
	log.Printf("[transition][usecase] goal delta applied proposal_id=%s user=%s delta=%.2f", before.ID, before.CreatorID, delta)
}

// getWithRetry re-reads a proposal a bounded number of times with linear
// backoff. This only absorbs replication lag on a just-written row; it is
// not a conflict-resolution mechanism.
func (u *TransitionUseCase) getWithRetry(ctx context.Context, id string) (entities.Proposal, error) {
	var p entities.Proposal
	var err error
	for attempt := 1; attempt <= proposalReadAttempts; attempt++ {
		p, err = u.proposals.GetByID(ctx, id)
		if err != nil {
			return entities.Proposal{}, err
		}
		if p.ID != "" {
			return p, nil
		}
		if attempt < proposalReadAttempts {
			time.Sleep(time.Duration(attempt) * proposalReadBackoff)
		}
	}
	return p, nil
}

func (u *TransitionUseCase) notify(ctx context.Context, eventType string, p entities.Proposal, actorID string) {
	if u.notifier == nil {
		return
	}
	u.notifier.Notify(ctx, entities.ProposalEvent{
		Type:       eventType,
		ProposalID: p.ID,
		Code:       p.Code,
		Status:     string(p.Status),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
}

func validatePatchInput(in PatchInput) error {
	if in.Status != nil && !in.Status.IsValid() {
		return ErrInvalidStatus
	}
	if in.Operator != nil && !entities.IsValidOperator(*in.Operator) {
		return ErrInvalidOperator
	}
	if in.ConsultantEmail != nil && !isValidEmail(*in.ConsultantEmail) {
		return ErrInvalidConsultantEmail
	}
	if in.TargetDate != nil && beforeToday(*in.TargetDate) {
		return ErrPastTargetDate
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.Value != nil && *in.Value <= 0 {
		return ErrInvalidValue
	}
	return nil
}

func beforeToday(t time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := t.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}

func isValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
