package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"corretora_xpto/internal/adapter/http/dto/request"
	"corretora_xpto/internal/adapter/http/dto/response"
	"corretora_xpto/internal/adapter/http/middleware"
	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase"
	"corretora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProposalPayload = pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
	errUnauthenticated        = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid credentials", http.StatusUnauthorized)
)

// ProposalHandler handles HTTP requests for the proposal lifecycle:
// submission, claim, patch and the audit trail.

type ProposalHandler struct {
	usecase usecase.ITransitionUseCase
}

func NewProposalHandler(uc usecase.ITransitionUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	var payload request.ProposalCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}
	targetDate, err := payload.ResolveTargetDate()
	if err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), actor, usecase.CreateProposalInput{
		Code:            payload.Code,
		CNPJ:            payload.CNPJ,
		Operator:        payload.Operator,
		ConsultantName:  payload.ConsultantName,
		ConsultantEmail: payload.ConsultantEmail,
		Quantity:        payload.Quantity,
		Value:           payload.Value,
		TargetDate:      targetDate,
		Notes:           payload.Notes,
	})
	if err != nil {
		appErr := mapTransitionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(created))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	p, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapTransitionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

// ClaimProposal makes the calling analyst the proposal's exclusive handler.
func (h *ProposalHandler) ClaimProposal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	proposalID := c.Param("id")
	log.Printf("[proposal][handler] claim start proposal_id=%s actor=%s", proposalID, actor.UserID)

	claimed, err := h.usecase.Claim(c.Request.Context(), actor, proposalID)
	if err != nil {
		log.Printf("[proposal][handler] claim failed proposal_id=%s actor=%s err=%v", proposalID, actor.UserID, err)
		appErr := mapTransitionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[proposal][handler] claim success proposal_id=%s handler=%s", claimed.ID, claimed.HandlerID)

	c.JSON(http.StatusOK, response.FromProposal(claimed))
}

// PatchProposal applies a role-restricted sparse update. Payloads mentioning
// the creator are rejected before the engine runs: authorship is write-once.
func (h *ProposalHandler) PatchProposal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	proposalID := c.Param("id")

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}
	if request.ContainsCreatorField(raw) {
		appErr := mapTransitionError(usecase.ErrCreatorImmutable)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.ProposalPatchRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}
	targetDate, err := payload.ResolveTargetDate()
	if err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	in := usecase.PatchInput{
		Quantity:        payload.Quantity,
		Value:           payload.Value,
		TargetDate:      targetDate,
		Operator:        payload.Operator,
		ConsultantName:  payload.ConsultantName,
		ConsultantEmail: payload.ConsultantEmail,
		Notes:           payload.Notes,
	}
	if payload.Status != nil {
		status := entities.ProposalStatus(*payload.Status)
		in.Status = &status
	}

	updated, err := h.usecase.Patch(c.Request.Context(), actor, proposalID, in)
	if err != nil {
		log.Printf("[proposal][handler] patch failed proposal_id=%s actor=%s err=%v", proposalID, actor.UserID, err)
		appErr := mapTransitionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[proposal][handler] patch success proposal_id=%s status=%s", updated.ID, updated.Status)

	c.JSON(http.StatusOK, response.FromProposal(updated))
}

// GetAuditTrail returns the proposal's ordered audit entries. Access is
// limited to managers and the proposal's own creator.
func (h *ProposalHandler) GetAuditTrail(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	entries, err := h.usecase.AuditTrail(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapTransitionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func mapTransitionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalID),
		errors.Is(err, usecase.ErrEmptyPatch),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidOperator),
		errors.Is(err, usecase.ErrInvalidConsultantEmail),
		errors.Is(err, usecase.ErrPastTargetDate),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidValue),
		errors.Is(err, usecase.ErrInvalidCNPJ),
		errors.Is(err, usecase.ErrMissingConsultantFields):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCreatorImmutable):
		return pkg.NewDomainErrorSimple("CREATOR_IMMUTABLE", "Proposal creator cannot be changed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed", http.StatusForbidden)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalAlreadyClaimed):
		return pkg.NewDomainErrorSimple("PROPOSAL_ALREADY_CLAIMED", "Proposal already claimed by another analyst", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
