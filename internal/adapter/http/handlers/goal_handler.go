package handlers

import (
	"errors"
	"log"
	"net/http"

	"corretora_xpto/internal/adapter/http/dto/request"
	"corretora_xpto/internal/adapter/http/dto/response"
	"corretora_xpto/internal/adapter/http/middleware"
	"corretora_xpto/internal/usecase"
	"corretora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// GoalHandler handles HTTP requests for the goal ledger: reads, target
// adjustments and the recompute repair path.

type GoalHandler struct {
	usecase usecase.IGoalUseCase
}

func NewGoalHandler(uc usecase.IGoalUseCase) *GoalHandler {
	return &GoalHandler{usecase: uc}
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	g, err := h.usecase.Get(c.Request.Context(), actor, c.Param("user_id"))
	if err != nil {
		appErr := mapGoalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromGoal(g))
}

func (h *GoalHandler) SetGoalTarget(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	var payload request.GoalTargetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	g, err := h.usecase.SetTarget(c.Request.Context(), actor, c.Param("user_id"), payload.TargetValue)
	if err != nil {
		appErr := mapGoalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromGoal(g))
}

// RecomputeGoal rebuilds achieved_value from the proposals table; it is the
// reconciliation path for the incrementally-maintained ledger.
func (h *GoalHandler) RecomputeGoal(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	userID := c.Param("user_id")
	log.Printf("[goal][handler] recompute start user=%s actor=%s", userID, actor.UserID)

	g, err := h.usecase.Recompute(c.Request.Context(), actor, userID)
	if err != nil {
		log.Printf("[goal][handler] recompute failed user=%s err=%v", userID, err)
		appErr := mapGoalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[goal][handler] recompute success user=%s achieved=%.2f", g.UserID, g.AchievedValue)

	c.JSON(http.StatusOK, response.FromGoal(g))
}

func mapGoalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidTargetValue):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed", http.StatusForbidden)
	case errors.Is(err, usecase.ErrGoalNotFound):
		return pkg.NewDomainErrorSimple("GOAL_NOT_FOUND", "Goal not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
