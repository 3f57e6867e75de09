package routes

import (
	"corretora_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProposals = "/proposals"
	PathMetrics   = "/metrics"
	PathGoals     = "/goals"
)

func addProposalRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler, metricsHandler *handlers.MetricsHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("/:id", proposalHandler.GetProposal)
		proposals.POST("/:id/claim", proposalHandler.ClaimProposal)
		proposals.PATCH("/:id", proposalHandler.PatchProposal)
		proposals.GET("/:id/audit", proposalHandler.GetAuditTrail)
	}

	rg.GET(PathMetrics, metricsHandler.GetMetrics)
}

func addGoalRoutes(rg *gin.RouterGroup, goalHandler *handlers.GoalHandler) {
	goals := rg.Group(PathGoals)
	{
		goals.GET("/:user_id", goalHandler.GetGoal)
		goals.PUT("/:user_id/target", goalHandler.SetGoalTarget)
		goals.POST("/:user_id/recompute", goalHandler.RecomputeGoal)
	}
}
