package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corretora_xpto/internal/adapter/http/handlers/mocks"
	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestGoalHandler_GetGoal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewGoalHandler(mocks.NewMockIGoalUseCase(ctrl))

		r := gin.New()
		r.GET("/v1/goals/:user_id", h.GetGoal)

		req := httptest.NewRequest(http.MethodGet, "/v1/goals/c-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asConsultor)
		r.GET("/v1/goals/:user_id", h.GetGoal)

		uc.EXPECT().Get(gomock.Any(), asConsultor, "c-2").Return(entities.Goal{}, usecase.ErrForbidden)

		req := httptest.NewRequest(http.MethodGet, "/v1/goals/c-2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asGestor)
		r.GET("/v1/goals/:user_id", h.GetGoal)

		uc.EXPECT().Get(gomock.Any(), asGestor, "c-9").Return(entities.Goal{}, usecase.ErrGoalNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/goals/c-9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asConsultor)
		r.GET("/v1/goals/:user_id", h.GetGoal)

		uc.EXPECT().Get(gomock.Any(), asConsultor, "c-1").Return(entities.Goal{UserID: "c-1", TargetValue: 10000, AchievedValue: 4500.5, UpdatedAt: time.Now().UTC()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/goals/c-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["user_id"] != "c-1" || resp["achieved_value"] != 4500.5 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestGoalHandler_SetGoalTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewGoalHandler(mocks.NewMockIGoalUseCase(ctrl))

		r := routerAs(asGestor)
		r.PUT("/v1/goals/:user_id/target", h.SetGoalTarget)

		req := httptest.NewRequest(http.MethodPut, "/v1/goals/c-1/target", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asAnalista)
		r.PUT("/v1/goals/:user_id/target", h.SetGoalTarget)

		uc.EXPECT().SetTarget(gomock.Any(), asAnalista, "c-1", 5000.0).Return(entities.Goal{}, usecase.ErrForbidden)

		req := httptest.NewRequest(http.MethodPut, "/v1/goals/c-1/target", bytes.NewBufferString(`{"target_value":5000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asGestor)
		r.PUT("/v1/goals/:user_id/target", h.SetGoalTarget)

		uc.EXPECT().SetTarget(gomock.Any(), asGestor, "c-1", 12000.0).Return(entities.Goal{UserID: "c-1", TargetValue: 12000}, nil)

		req := httptest.NewRequest(http.MethodPut, "/v1/goals/c-1/target", bytes.NewBufferString(`{"target_value":12000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestGoalHandler_RecomputeGoal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asConsultor)
		r.POST("/v1/goals/:user_id/recompute", h.RecomputeGoal)

		uc.EXPECT().Recompute(gomock.Any(), asConsultor, "c-1").Return(entities.Goal{}, usecase.ErrForbidden)

		req := httptest.NewRequest(http.MethodPost, "/v1/goals/c-1/recompute", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIGoalUseCase(ctrl)
		h := NewGoalHandler(uc)

		r := routerAs(asGestor)
		r.POST("/v1/goals/:user_id/recompute", h.RecomputeGoal)

		uc.EXPECT().Recompute(gomock.Any(), asGestor, "c-1").Return(entities.Goal{UserID: "c-1", AchievedValue: 7500}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/goals/c-1/recompute", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["achieved_value"] != 7500.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
