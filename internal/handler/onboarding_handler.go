package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/maqalat/internal/model"
	"github.com/hitoshi/maqalat/internal/onboarding"
)

// OnboardingServiceInterface はオンボーディングハンドラーが必要とするサービスインターフェース。
type OnboardingServiceInterface interface {
	Status(ctx context.Context) bool
	Begin(ctx context.Context, editing bool) (onboarding.Draft, error)
	Current(ctx context.Context) onboarding.Draft
	Generate(ctx context.Context, interests string) (onboarding.Draft, error)
	Toggle(ctx context.Context, categoryID string) (onboarding.Draft, error)
	Save(ctx context.Context) ([]model.Category, error)
}

// OnboardingHandler は興味入力からカテゴリ保存までのHTTPハンドラー。
type OnboardingHandler struct {
	service OnboardingServiceInterface
}

// NewOnboardingHandler はOnboardingHandlerを生成する。
func NewOnboardingHandler(service OnboardingServiceInterface) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

type statusResponse struct {
	Completed bool `json:"completed"`
}

type beginRequest struct {
	Editing bool `json:"editing"`
}

type generateRequest struct {
	Interests string `json:"interests"`
}

type saveResponse struct {
	Categories []model.Category `json:"categories"`
}

// Status はオンボーディング完了状態を返す。
// GET /api/onboarding/status
func (h *OnboardingHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Completed: h.service.Status(r.Context())})
}

// Begin は下書きを開始する。ボディ省略時は新規作成モード。
// POST /api/onboarding/draft
func (h *OnboardingHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	draft, err := h.service.Begin(r.Context(), req.Editing)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

// Current は現在の下書きを返す。
// GET /api/onboarding/draft
func (h *OnboardingHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Current(r.Context()))
}

// Generate は興味テキストからカテゴリを生成する。
// POST /api/onboarding/draft/generate
func (h *OnboardingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	draft, err := h.service.Generate(r.Context(), req.Interests)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Toggle はカテゴリの選択状態を反転する。
// POST /api/onboarding/draft/categories/{id}/toggle
func (h *OnboardingHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	draft, err := h.service.Toggle(r.Context(), categoryID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Save は選択中のカテゴリと興味テキストを保存する。
// POST /api/onboarding/draft/save
func (h *OnboardingHandler) Save(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.Save(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Categories: saved})
}
