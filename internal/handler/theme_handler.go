package handler

import (
	"net/http"

	"github.com/hitoshi/maqalat/internal/model"
)

// ThemeStore はテーマハンドラーが必要とするテーマ状態のインターフェース。
type ThemeStore interface {
	Snapshot() (model.Theme, model.Palette)
	SetTheme(t model.Theme)
	Toggle() model.Theme
}

// ThemeHandler は表示テーマのHTTPハンドラー。
type ThemeHandler struct {
	store ThemeStore
}

// NewThemeHandler はThemeHandlerを生成する。
func NewThemeHandler(store ThemeStore) *ThemeHandler {
	return &ThemeHandler{store: store}
}

type themeResponse struct {
	Theme  model.Theme   `json:"theme"`
	Colors model.Palette `json:"colors"`
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme は現在のテーマと配色を返す。
// GET /api/theme
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w)
}

// SetTheme はテーマを設定する。永続化は非同期で行われ、失敗してもレスポンスには影響しない。
// PUT /api/theme
func (h *ThemeHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req setThemeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	t, ok := model.ParseTheme(req.Theme)
	if !ok {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidThemeError(req.Theme))
		return
	}

	h.store.SetTheme(t)
	h.writeSnapshot(w)
}

// Toggle はダークとライトを切り替える。
// POST /api/theme/toggle
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.store.Toggle()
	h.writeSnapshot(w)
}

func (h *ThemeHandler) writeSnapshot(w http.ResponseWriter) {
	t, colors := h.store.Snapshot()
	writeJSON(w, http.StatusOK, themeResponse{Theme: t, Colors: colors})
}
