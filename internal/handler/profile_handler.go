package handler

import (
	"net/http"

	"github.com/hitoshi/maqalat/internal/model"
)

// GetProfile はドロワーに表示するユーザー情報を返す。
// 単一プロファイル運用のため常に固定値。
// GET /api/profile
func GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.MockProfile)
}
