// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// 表示言語はアラビア語固定のため、MessageとActionはアラビア語で記述する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, storage, feed, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmptyInterests    = "EMPTY_INTERESTS"
	ErrCodeNoActiveCategory  = "NO_ACTIVE_CATEGORY"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeArticleNotFound   = "ARTICLE_NOT_FOUND"
	ErrCodeSaveFailed        = "SAVE_FAILED"
	ErrCodeInvalidTheme      = "INVALID_THEME"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
)

// NewEmptyInterestsError は関心事が未入力の場合のエラーを生成する。
func NewEmptyInterestsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyInterests,
		Message:  "يرجى إدخال اهتماماتك أولاً",
		Category: "validation",
		Action:   "اكتب اهتماماتك ثم أعد المحاولة.",
	}
}

// NewNoActiveCategoryError は有効なカテゴリが1件もない状態で保存しようとした場合のエラーを生成する。
func NewNoActiveCategoryError() *APIError {
	return &APIError{
		Code:     ErrCodeNoActiveCategory,
		Message:  "يرجى اختيار فئة واحدة على الأقل",
		Category: "validation",
		Action:   "فعّل فئة واحدة على الأقل قبل الحفظ.",
	}
}

// NewCategoryNotFoundError は下書き内に指定カテゴリが存在しない場合のエラーを生成する。
func NewCategoryNotFoundError(categoryID string) *APIError {
	return &APIError{
		Code:     ErrCodeCategoryNotFound,
		Message:  fmt.Sprintf("الفئة غير موجودة: %s", categoryID),
		Category: "validation",
		Action:   "أعد إنشاء الفئات ثم حاول مرة أخرى.",
	}
}

// NewArticleNotFoundError は記事未検出エラーを生成する。
func NewArticleNotFoundError(articleID string) *APIError {
	return &APIError{
		Code:     ErrCodeArticleNotFound,
		Message:  fmt.Sprintf("المقال غير موجود: %s", articleID),
		Category: "feed",
		Action:   "تحقق من معرّف المقال.",
	}
}

// NewSaveFailedError は設定の保存に失敗した場合のエラーを生成する。
// 呼び出し側には再試行を促す。
func NewSaveFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeSaveFailed,
		Message:  "فشل في حفظ التفضيلات. يرجى المحاولة مرة أخرى.",
		Category: "storage",
		Action:   "انتظر قليلاً ثم أعد المحاولة.",
	}
}

// NewInvalidThemeError は無効なテーマ指定のエラーを生成する。
func NewInvalidThemeError(theme string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTheme,
		Message:  fmt.Sprintf("سمة غير صالحة: %s", theme),
		Category: "validation",
		Action:   "استخدم light أو dark.",
	}
}

// NewInvalidRequestError はリクエストボディの解析に失敗した場合のエラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "تعذّر تحليل جسم الطلب.",
		Category: "validation",
		Action:   "أرسل الطلب بصيغة JSON صحيحة.",
	}
}

// NewInternalError は内部エラーの汎用レスポンスを生成する。
// 詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "حدث خطأ داخلي.",
		Category: "system",
		Action:   "يرجى المحاولة مرة أخرى لاحقاً.",
	}
}

// NewRateLimitExceededError はレート制限を超過した場合のエラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "عدد كبير جداً من الطلبات.",
		Category: "system",
		Action:   "يرجى الانتظار ثم المحاولة مرة أخرى.",
	}
}
