// Package model はドメインモデルを定義する。
package model

// Theme は表示テーマを表す。
type Theme string

const (
	// ThemeDark はダークテーマ。初期状態。
	ThemeDark Theme = "dark"
	// ThemeLight はライトテーマ。
	ThemeLight Theme = "light"
)

// ParseTheme は文字列をThemeに変換する。
// "light" と "dark" 以外はfalseを返す。
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), true
	default:
		return "", false
	}
}

// Opposite は反対側のテーマを返す。
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette はテーマごとの配色を表す。
type Palette struct {
	Background    string `json:"background" yaml:"background"`
	Surface       string `json:"surface" yaml:"surface"`
	Text          string `json:"text" yaml:"text"`
	TextSecondary string `json:"textSecondary" yaml:"textSecondary"`
	Primary       string `json:"primary" yaml:"primary"`
	PrimaryText   string `json:"primaryText" yaml:"primaryText"`
	Secondary     string `json:"secondary" yaml:"secondary"`
	Accent        string `json:"accent" yaml:"accent"`
	Border        string `json:"border" yaml:"border"`
	Overlay       string `json:"overlay" yaml:"overlay"`
}
