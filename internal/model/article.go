// Package model はドメインモデルを定義する。
package model

// Article は組み込みカタログに含まれる記事を表す。
// 生成後は変更しない。
type Article struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"` // サニタイズ済みHTML
	Image        string `json:"image"`
	Source       string `json:"source"`
	Time         string `json:"time"` // 表示用文字列（タイムスタンプではない）
	CategorySlug string `json:"categorySlug"`
}

// Profile はドロワーに表示するモックユーザーを表す。
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MockProfile は単一プロファイル運用で使用する固定のユーザー情報。
var MockProfile = Profile{
	ID:     "1",
	Name:   "أحمد السالم",
	Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
}
