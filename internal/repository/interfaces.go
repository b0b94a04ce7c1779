// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"
)

// ErrStorageUnavailable はストレージに到達できない場合のエラー。
var ErrStorageUnavailable = errors.New("storage unavailable")

// KeyValueRepository はキー・バリュー形式の永続化インターフェース。
// 端末ローカルのストレージに相当し、app_settingsテーブルで実装する。
type KeyValueRepository interface {
	// Get は指定キーの値を取得する。キーが存在しない場合はokがfalseになる。
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set は指定キーに値を保存する。既存の値は上書きする。
	Set(ctx context.Context, key, value string) error

	// Delete は指定キーを削除する。存在しない場合もエラーにしない。
	Delete(ctx context.Context, key string) error
}

// Pinger は接続確認用のインターフェース。
// *sql.DB はこれを満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}
