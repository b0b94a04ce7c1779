package repository

import (
	"context"
	"sync"
)

// MemoryKVRepo はメモリ上で動作するキー・バリューリポジトリ。
// テストおよびSTORAGE_DRIVER=memoryで使用する。プロセス終了で内容は失われる。
type MemoryKVRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKVRepo はMemoryKVRepoを生成する。
func NewMemoryKVRepo() *MemoryKVRepo {
	return &MemoryKVRepo{values: make(map[string]string)}
}

// Get は指定キーの値を取得する。
func (r *MemoryKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

// Set は指定キーに値を保存する。
func (r *MemoryKVRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Delete は指定キーを削除する。
func (r *MemoryKVRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

// PingContext は常に成功する。
func (r *MemoryKVRepo) PingContext(ctx context.Context) error {
	return nil
}

// compile-time interface check
var _ KeyValueRepository = (*MemoryKVRepo)(nil)
