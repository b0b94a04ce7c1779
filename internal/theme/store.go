// Package theme は表示テーマの状態を管理する。
//
// Store はアプリケーションのルートで1つ生成し、必要なコンポーネントへ渡す。
// テーマ変更はメモリ上で即座に確定し、購読者へ同期的に通知したうえで非同期に永続化する。
// 永続化の失敗はログに記録するのみで、メモリ上の状態は巻き戻さない。
package theme

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/maqalat/internal/model"
)

// DefaultWriteTimeout は永続化1回あたりのタイムアウトの既定値。
const DefaultWriteTimeout = 5 * time.Second

// Persister はテーマの保存先。storage.Gateway がこれを満たす。
type Persister interface {
	SaveTheme(ctx context.Context, t model.Theme) error
	Theme(ctx context.Context) (model.Theme, bool)
}

type listener struct {
	id uint64
	fn func()
}

// Store はテーマ状態と購読者を保持する。
type Store struct {
	mu        sync.RWMutex
	current   model.Theme
	listeners []listener
	nextID    uint64

	palettes  map[model.Theme]model.Palette
	persister Persister
	timeout   time.Duration
	logger    *slog.Logger

	writeMu sync.Mutex
	pending sync.WaitGroup
}

// Option はStoreの設定を変更する。
type Option func(*Store)

// WithLogger はロガーを設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWriteTimeout は永続化のタイムアウトを設定する。0以下は無視する。
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPalettes は配色を差し替える。
func WithPalettes(p map[model.Theme]model.Palette) Option {
	return func(s *Store) {
		if p != nil {
			s.palettes = p
		}
	}
}

// New はダークテーマを初期状態とするStoreを生成する。
// persisterがnilの場合は永続化を行わない。
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		current:   model.ThemeDark,
		palettes:  DefaultPalettes(),
		persister: persister,
		timeout:   DefaultWriteTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current は現在のテーマを返す。
func (s *Store) Current() model.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Colors は現在のテーマに対応する配色を返す。
func (s *Store) Colors() model.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palettes[s.current]
}

// Snapshot はテーマと配色を同一時点の組として返す。
func (s *Store) Snapshot() (model.Theme, model.Palette) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.palettes[s.current]
}

// SetTheme はテーマを変更する。
// 同じテーマが指定された場合も購読者へ通知し、永続化を行う。
func (s *Store) SetTheme(t model.Theme) {
	s.apply(func(model.Theme) model.Theme { return t })
}

// Toggle はダークとライトを切り替え、変更後のテーマを返す。
func (s *Store) Toggle() model.Theme {
	return s.apply(model.Theme.Opposite)
}

// apply はテーマを確定し、購読者へ通知してから永続化を開始する。
func (s *Store) apply(next func(model.Theme) model.Theme) model.Theme {
	s.mu.Lock()
	s.current = next(s.current)
	t := s.current
	fns := make([]func(), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	s.persist()
	return t
}

// Subscribe はテーマ変更時に呼ばれる関数を登録する。
// 返り値の関数で登録を解除する。解除は何度呼んでもよい。
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// LoadSaved は保存済みのテーマを読み込む。
// 有効な値があれば購読者へ通知せずに上書きし、なければ現在のテーマを維持する。
func (s *Store) LoadSaved(ctx context.Context) {
	if s.persister == nil {
		return
	}
	t, ok := s.persister.Theme(ctx)
	if !ok {
		return
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	s.logger.Info("restored saved theme", slog.String("theme", string(t)))
}

// Wait は実行中の永続化がすべて完了するまで待機する。
func (s *Store) Wait() {
	s.pending.Wait()
}

// persist は書き込み時点のテーマを非同期に保存する。
// 書き込みは直列化され、最後の書き込みがメモリ上の状態と一致する。
func (s *Store) persist() {
	if s.persister == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		t := s.Current()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.persister.SaveTheme(ctx, t); err != nil {
			s.logger.Warn("failed to persist theme",
				slog.String("theme", string(t)),
				slog.String("error", err.Error()),
			)
		}
	}()
}
