// Package adapters はsignupフィーチャーのストレージ実装を提供します。
package adapters

import (
	"context"
	"sync"

	"campus_backend/internal/feature/signup/domain"
	"campus_backend/internal/feature/signup/domain/entity"
	"campus_backend/internal/feature/signup/usecase"
)

// MemoryStore はStoreインターフェースのプロセス内メモリ実装です。
// MongoDBが利用できない間のフォールバックとして使用されます。
// 停電時に書き込まれたデータは再接続時に失われます（仕様上の制限）。
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]*entity.User                // key: email
	pending map[string]*entity.PendingRegistration // key: email
	resets  map[string]*entity.PasswordResetToken  // key: token
}

// MemoryStoreがStoreを実装していることをコンパイル時に検証します。
var _ usecase.Store = (*MemoryStore)(nil)

// NewMemoryStore はMemoryStoreの新しいインスタンスを生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*entity.User),
		pending: make(map[string]*entity.PendingRegistration),
		resets:  make(map[string]*entity.PasswordResetToken),
	}
}

// UpsertPending は保留中登録を作成または上書きします。
func (s *MemoryStore) UpsertPending(_ context.Context, p *entity.PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.pending[p.Email] = &cp
	return nil
}

// FindPending はメールアドレスで保留中登録を取得します。
func (s *MemoryStore) FindPending(_ context.Context, email string) (*entity.PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[email]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	cp := *p
	return &cp, nil
}

// DeletePending は保留中登録を削除します。存在しなくてもエラーにしません。
func (s *MemoryStore) DeletePending(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, email)
	return nil
}

// CreateUser は新規ユーザーを追加します。
// 重複作成を防ぐため、存在チェックと挿入をロック下でアトミックに行います。
func (s *MemoryStore) CreateUser(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return domain.ErrUserAlreadyExists
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

// FindUserByEmail はメールアドレスでユーザーを取得します。
func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// UpdateUser は保存済みユーザーを上書きします。
func (s *MemoryStore) UpdateUser(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

// CreateResetToken はリセットトークンを保存します。
func (s *MemoryStore) CreateResetToken(_ context.Context, t *entity.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.resets[t.Token] = &cp
	return nil
}

// FindByResetToken はトークン値でリセットトークンを取得します。
func (s *MemoryStore) FindByResetToken(_ context.Context, token string) (*entity.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.resets[token]
	if !ok {
		return nil, domain.ErrResetTokenInvalid
	}
	cp := *t
	return &cp, nil
}

// DeleteResetToken はリセットトークンを削除します。
func (s *MemoryStore) DeleteResetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resets, token)
	return nil
}

// Counts はヘルスチェック用に各マップの件数を返します。
func (s *MemoryStore) Counts() (users, pending, resets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.pending), len(s.resets)
}
