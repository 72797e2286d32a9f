package adapters

import (
	"context"
	"sync/atomic"

	"campus_backend/internal/feature/signup/domain/entity"
	"campus_backend/internal/feature/signup/usecase"
)

// Failover は2つのバックエンドを切り替えるStore実装です。
// 接続監視（platform/mongo.Watcher）がSetAvailableで状態を更新し、
// 各操作は呼び出し時点でアクティブなバックエンドに委譲されます。
//
// フェイルオーバーは片方向です。障害中にメモリ側へ書かれたデータは
// 再接続後に永続ストアへ再生されず、失われます（許容された制限）。
type Failover struct {
	primary   usecase.Store // MongoDBバックエンド（nilの場合は常にフォールバック）
	fallback  *MemoryStore
	available atomic.Bool
}

// FailoverがStoreを実装していることをコンパイル時に検証します。
var _ usecase.Store = (*Failover)(nil)

// NewFailover はFailoverの新しいインスタンスを生成します。
// primaryがnilでない場合、初期状態では利用可能とみなします。
func NewFailover(primary usecase.Store, fallback *MemoryStore) *Failover {
	f := &Failover{primary: primary, fallback: fallback}
	f.available.Store(primary != nil)
	return f
}

// SetAvailable は永続バックエンドの到達可否を更新します。
func (f *Failover) SetAvailable(ok bool) {
	if f.primary == nil {
		return
	}
	f.available.Store(ok)
}

// Available は永続バックエンドが現在アクティブかを返します。
func (f *Failover) Available() bool {
	return f.available.Load()
}

// current は呼び出し時点でアクティブなバックエンドを返します。
func (f *Failover) current() usecase.Store {
	if f.available.Load() {
		return f.primary
	}
	return f.fallback
}

func (f *Failover) UpsertPending(ctx context.Context, p *entity.PendingRegistration) error {
	return f.current().UpsertPending(ctx, p)
}

func (f *Failover) FindPending(ctx context.Context, email string) (*entity.PendingRegistration, error) {
	return f.current().FindPending(ctx, email)
}

func (f *Failover) DeletePending(ctx context.Context, email string) error {
	return f.current().DeletePending(ctx, email)
}

func (f *Failover) CreateUser(ctx context.Context, u *entity.User) error {
	return f.current().CreateUser(ctx, u)
}

func (f *Failover) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.current().FindUserByEmail(ctx, email)
}

func (f *Failover) UpdateUser(ctx context.Context, u *entity.User) error {
	return f.current().UpdateUser(ctx, u)
}

func (f *Failover) CreateResetToken(ctx context.Context, t *entity.PasswordResetToken) error {
	return f.current().CreateResetToken(ctx, t)
}

func (f *Failover) FindByResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	return f.current().FindByResetToken(ctx, token)
}

func (f *Failover) DeleteResetToken(ctx context.Context, token string) error {
	return f.current().DeleteResetToken(ctx, token)
}

// Status はヘルスチェック用に現在のモードと件数を返します。
// 永続バックエンドがアクティブな間、件数は"database"と報告されます。
func (f *Failover) Status() (mode string, users, otps, resets any) {
	if f.Available() {
		return "connected", "database", "database", "database"
	}
	u, p, r := f.fallback.Counts()
	return "memory", u, p, r
}
