package adapters

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"campus_backend/internal/feature/signup/domain"
	"campus_backend/internal/feature/signup/domain/entity"
	"campus_backend/internal/feature/signup/usecase"
)

// MongoStore はStoreインターフェースのMongoDB実装です。
// mongo-driverを使用してドキュメント操作を行います。
type MongoStore struct {
	users   *mongo.Collection
	pending *mongo.Collection
	resets  *mongo.Collection
}

// MongoStoreがStoreを実装していることをコンパイル時に検証します。
var _ usecase.Store = (*MongoStore)(nil)

// NewMongoStore は指定されたデータベースでMongoStoreの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:   db.Collection("users"),
		pending: db.Collection("pending_users"),
		resets:  db.Collection("reset_tokens"),
	}
}

// EnsureIndexes はユーザーのメールアドレスに一意インデックスを作成します。
// 重複登録に対する唯一の安全網なので、起動時に必ず呼び出します。
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// UpsertPending は保留中登録をメールアドレスをキーにupsertします。
// 既存エントリの上書きにより直前のOTPは無効になります。
func (s *MongoStore) UpsertPending(ctx context.Context, p *entity.PendingRegistration) error {
	_, err := s.pending.ReplaceOne(ctx,
		bson.M{"_id": p.Email}, p,
		options.Replace().SetUpsert(true))
	return err
}

// FindPending はメールアドレスで保留中登録を取得します。
// 存在しない場合、domain.ErrOTPNotFoundを返します。
func (s *MongoStore) FindPending(ctx context.Context, email string) (*entity.PendingRegistration, error) {
	var p entity.PendingRegistration
	if err := s.pending.FindOne(ctx, bson.M{"_id": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &p, nil
}

// DeletePending は保留中登録を削除します。存在しなくてもエラーにしません。
func (s *MongoStore) DeletePending(ctx context.Context, email string) error {
	_, err := s.pending.DeleteOne(ctx, bson.M{"_id": email})
	return err
}

// CreateUser は新規ユーザーを挿入します。
// メールアドレスの一意インデックス違反はdomain.ErrUserAlreadyExistsにマップします。
func (s *MongoStore) CreateUser(ctx context.Context, u *entity.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindUserByEmail はメールアドレスでユーザーを取得します。
// 存在しない場合、domain.ErrUserNotFoundを返します。
func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser は保存済みユーザーをIDをキーに上書きします。
func (s *MongoStore) UpdateUser(ctx context.Context, u *entity.User) error {
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CreateResetToken はリセットトークンを挿入します。
func (s *MongoStore) CreateResetToken(ctx context.Context, t *entity.PasswordResetToken) error {
	_, err := s.resets.InsertOne(ctx, t)
	return err
}

// FindByResetToken はトークン値でリセットトークンを取得します。
// 存在しない場合、domain.ErrResetTokenInvalidを返します。
func (s *MongoStore) FindByResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	if err := s.resets.FindOne(ctx, bson.M{"_id": token}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return &t, nil
}

// DeleteResetToken はリセットトークンを削除します。
func (s *MongoStore) DeleteResetToken(ctx context.Context, token string) error {
	_, err := s.resets.DeleteOne(ctx, bson.M{"_id": token})
	return err
}
