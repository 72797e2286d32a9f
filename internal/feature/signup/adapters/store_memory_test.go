package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus_backend/internal/feature/signup/domain"
	"campus_backend/internal/feature/signup/domain/entity"
)

func samplePending(email string) *entity.PendingRegistration {
	return &entity.PendingRegistration{
		Email:        email,
		OTP:          "123456",
		OTPExpiresAt: time.Date(2025, 6, 15, 12, 10, 0, 0, time.UTC),
		Role:         entity.RoleStudent,
	}
}

func sampleUser(email string) *entity.User {
	return &entity.User{
		ID:           "user-1",
		Name:         "Taro",
		Email:        email,
		PasswordHash: "$2a$12$hash",
		Role:         entity.RoleStudent,
		Verified:     true,
		CreatedAt:    time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_Pending(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("find missing", func(t *testing.T) {
		if _, err := s.FindPending(ctx, "user@example.com"); !errors.Is(err, domain.ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound, got %v", err)
		}
	})

	t.Run("upsert and find", func(t *testing.T) {
		p := samplePending("user@example.com")
		if err := s.UpsertPending(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := s.FindPending(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.OTP != "123456" || got.Role != entity.RoleStudent {
			t.Errorf("unexpected pending: %+v", got)
		}
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		p := samplePending("user@example.com")
		p.OTP = "654321"
		if err := s.UpsertPending(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := s.FindPending(ctx, "user@example.com")
		if got.OTP != "654321" {
			t.Errorf("expected the new OTP, got %q", got.OTP)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		got, _ := s.FindPending(ctx, "user@example.com")
		got.OTP = "tampered"

		again, _ := s.FindPending(ctx, "user@example.com")
		if again.OTP != "654321" {
			t.Error("expected stored pending to be unaffected by caller mutation")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.DeletePending(ctx, "user@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.FindPending(ctx, "user@example.com"); !errors.Is(err, domain.ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound after delete, got %v", err)
		}
		// 存在しないエントリの削除はエラーにしない
		if err := s.DeletePending(ctx, "user@example.com"); err != nil {
			t.Errorf("expected deleting a missing entry to succeed, got %v", err)
		}
	})
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("find missing", func(t *testing.T) {
		if _, err := s.FindUserByEmail(ctx, "taro@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("create and find", func(t *testing.T) {
		if err := s.CreateUser(ctx, sampleUser("taro@example.com")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := s.FindUserByEmail(ctx, "taro@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Taro" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("duplicate create is rejected", func(t *testing.T) {
		err := s.CreateUser(ctx, sampleUser("taro@example.com"))
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		u := sampleUser("taro@example.com")
		now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
		u.LastLoginAt = &now
		if err := s.UpdateUser(ctx, u); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := s.FindUserByEmail(ctx, "taro@example.com")
		if got.LastLoginAt == nil || !got.LastLoginAt.Equal(now) {
			t.Errorf("expected LastLoginAt %v, got %v", now, got.LastLoginAt)
		}
	})

	t.Run("update missing user", func(t *testing.T) {
		err := s.UpdateUser(ctx, sampleUser("nobody@example.com"))
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestMemoryStore_ResetTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	token := &entity.PasswordResetToken{
		Token:     "tok-1",
		Email:     "taro@example.com",
		ExpiresAt: time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC),
	}

	if _, err := s.FindByResetToken(ctx, "tok-1"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("expected ErrResetTokenInvalid, got %v", err)
	}

	if err := s.CreateResetToken(ctx, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.FindByResetToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "taro@example.com" {
		t.Errorf("unexpected token: %+v", got)
	}

	if err := s.DeleteResetToken(ctx, "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.FindByResetToken(ctx, "tok-1"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("expected ErrResetTokenInvalid after delete, got %v", err)
	}
}

func TestMemoryStore_Counts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.CreateUser(ctx, sampleUser("a@example.com"))
	_ = s.CreateUser(ctx, sampleUser("b@example.com"))
	_ = s.UpsertPending(ctx, samplePending("c@example.com"))
	_ = s.CreateResetToken(ctx, &entity.PasswordResetToken{Token: "tok-1", Email: "a@example.com"})

	users, pending, resets := s.Counts()
	if users != 2 || pending != 1 || resets != 1 {
		t.Errorf("expected counts (2,1,1), got (%d,%d,%d)", users, pending, resets)
	}
}
