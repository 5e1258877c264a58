package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/pkg/cryptox"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// UserService registers users and looks them up.
type UserService struct {
	Store store.Store
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,notblank"`
}

// Register validates in, hashes the password and stores a new user.
// Field problems, including a taken username or email, are returned as a
// *ValidationError.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	verr := &ValidationError{}
	if err := validateStruct(in); err != nil {
		if !errors.As(err, &verr) {
			return domain.User{}, err
		}
	}

	if err := s.checkTaken(ctx, in, verr); err != nil {
		return domain.User{}, err
	}
	if err := verr.err(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent registration.
		verr = &ValidationError{}
		if err := s.checkTaken(ctx, in, verr); err != nil {
			return domain.User{}, err
		}
		if verr.err() == nil {
			verr.add("username", msgUsernameTaken)
		}
		return domain.User{}, verr
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// checkTaken adds uniqueness errors for fields that passed format checks.
func (s *UserService) checkTaken(ctx context.Context, in RegisterInput, verr *ValidationError) error {
	if _, bad := verr.Fields["username"]; !bad {
		taken, err := s.Store.Users().UsernameExists(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			verr.add("username", msgUsernameTaken)
		}
	}
	if _, bad := verr.Fields["email"]; !bad {
		taken, err := s.Store.Users().EmailExists(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			verr.add("email", msgEmailTaken)
		}
	}
	return nil
}

// GetCurrentUser returns the profile of caller. A caller whose account no
// longer exists is treated as unauthenticated.
func (s *UserService) GetCurrentUser(ctx context.Context, caller *domain.Identity) (domain.User, error) {
	if caller == nil {
		return domain.User{}, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
