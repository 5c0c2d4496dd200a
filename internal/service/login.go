package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
)

// LoginResult is what a successful login returns to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  auth.Identity
}

// AuthService authenticates users of any role.
type AuthService interface {
	// Login looks the email up among students, then teachers, then admins,
	// verifies the password and issues a token for the first match.
	// Returns ErrUserNotFound or ErrBadCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	stores   store.Stores
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates an AuthService.
func NewAuthService(
	stores store.Stores,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) AuthService {
	return &authService{
		stores:   stores,
		verifier: verifier,
		tokens:   tokens,
		logger:   componentLogger(logger, "auth_service"),
	}
}

// account is a user found during lookup.
type account struct {
	user domain.User
	plan string
}

func (s *authService) lookup(ctx context.Context, email string) (*account, error) {
	st, err := s.stores.Students.FindByEmail(ctx, email)
	if err == nil {
		return &account{user: st.User, plan: st.EffectivePlan()}, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	t, err := s.stores.Teachers.FindByEmail(ctx, email)
	if err == nil {
		return &account{user: t.User, plan: domain.DefaultPlan}, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	a, err := s.stores.Admins.FindByEmail(ctx, email)
	if err == nil {
		return &account{user: a.User, plan: domain.DefaultPlan}, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	return nil, domain.ErrUserNotFound
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	acct, err := s.lookup(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, err
		}
		log.Error("login lookup failed", "error", err)
		return nil, NewServiceError("auth", "login", err)
	}

	if err := s.verifier.Compare(acct.user.PasswordHash, password); err != nil {
		log.Debug("login password mismatch", "user_id", acct.user.ID, "rol", acct.user.Rol)
		return nil, domain.ErrBadCredentials
	}

	id := auth.Identity{
		ID:     acct.user.ID,
		Email:  acct.user.Email,
		Nombre: acct.user.Nombre,
		Rol:    acct.user.Rol,
		Plan:   acct.plan,
	}
	token, expiresAt, err := s.tokens.GenerateToken(ctx, id)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", id.ID)
		return nil, NewServiceError("auth", "login", err)
	}

	log.Info("user logged in", "user_id", id.ID, "rol", id.Rol)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Identity: id}, nil
}
