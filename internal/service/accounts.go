package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
)

// accounts holds what every user-facing service needs: the three user
// collections, for email uniqueness across roles, and the password hasher.
type accounts struct {
	students store.StudentStore
	teachers store.TeacherStore
	admins   store.AdminStore
	hasher   auth.PasswordHasher
}

// owner identifies the record an email may already legitimately belong to.
type owner struct {
	rol domain.Role
	id  string
}

// ensureEmailFree fails with ErrEmailTaken when email is used by any user
// other than self.
func (a *accounts) ensureEmailFree(ctx context.Context, email string, self owner) error {
	if s, err := a.students.FindByEmail(ctx, email); err == nil {
		if self != (owner{domain.RoleStudent, s.ID}) {
			return domain.ErrEmailTaken
		}
	} else if !store.IsNotFoundError(err) {
		return err
	}

	if t, err := a.teachers.FindByEmail(ctx, email); err == nil {
		if self != (owner{domain.RoleTeacher, t.ID}) {
			return domain.ErrEmailTaken
		}
	} else if !store.IsNotFoundError(err) {
		return err
	}

	if ad, err := a.admins.FindByEmail(ctx, email); err == nil {
		if self != (owner{domain.RoleAdmin, ad.ID}) {
			return domain.ErrEmailTaken
		}
	} else if !store.IsNotFoundError(err) {
		return err
	}

	return nil
}

// prepareNew validates u, checks its email and replaces the plaintext
// password with a hash.
func (a *accounts) prepareNew(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.Password == "" {
		return domain.NewValidationError("password", "is required")
	}
	if err := a.ensureEmailFree(ctx, u.Email, owner{}); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Password = ""
	return nil
}

// preparePatch validates p, checks a changed email and hashes a new password.
func (a *accounts) preparePatch(ctx context.Context, p *domain.UserPatch, self owner, current string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Email != nil && *p.Email != current {
		if err := a.ensureEmailFree(ctx, *p.Email, self); err != nil {
			return err
		}
	}
	if p.Password != nil {
		hash, err := a.hasher.Hash(*p.Password)
		if err != nil {
			return err
		}
		p.PasswordHash = &hash
		p.Password = nil
	}
	return nil
}

func componentLogger(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("component", name))
}
