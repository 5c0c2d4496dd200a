package service

import (
	"context"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
)

// AdminService manages admin accounts.
type AdminService interface {
	Create(ctx context.Context, a *domain.Admin) error
	Get(ctx context.Context, id string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	Update(ctx context.Context, id string, patch *domain.AdminPatch) error
	Delete(ctx context.Context, id string) error
}

type adminService struct {
	accounts
	logger *slog.Logger
}

var _ AdminService = (*adminService)(nil)

// NewAdminService creates an AdminService over stores.
func NewAdminService(stores store.Stores, hasher auth.PasswordHasher, logger *slog.Logger) AdminService {
	return &adminService{
		accounts: accounts{
			students: stores.Students,
			teachers: stores.Teachers,
			admins:   stores.Admins,
			hasher:   hasher,
		},
		logger: componentLogger(logger, "admin_service"),
	}
}

func (s *adminService) Create(ctx context.Context, a *domain.Admin) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	a.Rol = domain.RoleAdmin
	if err := s.prepareNew(ctx, &a.User); err != nil {
		return translate("admin", "create", domain.EntityAdmin, "", err)
	}
	if err := s.admins.Create(ctx, a); err != nil {
		log.Error("failed to create admin", "error", err, "email", a.Email)
		return translate("admin", "create", domain.EntityAdmin, "", err)
	}

	log.Info("admin created", "admin_id", a.ID)
	return nil
}

func (s *adminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	a, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, translate("admin", "get", domain.EntityAdmin, id, err)
	}
	return a, nil
}

func (s *adminService) List(ctx context.Context) ([]*domain.Admin, error) {
	list, err := s.admins.List(ctx)
	if err != nil {
		return nil, translate("admin", "list", domain.EntityAdmin, "", err)
	}
	return list, nil
}

func (s *adminService) Update(ctx context.Context, id string, patch *domain.AdminPatch) error {
	current, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return translate("admin", "update", domain.EntityAdmin, id, err)
	}
	if err := s.preparePatch(ctx, &patch.UserPatch, owner{domain.RoleAdmin, id}, current.Email); err != nil {
		return translate("admin", "update", domain.EntityAdmin, id, err)
	}
	if err := s.admins.Update(ctx, id, patch); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update admin", "error", err, "admin_id", id)
		return translate("admin", "update", domain.EntityAdmin, id, err)
	}
	return nil
}

func (s *adminService) Delete(ctx context.Context, id string) error {
	if err := s.admins.Delete(ctx, id); err != nil {
		return translate("admin", "delete", domain.EntityAdmin, id, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("admin deleted", "admin_id", id)
	return nil
}
