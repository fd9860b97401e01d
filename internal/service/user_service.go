package service

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/pkg/logger"
	"goldshop-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateUserRequest struct {
	Username          string     `json:"username" validate:"required,min=3"`
	Email             string     `json:"email" validate:"required,email"`
	Password          string     `json:"password" validate:"required,min=8"`
	Role              model.Role `json:"role" validate:"required,oneof=Admin Manager Employee"`
	BranchID          *uint      `json:"branch_id"`
	IsWarehouseKeeper bool       `json:"is_warehouse_keeper"`
}

type UpdateUserRequest struct {
	Email             *string     `json:"email" validate:"omitempty,email"`
	Role              *model.Role `json:"role" validate:"omitempty,oneof=Admin Manager Employee"`
	BranchID          *uint       `json:"branch_id"`
	IsWarehouseKeeper *bool       `json:"is_warehouse_keeper"`
	Enabled           *bool       `json:"is_active"`
}

// UserService covers staff account administration. Every operation is
// admin-only; regular users touch their own account through AuthService.
type UserService interface {
	CreateUser(actor policy.Actor, req *CreateUserRequest) (*model.User, error)
	UpdateUser(actor policy.Actor, id uint, req *UpdateUserRequest) (*model.User, error)
	GetUser(actor policy.Actor, id uint) (*model.User, error)
	ListUsers(actor policy.Actor, includeDeleted bool) ([]model.User, error)
	DeleteUser(actor policy.Actor, id uint) error
	RestoreUser(actor policy.Actor, id uint) error
	SetPassword(actor policy.Actor, id uint, newPassword string) error
}

type userService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

func NewUserService(userRepo repository.UserRepository, branchRepo repository.BranchRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

func (s *userService) CreateUser(actor policy.Actor, req *CreateUserRequest) (*model.User, error) {
	if err := requireAdmin(actor, "creating users"); err != nil {
		return nil, err
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	// Admins float above branches; everyone else needs one.
	if req.Role != model.RoleAdmin {
		if req.BranchID == nil {
			return nil, apperr.Wrap(apperr.ErrValidation, "%s accounts need a branch", req.Role)
		}
		if _, err := s.branchRepo.FindByID(*req.BranchID); err != nil {
			return nil, err
		}
	} else {
		req.BranchID = nil
	}

	user := &model.User{
		Username:          req.Username,
		Email:             req.Email,
		Role:              req.Role,
		BranchID:          req.BranchID,
		IsWarehouseKeeper: req.IsWarehouseKeeper,
		Enabled:           true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.CreatedByID = &actor.ID

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	logger.Info("user", "account created", logrus.Fields{
		"user_id":  user.ID,
		"role":     user.Role,
		"admin_id": actor.ID,
	})
	return user, nil
}

func (s *userService) UpdateUser(actor policy.Actor, id uint, req *UpdateUserRequest) (*model.User, error) {
	if err := requireAdmin(actor, "editing users"); err != nil {
		return nil, err
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.FindByID(*req.BranchID); err != nil {
			return nil, err
		}
		user.BranchID = req.BranchID
	}
	if user.Role == model.RoleAdmin {
		user.BranchID = nil
	} else if user.BranchID == nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "%s accounts need a branch", user.Role)
	}
	if req.IsWarehouseKeeper != nil {
		user.IsWarehouseKeeper = *req.IsWarehouseKeeper
	}

	disabled := req.Enabled != nil && !*req.Enabled && user.Enabled
	if req.Enabled != nil {
		user.Enabled = *req.Enabled
	}
	// Disabling kicks the live session immediately.
	if disabled {
		user.TokenVersion = uuid.New().String()
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(actor policy.Actor, id uint) (*model.User, error) {
	if err := requireAdmin(actor, "viewing user accounts"); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(id)
}

func (s *userService) ListUsers(actor policy.Actor, includeDeleted bool) ([]model.User, error) {
	if err := requireAdmin(actor, "listing users"); err != nil {
		return nil, err
	}
	return s.userRepo.FindAll(includeDeleted)
}

func (s *userService) DeleteUser(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "deleting users"); err != nil {
		return err
	}
	if id == actor.ID {
		return apperr.Wrap(apperr.ErrValidation, "cannot delete your own account")
	}
	return s.userRepo.SoftDelete(id)
}

func (s *userService) RestoreUser(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring users"); err != nil {
		return err
	}
	return s.userRepo.Restore(id)
}

// SetPassword lets an admin reset someone's password without knowing
// the old one. The token version rotates so the old session dies.
func (s *userService) SetPassword(actor policy.Actor, id uint, newPassword string) error {
	if err := requireAdmin(actor, "resetting passwords"); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return apperr.Wrap(apperr.ErrValidation, "password must be at least 8 characters")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.TokenVersion = uuid.New().String()
	return s.userRepo.Update(user)
}
