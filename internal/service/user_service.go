package service

import (
	"context"

	"medlex/internal/models"
	"medlex/internal/policy"
	"medlex/internal/repository"
	"medlex/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns identity state and the role-elevation request flow.
type UserService struct {
	userRepo    repository.UserRepository
	roleReqRepo repository.RoleRequestRepository
	bcryptCost  int
}

// RoleChangeResult reports whether a role-change submission was queued.
type RoleChangeResult struct {
	Queued bool         `json:"queued"`
	User   *models.User `json:"user"`
}

// NewUserService returns a new UserService. bcryptCost is validated at config
// load, before any service is constructed.
func NewUserService(userRepo repository.UserRepository, roleReqRepo repository.RoleRequestRepository, bcryptCost int) *UserService {
	return &UserService{userRepo: userRepo, roleReqRepo: roleReqRepo, bcryptCost: bcryptCost}
}

// GetProfile returns the account for the given ID.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile changes the display name. Name edits carry no moderation
// semantics and always apply directly.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, name string) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account. The pending elevation request for the
// account, if any, goes with it.
func (s *UserService) DeleteAccount(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// UpdatePassword replaces the credential hash after verifying the old
// password and the strength of the new one.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.NewValidationError("Old password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// RequestRoleChange queues a role-change request for admin review. Requesting
// the current tier is a silent no-op; a re-submission overwrites the existing
// request in place rather than duplicating it.
func (s *UserService) RequestRoleChange(ctx context.Context, id uint, newRole models.Role) (*RoleChangeResult, error) {
	if !policy.Valid(newRole) {
		return nil, models.NewValidationError("Invalid role")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == newRole {
		return &RoleChangeResult{Queued: false, User: user}, nil
	}

	if err := s.roleReqRepo.Upsert(ctx, &models.RoleChangeRequest{
		UserID:        user.ID,
		CurrentRole:   user.Role,
		RequestedRole: newRole,
	}); err != nil {
		return nil, err
	}
	return &RoleChangeResult{Queued: true, User: user}, nil
}

// ListRoleChangeRequests returns pending elevation requests joined with
// requester identity.
func (s *UserService) ListRoleChangeRequests(ctx context.Context) ([]models.RoleChangeRequest, error) {
	return s.roleReqRepo.List(ctx)
}

// ResolveRoleChange sets the account's tier directly and consumes the
// matching pending request so resolved requests do not linger in listings.
func (s *UserService) ResolveRoleChange(ctx context.Context, id uint, newRole models.Role) (*models.User, error) {
	if !policy.Valid(newRole) {
		return nil, models.NewValidationError("Invalid role")
	}

	user, err := s.userRepo.UpdateRole(ctx, id, newRole)
	if err != nil {
		return nil, err
	}
	if err := s.roleReqRepo.DeleteByUserID(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}
