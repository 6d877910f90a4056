package service

import (
	"context"
	"testing"

	"medlex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("invalid name rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(t), noopRoleRequestRepo(t), bcrypt.MinCost)
		_, err := svc.UpdateProfile(context.Background(), 1, "   ")
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("name is saved", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Old Name"}, nil
		}
		var saved *models.User
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		user, err := svc.UpdateProfile(context.Background(), 1, "New Name")
		require.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		require.NotNil(t, saved)
		assert.Equal(t, "New Name", saved.Name)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	t.Parallel()

	t.Run("wrong old password rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: hashFor(t, "Correct1!pass")}, nil
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		err := svc.UpdatePassword(context.Background(), 1, "Wrong1!pass", "NewStr0ng!pass")
		assertAppError(t, err, "VALIDATION_ERROR")
		assert.Contains(t, err.Error(), "Old password is incorrect")
	})

	t.Run("weak new password rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: hashFor(t, "Correct1!pass")}, nil
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		err := svc.UpdatePassword(context.Background(), 1, "Correct1!pass", "weak")
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("rehashes and saves on success", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: hashFor(t, "Correct1!pass")}, nil
		}
		var saved *models.User
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		require.NoError(t, svc.UpdatePassword(context.Background(), 1, "Correct1!pass", "NewStr0ng!pass"))
		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("NewStr0ng!pass")))
	})
}

func TestUserService_RequestRoleChange(t *testing.T) {
	t.Parallel()

	t.Run("invalid tier rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(t), noopRoleRequestRepo(t), bcrypt.MinCost)
		_, err := svc.RequestRoleChange(context.Background(), 1, models.Role("superuser"))
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("requesting the current tier is a no-op", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleEditor}, nil
		}
		// roleReqRepo is noop: a same-tier request must not reach the store.
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		result, err := svc.RequestRoleChange(context.Background(), 1, models.RoleEditor)
		require.NoError(t, err)
		assert.False(t, result.Queued)
	})

	t.Run("different tier queues an upsert", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		}
		roleRepo := noopRoleRequestRepo(t)
		var queued *models.RoleChangeRequest
		roleRepo.upsertFn = func(_ context.Context, req *models.RoleChangeRequest) error {
			queued = req
			return nil
		}
		svc := NewUserService(userRepo, roleRepo, bcrypt.MinCost)

		result, err := svc.RequestRoleChange(context.Background(), 5, models.RoleEditor)
		require.NoError(t, err)
		assert.True(t, result.Queued)
		require.NotNil(t, queued)
		assert.EqualValues(t, 5, queued.UserID)
		assert.Equal(t, models.RoleUser, queued.CurrentRole)
		assert.Equal(t, models.RoleEditor, queued.RequestedRole)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found")
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		_, err := svc.RequestRoleChange(context.Background(), 404, models.RoleEditor)
		assertAppError(t, err, "NOT_FOUND")
	})
}

func TestUserService_ResolveRoleChange(t *testing.T) {
	t.Parallel()

	t.Run("invalid tier rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(t), noopRoleRequestRepo(t), bcrypt.MinCost)
		_, err := svc.ResolveRoleChange(context.Background(), 1, models.Role("owner"))
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("sets tier and consumes the pending request", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.updateRoleFn = func(_ context.Context, id uint, role models.Role) (*models.User, error) {
			return &models.User{ID: id, Role: role}, nil
		}
		roleRepo := noopRoleRequestRepo(t)
		var consumedUserID uint
		roleRepo.deleteByUserIDFn = func(_ context.Context, userID uint) error {
			consumedUserID = userID
			return nil
		}
		svc := NewUserService(userRepo, roleRepo, bcrypt.MinCost)

		user, err := svc.ResolveRoleChange(context.Background(), 5, models.RoleEditor)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEditor, user.Role)
		assert.EqualValues(t, 5, consumedUserID)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo(t)
		userRepo.updateRoleFn = func(_ context.Context, _ uint, _ models.Role) (*models.User, error) {
			return nil, models.NewNotFoundError("User not found")
		}
		svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

		_, err := svc.ResolveRoleChange(context.Background(), 404, models.RoleEditor)
		assertAppError(t, err, "NOT_FOUND")
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo(t)
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}
	deleted := false
	userRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewUserService(userRepo, noopRoleRequestRepo(t), bcrypt.MinCost)

	require.NoError(t, svc.DeleteAccount(context.Background(), 1))
	assert.True(t, deleted)
}
