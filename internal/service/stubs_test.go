package service

import (
	"context"
	"testing"

	"medlex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub repositories with overridable function fields. The noop constructors
// return stubs whose every method fails the test if called, so each test only
// wires the calls it expects.

type entryRepoStub struct {
	t              *testing.T
	getByTermFn    func(ctx context.Context, term string) (*models.Entry, error)
	searchPrefixFn func(ctx context.Context, prefix string, limit int) ([]string, error)
	upsertFn       func(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	deleteByTermFn func(ctx context.Context, term string) error
}

func noopEntryRepo(t *testing.T) *entryRepoStub {
	return &entryRepoStub{t: t}
}

func (s *entryRepoStub) GetByTerm(ctx context.Context, term string) (*models.Entry, error) {
	if s.getByTermFn == nil {
		s.t.Fatal("unexpected call to GetByTerm")
	}
	return s.getByTermFn(ctx, term)
}

func (s *entryRepoStub) SearchPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	if s.searchPrefixFn == nil {
		s.t.Fatal("unexpected call to SearchPrefix")
	}
	return s.searchPrefixFn(ctx, prefix, limit)
}

func (s *entryRepoStub) Upsert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if s.upsertFn == nil {
		s.t.Fatal("unexpected call to Upsert")
	}
	return s.upsertFn(ctx, entry)
}

func (s *entryRepoStub) DeleteByTerm(ctx context.Context, term string) error {
	if s.deleteByTermFn == nil {
		s.t.Fatal("unexpected call to DeleteByTerm")
	}
	return s.deleteByTermFn(ctx, term)
}

type entryRequestRepoStub struct {
	t                       *testing.T
	createUpdateRequestFn   func(ctx context.Context, req *models.EntryUpdateRequest) error
	listUpdateRequestsFn    func(ctx context.Context, limit, skip int) ([]models.EntryUpdateRequest, error)
	createDeleteIfAbsentFn  func(ctx context.Context, req *models.EntryDeleteRequest) (bool, error)
	listDeleteRequestsFn    func(ctx context.Context, limit, skip int) ([]models.EntryDeleteRequest, error)
	countDeleteRequestsFn   func(ctx context.Context, term string) (int64, error)
}

func noopEntryRequestRepo(t *testing.T) *entryRequestRepoStub {
	return &entryRequestRepoStub{t: t}
}

func (s *entryRequestRepoStub) CreateUpdateRequest(ctx context.Context, req *models.EntryUpdateRequest) error {
	if s.createUpdateRequestFn == nil {
		s.t.Fatal("unexpected call to CreateUpdateRequest")
	}
	return s.createUpdateRequestFn(ctx, req)
}

func (s *entryRequestRepoStub) ListUpdateRequests(ctx context.Context, limit, skip int) ([]models.EntryUpdateRequest, error) {
	if s.listUpdateRequestsFn == nil {
		s.t.Fatal("unexpected call to ListUpdateRequests")
	}
	return s.listUpdateRequestsFn(ctx, limit, skip)
}

func (s *entryRequestRepoStub) CreateDeleteRequestIfAbsent(ctx context.Context, req *models.EntryDeleteRequest) (bool, error) {
	if s.createDeleteIfAbsentFn == nil {
		s.t.Fatal("unexpected call to CreateDeleteRequestIfAbsent")
	}
	return s.createDeleteIfAbsentFn(ctx, req)
}

func (s *entryRequestRepoStub) ListDeleteRequests(ctx context.Context, limit, skip int) ([]models.EntryDeleteRequest, error) {
	if s.listDeleteRequestsFn == nil {
		s.t.Fatal("unexpected call to ListDeleteRequests")
	}
	return s.listDeleteRequestsFn(ctx, limit, skip)
}

func (s *entryRequestRepoStub) CountDeleteRequests(ctx context.Context, term string) (int64, error) {
	if s.countDeleteRequestsFn == nil {
		s.t.Fatal("unexpected call to CountDeleteRequests")
	}
	return s.countDeleteRequestsFn(ctx, term)
}

type userRepoStub struct {
	t            *testing.T
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	updateRoleFn func(ctx context.Context, id uint, role models.Role) (*models.User, error)
	deleteFn     func(ctx context.Context, id uint) error
}

func noopUserRepo(t *testing.T) *userRepoStub {
	return &userRepoStub{t: t}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		s.t.Fatal("unexpected call to GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn == nil {
		s.t.Fatal("unexpected call to GetByEmail")
	}
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		s.t.Fatal("unexpected call to Create")
	}
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		s.t.Fatal("unexpected call to Update")
	}
	return s.updateFn(ctx, user)
}

func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) (*models.User, error) {
	if s.updateRoleFn == nil {
		s.t.Fatal("unexpected call to UpdateRole")
	}
	return s.updateRoleFn(ctx, id, role)
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to Delete")
	}
	return s.deleteFn(ctx, id)
}

type roleRequestRepoStub struct {
	t                *testing.T
	upsertFn         func(ctx context.Context, req *models.RoleChangeRequest) error
	listFn           func(ctx context.Context) ([]models.RoleChangeRequest, error)
	getByUserIDFn    func(ctx context.Context, userID uint) (*models.RoleChangeRequest, error)
	deleteByUserIDFn func(ctx context.Context, userID uint) error
}

func noopRoleRequestRepo(t *testing.T) *roleRequestRepoStub {
	return &roleRequestRepoStub{t: t}
}

func (s *roleRequestRepoStub) Upsert(ctx context.Context, req *models.RoleChangeRequest) error {
	if s.upsertFn == nil {
		s.t.Fatal("unexpected call to Upsert")
	}
	return s.upsertFn(ctx, req)
}

func (s *roleRequestRepoStub) List(ctx context.Context) ([]models.RoleChangeRequest, error) {
	if s.listFn == nil {
		s.t.Fatal("unexpected call to List")
	}
	return s.listFn(ctx)
}

func (s *roleRequestRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.RoleChangeRequest, error) {
	if s.getByUserIDFn == nil {
		s.t.Fatal("unexpected call to GetByUserID")
	}
	return s.getByUserIDFn(ctx, userID)
}

func (s *roleRequestRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	if s.deleteByUserIDFn == nil {
		s.t.Fatal("unexpected call to DeleteByUserID")
	}
	return s.deleteByUserIDFn(ctx, userID)
}

// assertAppError checks that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
