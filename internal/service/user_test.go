package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByName(_ context.Context, firstName, lastName string) (domain.User, error) {
	for _, user := range f.users {
		if user.FirstName == firstName && user.LastName == lastName {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByGroupID(_ context.Context, groupID uint) ([]domain.User, error) {
	var users []domain.User
	for id := uint(1); id <= f.nextID; id++ {
		if user, ok := f.users[id]; ok && user.GroupID == groupID {
			users = append(users, user)
		}
	}

	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)

	return nil
}

type fakeUserGroups struct {
	groups map[uint]domain.Group
}

func (f *fakeUserGroups) FindByID(_ context.Context, id uint) (domain.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return domain.Group{}, repository.ErrGroupNotFound
	}

	return group, nil
}

func newUserFixture() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	groups := &fakeUserGroups{groups: map[uint]domain.Group{
		1: {ID: 1, Name: "famille_mean"},
		2: {ID: 2, Name: "famille_bertrand"},
	}}

	return NewUserService(repo, groups), repo
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("new users start with default statuses", func(t *testing.T) {
		svc, _ := newUserFixture()

		user, err := svc.CreateUser(ctx, "Lucas", "Mean", 1)
		require.NoError(t, err)
		assert.Equal(t, domain.NotRegistered, user.RegistrationStatus)
		assert.Equal(t, domain.AttendanceUnknown, user.AttendanceStatus)
		assert.Equal(t, domain.DietNone, user.DietaryRestrictions)
		assert.Equal(t, uint(1), user.GroupID)
	})

	t.Run("the full name must be unique", func(t *testing.T) {
		svc, _ := newUserFixture()

		_, err := svc.CreateUser(ctx, "Lucas", "Mean", 1)
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "Lucas", "Mean", 2)
		assert.ErrorIs(t, err, ErrUserNameExists)
	})

	t.Run("the group must exist", func(t *testing.T) {
		svc, _ := newUserFixture()

		_, err := svc.CreateUser(ctx, "Lucas", "Mean", 42)
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("nil fields are left unchanged", func(t *testing.T) {
		svc, _ := newUserFixture()

		user, err := svc.CreateUser(ctx, "Camille", "Rochat", 1)
		require.NoError(t, err)

		attending := domain.Attending
		camping := true
		updated, err := svc.UpdateUser(ctx, user.ID, UserUpdate{
			AttendanceStatus: &attending,
			CampingOnSite:    &camping,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Attending, updated.AttendanceStatus)
		assert.True(t, updated.CampingOnSite)
		assert.Equal(t, "Camille", updated.FirstName)
		assert.Equal(t, domain.NotRegistered, updated.RegistrationStatus)
	})

	t.Run("reassignment to a missing group fails", func(t *testing.T) {
		svc, _ := newUserFixture()

		user, err := svc.CreateUser(ctx, "Camille", "Rochat", 1)
		require.NoError(t, err)

		missing := uint(42)
		_, err = svc.UpdateUser(ctx, user.ID, UserUpdate{GroupID: &missing})
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newUserFixture()

		_, err := svc.UpdateUser(ctx, 99, UserUpdate{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetUsersByGroup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	_, err := svc.CreateUser(ctx, "Claude", "Mean", 1)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Isabelle", "Mean", 1)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Pierre", "Bertrand", 2)
	require.NoError(t, err)

	users, err := svc.GetUsersByGroup(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.GetUsersByGroup(ctx, 42)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture()

	user, err := svc.CreateUser(ctx, "Nadia", "Perret", 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID), ErrUserNotFound)
}
