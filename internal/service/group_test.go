package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

// fakeGroupRepo backs GroupService with both its group and user stores.
type fakeGroupRepo struct {
	nextGroupID uint
	groups      map[uint]domain.Group

	nextUserID uint
	users      map[uint]domain.User
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups: make(map[uint]domain.Group),
		users:  make(map[uint]domain.User),
	}
}

func (f *fakeGroupRepo) Create(_ context.Context, group domain.Group) (domain.Group, error) {
	f.nextGroupID++
	group.ID = f.nextGroupID
	f.groups[group.ID] = group

	return group, nil
}

func (f *fakeGroupRepo) FindByID(_ context.Context, id uint) (domain.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return domain.Group{}, repository.ErrGroupNotFound
	}

	return group, nil
}

func (f *fakeGroupRepo) FindByName(_ context.Context, name string) (domain.Group, error) {
	for _, group := range f.groups {
		if group.Name == name {
			return group, nil
		}
	}

	return domain.Group{}, repository.ErrGroupNotFound
}

func (f *fakeGroupRepo) FindAll(_ context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	for id := uint(1); id <= f.nextGroupID; id++ {
		if group, ok := f.groups[id]; ok {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

func (f *fakeGroupRepo) Update(_ context.Context, group domain.Group) (domain.Group, error) {
	if _, ok := f.groups[group.ID]; !ok {
		return domain.Group{}, repository.ErrGroupNotFound
	}
	f.groups[group.ID] = group

	return group, nil
}

func (f *fakeGroupRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.groups[id]; !ok {
		return repository.ErrGroupNotFound
	}
	delete(f.groups, id)

	return nil
}

func (f *fakeGroupRepo) addUser(firstName, lastName string, groupID uint) domain.User {
	f.nextUserID++
	user := domain.User{
		ID:        f.nextUserID,
		FirstName: firstName,
		LastName:  lastName,
		GroupID:   groupID,
	}
	f.users[user.ID] = user

	return user
}

// GroupUserRepository side, reusing the same store.

type fakeGroupUsers struct {
	repo *fakeGroupRepo
}

func (f *fakeGroupUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.repo.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeGroupUsers) FindByGroupID(_ context.Context, groupID uint) ([]domain.User, error) {
	var users []domain.User
	for id := uint(1); id <= f.repo.nextUserID; id++ {
		if user, ok := f.repo.users[id]; ok && user.GroupID == groupID {
			users = append(users, user)
		}
	}

	return users, nil
}

func (f *fakeGroupUsers) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.repo.users[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	f.repo.users[user.ID] = user

	return user, nil
}

func newGroupFixture() (*GroupService, *fakeGroupRepo) {
	repo := newFakeGroupRepo()

	return NewGroupService(repo, &fakeGroupUsers{repo: repo}), repo
}

func TestGroupService_CreateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("names are normalized and passwords hashed", func(t *testing.T) {
		svc, repo := newGroupFixture()

		group, err := svc.CreateGroup(ctx, "  Famille_Mean ", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)
		assert.Equal(t, "famille_mean", group.Name)

		stored := repo.groups[group.ID]
		assert.NotEqual(t, "jardin_du_lac_2", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("jardin_du_lac_2")))
	})

	t.Run("duplicate names are rejected regardless of casing", func(t *testing.T) {
		svc, _ := newGroupFixture()

		_, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)

		_, err = svc.CreateGroup(ctx, "FAMILLE_MEAN", "another_password1", false, nil)
		assert.ErrorIs(t, err, ErrGroupNameExists)
	})

	t.Run("listed members are moved into the new group", func(t *testing.T) {
		svc, repo := newGroupFixture()

		old, err := svc.CreateGroup(ctx, "famille_bertrand", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)
		user := repo.addUser("Pierre", "Bertrand", old.ID)

		created, err := svc.CreateGroup(ctx, "cousins_de_fribourg", "jardin_du_lac_2", false, []uint{user.ID})
		require.NoError(t, err)
		assert.Equal(t, created.ID, repo.users[user.ID].GroupID)
	})

	t.Run("an unknown member id fails the whole creation", func(t *testing.T) {
		svc, _ := newGroupFixture()

		_, err := svc.CreateGroup(ctx, "colocs_de_geneve", "jardin_du_lac_2", false, []uint{42})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGroupService_UpdateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("nil fields are left unchanged", func(t *testing.T) {
		svc, repo := newGroupFixture()

		group, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)
		before := repo.groups[group.ID].Password

		super := true
		updated, err := svc.UpdateGroup(ctx, group.ID, nil, nil, &super, nil)
		require.NoError(t, err)
		assert.True(t, updated.SuperGroup)
		assert.Equal(t, "famille_mean", updated.Name)
		assert.Equal(t, before, repo.groups[group.ID].Password)
	})

	t.Run("renaming onto an existing group is rejected", func(t *testing.T) {
		svc, _ := newGroupFixture()

		_, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)
		group, err := svc.CreateGroup(ctx, "famille_bertrand", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)

		taken := "famille_mean"
		_, err = svc.UpdateGroup(ctx, group.ID, &taken, nil, nil, nil)
		assert.ErrorIs(t, err, ErrGroupNameExists)
	})

	t.Run("keeping the current name is not a conflict", func(t *testing.T) {
		svc, _ := newGroupFixture()

		group, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
		require.NoError(t, err)

		same := "Famille_Mean"
		updated, err := svc.UpdateGroup(ctx, group.ID, &same, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "famille_mean", updated.Name)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, _ := newGroupFixture()

		_, err := svc.UpdateGroup(ctx, 99, nil, nil, nil, nil)
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestGroupService_GetGroupWithUsers(t *testing.T) {
	ctx := context.Background()
	svc, repo := newGroupFixture()

	group, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
	require.NoError(t, err)
	repo.addUser("Claude", "Mean", group.ID)
	repo.addUser("Isabelle", "Mean", group.ID)

	got, err := svc.GetGroupWithUsers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, got.Users, 2)
}

func TestGroupService_DeleteGroup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGroupFixture()

	group, err := svc.CreateGroup(ctx, "famille_mean", "jardin_du_lac_2", false, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID))
	assert.ErrorIs(t, svc.DeleteGroup(ctx, group.ID), ErrGroupNotFound)
}
