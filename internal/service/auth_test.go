package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

type fakeAuthGroups struct {
	byName  map[string]domain.Group
	session map[uint]bool
}

func (f *fakeAuthGroups) FindByName(_ context.Context, name string) (domain.Group, error) {
	group, ok := f.byName[name]
	if !ok {
		return domain.Group{}, repository.ErrGroupNotFound
	}

	return group, nil
}

func (f *fakeAuthGroups) SetSessionActive(_ context.Context, id uint, active bool) error {
	f.session[id] = active

	return nil
}

type fakeAuthUsers struct {
	byGroup map[uint][]domain.User
}

func (f *fakeAuthUsers) FindByGroupID(_ context.Context, groupID uint) ([]domain.User, error) {
	return f.byGroup[groupID], nil
}

type fakeAuthTokens struct {
	revoked map[string]bool
}

func (f *fakeAuthTokens) Revoke(_ context.Context, token string) error {
	f.revoked[token] = true

	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAuthGroups, *fakeAuthTokens) {
	t.Helper()

	hash, err := HashPassword("jardin_du_lac_2")
	require.NoError(t, err)

	groups := &fakeAuthGroups{
		byName: map[string]domain.Group{
			"famille_bertrand": {ID: 7, Name: "famille_bertrand", Password: hash},
		},
		session: make(map[uint]bool),
	}
	users := &fakeAuthUsers{
		byGroup: map[uint][]domain.User{
			7: {
				{ID: 1, FirstName: "Pierre", LastName: "Bertrand", GroupID: 7},
				{ID: 2, FirstName: "Martine", LastName: "Bertrand", GroupID: 7},
			},
		},
	}
	tokens := &fakeAuthTokens{revoked: make(map[string]bool)}

	return NewAuthService(groups, users, tokens), groups, tokens
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials activate the session", func(t *testing.T) {
		svc, groups, _ := newAuthFixture(t)

		group, users, err := svc.Login(ctx, "famille_bertrand", "jardin_du_lac_2")
		require.NoError(t, err)
		assert.Equal(t, uint(7), group.ID)
		assert.True(t, group.SessionActive)
		assert.True(t, groups.session[7])
		assert.Len(t, users, 2)
	})

	t.Run("group names are matched case-insensitively", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)

		group, _, err := svc.Login(ctx, "  Famille_Bertrand ", "jardin_du_lac_2")
		require.NoError(t, err)
		assert.Equal(t, uint(7), group.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, groups, _ := newAuthFixture(t)

		_, _, err := svc.Login(ctx, "famille_bertrand", "nope")
		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.False(t, groups.session[7])
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)

		_, _, err := svc.Login(ctx, "les_inconnus", "whatever")
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, groups, tokens := newAuthFixture(t)

	_, _, err := svc.Login(ctx, "famille_bertrand", "jardin_du_lac_2")
	require.NoError(t, err)

	err = svc.Logout(ctx, domain.Group{ID: 7}, "some.jwt.token")
	require.NoError(t, err)
	assert.True(t, tokens.revoked["some.jwt.token"])
	assert.False(t, groups.session[7])
}
