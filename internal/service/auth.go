package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var (
	ErrGroupNotFound = repository.ErrGroupNotFound
	ErrWrongPassword = errors.New("wrong credentials")
)

type AuthGroupRepository interface {
	FindByName(ctx context.Context, name string) (domain.Group, error)
	SetSessionActive(ctx context.Context, id uint, active bool) error
}

type AuthUserRepository interface {
	FindByGroupID(ctx context.Context, groupID uint) ([]domain.User, error)
}

type AuthTokenRepository interface {
	Revoke(ctx context.Context, token string) error
}

type AuthService struct {
	groups AuthGroupRepository
	users  AuthUserRepository
	tokens AuthTokenRepository
}

func NewAuthService(groups AuthGroupRepository, users AuthUserRepository, tokens AuthTokenRepository) *AuthService {
	return &AuthService{
		groups: groups,
		users:  users,
		tokens: tokens,
	}
}

// Login verifies a group's credentials, flips its session-active flag and
// returns the group together with its members.
func (s *AuthService) Login(ctx context.Context, name, password string) (domain.Group, []domain.User, error) {
	group, err := s.groups.FindByName(ctx, NormalizeGroupName(name))
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return domain.Group{}, nil, ErrGroupNotFound
		}

		return domain.Group{}, nil, fmt.Errorf("s.groups.FindByName -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(group.Password), []byte(password)); err != nil {
		return domain.Group{}, nil, ErrWrongPassword
	}

	if err = s.groups.SetSessionActive(ctx, group.ID, true); err != nil {
		return domain.Group{}, nil, fmt.Errorf("s.groups.SetSessionActive -> %w", err)
	}
	group.SessionActive = true

	users, err := s.users.FindByGroupID(ctx, group.ID)
	if err != nil {
		return domain.Group{}, nil, fmt.Errorf("s.users.FindByGroupID -> %w", err)
	}

	return group, users, nil
}

// Logout revokes the presented token and deactivates the group's session.
func (s *AuthService) Logout(ctx context.Context, group domain.Group, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("s.tokens.Revoke -> %w", err)
	}

	if err := s.groups.SetSessionActive(ctx, group.ID, false); err != nil {
		return fmt.Errorf("s.groups.SetSessionActive -> %w", err)
	}

	return nil
}

// NormalizeGroupName is the canonical form group names are stored and looked
// up in.
func NormalizeGroupName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
