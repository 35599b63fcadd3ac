package services

import (
	"context"
	"errors"

	"sweetshop/internal/models"
	"sweetshop/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user and issues a token for it. A blank role defaults
// to CUSTOMER. Duplicate emails are rejected before any create call.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role models.Role) (string, *models.User, error) {
	if role == "" {
		role = models.RoleCustomer
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	user := &models.User{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if user.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
