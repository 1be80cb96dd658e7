package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/pkg/utils"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("incorrect email or password")

type AuthService struct {
	users      domain.UserRepository
	jwt        *auth.JWTer
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, bcryptCost int, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, jwt: jwt, bcryptCost: bcryptCost, log: log.Named("auth")}
}

// Signup stores a new user and returns it with a freshly issued token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	token, err := s.jwt.Issue(identityOf(u))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID))
	return u, token, nil
}

func (s *AuthService) Signin(ctx context.Context, in CredentialsInput) (string, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwt.Issue(identityOf(u))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Signout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Signout(ctx context.Context, c *auth.Claims) error {
	if err := s.jwt.Revoke(ctx, c); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("user signed out", zap.String("user_id", c.UID))
	return nil
}

func identityOf(u *domain.User) auth.Identity {
	return auth.Identity{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
