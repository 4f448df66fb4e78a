package service

import (
	"errors"

	"github.com/google/uuid"

	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService exchanges admin credentials for a bearer token. The storefront
// never authenticates; only back-office routes sit behind this.
type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	AccessToken string             `json:"accessToken"`
	User        model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates older tokens.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		AccessToken: token,
		User:        user.ToResponse(),
	}, nil
}
