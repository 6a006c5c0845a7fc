package services

import (
	"context"
	"errors"

	"github.com/alikamatu/artisan-app-sub000/internal/auth"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

type AuthService struct {
	userRepo *repositories.UserRepository
}

func NewAuthService(userRepo *repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.DependencyFailure("auth", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		Status:       models.UserStatusActive,
		City:         req.City,
	}
	// Clients can act immediately; workers go through a verification step
	// before they may apply to jobs.
	if user.Role == models.UserRoleClient {
		user.IsVerified = true
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DependencyFailure("auth", err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{AccessToken: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DependencyFailure("auth", err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrForbidden("auth", "Account is not active")
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{AccessToken: token, User: user}, nil
}
