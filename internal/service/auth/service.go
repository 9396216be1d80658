package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/remitdesk/backoffice-go/internal/domain/auth"
	"github.com/remitdesk/backoffice-go/internal/domain/user"
	jwtpkg "github.com/remitdesk/backoffice-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userRepo   user.UserRepository
	jwtService jwtpkg.Service
}

func NewService(userRepo user.UserRepository, jwtService jwtpkg.Service) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access token carrying the
// permission list resolved from the user's role. The refresh token is
// returned separately for the handler to set as a cookie.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, "", 0, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	permissions := make([]string, 0)
	for _, p := range user.RolePermissions[u.Role] {
		permissions = append(permissions, string(p))
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: permissions,
	}, refreshToken, refreshExpiresAt, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if err := jwt.Validate(token); err != nil {
		return auth.LoginResponse{}, auth.ErrTokenExpired
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	permissions := make([]string, 0)
	for _, p := range user.RolePermissions[u.Role] {
		permissions = append(permissions, string(p))
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: permissions,
	}, nil
}

// Logout revokes the presented refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

// RegisterUser creates a back-office account. Gated by user.manage.
func (s *Service) RegisterUser(ctx context.Context, req auth.RegisterUserRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         user.Role(req.Role),
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		return auth.UserResponse{}, err
	}

	return auth.UserResponse{
		ID:         created.ID,
		Email:      created.Email,
		Name:       created.Name,
		Role:       string(created.Role),
		EmployeeID: created.EmployeeID,
		IsActive:   created.IsActive,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]auth.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]auth.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, auth.UserResponse{
			ID:         u.ID,
			Email:      u.Email,
			Name:       u.Name,
			Role:       string(u.Role),
			EmployeeID: u.EmployeeID,
			IsActive:   u.IsActive,
		})
	}
	return responses, nil
}
