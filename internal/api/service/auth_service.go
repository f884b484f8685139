package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brvm-market-api/internal/api/dto"
	"brvm-market-api/internal/api/repository"
	"brvm-market-api/internal/entity"
	"brvm-market-api/pkg/config"
	"brvm-market-api/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims are the JWT claims carried by issued tokens.
type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for authentication.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, cfg config.Auth, logger *logger.Logger) (AuthService, error) {
	accessTTL, err := time.ParseDuration(cfg.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid access_token_duration: %w", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh_token_duration: %w", err)
	}
	return &authService{
		userRepo:   userRepo,
		secret:     []byte(cfg.SecretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}, nil
}

type authService struct {
	userRepo   repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// Register creates a new user account.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	if userType == "" {
		userType = "retail"
	}
	user := &entity.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		UserType:     userType,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", logger.ErrorField(err), logger.Field("email", req.Email))
		return nil, err
	}

	s.logger.Info("User registered", logger.Field("user_id", user.ID))
	return mapUserResponse(user), nil
}

// Login verifies credentials and issues a token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.issueToken(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issueToken(user, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := s.issueToken(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// Authenticate resolves the user behind an access token.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := s.parseToken(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken(user *entity.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) parseToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func mapUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
