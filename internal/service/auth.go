package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/types"
	"github.com/pageza/larder/backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registers users and issues, validates and revokes access tokens.
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	revoker   TokenRevoker
	now       func() time.Time
}

// NewAuthService creates a new AuthService. A nil revoker disables logout
// revocation.
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, revoker TokenRevoker) *AuthService {
	if revoker == nil {
		revoker = NoopTokenRevoker{}
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		revoker:   revoker,
		now:       time.Now,
	}
}

// Register creates an account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to hash password", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	// The unique index decides between concurrent registrations.
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.CodeConflict, "username already taken")
		}
		return nil, storageError(ctx, "failed to create user", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.issue(&user)
}

// Login exchanges a username and password for a token.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
		}
		return nil, storageError(ctx, "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	return s.issue(&user)
}

// ValidateToken parses a signed token and rejects expired or revoked ones.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperror.Wrap(apperror.CodeUnauthorized, "invalid token", err)
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, apperror.New(apperror.CodeUnauthorized, "invalid token claims")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to check token revocation", err)
	}
	if revoked {
		return nil, apperror.New(apperror.CodeUnauthorized, "token has been revoked")
	}
	return claims, nil
}

// Logout revokes the token described by claims until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	expiresAt := s.now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.ID, expiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to revoke token", "user_id", claims.UserID, "error", err)
		return apperror.Wrap(apperror.CodeInternal, "failed to revoke token", err)
	}
	return nil
}

// GetUser returns the account behind a validated token.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, storageError(ctx, "failed to load user", err, "user_id", userID)
	}
	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) issue(user *models.User) (*types.AuthResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to sign token", err)
	}

	return &types.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
		User:      toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
