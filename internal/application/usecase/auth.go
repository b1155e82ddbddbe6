package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/cache"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/security"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthUseCase struct {
	userRepo     domain.UserRepository
	tokenCache   *cache.TokenCache
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
}

func NewAuthUseCase(
	ur domain.UserRepository,
	tc *cache.TokenCache,
	h *security.PasswordHasher,
	tm *security.TokenManager,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
	}
}

type AuthResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, email, firstName, lastName, password string) (*AuthResult, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hash,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issueTokens(ctx, user)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueTokens(ctx, user)
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (*AuthResult, error) {
	userID, _, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != userID {
		return nil, domain.ErrInvalidCredentials
	}
	// Ротация: старый токен больше не валиден
	_ = uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueTokens(ctx, user)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	access, refresh, err := uc.tokenManager.Generate(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	if err := uc.tokenCache.SaveRefresh(ctx, user.ID.String(), refresh); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
