package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*types.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	// ParseAccessToken validates a bearer token and returns the user id.
	ParseAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.TokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	tokenRepo repos.TokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password, name string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		Email:        email,
		Password:     string(hash),
		Name:         name,
		Reputation:   50,
		Level:        1,
		LastActivity: time.Now(),
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("clear refresh tokens: %w", err)
		}
		p, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := as.userRepo.TouchActivity(ctx, nil, user.ID, time.Now()); err != nil {
		as.log.Warn("touching last activity failed", "user_id", user.ID, "error", err)
	}
	return pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := as.tokenRepo.GetByToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, repos.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidToken
	}
	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("rotate refresh tokens: %w", err)
		}
		p, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return as.tokenRepo.DeleteByUserID(ctx, nil, userID)
}

func (as *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.New().String()
	if err := as.tokenRepo.Create(ctx, tx, &types.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: now.Add(as.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
