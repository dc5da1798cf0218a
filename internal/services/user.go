package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

// UserProfileUpdate carries the mutable profile fields; nil means "leave
// unchanged".
type UserProfileUpdate struct {
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location"`
	AvatarURL       *string `json:"avatar_url"`
	PersonalityType *string `json:"personality_type"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update UserProfileUpdate) (*types.User, error)
	TouchActivity(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByIDWithSkills(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByIDWithSkills(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update UserProfileUpdate) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		user.Name = name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Location != nil {
		user.Location = strings.TrimSpace(*update.Location)
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.PersonalityType != nil {
		pt := strings.ToUpper(strings.TrimSpace(*update.PersonalityType))
		if pt != "" && !validPersonalityType(pt) {
			return nil, fmt.Errorf("unknown personality type %q", pt)
		}
		user.PersonalityType = pt
	}

	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (us *userService) TouchActivity(ctx context.Context, userID uuid.UUID) error {
	return us.userRepo.TouchActivity(ctx, nil, userID, time.Now())
}

func validPersonalityType(pt string) bool {
	if len(pt) != 4 {
		return false
	}
	return strings.ContainsRune("EI", rune(pt[0])) &&
		strings.ContainsRune("SN", rune(pt[1])) &&
		strings.ContainsRune("TF", rune(pt[2])) &&
		strings.ContainsRune("JP", rune(pt[3]))
}
