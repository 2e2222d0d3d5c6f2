package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

const emailLookupCacheTTL = 30 * time.Second

// Cache is the subset of the redis wrapper the user service needs.
type Cache interface {
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetCache(ctx context.Context, key string, dest interface{}) error
	DeleteCache(ctx context.Context, key string) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	// LookupByEmail resolves a trimmed, lowercased email to a user, or nil.
	// A pre-invite UX aid only; the invite path re-validates.
	LookupByEmail(ctx context.Context, email string) (*repository.User, error)
	Update(ctx context.Context, userID string, name, tier *string) (*repository.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    Cache
}

func NewUserService(userRepo repository.UserRepository, cache Cache) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type cachedLookup struct {
	Exists bool    `json:"exists"`
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Email  string  `json:"email"`
}

func (s *userService) LookupByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.cache != nil {
		var cached cachedLookup
		if err := s.cache.GetCache(ctx, "email-lookup:"+email, &cached); err == nil {
			if !cached.Exists {
				return nil, nil
			}
			return &repository.User{ID: cached.ID, Name: cached.Name, Email: cached.Email}, nil
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached := cachedLookup{Exists: user != nil}
		if user != nil {
			cached.ID = user.ID
			cached.Name = user.Name
			cached.Email = user.Email
		}
		if err := s.cache.SetCache(ctx, "email-lookup:"+email, cached, emailLookupCacheTTL); err != nil {
			log.Printf("[Cache] Failed to cache email lookup: %v", err)
		}
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, userID string, name, tier *string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, NewValidationError("name cannot be empty")
		}
		user.Name = &trimmed
	}

	if tier != nil {
		if !types.IsValidTier(*tier) {
			return nil, NewValidationError("invalid tier")
		}
		user.Tier = *tier
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// A cached email lookup carries the old name until it expires; drop it.
	if s.cache != nil {
		if err := s.cache.DeleteCache(ctx, "email-lookup:"+strings.ToLower(user.Email)); err != nil {
			log.Printf("[Cache] Failed to invalidate email lookup: %v", err)
		}
	}
	return user, nil
}
