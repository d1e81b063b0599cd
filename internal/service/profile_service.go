package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tapcard/internal/cache"
	apperrors "tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/repository"
	"tapcard/internal/storage"
)

const profileCacheTTL = 5 * time.Minute

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
	Phone          *string
	Occupation     *string
}

// ProfileService exposes profile read and update operations.
type ProfileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*model.User, error)
	UpdateAbout(ctx context.Context, id uuid.UUID, about string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (string, error)
}

type profileService struct {
	userRepo repository.UserRepository
	uploader storage.Uploader
	cache    *cache.Client
}

// NewProfileService builds a ProfileService with repository, storage and cache.
func NewProfileService(userRepo repository.UserRepository, uploader storage.Uploader, cache *cache.Client) ProfileService {
	return &profileService{userRepo: userRepo, uploader: uploader, cache: cache}
}

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// GetProfile returns the user with links resolved in insertion order. The
// password hash never leaves the model's json:"-" field.
func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithLinks(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Links == nil {
		user.Links = []model.Link{}
	}
	return user, nil
}

// GetPublicProfile serves the unauthenticated profile page, read through the
// cache.
func (s *profileService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(id), payload, profileCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies a non-empty subset of the mutable profile fields.
func (s *profileService) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.ProfilePicture != nil {
		fields["profile_picture"] = *upd.ProfilePicture
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if upd.Occupation != nil {
		fields["occupation"] = *upd.Occupation
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyUpdate
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(id))

	return s.GetProfile(ctx, id)
}

// UpdateAbout overwrites the about-text. Empty text is rejected.
func (s *profileService) UpdateAbout(ctx context.Context, id uuid.UUID, about string) error {
	if strings.TrimSpace(about) == "" {
		return apperrors.ErrEmptyUpdate
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.UpdateFields(ctx, id, map[string]interface{}{"about_me": about}); err != nil {
		return fmt.Errorf("update about: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(id))
	return nil
}

// UpdateAvatar streams the image to object storage and stores its URL on the
// profile.
func (s *profileService) UpdateAvatar(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	key := id.String() + strings.ToLower(path.Ext(filename))
	url, err := s.uploader.UploadAvatar(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateFields(ctx, id, map[string]interface{}{"profile_picture": url}); err != nil {
		return "", fmt.Errorf("update avatar: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(id))
	return url, nil
}
