package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tapcard/internal/cache"
	apperrors "tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/repository"
)

// linkURLPattern accepts an optional http(s) scheme, a dotted host and an
// optional path/query.
var linkURLPattern = regexp.MustCompile(`^(https?://)?([\w-]+(\.[\w-]+)+/?[\w\-./?%&=]*)$`)

// LinkService manages the per-profile link collection.
type LinkService interface {
	AddLink(ctx context.Context, userID uuid.UUID, title, url string) (*model.Link, error)
	DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error
}

type linkService struct {
	userRepo repository.UserRepository
	linkRepo repository.LinkRepository
	cache    *cache.Client
}

// NewLinkService builds a LinkService with repositories and cache.
func NewLinkService(userRepo repository.UserRepository, linkRepo repository.LinkRepository, cache *cache.Client) LinkService {
	return &linkService{userRepo: userRepo, linkRepo: linkRepo, cache: cache}
}

// AddLink appends a link to the user's collection. The duplicate check,
// position assignment and insert share one transaction so concurrent adds
// cannot produce two links with the same URL for one user.
func (s *linkService) AddLink(ctx context.Context, userID uuid.UUID, title, url string) (*model.Link, error) {
	if !linkURLPattern.MatchString(url) {
		return nil, apperrors.ErrInvalidURL
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	link := &model.Link{
		UserID: userID,
		Title:  title,
		URL:    url,
	}

	err := s.linkRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.LinkRepository) error {
		existing, err := txRepo.FindByUserAndURL(ctx, userID, url)
		if err == nil && existing != nil {
			return apperrors.ErrDuplicateLink
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check duplicate link: %w", err)
		}

		position, err := txRepo.NextPosition(ctx, userID)
		if err != nil {
			return fmt.Errorf("next position: %w", err)
		}
		link.Position = position

		if err := txRepo.Create(ctx, link); err != nil {
			return fmt.Errorf("create link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return link, nil
}

// DeleteLink removes a link from the user's collection. Ownership is checked
// before existence: a link id outside the user's collection is Forbidden even
// if no such record exists. Check and delete share one transaction so reads
// never observe a dangling reference.
func (s *linkService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	err := s.linkRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.LinkRepository) error {
		ids, err := txRepo.ListIDsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list user links: %w", err)
		}

		owned := false
		for _, id := range ids {
			if id == linkID {
				owned = true
				break
			}
		}
		if !owned {
			return apperrors.ErrNotLinkOwner
		}

		rows, err := txRepo.DeleteByID(ctx, linkID)
		if err != nil {
			return fmt.Errorf("delete link: %w", err)
		}
		if rows == 0 {
			return apperrors.ErrLinkNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return nil
}
