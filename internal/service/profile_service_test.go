package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "tapcard/internal/errors"
	"tapcard/internal/model"
)

func strPtr(s string) *string { return &s }

func TestProfileService_GetProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("resolves links in insertion order", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithLinks", mock.Anything, userID).Return(&model.User{
			ID:   userID,
			Name: "Alice",
			Links: []model.Link{
				{Title: "First", URL: "https://a.com", Position: 0},
				{Title: "Second", URL: "https://b.com", Position: 1},
			},
		}, nil)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.GetProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, user.Links, 2)
		assert.Equal(t, "First", user.Links[0].Title)
		assert.Equal(t, "Second", user.Links[1].Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("user without links gets an empty array", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithLinks", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.GetProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, user.Links)
		assert.Empty(t, user.Links)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithLinks", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.GetProfile(context.Background(), userID)

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("empty field subset is rejected before any store call", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.UpdateProfile(context.Background(), userID, ProfileUpdate{})

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrEmptyUpdate, err)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only provided fields are written", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockRepo.On("UpdateFields", mock.Anything, userID, map[string]interface{}{
			"name":  "New Name",
			"phone": "555-0100",
		}).Return(nil)
		mockRepo.On("FindByIDWithLinks", mock.Anything, userID).Return(&model.User{
			ID:    userID,
			Name:  "New Name",
			Phone: "555-0100",
		}, nil)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.UpdateProfile(context.Background(), userID, ProfileUpdate{
			Name:  strPtr("New Name"),
			Phone: strPtr("555-0100"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil, nil)
		user, err := service.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: strPtr("X")})

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileService_UpdateAbout(t *testing.T) {
	userID := uuid.New()

	t.Run("overwrites about text", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockRepo.On("UpdateFields", mock.Anything, userID, map[string]interface{}{
			"about_me": "Hello there",
		}).Return(nil)

		service := NewProfileService(mockRepo, nil, nil)
		err := service.UpdateAbout(context.Background(), userID, "Hello there")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewProfileService(mockRepo, nil, nil)
		err := service.UpdateAbout(context.Background(), userID, "   ")

		assert.Equal(t, apperrors.ErrEmptyUpdate, err)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}
