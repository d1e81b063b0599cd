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
	"tapcard/internal/repository"
)

// MockLinkRepository is a mock implementation of LinkRepository. Its
// WithTransaction runs the callback against the mock itself.
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link *model.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) FindByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (*model.Link, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}

func (m *MockLinkRepository) ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockLinkRepository) NextPosition(ctx context.Context, userID uuid.UUID) (uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockLinkRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.LinkRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func TestLinkService_AddLink(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		title         string
		url           string
		setupMocks    func(*MockUserRepository, *MockLinkRepository)
		expectedError error
	}{
		{
			name:  "successful add",
			title: "Facebook",
			url:   "https://facebook.com/me",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("FindByUserAndURL", mock.Anything, userID, "https://facebook.com/me").Return(nil, gorm.ErrRecordNotFound)
				mLink.On("NextPosition", mock.Anything, userID).Return(uint(2), nil)
				mLink.On("Create", mock.Anything, mock.AnythingOfType("*model.Link")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "scheme-less url is accepted",
			title: "Site",
			url:   "example.com/about",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("FindByUserAndURL", mock.Anything, userID, "example.com/about").Return(nil, gorm.ErrRecordNotFound)
				mLink.On("NextPosition", mock.Anything, userID).Return(uint(0), nil)
				mLink.On("Create", mock.Anything, mock.AnythingOfType("*model.Link")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "invalid url shape",
			title:         "Broken",
			url:           "not a url",
			setupMocks:    func(mUser *MockUserRepository, mLink *MockLinkRepository) {},
			expectedError: apperrors.ErrInvalidURL,
		},
		{
			name:          "host without dot is rejected",
			title:         "Localhost",
			url:           "http://localhost",
			setupMocks:    func(mUser *MockUserRepository, mLink *MockLinkRepository) {},
			expectedError: apperrors.ErrInvalidURL,
		},
		{
			name:  "duplicate url for same user",
			title: "Facebook",
			url:   "https://facebook.com/me",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("FindByUserAndURL", mock.Anything, userID, "https://facebook.com/me").Return(&model.Link{
					UserID: userID,
					URL:    "https://facebook.com/me",
				}, nil)
			},
			expectedError: apperrors.ErrDuplicateLink,
		},
		{
			name:  "user not found",
			title: "Facebook",
			url:   "https://facebook.com/me",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockLinkRepo := new(MockLinkRepository)
			tt.setupMocks(mockUserRepo, mockLinkRepo)

			service := NewLinkService(mockUserRepo, mockLinkRepo, nil)
			link, err := service.AddLink(context.Background(), userID, tt.title, tt.url)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, link)
				mockLinkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, link)
				assert.Equal(t, tt.title, link.Title)
				assert.Equal(t, tt.url, link.URL)
				assert.Equal(t, userID, link.UserID)
			}

			mockUserRepo.AssertExpectations(t)
			mockLinkRepo.AssertExpectations(t)
		})
	}
}

func TestLinkService_AddLink_AppendsAtNextPosition(t *testing.T) {
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockLinkRepo := new(MockLinkRepository)
	mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	mockLinkRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockLinkRepo.On("FindByUserAndURL", mock.Anything, userID, "https://a.com").Return(nil, gorm.ErrRecordNotFound)
	mockLinkRepo.On("NextPosition", mock.Anything, userID).Return(uint(5), nil)
	mockLinkRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Link")).Return(nil)

	service := NewLinkService(mockUserRepo, mockLinkRepo, nil)
	link, err := service.AddLink(context.Background(), userID, "Site", "https://a.com")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), link.Position)
}

func TestLinkService_DeleteLink(t *testing.T) {
	userID := uuid.New()
	linkID := uuid.New()
	otherLinkID := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func(*MockUserRepository, *MockLinkRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("ListIDsByUser", mock.Anything, userID).Return([]uuid.UUID{otherLinkID, linkID}, nil)
				mLink.On("DeleteByID", mock.Anything, linkID).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "link not in user's collection is forbidden",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("ListIDsByUser", mock.Anything, userID).Return([]uuid.UUID{otherLinkID}, nil)
			},
			expectedError: apperrors.ErrNotLinkOwner,
		},
		{
			name: "record already absent",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mLink.On("WithTransaction", mock.Anything).Return(nil)
				mLink.On("ListIDsByUser", mock.Anything, userID).Return([]uuid.UUID{linkID}, nil)
				mLink.On("DeleteByID", mock.Anything, linkID).Return(int64(0), nil)
			},
			expectedError: apperrors.ErrLinkNotFound,
		},
		{
			name: "user not found",
			setupMocks: func(mUser *MockUserRepository, mLink *MockLinkRepository) {
				mUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockLinkRepo := new(MockLinkRepository)
			tt.setupMocks(mockUserRepo, mockLinkRepo)

			service := NewLinkService(mockUserRepo, mockLinkRepo, nil)
			err := service.DeleteLink(context.Background(), userID, linkID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockLinkRepo.AssertExpectations(t)
		})
	}
}
