package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradeboard/internal/domain"
)

/* ==================== MOCKS ==================== */

type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) CreateThread(ctx context.Context, t *domain.Thread) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockForumRepository) GetThread(ctx context.Context, id int64) (*domain.Thread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Thread), args.Error(1)
}

func (m *MockForumRepository) UpdateThread(ctx context.Context, t *domain.Thread) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockForumRepository) DeleteThread(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockForumRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockForumRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

func (m *MockForumRepository) SetLocked(ctx context.Context, id int64, locked bool) error {
	args := m.Called(ctx, id, locked)
	return args.Error(0)
}

func (m *MockForumRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockForumRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockForumRepository) DeletePost(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

/* unused methods, required by interface */

func (m *MockForumRepository) ListThreads(_ context.Context, _, _ int) ([]domain.Thread, int64, error) {
	return nil, 0, nil
}

func (m *MockForumRepository) ListPosts(_ context.Context, _ int64, _, _ int) ([]domain.Post, int64, error) {
	return nil, 0, nil
}

func (m *MockForumRepository) UpdatePost(ctx context.Context, p *domain.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockUserGate struct {
	mock.Mock
}

func (m *MockUserGate) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserGate) IncrementPostCount(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

/* ==================== THREADS ==================== */

func TestCreateThread_CountsTowardLevel(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)
	users := new(MockUserGate)

	users.On("GetByID", ctx, int64(5)).Return(&domain.Profile{ID: 5}, nil)
	forum.On("CreateThread", ctx, mock.MatchedBy(func(th *domain.Thread) bool {
		return th.AuthorID == 5 && th.Title == "First thread"
	})).Return(nil)
	users.On("IncrementPostCount", ctx, int64(5), 1).Return(nil)

	service := NewService(forum, users)

	th, err := service.CreateThread(ctx, 5, CreateThreadRequest{
		Title:   "  First thread ",
		Content: "hello",
	})

	assert.NoError(t, err)
	assert.Equal(t, "First thread", th.Title)
	users.AssertExpectations(t)
}

func TestCreateThread_BannedAuthor(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserGate)
	users.On("GetByID", ctx, int64(5)).Return(&domain.Profile{ID: 5, IsBanned: true}, nil)

	service := NewService(new(MockForumRepository), users)

	_, err := service.CreateThread(ctx, 5, CreateThreadRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrBanned)
}

func TestGetThread_BumpsViews(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)

	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, Views: 7}, nil)
	forum.On("IncrementViews", ctx, int64(1)).Return(nil)

	service := NewService(forum, new(MockUserGate))

	th, err := service.GetThread(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), th.Views)
}

func TestUpdateThread_AuthorOnly(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)

	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, AuthorID: 5}, nil)

	service := NewService(forum, new(MockUserGate))

	_, err := service.UpdateThread(ctx, 1, 6, UpdateThreadRequest{Title: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateThread_TracksEdits(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)

	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, AuthorID: 5, EditCount: 2}, nil)
	forum.On("UpdateThread", ctx, mock.MatchedBy(func(th *domain.Thread) bool {
		return th.IsEdited && th.EditCount == 3
	})).Return(nil)

	service := NewService(forum, new(MockUserGate))

	th, err := service.UpdateThread(ctx, 1, 5, UpdateThreadRequest{Content: "corrected"})
	assert.NoError(t, err)
	assert.True(t, th.IsEdited)
}

func TestDeleteThread_AdminOverride(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)
	users := new(MockUserGate)

	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, AuthorID: 5}, nil)
	users.On("GetByID", ctx, int64(30)).Return(&domain.Profile{ID: 30, IsAdmin: true}, nil)
	forum.On("DeleteThread", ctx, int64(1)).Return(nil)

	service := NewService(forum, users)

	assert.NoError(t, service.DeleteThread(ctx, 1, 30))
	forum.AssertExpectations(t)
}

func TestModerateThread_PinAndLock(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)

	pinned, locked := true, true
	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1}, nil)
	forum.On("SetPinned", ctx, int64(1), true).Return(nil)
	forum.On("SetLocked", ctx, int64(1), true).Return(nil)

	service := NewService(forum, new(MockUserGate))

	_, err := service.ModerateThread(ctx, 1, ModerateThreadRequest{Pinned: &pinned, Locked: &locked})
	assert.NoError(t, err)
	forum.AssertExpectations(t)
}

/* ==================== POSTS ==================== */

func TestCreatePost_LockedThread(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)
	users := new(MockUserGate)

	users.On("GetByID", ctx, int64(5)).Return(&domain.Profile{ID: 5}, nil)
	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, IsLocked: true}, nil)

	service := NewService(forum, users)

	_, err := service.CreatePost(ctx, 1, 5, CreatePostRequest{Content: "me too"})
	assert.ErrorIs(t, err, ErrThreadLocked)
}

func TestCreatePost_AdminBypassesLock(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)
	users := new(MockUserGate)

	users.On("GetByID", ctx, int64(30)).Return(&domain.Profile{ID: 30, IsAdmin: true}, nil)
	forum.On("GetThread", ctx, int64(1)).Return(&domain.Thread{ID: 1, IsLocked: true}, nil)
	forum.On("CreatePost", ctx, mock.Anything).Return(nil)
	users.On("IncrementPostCount", ctx, int64(30), 1).Return(nil)

	service := NewService(forum, users)

	_, err := service.CreatePost(ctx, 1, 30, CreatePostRequest{Content: "locking rationale"})
	assert.NoError(t, err)
}

func TestDeletePost_DecrementsPostCount(t *testing.T) {
	ctx := context.Background()
	forum := new(MockForumRepository)
	users := new(MockUserGate)

	forum.On("GetPost", ctx, int64(2)).Return(&domain.Post{ID: 2, AuthorID: 5}, nil)
	forum.On("DeletePost", ctx, int64(2)).Return(nil)
	users.On("IncrementPostCount", ctx, int64(5), -1).Return(nil)

	service := NewService(forum, users)

	assert.NoError(t, service.DeletePost(ctx, 2, 5))
	users.AssertExpectations(t)
}
