package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradeboard/internal/domain"
	"tradeboard/internal/repository"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id int64, updates map[string]any) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) List(_ context.Context, _ repository.UserFilter, _, _ int) ([]domain.Profile, int64, error) {
	return nil, 0, nil
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) CreateVerification(ctx context.Context, req *domain.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) HasPendingVerification(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) GetVerification(ctx context.Context, id int64) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}

func (m *MockRequestRepository) ResolveVerification(ctx context.Context, id, adminID int64, approve bool, notes string) error {
	args := m.Called(ctx, id, adminID, approve, notes)
	return args.Error(0)
}

func (m *MockRequestRepository) CreateAdminRequest(ctx context.Context, req *domain.AdminRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) HasPendingAdminRequest(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) GetAdminRequest(ctx context.Context, id int64) (*domain.AdminRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminRequest), args.Error(1)
}

func (m *MockRequestRepository) ResolveAdminRequest(ctx context.Context, id, ownerID int64, approve bool, notes string) error {
	args := m.Called(ctx, id, ownerID, approve, notes)
	return args.Error(0)
}

/* unused methods, required by interface */

func (m *MockRequestRepository) ListVerificationsByStatus(_ context.Context, _ domain.RequestStatus, _, _ int) ([]domain.VerificationRequest, int64, error) {
	return nil, 0, nil
}

func (m *MockRequestRepository) ListAdminRequestsByStatus(_ context.Context, _ domain.RequestStatus, _, _ int) ([]domain.AdminRequest, int64, error) {
	return nil, 0, nil
}

type MockStatsCollector struct{}

func (m *MockStatsCollector) Collect(_ context.Context) (*repository.BoardStats, error) {
	return &repository.BoardStats{}, nil
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRequestResolved(ctx context.Context, userID int64, kind string, approved bool, notes string) error {
	args := m.Called(ctx, userID, kind, approved, notes)
	return args.Error(0)
}

/* ==================== HELPERS ==================== */

func regular(id int64) *domain.Profile  { return &domain.Profile{ID: id} }
func verified(id int64) *domain.Profile { return &domain.Profile{ID: id, IsVerified: true} }
func adminUser(id int64) *domain.Profile {
	return &domain.Profile{ID: id, IsVerified: true, IsAdmin: true}
}
func ownerUser(id int64) *domain.Profile {
	return &domain.Profile{ID: id, IsVerified: true, IsAdmin: true, IsOwner: true}
}

/* ==================== VERIFICATION REQUESTS ==================== */

func TestSubmitVerification_Success(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	requests := new(MockRequestRepository)

	users.On("GetByID", ctx, int64(5)).Return(regular(5), nil)
	requests.On("HasPendingVerification", ctx, int64(5)).Return(false, nil)
	requests.On("CreateVerification", ctx, mock.MatchedBy(func(r *domain.VerificationRequest) bool {
		return r.UserID == 5 && r.Status == domain.RequestPending
	})).Return(nil)

	service := NewService(users, requests, &MockStatsCollector{}, nil)

	req, err := service.SubmitVerificationRequest(ctx, 5, SubmitRequestBody{
		Content: "I trade under the same handle on two other boards.",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
}

func TestSubmitVerification_AlreadyVerified(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetByID", ctx, int64(5)).Return(verified(5), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	_, err := service.SubmitVerificationRequest(ctx, 5, SubmitRequestBody{Content: "please verify me"})
	assert.ErrorIs(t, err, ErrAlreadyGranted)
}

func TestSubmitVerification_AlreadyPending(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	requests := new(MockRequestRepository)

	users.On("GetByID", ctx, int64(5)).Return(regular(5), nil)
	requests.On("HasPendingVerification", ctx, int64(5)).Return(true, nil)

	service := NewService(users, requests, &MockStatsCollector{}, nil)

	_, err := service.SubmitVerificationRequest(ctx, 5, SubmitRequestBody{Content: "second attempt here"})
	assert.ErrorIs(t, err, ErrRequestPending)
}

func TestResolveVerification_NotifiesApplicant(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	requests := new(MockRequestRepository)
	notifier := new(MockNotifier)

	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)
	requests.On("GetVerification", ctx, int64(1)).Return(&domain.VerificationRequest{
		ID:     1,
		UserID: 5,
		Status: domain.RequestPending,
	}, nil)
	requests.On("ResolveVerification", ctx, int64(1), int64(30), true, "checks out").Return(nil)
	notifier.On("NotifyRequestResolved", ctx, int64(5), "verification", true, "checks out").Return(nil)

	service := NewService(users, requests, &MockStatsCollector{}, notifier)

	err := service.ResolveVerificationRequest(ctx, 1, 30, ResolveRequestBody{
		Approve: true,
		Notes:   "checks out",
	})

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

/* ==================== ADMIN REQUESTS ==================== */

func TestSubmitAdminRequest_RequiresVerifiedTier(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetByID", ctx, int64(5)).Return(regular(5), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	_, err := service.SubmitAdminRequest(ctx, 5, SubmitRequestBody{Content: "I want to moderate"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResolveAdminRequest_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	err := service.ResolveAdminRequest(ctx, 1, 30, ResolveRequestBody{Approve: true})
	assert.ErrorIs(t, err, ErrOwnerOnly)
}

func TestResolveAdminRequest_OwnerApproves(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	requests := new(MockRequestRepository)

	users.On("GetByID", ctx, int64(1)).Return(ownerUser(1), nil)
	requests.On("GetAdminRequest", ctx, int64(4)).Return(&domain.AdminRequest{
		ID:     4,
		UserID: 5,
		Status: domain.RequestPending,
	}, nil)
	requests.On("ResolveAdminRequest", ctx, int64(4), int64(1), true, "").Return(nil)

	service := NewService(users, requests, &MockStatsCollector{}, nil)

	err := service.ResolveAdminRequest(ctx, 4, 1, ResolveRequestBody{Approve: true})
	assert.NoError(t, err)
	requests.AssertExpectations(t)
}

/* ==================== MODERATION ==================== */

func TestBanUser_AdminCannotBanAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)
	users.On("GetByID", ctx, int64(31)).Return(adminUser(31), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	err := service.BanUser(ctx, 31, 30, "abuse")
	assert.ErrorIs(t, err, ErrCannotModerate)
}

func TestBanUser_OwnerCanBanAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(1)).Return(ownerUser(1), nil)
	users.On("GetByID", ctx, int64(31)).Return(adminUser(31), nil)
	users.On("UpdateFields", ctx, int64(31), mock.MatchedBy(func(u map[string]any) bool {
		return u["is_banned"] == true
	})).Return(nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	assert.NoError(t, service.BanUser(ctx, 31, 1, "abuse"))
	users.AssertExpectations(t)
}

func TestBanUser_NobodyBansTheOwner(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)
	users.On("GetByID", ctx, int64(1)).Return(ownerUser(1), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	err := service.BanUser(ctx, 1, 30, "coup")
	assert.ErrorIs(t, err, ErrCannotModerate)
}

func TestBanUser_NoSelfModeration(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	err := service.BanUser(ctx, 30, 30, "oops")
	assert.ErrorIs(t, err, ErrCannotModerate)
}

func TestRevokeAdmin_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(30)).Return(adminUser(30), nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	err := service.RevokeAdmin(ctx, 31, 30)
	assert.ErrorIs(t, err, ErrOwnerOnly)
}

func TestRevokeAdmin_Success(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetByID", ctx, int64(1)).Return(ownerUser(1), nil)
	users.On("GetByID", ctx, int64(31)).Return(adminUser(31), nil)
	users.On("UpdateFields", ctx, int64(31), map[string]any{"is_admin": false}).Return(nil)

	service := NewService(users, new(MockRequestRepository), &MockStatsCollector{}, nil)

	assert.NoError(t, service.RevokeAdmin(ctx, 31, 1))
	users.AssertExpectations(t)
}
