package deal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tradeboard/internal/database"
	"tradeboard/internal/domain"
	"tradeboard/internal/middleware"
	jwtsvc "tradeboard/internal/pkg/jwt"
	"tradeboard/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)

	j := jwtsvc.New("test-secret", time.Hour)

	service := NewService(dealRepo, userRepo, nil)
	handler := NewHandler(service)

	router := gin.New()
	v1 := router.Group("/api/v1")

	handler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth(j))
	handler.RegisterRoutes(protected)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(j), middleware.AdminOnly())
	handler.RegisterAdminRoutes(adminGroup)

	return &testEnv{router: router, db: db, jwt: j}
}

func (e *testEnv) createUser(t *testing.T, username string, mutate func(*domain.Profile)) (*domain.Profile, string) {
	t.Helper()
	p := &domain.Profile{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, e.db.Create(p).Error)

	token, err := e.jwt.GenerateToken(p.ID, string(p.Role()))
	require.NoError(t, err)
	return p, token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// Walks a deal through its whole life: proposal, recipient agreement,
// admin approval, review, dispute, dispute approval.
func TestDealLifecycle(t *testing.T) {
	env := setupEnv(t)

	initiator, initiatorToken := env.createUser(t, "initiator", nil)
	recipient, recipientToken := env.createUser(t, "recipient", func(p *domain.Profile) {
		p.IsVerified = true
	})
	_, adminToken := env.createUser(t, "arbiter", func(p *domain.Profile) {
		p.IsAdmin = true
	})

	// propose
	resp := env.do(t, http.MethodPost, "/api/v1/deals", ProposeDealRequest{
		RecipientID: recipient.ID,
		Title:       "Translation job",
		Description: "Ten documents",
	}, initiatorToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Deal domain.Deal `json:"deal"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &created))
	dealID := created.Deal.ID
	require.Equal(t, domain.DealPending, created.Deal.Status)

	// an outsider cannot read the deal
	_, outsiderToken := env.createUser(t, "outsider", nil)
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/deals/%d", dealID), nil, outsiderToken)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// the arbiter cannot act before the recipient agrees
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/deals/%d/arbitrate", dealID), ArbitrateRequest{
		Approve: boolPtr(true),
	}, adminToken)
	require.Equal(t, http.StatusConflict, resp.Code)
	env2 := decode(t, resp)
	require.Equal(t, "DEAL_NOT_NEGOTIATING", env2.Error.Code)
	require.Equal(t, "Admin can only review deals after both parties have agreed to the terms", env2.Error.Message)

	// only the recipient may respond
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/respond", dealID), RespondRequest{
		Content: "I accept",
		Approve: boolPtr(true),
	}, initiatorToken)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// recipient accepts
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/respond", dealID), RespondRequest{
		Content: "Terms are fine",
		Approve: boolPtr(true),
	}, recipientToken)
	require.Equal(t, http.StatusOK, resp.Code)

	// a second response hits the state guard
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/respond", dealID), RespondRequest{
		Content: "Changed my mind",
		Approve: boolPtr(false),
	}, recipientToken)
	require.Equal(t, http.StatusConflict, resp.Code)

	// cancel window has closed for the initiator
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/cancel", dealID), nil, initiatorToken)
	require.Equal(t, http.StatusConflict, resp.Code)

	// a regular user cannot reach the arbitration route at all
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/deals/%d/arbitrate", dealID), ArbitrateRequest{
		Approve: boolPtr(true),
	}, recipientToken)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// the arbiter approves
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/deals/%d/arbitrate", dealID), ArbitrateRequest{
		Content: "Both parties agreed",
		Approve: boolPtr(true),
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var deal domain.Deal
	require.NoError(t, env.db.First(&deal, dealID).Error)
	require.Equal(t, domain.DealApproved, deal.Status)

	// the response log has the full history
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/deals/%d/responses", dealID), nil, initiatorToken)
	require.Equal(t, http.StatusOK, resp.Code)
	var responses struct {
		Responses []domain.DealResponse `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &responses))
	require.Len(t, responses.Responses, 2)

	// recipient leaves a low review for the initiator
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/reviews", dealID), ReviewRequest{
		Rating:     2,
		ReviewText: "Late payment",
	}, recipientToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var review struct {
		Review domain.DealReview `json:"review"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &review))

	// reputation moved by rating-3
	var reviewed domain.Profile
	require.NoError(t, env.db.First(&reviewed, initiator.ID).Error)
	require.Equal(t, -1, reviewed.Reputation)

	// one review per party per deal
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/reviews", dealID), ReviewRequest{
		Rating: 1,
	}, recipientToken)
	require.Equal(t, http.StatusConflict, resp.Code)
	require.Equal(t, "REVIEW_EXISTS", decode(t, resp).Error.Code)

	// reviews are public on the profile page
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/reviews", initiator.ID), nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	// the reviewee disputes the review
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/assessment", review.Review.ID), AssessmentRequest{
		Reason: "Payment was on time, receipts attached",
	}, initiatorToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var assessment struct {
		Assessment domain.ReviewAssessment `json:"assessment"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &assessment))

	// a second dispute for the same review is rejected
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/assessment", review.Review.ID), AssessmentRequest{
		Reason: "again",
	}, initiatorToken)
	require.Equal(t, http.StatusConflict, resp.Code)

	// the admin approves the dispute
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/assessments/%d/resolve", assessment.Assessment.ID), ResolveAssessmentRequest{
		Approve: boolPtr(true),
		Notes:   "Evidence checks out",
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	// the review is gone and the reputation delta reverted
	var count int64
	require.NoError(t, env.db.Model(&domain.DealReview{}).Where("id = ?", review.Review.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.db.First(&reviewed, initiator.ID).Error)
	require.Equal(t, 0, reviewed.Reputation)
}

func TestDealDecline(t *testing.T) {
	env := setupEnv(t)

	_, initiatorToken := env.createUser(t, "proposer", nil)
	recipient, recipientToken := env.createUser(t, "target", nil)

	resp := env.do(t, http.MethodPost, "/api/v1/deals", ProposeDealRequest{
		RecipientID: recipient.ID,
		Title:       "Unwanted offer",
		Description: "No thanks",
	}, initiatorToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Deal domain.Deal `json:"deal"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &created))

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/respond", created.Deal.ID), RespondRequest{
		Content: "Not interested",
		Approve: boolPtr(false),
	}, recipientToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var deal domain.Deal
	require.NoError(t, env.db.First(&deal, created.Deal.ID).Error)
	require.Equal(t, domain.DealRejected, deal.Status)

	// rejected is terminal
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/respond", created.Deal.ID), RespondRequest{
		Content: "Actually yes",
		Approve: boolPtr(true),
	}, recipientToken)
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestDealCancel(t *testing.T) {
	env := setupEnv(t)

	_, initiatorToken := env.createUser(t, "withdrawer", nil)
	recipient, _ := env.createUser(t, "bystander", nil)

	resp := env.do(t, http.MethodPost, "/api/v1/deals", ProposeDealRequest{
		RecipientID: recipient.ID,
		Title:       "Withdrawn offer",
		Description: "Oops",
	}, initiatorToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Deal domain.Deal `json:"deal"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &created))

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/deals/%d/cancel", created.Deal.ID), nil, initiatorToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var deal domain.Deal
	require.NoError(t, env.db.First(&deal, created.Deal.ID).Error)
	require.Equal(t, domain.DealCancelled, deal.Status)
}
