package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeboard/internal/domain"
)

func seedDeal(t *testing.T, repo *DealRepository, status domain.DealStatus) *domain.Deal {
	d := &domain.Deal{
		InitiatorID: 10,
		RecipientID: 20,
		Title:       "logo swap",
		Description: "design for copywriting",
		Status:      status,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}

func TestTransitionWithResponse_FlipsAndAppendsTogether(t *testing.T) {
	ctx := context.Background()
	repo := NewDealRepository(testDB(t))
	d := seedDeal(t, repo, domain.DealPending)

	approve := true
	ok, err := repo.TransitionWithResponse(ctx, d.ID, domain.DealPending, domain.DealNegotiating, &domain.DealResponse{
		DealID:       d.ID,
		UserID:       20,
		Content:      "deal",
		ResponseType: domain.ResponseRecipient,
		IsApproved:   &approve,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealNegotiating, got.Status)

	responses, err := repo.ListResponses(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}

func TestTransitionWithResponse_LoserWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewDealRepository(testDB(t))
	d := seedDeal(t, repo, domain.DealRejected)

	approve := true
	ok, err := repo.TransitionWithResponse(ctx, d.ID, domain.DealPending, domain.DealNegotiating, &domain.DealResponse{
		DealID:       d.ID,
		UserID:       20,
		Content:      "too late",
		ResponseType: domain.ResponseRecipient,
		IsApproved:   &approve,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealRejected, got.Status)

	responses, err := repo.ListResponses(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, responses)
}
