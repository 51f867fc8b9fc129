package bid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow/internal/database/dbtest"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbtest.Open(t, &Bid{}))
}

func mustBid(t *testing.T, repo *Repository, gigID, freelancerID string) *Bid {
	t.Helper()
	b := &Bid{GigID: gigID, FreelancerID: freelancerID, Message: "I can do it", Price: 50}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	b := mustBid(t, repo, "gig-1", "free-1")

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Nil(t, got.RejectedAt)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestRepository_UniqueGigFreelancer(t *testing.T) {
	repo := setupRepo(t)
	mustBid(t, repo, "gig-1", "free-1")

	err := repo.Create(context.Background(), &Bid{GigID: "gig-1", FreelancerID: "free-1", Message: "again", Price: 1})
	assert.ErrorIs(t, err, ErrDuplicateBid)

	exists, err := repo.ExistsForGigAndFreelancer(context.Background(), "gig-1", "free-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForGigAndFreelancer(context.Background(), "gig-2", "free-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_TryHireGuards(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	b := mustBid(t, repo, "gig-1", "free-1")

	wrongGig, err := repo.TryHire(ctx, b.ID, "gig-2", StatusPending)
	require.NoError(t, err)
	assert.Nil(t, wrongGig)

	hired, err := repo.TryHire(ctx, b.ID, "gig-1", StatusPending)
	require.NoError(t, err)
	require.NotNil(t, hired)
	assert.Equal(t, StatusHired, hired.Status)

	again, err := repo.TryHire(ctx, b.ID, "gig-1", StatusPending)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestRepository_RejectSiblings(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	winner := mustBid(t, repo, "gig-1", "free-1")
	mustBid(t, repo, "gig-1", "free-2")
	mustBid(t, repo, "gig-1", "free-3")
	other := mustBid(t, repo, "gig-2", "free-2")

	_, err := repo.TryHire(ctx, winner.ID, "gig-1", StatusPending)
	require.NoError(t, err)

	n, err := repo.RejectSiblings(ctx, "gig-1", winner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rows, err := repo.ListByGig(ctx, "gig-1")
	require.NoError(t, err)
	for _, b := range rows {
		if b.ID == winner.ID {
			assert.Equal(t, StatusHired, b.Status)
			continue
		}
		assert.Equal(t, StatusRejected, b.Status)
		assert.NotNil(t, b.RejectedAt)
	}

	untouched, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, untouched.Status)

	// second pass finds nothing left to reject
	n, err = repo.RejectSiblings(ctx, "gig-1", winner.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_Counts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := mustBid(t, repo, "gig-1", "free-1")
	mustBid(t, repo, "gig-2", "free-1")
	mustBid(t, repo, "gig-1", "free-2")
	_, err := repo.TryHire(ctx, a.ID, "gig-1", StatusPending)
	require.NoError(t, err)

	n, err := repo.CountByFreelancer(ctx, "free-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	hired, err := repo.CountByFreelancerAndStatus(ctx, "free-1", StatusHired)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hired)

	mine, err := repo.ListByFreelancer(ctx, "free-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
