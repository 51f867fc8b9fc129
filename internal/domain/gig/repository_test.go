package gig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow/internal/database/dbtest"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbtest.Open(t, &Gig{}))
}

func mustCreate(t *testing.T, repo *Repository, ownerID, title, desc string) *Gig {
	t.Helper()
	g := &Gig{Title: title, Description: desc, Budget: 100, OwnerID: ownerID}
	require.NoError(t, repo.Create(context.Background(), g))
	return g
}

func TestRepository_CreateDefaultsToOpen(t *testing.T) {
	repo := setupRepo(t)
	g := mustCreate(t, repo, "owner-1", "Logo design", "Need a logo")

	assert.NotEmpty(t, g.ID)
	got, err := repo.GetByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got.Status)
	assert.Nil(t, got.AssignedAt)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestRepository_TryAssignOnlyOnce(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	g := mustCreate(t, repo, "owner-1", "API work", "Build an API")

	first, err := repo.TryAssign(ctx, g.ID, StatusOpen)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, StatusAssigned, first.Status)
	require.NotNil(t, first.AssignedAt)

	second, err := repo.TryAssign(ctx, g.ID, StatusOpen)
	require.NoError(t, err)
	assert.Nil(t, second)

	missing, err := repo.TryAssign(ctx, "ghost", StatusOpen)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_Reopen(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	g := mustCreate(t, repo, "owner-1", "API work", "Build an API")

	_, err := repo.TryAssign(ctx, g.ID, StatusOpen)
	require.NoError(t, err)
	require.NoError(t, repo.Reopen(ctx, g.ID))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, got.Status)
	assert.Nil(t, got.AssignedAt)

	// reopening an open gig is a no-op
	require.NoError(t, repo.Reopen(ctx, g.ID))
}

func TestRepository_ListOpenSearch(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	logo := mustCreate(t, repo, "owner-1", "Logo Design", "vector artwork")
	time.Sleep(2 * time.Millisecond)
	api := mustCreate(t, repo, "owner-2", "Backend", "REST API in Go")
	time.Sleep(2 * time.Millisecond)
	taken := mustCreate(t, repo, "owner-2", "Another logo", "assigned already")
	_, err := repo.TryAssign(ctx, taken.ID, StatusOpen)
	require.NoError(t, err)

	all, err := repo.ListOpen(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, api.ID, all[0].ID, "newest first")

	byTitle, err := repo.ListOpen(ctx, Filter{Search: "LOGO"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, logo.ID, byTitle[0].ID)

	byDesc, err := repo.ListOpen(ctx, Filter{Search: "rest api"})
	require.NoError(t, err)
	require.Len(t, byDesc, 1)
	assert.Equal(t, api.ID, byDesc[0].ID)

	wildcard, err := repo.ListOpen(ctx, Filter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard)
}

func TestRepository_OwnerQueries(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "owner-1", "One", "first")
	b := mustCreate(t, repo, "owner-1", "Two", "second")
	mustCreate(t, repo, "owner-2", "Other", "else")

	n, err := repo.CountByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	mine, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	byIDs, err := repo.ListByIDs(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	none, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
