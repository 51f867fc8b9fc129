package gig

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gigflow/internal/domain/user"
	"gigflow/internal/pkg/apperr"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockDirectory) Summaries(ctx context.Context, ids []string) (map[string]*user.Summary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*user.Summary), args.Error(1)
}

func TestService_Create(t *testing.T) {
	repo := setupRepo(t)
	dir := new(MockDirectory)
	dir.On("Summaries", mock.Anything, []string{"owner-1"}).
		Return(map[string]*user.Summary{"owner-1": {ID: "owner-1", Name: "Olivia", Email: "o@example.com"}}, nil)

	svc := NewService(repo, dir, 3)
	g, err := svc.Create(context.Background(), "owner-1", CreateGigRequest{
		Title:       "  Landing page  ",
		Description: " One page site ",
		Budget:      budget(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "Landing page", g.Title)
	assert.Equal(t, "One page site", g.Description)
	assert.Equal(t, StatusOpen, g.Status)
	require.NotNil(t, g.Owner)
	assert.Equal(t, "Olivia", g.Owner.Name)
	dir.AssertExpectations(t)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(setupRepo(t), nil, 3)

	cases := map[string]CreateGigRequest{
		"blank title":       {Title: "   ", Description: "d", Budget: budget(1)},
		"blank description": {Title: "t", Description: "", Budget: budget(1)},
		"negative budget":   {Title: "t", Description: "d", Budget: budget(-1)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestService_CreateZeroBudgetAllowed(t *testing.T) {
	svc := NewService(setupRepo(t), nil, 3)
	g, err := svc.Create(context.Background(), "owner-1", CreateGigRequest{Title: "t", Description: "d", Budget: budget(0)})
	require.NoError(t, err)
	assert.Zero(t, g.Budget)
}

func TestService_CreateLimit(t *testing.T) {
	svc := NewService(setupRepo(t), nil, 2)
	ctx := context.Background()
	req := CreateGigRequest{Title: "t", Description: "d", Budget: budget(1)}

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, "owner-1", req)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "owner-1", req)
	assert.ErrorIs(t, err, ErrGigLimitReached)

	_, err = svc.Create(ctx, "owner-2", req)
	assert.NoError(t, err)
}

func TestService_DirectoryFailureLeavesOwnerEmpty(t *testing.T) {
	repo := setupRepo(t)
	dir := new(MockDirectory)
	dir.On("Summaries", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	svc := NewService(repo, dir, 3)
	g := mustCreate(t, repo, "owner-1", "t", "d")

	got, err := svc.GetByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
}

func budget(v float64) *float64 { return &v }
