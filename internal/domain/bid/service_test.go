package bid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gigflow/internal/database/dbtest"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/notification"
	"gigflow/internal/domain/user"
	"gigflow/internal/pkg/apperr"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBidReceived(ctx context.Context, e notification.BidReceived) {
	m.Called(ctx, e)
}

type fixture struct {
	db    *gorm.DB
	bids  *Repository
	gigs  *gig.Repository
	users *user.Repository
	notif *MockNotifier
	svc   *Service
}

func setupService(t *testing.T, maxBids int) *fixture {
	t.Helper()
	db := dbtest.Open(t, &user.User{}, &gig.Gig{}, &Bid{})
	f := &fixture{
		db:    db,
		bids:  NewRepository(db),
		gigs:  gig.NewRepository(db),
		users: user.NewRepository(db),
		notif: new(MockNotifier),
	}
	f.svc = NewService(f.bids, f.gigs, f.users, f.notif, maxBids)
	return f
}

func (f *fixture) user(t *testing.T, name string) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) gig(t *testing.T, ownerID, title string) *gig.Gig {
	t.Helper()
	g := &gig.Gig{Title: title, Description: "desc", Budget: 100, OwnerID: ownerID}
	require.NoError(t, f.gigs.Create(context.Background(), g))
	return g
}

func TestService_CreateNotifiesOwner(t *testing.T) {
	f := setupService(t, 3)
	owner := f.user(t, "owner")
	jane := f.user(t, "jane")
	g := f.gig(t, owner.ID, "Logo")

	f.notif.On("NotifyBidReceived", mock.Anything, mock.MatchedBy(func(e notification.BidReceived) bool {
		return e.OwnerID == owner.ID && e.GigTitle == "Logo" && e.FreelancerName == "jane"
	})).Once()

	b, err := f.svc.Create(context.Background(), jane.ID, CreateBidRequest{GigID: g.ID, Message: " hi ", Price: price(80)})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "hi", b.Message)
	require.NotNil(t, b.Freelancer)
	assert.Equal(t, jane.Email, b.Freelancer.Email)
	f.notif.AssertExpectations(t)
}

func TestService_CreateRules(t *testing.T) {
	f := setupService(t, 2)
	f.notif.On("NotifyBidReceived", mock.Anything, mock.Anything)
	ctx := context.Background()

	owner := f.user(t, "owner")
	free := f.user(t, "free")
	g1 := f.gig(t, owner.ID, "One")
	g2 := f.gig(t, owner.ID, "Two")
	g3 := f.gig(t, owner.ID, "Three")
	assigned := f.gig(t, owner.ID, "Taken")
	_, err := f.gigs.TryAssign(ctx, assigned.ID, gig.StatusOpen)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "", Price: price(1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "m", Price: price(-5)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "m"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: "ghost", Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, gig.ErrGigNotFound)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: assigned.ID, Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, ErrGigNotOpen)

	_, err = f.svc.Create(ctx, owner.ID, CreateBidRequest{GigID: g1.ID, Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, ErrSelfBid)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "m", Price: price(0)})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, ErrDuplicateBid)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g2.ID, Message: "m", Price: price(1)})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g3.ID, Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, ErrBidLimitReached)
	assert.Equal(t, 400, apperr.From(err).HTTPStatus)
}

func TestService_CreateLimitCountsProcessedBids(t *testing.T) {
	f := setupService(t, 3)
	f.notif.On("NotifyBidReceived", mock.Anything, mock.Anything)
	ctx := context.Background()

	owner := f.user(t, "owner")
	free := f.user(t, "free")
	rival := f.user(t, "rival")
	g1 := f.gig(t, owner.ID, "One")
	g2 := f.gig(t, owner.ID, "Two")
	g3 := f.gig(t, owner.ID, "Three")
	g4 := f.gig(t, owner.ID, "Four")

	hiredBid, err := f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g1.ID, Message: "m", Price: price(1)})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g2.ID, Message: "m", Price: price(1)})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g3.ID, Message: "m", Price: price(1)})
	require.NoError(t, err)
	rivalBid, err := f.svc.Create(ctx, rival.ID, CreateBidRequest{GigID: g2.ID, Message: "m", Price: price(1)})
	require.NoError(t, err)

	// one bid hired, one rejected, one still pending
	got, err := f.bids.TryHire(ctx, hiredBid.ID, g1.ID, StatusPending)
	require.NoError(t, err)
	require.NotNil(t, got)
	got, err = f.bids.TryHire(ctx, rivalBid.ID, g2.ID, StatusPending)
	require.NoError(t, err)
	require.NotNil(t, got)
	n, err := f.bids.RejectSiblings(ctx, g2.ID, rivalBid.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	pending, err := f.bids.CountByFreelancerAndStatus(ctx, free.ID, StatusPending)
	require.NoError(t, err)
	require.EqualValues(t, 1, pending)

	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: g4.ID, Message: "m", Price: price(1)})
	assert.ErrorIs(t, err, ErrBidLimitReached)
}

func TestService_ListForGig(t *testing.T) {
	f := setupService(t, 3)
	f.notif.On("NotifyBidReceived", mock.Anything, mock.Anything)
	ctx := context.Background()

	owner := f.user(t, "owner")
	a := f.user(t, "a")
	b := f.user(t, "b")
	g := f.gig(t, owner.ID, "Site")

	_, err := f.svc.Create(ctx, a.ID, CreateBidRequest{GigID: g.ID, Message: "a", Price: price(1)})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, b.ID, CreateBidRequest{GigID: g.ID, Message: "b", Price: price(2)})
	require.NoError(t, err)

	rows, err := f.svc.ListForGig(ctx, owner.ID, g.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotNil(t, r.Freelancer)
	}

	_, err = f.svc.ListForGig(ctx, a.ID, g.ID)
	assert.ErrorIs(t, err, ErrNotGigOwner)

	_, err = f.svc.ListForGig(ctx, owner.ID, "ghost")
	assert.ErrorIs(t, err, gig.ErrGigNotFound)
}

func TestService_ListActiveGigs(t *testing.T) {
	f := setupService(t, 3)
	f.notif.On("NotifyBidReceived", mock.Anything, mock.Anything)
	ctx := context.Background()

	owner := f.user(t, "owner")
	free := f.user(t, "free")
	first := f.gig(t, owner.ID, "First")
	second := f.gig(t, owner.ID, "Second")

	_, err := f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: first.ID, Message: "one", Price: price(1)})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = f.svc.Create(ctx, free.ID, CreateBidRequest{GigID: second.ID, Message: "two", Price: price(2)})
	require.NoError(t, err)

	active, err := f.svc.ListActiveGigs(ctx, free.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Second", active[0].Title)
	assert.Equal(t, "two", active[0].Bid.Message)
	assert.Equal(t, StatusPending, active[0].Bid.Status)

	none, err := f.svc.ListActiveGigs(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func price(v float64) *float64 { return &v }

type failingDirectory struct{}

func (failingDirectory) GetByID(context.Context, string) (*user.User, error) {
	return nil, errors.New("directory down")
}

func (failingDirectory) Summaries(context.Context, []string) (map[string]*user.Summary, error) {
	return nil, errors.New("directory down")
}

func TestService_CreateNotifiesWithoutDirectory(t *testing.T) {
	f := setupService(t, 3)
	owner := f.user(t, "owner")
	jane := f.user(t, "jane")
	g := f.gig(t, owner.ID, "Logo")
	f.svc = NewService(f.bids, f.gigs, failingDirectory{}, f.notif, 3)

	f.notif.On("NotifyBidReceived", mock.Anything, mock.MatchedBy(func(e notification.BidReceived) bool {
		return e.FreelancerID == jane.ID && e.FreelancerName == "a freelancer"
	})).Once()

	b, err := f.svc.Create(context.Background(), jane.ID, CreateBidRequest{GigID: g.ID, Message: "hi", Price: price(10)})
	require.NoError(t, err)
	assert.Nil(t, b.Freelancer)
	f.notif.AssertExpectations(t)
}
