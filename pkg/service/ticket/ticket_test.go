package ticket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/testutils"
)

func seedUser(t *testing.T, uow *testutils.FakeUoW, balance money.Amount) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := uow.Users.Create(context.Background(), &dto.UserCreate{
		ID:       id,
		Username: "buyer-" + id.String()[:8],
		Email:    id.String()[:8] + "@example.com",
		Phone:    "08" + id.String()[:8],
		Password: "hashed",
		Role:     "user",
		Money:    balance,
		Status:   "approved",
	})
	require.NoError(t, err)
	return id
}

func seedTicket(t *testing.T, uow *testutils.FakeUoW, number string, price money.Amount) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := uow.Tickets.Create(context.Background(), &dto.TicketCreate{
		ID:           id,
		TicketNumber: number,
		Price:        price,
	})
	require.NoError(t, err)
	return id
}

func TestPurchase_HappyPath(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	buyerID := seedUser(t, uow, 100)
	seedTicket(t, uow, "123456", 80)

	bought, err := svc.Purchase(ctx, buyerID, "123456")
	require.NoError(t, err)
	require.NotNil(t, bought.OwnerID)
	assert.Equal(t, buyerID, *bought.OwnerID)

	buyer, err := uow.Users.Get(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(20), buyer.Money)
}

func TestPurchase_TicketNotFound(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())

	buyerID := seedUser(t, uow, 100)

	_, err := svc.Purchase(context.Background(), buyerID, "999999")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestPurchase_UnknownBuyer(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())

	seedTicket(t, uow, "123456", 80)

	_, err := svc.Purchase(context.Background(), uuid.New(), "123456")
	assert.ErrorIs(t, err, domain.ErrUserInvalid)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	buyerID := seedUser(t, uow, 50)
	seedTicket(t, uow, "123456", 80)

	_, err := svc.Purchase(ctx, buyerID, "123456")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Balance untouched by the failed attempt.
	buyer, err := uow.Users.Get(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(50), buyer.Money)
}

// Funds are checked before the sold status, so a broke buyer chasing a sold
// ticket hears about funds first.
func TestPurchase_InsufficientFundsBeforeSoldCheck(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	firstBuyer := seedUser(t, uow, 100)
	brokeBuyer := seedUser(t, uow, 10)
	seedTicket(t, uow, "123456", 80)

	_, err := svc.Purchase(ctx, firstBuyer, "123456")
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, brokeBuyer, "123456")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

// Re-purchasing the same ticket fails identically no matter how often it is
// retried, and never double-charges anyone.
func TestPurchase_AlreadySoldIsStable(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	winner := seedUser(t, uow, 100)
	loser := seedUser(t, uow, 100)
	seedTicket(t, uow, "123456", 80)

	_, err := svc.Purchase(ctx, winner, "123456")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Purchase(ctx, loser, "123456")
		assert.ErrorIs(t, err, domain.ErrTicketAlreadySold)
	}

	loserRead, err := uow.Users.Get(ctx, loser)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(100), loserRead.Money)

	winnerRead, err := uow.Users.Get(ctx, winner)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(20), winnerRead.Money)
}

func TestCreate_DuplicateNumberRejected(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, "123456", 8000, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "123456", 9000, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateTicketNumber)
}

func TestUpdate_NumberCollisionRejected(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	seedTicket(t, uow, "111111", 8000)
	otherID := seedTicket(t, uow, "222222", 8000)

	collide := "111111"
	_, err := svc.Update(ctx, otherID, &dto.TicketUpdate{TicketNumber: &collide})
	assert.ErrorIs(t, err, domain.ErrDuplicateTicketNumber)
}

func TestGet_NotFound(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestList_OwnerFilter(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	buyerID := seedUser(t, uow, 1000)
	seedTicket(t, uow, "111111", 10)
	seedTicket(t, uow, "222222", 10)

	_, err := svc.Purchase(ctx, buyerID, "111111")
	require.NoError(t, err)

	owned, total, err := svc.List(ctx, dto.TicketFilter{OwnerID: &buyerID}, dto.ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, owned, 1)
	assert.Equal(t, "111111", owned[0].TicketNumber)
}
