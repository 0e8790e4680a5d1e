package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/testutils"
	"github.com/lottohq/lottery/pkg/utils"
)

func TestRegister_HappyPath(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())

	created, taken, err := svc.Register(
		context.Background(),
		"alice",
		"alice@example.com",
		"0812345678",
		"secret123",
	)
	require.NoError(t, err)
	assert.False(t, taken.Any())
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "user", created.Role)
	assert.Zero(t, created.Money)
	assert.NotEqual(t, "secret123", created.HashedPassword)
	assert.True(t, utils.CheckPasswordHash("secret123", created.HashedPassword))
}

// Every colliding field is reported, not just the first one found.
func TestRegister_ReportsAllDuplicateFields(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
	require.NoError(t, err)

	t.Run("all three collide", func(t *testing.T) {
		_, taken, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
		assert.ErrorIs(t, err, domain.ErrDuplicateUserField)
		assert.True(t, taken.UsernameTaken)
		assert.True(t, taken.EmailTaken)
		assert.True(t, taken.PhoneTaken)
	})

	t.Run("only email collides", func(t *testing.T) {
		_, taken, err := svc.Register(ctx, "bob", "alice@example.com", "0899999999", "secret123")
		assert.ErrorIs(t, err, domain.ErrDuplicateUserField)
		assert.False(t, taken.UsernameTaken)
		assert.True(t, taken.EmailTaken)
		assert.False(t, taken.PhoneTaken)
	})
}

func TestCheckUniqueFields(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
	require.NoError(t, err)

	taken, err := svc.CheckUniqueFields(ctx, "alice", "fresh@example.com", "")
	require.NoError(t, err)
	assert.True(t, taken.UsernameTaken)
	assert.False(t, taken.EmailTaken)
	assert.False(t, taken.PhoneTaken)
}

func TestUpdate_DuplicateAgainstOtherUser(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
	require.NoError(t, err)
	bob, _, err := svc.Register(ctx, "bob", "bob@example.com", "0899999999", "secret123")
	require.NoError(t, err)

	collide := "alice@example.com"
	_, err = svc.Update(ctx, bob.ID, &dto.UserUpdate{Email: &collide})
	assert.ErrorIs(t, err, domain.ErrDuplicateUserField)

	// Re-saving your own email is not a collision.
	own := "bob@example.com"
	updated, err := svc.Update(ctx, bob.ID, &dto.UserUpdate{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
}

func TestUpdate_HashesPassword(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	alice, _, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
	require.NoError(t, err)

	newPassword := "evenmoresecret"
	updated, err := svc.Update(ctx, alice.ID, &dto.UserUpdate{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, newPassword, updated.HashedPassword)
	assert.True(t, utils.CheckPasswordHash(newPassword, updated.HashedPassword))
}

func TestGet_NotFound(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Reset wipes prizes, tickets and users, then seeds a single approved admin
// with the default credentials.
func TestSystemReset(t *testing.T) {
	uow := testutils.NewFakeUoW()
	svc := New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "0812345678", "secret123")
	require.NoError(t, err)
	require.NoError(t, uow.Tickets.Create(ctx, &dto.TicketCreate{
		ID:           uuid.New(),
		TicketNumber: "123456",
		Price:        80,
	}))
	require.NoError(t, uow.Prizes.Create(ctx, &dto.PrizeCreate{
		ID:              uuid.New(),
		PrizeAmount:     100,
		WinningTicketID: uuid.New(),
		Status:          "unclaimed",
	}))

	admin, err := svc.SystemReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedAdminUsername, admin.Username)
	assert.Equal(t, "admin", admin.Role)
	assert.Equal(t, "approved", admin.Status)
	assert.True(t, utils.CheckPasswordHash(SeedAdminPassword, admin.HashedPassword))

	userCount, err := uow.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, userCount)

	ticketCount, err := uow.Tickets.Count(ctx, dto.TicketFilter{})
	require.NoError(t, err)
	assert.Zero(t, ticketCount)

	prizeCount, err := uow.Prizes.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, prizeCount)
}
