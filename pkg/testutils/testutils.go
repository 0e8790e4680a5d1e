// Package testutils provides an in-memory UnitOfWork with fake repositories,
// plus helpers for exercising the Fiber app in handler tests. The fakes keep
// the same conditional-update semantics as the SQL implementations so engine
// tests observe identical conflict behavior.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/repository"
	drawrepo "github.com/lottohq/lottery/pkg/repository/draw"
	prizerepo "github.com/lottohq/lottery/pkg/repository/prize"
	ticketrepo "github.com/lottohq/lottery/pkg/repository/ticket"
	userrepo "github.com/lottohq/lottery/pkg/repository/user"
)

// DiscardLogger returns a logger whose output goes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeUoW is an in-memory UnitOfWork. Do simply runs fn against the same
// store; a test asserting rollback behavior belongs at the sqlmock layer.
type FakeUoW struct {
	mu      sync.Mutex
	Users   *FakeUserRepository
	Tickets *FakeTicketRepository
	Prizes  *FakePrizeRepository
	Draws   *FakeDrawRepository
}

// NewFakeUoW creates an empty in-memory unit of work.
func NewFakeUoW() *FakeUoW {
	return &FakeUoW{
		Users:   &FakeUserRepository{byID: map[uuid.UUID]*dto.UserRead{}},
		Tickets: &FakeTicketRepository{byID: map[uuid.UUID]*dto.TicketRead{}},
		Prizes:  &FakePrizeRepository{byID: map[uuid.UUID]*dto.PrizeRead{}},
		Draws:   &FakeDrawRepository{byID: map[uuid.UUID]*dto.DrawRead{}},
	}
}

func (u *FakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(u)
}

func (u *FakeUoW) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*userrepo.Repository)(nil)).Elem():
		return u.Users, nil
	case reflect.TypeOf((*ticketrepo.Repository)(nil)).Elem():
		return u.Tickets, nil
	case reflect.TypeOf((*prizerepo.Repository)(nil)).Elem():
		return u.Prizes, nil
	case reflect.TypeOf((*drawrepo.Repository)(nil)).Elem():
		return u.Draws, nil
	}
	return nil, repository.ErrRepositoryNotRegistered
}

func (u *FakeUoW) UserRepository() (userrepo.Repository, error)     { return u.Users, nil }
func (u *FakeUoW) TicketRepository() (ticketrepo.Repository, error) { return u.Tickets, nil }
func (u *FakeUoW) PrizeRepository() (prizerepo.Repository, error)   { return u.Prizes, nil }
func (u *FakeUoW) DrawRepository() (drawrepo.Repository, error)     { return u.Draws, nil }

// FakeUserRepository stores users in a map.
type FakeUserRepository struct {
	byID map[uuid.UUID]*dto.UserRead
}

func cloneUser(u *dto.UserRead) *dto.UserRead {
	c := *u
	return &c
}

func (r *FakeUserRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	now := time.Now().UTC()
	r.byID[create.ID] = &dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		Email:          create.Email,
		Phone:          create.Phone,
		HashedPassword: create.Password,
		Role:           create.Role,
		Money:          create.Money,
		Status:         create.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (r *FakeUserRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Password != nil {
		u.HashedPassword = *update.Password
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Money != nil {
		u.Money = *update.Money
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakeUserRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) FieldsTaken(
	ctx context.Context,
	username, email, phone string,
	excludeID *uuid.UUID,
) (taken dto.UserFieldsTaken, err error) {
	for _, u := range r.byID {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if username != "" && u.Username == username {
			taken.UsernameTaken = true
		}
		if email != "" && u.Email == email {
			taken.EmailTaken = true
		}
		if phone != "" && u.Phone == phone {
			taken.PhoneTaken = true
		}
	}
	return taken, nil
}

func (r *FakeUserRepository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.UserRead, error) {
	users := make([]*dto.UserRead, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return paginate(users, opts), nil
}

func (r *FakeUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *FakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *FakeUserRepository) DeleteAll(ctx context.Context) error {
	r.byID = map[uuid.UUID]*dto.UserRead{}
	return nil
}

func (r *FakeUserRepository) Debit(ctx context.Context, id uuid.UUID, amount money.Amount) error {
	u, ok := r.byID[id]
	if !ok || u.Money < amount {
		return domain.ErrInsufficientFunds
	}
	u.Money -= amount
	return nil
}

func (r *FakeUserRepository) Credit(ctx context.Context, id uuid.UUID, amount money.Amount) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Money += amount
	return nil
}

// FakeTicketRepository stores tickets in a map.
type FakeTicketRepository struct {
	byID map[uuid.UUID]*dto.TicketRead
}

func cloneTicket(t *dto.TicketRead) *dto.TicketRead {
	c := *t
	if t.OwnerID != nil {
		owner := *t.OwnerID
		c.OwnerID = &owner
	}
	return &c
}

func (r *FakeTicketRepository) Create(ctx context.Context, create *dto.TicketCreate) error {
	now := time.Now().UTC()
	r.byID[create.ID] = &dto.TicketRead{
		ID:           create.ID,
		TicketNumber: create.TicketNumber,
		Price:        create.Price,
		DrawID:       create.DrawID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return nil
}

func (r *FakeTicketRepository) Update(ctx context.Context, id uuid.UUID, update *dto.TicketUpdate) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	if update.TicketNumber != nil {
		t.TicketNumber = *update.TicketNumber
	}
	if update.Price != nil {
		t.Price = *update.Price
	}
	if update.DrawID != nil {
		t.DrawID = update.DrawID
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakeTicketRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TicketRead, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneTicket(t), nil
}

func (r *FakeTicketRepository) GetByNumber(ctx context.Context, number string) (*dto.TicketRead, error) {
	for _, t := range r.byID {
		if t.TicketNumber == number {
			return cloneTicket(t), nil
		}
	}
	return nil, nil
}

func (r *FakeTicketRepository) matches(t *dto.TicketRead, filter dto.TicketFilter) bool {
	if filter.NumberContains != "" && !strings.Contains(t.TicketNumber, filter.NumberContains) {
		return false
	}
	if filter.NumberSuffix != "" && !strings.HasSuffix(t.TicketNumber, filter.NumberSuffix) {
		return false
	}
	if filter.OwnerID != nil {
		if t.OwnerID == nil || *t.OwnerID != *filter.OwnerID {
			return false
		}
	}
	return true
}

func (r *FakeTicketRepository) List(
	ctx context.Context,
	filter dto.TicketFilter,
	opts dto.ListOptions,
) ([]*dto.TicketRead, error) {
	tickets := make([]*dto.TicketRead, 0, len(r.byID))
	for _, t := range r.byID {
		if r.matches(t, filter) {
			tickets = append(tickets, cloneTicket(t))
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].TicketNumber < tickets[j].TicketNumber
	})
	return paginate(tickets, opts), nil
}

func (r *FakeTicketRepository) Count(ctx context.Context, filter dto.TicketFilter) (int64, error) {
	var n int64
	for _, t := range r.byID {
		if r.matches(t, filter) {
			n++
		}
	}
	return n, nil
}

func (r *FakeTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *FakeTicketRepository) DeleteAll(ctx context.Context) error {
	r.byID = map[uuid.UUID]*dto.TicketRead{}
	return nil
}

func (r *FakeTicketRepository) ClaimOwnership(ctx context.Context, ticketID, ownerID uuid.UUID) error {
	t, ok := r.byID[ticketID]
	if !ok || t.OwnerID != nil {
		return domain.ErrTicketAlreadySold
	}
	owner := ownerID
	t.OwnerID = &owner
	return nil
}

// FakePrizeRepository stores prizes in a map.
type FakePrizeRepository struct {
	byID map[uuid.UUID]*dto.PrizeRead
}

func clonePrize(p *dto.PrizeRead) *dto.PrizeRead {
	c := *p
	return &c
}

func (r *FakePrizeRepository) Create(ctx context.Context, create *dto.PrizeCreate) error {
	now := time.Now().UTC()
	r.byID[create.ID] = &dto.PrizeRead{
		ID:               create.ID,
		PrizeDescription: create.PrizeDescription,
		PrizeAmount:      create.PrizeAmount,
		WinningTicketID:  create.WinningTicketID,
		Status:           create.Status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return nil
}

func (r *FakePrizeRepository) CreateMany(ctx context.Context, creates []*dto.PrizeCreate) (int, error) {
	for _, c := range creates {
		if err := r.Create(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(creates), nil
}

func (r *FakePrizeRepository) Update(ctx context.Context, id uuid.UUID, update *dto.PrizeUpdate) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPrizeNotFound
	}
	if update.PrizeDescription != nil {
		p.PrizeDescription = *update.PrizeDescription
	}
	if update.PrizeAmount != nil {
		p.PrizeAmount = *update.PrizeAmount
	}
	if update.WinningTicketID != nil {
		p.WinningTicketID = *update.WinningTicketID
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakePrizeRepository) Get(ctx context.Context, id uuid.UUID) (*dto.PrizeRead, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clonePrize(p), nil
}

func (r *FakePrizeRepository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*dto.PrizeRead, error) {
	for _, p := range r.byID {
		if p.WinningTicketID == ticketID {
			return clonePrize(p), nil
		}
	}
	return nil, nil
}

func (r *FakePrizeRepository) ListByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) ([]*dto.PrizeRead, error) {
	wanted := make(map[uuid.UUID]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		wanted[id] = true
	}
	var prizes []*dto.PrizeRead
	for _, p := range r.byID {
		if wanted[p.WinningTicketID] {
			prizes = append(prizes, clonePrize(p))
		}
	}
	return prizes, nil
}

func (r *FakePrizeRepository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.PrizeRead, error) {
	prizes := make([]*dto.PrizeRead, 0, len(r.byID))
	for _, p := range r.byID {
		prizes = append(prizes, clonePrize(p))
	}
	sort.Slice(prizes, func(i, j int) bool {
		return prizes[i].CreatedAt.Before(prizes[j].CreatedAt)
	})
	return paginate(prizes, opts), nil
}

func (r *FakePrizeRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *FakePrizeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *FakePrizeRepository) DeleteAll(ctx context.Context) error {
	r.byID = map[uuid.UUID]*dto.PrizeRead{}
	return nil
}

func (r *FakePrizeRepository) WinningTicketTaken(
	ctx context.Context,
	ticketID uuid.UUID,
	excludeID *uuid.UUID,
) (bool, error) {
	for _, p := range r.byID {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.WinningTicketID == ticketID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakePrizeRepository) MarkClaimed(ctx context.Context, prizeID uuid.UUID) error {
	p, ok := r.byID[prizeID]
	if !ok || p.Status != "unclaimed" {
		return domain.ErrPrizeAlreadyClaimed
	}
	p.Status = "claimed"
	return nil
}

// FakeDrawRepository stores draws in a map.
type FakeDrawRepository struct {
	byID map[uuid.UUID]*dto.DrawRead
}

func (r *FakeDrawRepository) Create(ctx context.Context, create *dto.DrawCreate) error {
	now := time.Now().UTC()
	r.byID[create.ID] = &dto.DrawRead{
		ID:        create.ID,
		Name:      create.Name,
		DrawDate:  create.DrawDate,
		Open:      create.Open,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *FakeDrawRepository) Update(ctx context.Context, id uuid.UUID, update *dto.DrawUpdate) error {
	d, ok := r.byID[id]
	if !ok {
		return domain.ErrDrawNotFound
	}
	if update.Name != nil {
		d.Name = *update.Name
	}
	if update.DrawDate != nil {
		d.DrawDate = *update.DrawDate
	}
	if update.Open != nil {
		d.Open = *update.Open
	}
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakeDrawRepository) Get(ctx context.Context, id uuid.UUID) (*dto.DrawRead, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *FakeDrawRepository) List(ctx context.Context, opts dto.ListOptions) ([]*dto.DrawRead, error) {
	draws := make([]*dto.DrawRead, 0, len(r.byID))
	for _, d := range r.byID {
		c := *d
		draws = append(draws, &c)
	}
	sort.Slice(draws, func(i, j int) bool { return draws[i].Name < draws[j].Name })
	return paginate(draws, opts), nil
}

func (r *FakeDrawRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *FakeDrawRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func paginate[T any](items []T, opts dto.ListOptions) []T {
	if opts.Limit <= 0 {
		return items
	}
	start := opts.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + opts.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MakeRequestWithApp performs an in-process request against the Fiber app.
func MakeRequestWithApp(app *fiber.App, method, target, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// FakeRevocationStore keeps revoked tokens in memory.
type FakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

// NewFakeRevocationStore creates an empty store.
func NewFakeRevocationStore() *FakeRevocationStore {
	return &FakeRevocationStore{revoked: map[string]bool{}}
}

func (s *FakeRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl > 0 {
		s.revoked[token] = true
	}
	return nil
}

func (s *FakeRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token], nil
}
