package services

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/eventbus"
	"vessel-orders/pkg/utils"
)

const testDomain = "@starnav.com.br"

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*entities.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt, user.UpdatedAt = testNow, testNow
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ dto.UserFilter) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entities.ServiceOrder
	updates int
	marked  []uuid.UUID
}

func newFakeOrderRepo(orders ...*entities.ServiceOrder) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[uuid.UUID]*entities.ServiceOrder{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entities.ServiceOrder) error {
	order.ID = uuid.New()
	order.RequestedAt, order.UpdatedAt = testNow, testNow
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindOrder(_ context.Context, id uuid.UUID) (*entities.ServiceOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindForUpdate(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error) {
	return r.FindOrder(ctx, id)
}

func (r *fakeOrderRepo) GetOrders(_ context.Context, filter dto.OrderFilter) ([]entities.ServiceOrder, uint64, error) {
	all := make([]entities.ServiceOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status.IsValid() && o.Status != filter.Status {
			continue
		}
		all = append(all, *o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	total := uint64(len(all))
	if filter.Offset >= total {
		return []entities.ServiceOrder{}, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && uint64(len(all)) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (r *fakeOrderRepo) UpdateOrder(_ context.Context, _ pgx.Tx, order *entities.ServiceOrder) error {
	if _, ok := r.orders[order.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.updates++
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) ListOverdue(_ context.Context, now time.Time) ([]entities.ServiceOrder, error) {
	var out []entities.ServiceOrder
	for _, o := range r.orders {
		if o.IsOverdue(now) && !o.OverdueNotified {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) MarkOverdueNotified(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			o.OverdueNotified = true
		}
	}
	r.marked = append(r.marked, ids...)
	return nil
}

type fakeHistoryRepo struct {
	rows []entities.OrderHistory
}

func (r *fakeHistoryRepo) AddStatusChange(_ context.Context, _ pgx.Tx, h *entities.OrderHistory) error {
	h.ID = uint64(len(r.rows) + 1)
	h.ChangedAt = testNow
	r.rows = append(r.rows, *h)
	return nil
}

func (r *fakeHistoryRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entities.OrderHistory, error) {
	out := []entities.OrderHistory{}
	for _, h := range r.rows {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakePreferenceRepo struct {
	prefs map[uuid.UUID]entities.DashboardPreference
	gets  int
}

func (r *fakePreferenceRepo) Get(_ context.Context, userID uuid.UUID) (*entities.DashboardPreference, error) {
	r.gets++
	p, ok := r.prefs[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakePreferenceRepo) Upsert(_ context.Context, pref *entities.DashboardPreference) error {
	pref.UpdatedAt = testNow
	r.prefs[pref.UserID] = *pref
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, exp time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = "?"
	}
	c.ttls[key] = exp
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, exp time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return false, nil
	}
	c.ttls[key] = exp
	return true, nil
}

func (c *fakeCache) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key], nil
}

// fakeTx runs fn without a real transaction; a failing fn leaves whatever the
// fakes already recorded, so tests assert on errors before state.
type fakeTx struct{ calls int }

func (t *fakeTx) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	t.calls++
	return fn(nil)
}

type fakePublisher struct {
	events []eventbus.Event
}

func (p *fakePublisher) Publish(_ context.Context, e eventbus.Event) {
	p.events = append(p.events, e)
}

type fakeStorage struct {
	saved   map[string]string
	deleted []string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{saved: map[string]string{}} }

func (s *fakeStorage) Save(file io.Reader, name, prefix string) (string, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	url := "/uploads/" + prefix + "/2026/03/10/" + name
	s.saved[url] = string(body)
	return url, nil
}

func (s *fakeStorage) Delete(url string) error {
	s.deleted = append(s.deleted, url)
	delete(s.saved, url)
	return nil
}

func newUser(name string, role authz.Role, sector authz.Sector) *entities.User {
	hash, err := utils.HashPassword("password123")
	if err != nil {
		panic(err)
	}
	return &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + testDomain,
		PasswordHash: hash,
		Role:         role,
		Sector:       sector,
	}
}

func asUser(u *entities.User) context.Context {
	return utils.WithUserID(context.Background(), u.ID.String())
}

func asUserID(id string) context.Context {
	return utils.WithUserID(context.Background(), id)
}
