package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/shopspring/decimal"
)

type memState struct {
	nextID        int64
	restaurants   map[int64]domain.Restaurant
	tables        map[int64]domain.DiningTable
	categories    map[int64]domain.MenuCategory
	menuItems     map[int64]domain.MenuItem
	users         map[int64]domain.UserAccount
	orders        map[int64]domain.CustomerOrder
	reservations  map[int64]domain.Reservation
	notifications map[int64]domain.Notification
}

func newMemState() *memState {
	return &memState{
		restaurants:   map[int64]domain.Restaurant{},
		tables:        map[int64]domain.DiningTable{},
		categories:    map[int64]domain.MenuCategory{},
		menuItems:     map[int64]domain.MenuItem{},
		users:         map[int64]domain.UserAccount{},
		orders:        map[int64]domain.CustomerOrder{},
		reservations:  map[int64]domain.Reservation{},
		notifications: map[int64]domain.Notification{},
	}
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyOrder(o domain.CustomerOrder) domain.CustomerOrder {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.Payment != nil {
		p := *o.Payment
		o.Payment = &p
	}
	return o
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:        s.nextID,
		restaurants:   copyMap(s.restaurants),
		tables:        copyMap(s.tables),
		categories:    copyMap(s.categories),
		menuItems:     copyMap(s.menuItems),
		users:         copyMap(s.users),
		orders:        make(map[int64]domain.CustomerOrder, len(s.orders)),
		reservations:  copyMap(s.reservations),
		notifications: copyMap(s.notifications),
	}
	for id, o := range s.orders {
		c.orders[id] = copyOrder(o)
	}
	return c
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memStore is an in-memory service.Store. Atomically works on a copy of the
// state and swaps it in only when fn succeeds.
type memStore struct {
	*memRepo
	mu sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{memRepo: &memRepo{state: newMemState(), failures: map[string]error{}}}
}

var _ service.Store = (*memStore)(nil)

func (m *memStore) Atomically(ctx context.Context, readOnly bool, fn func(repo service.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memRepo{state: m.state.clone(), failures: m.failures}
	if err := fn(tx); err != nil {
		return err
	}
	if !readOnly {
		*m.state = *tx.state
	}
	return nil
}

// failOn makes the named repository method return err. Writes performed by
// the method before the failure stay in the transaction copy.
func (m *memStore) failOn(method string, err error) {
	m.failures[method] = err
}

func (m *memStore) counts() (orders, items, reservations, payments int) {
	for _, o := range m.state.orders {
		items += len(o.Items)
		if o.Payment != nil {
			payments++
		}
	}
	return len(m.state.orders), items, len(m.state.reservations), payments
}

type memRepo struct {
	state    *memState
	failures map[string]error
}

func (r *memRepo) fail(method string) error {
	return r.failures[method]
}

func (r *memRepo) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if err := r.fail("CreateRestaurant"); err != nil {
		return err
	}
	rest.ID = r.state.id()
	r.state.restaurants[rest.ID] = *rest
	return nil
}

func (r *memRepo) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	rest, ok := r.state.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rest, nil
}

func (r *memRepo) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	for _, rest := range r.state.restaurants {
		out = append(out, rest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if _, ok := r.state.restaurants[rest.ID]; !ok {
		return domain.ErrNotFound
	}
	r.state.restaurants[rest.ID] = *rest
	return nil
}

func (r *memRepo) DeleteRestaurant(ctx context.Context, id int64) (int64, error) {
	if _, ok := r.state.restaurants[id]; !ok {
		return 0, nil
	}
	for _, o := range r.state.orders {
		if o.RestaurantID == id {
			return 0, domain.ErrConflict
		}
	}
	delete(r.state.restaurants, id)
	return 1, nil
}

func (r *memRepo) CreateTable(ctx context.Context, table *domain.DiningTable) error {
	table.ID = r.state.id()
	r.state.tables[table.ID] = *table
	return nil
}

func (r *memRepo) GetTable(ctx context.Context, id int64) (*domain.DiningTable, error) {
	table, ok := r.state.tables[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &table, nil
}

func (r *memRepo) ListTables(ctx context.Context, restaurantID int64) ([]domain.DiningTable, error) {
	var out []domain.DiningTable
	for _, t := range r.state.tables {
		if t.RestaurantID == restaurantID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	category.ID = r.state.id()
	r.state.categories[category.ID] = *category
	return nil
}

func (r *memRepo) GetCategory(ctx context.Context, id int64) (*domain.MenuCategory, error) {
	category, ok := r.state.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &category, nil
}

func (r *memRepo) ListCategories(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error) {
	var out []domain.MenuCategory
	for _, c := range r.state.categories {
		if c.RestaurantID == restaurantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	item.ID = r.state.id()
	r.state.menuItems[item.ID] = *item
	return nil
}

func (r *memRepo) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, ok := r.state.menuItems[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *memRepo) GetMenuItems(ctx context.Context, ids []int64) (map[int64]domain.MenuItem, error) {
	if err := r.fail("GetMenuItems"); err != nil {
		return nil, err
	}
	out := make(map[int64]domain.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := r.state.menuItems[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *memRepo) ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for _, item := range r.state.menuItems {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if _, ok := r.state.menuItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.state.menuItems[item.ID] = *item
	return nil
}

func (r *memRepo) CreateUser(ctx context.Context, user *domain.UserAccount) error {
	for _, u := range r.state.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrConflict
		}
	}
	user.ID = r.state.id()
	r.state.users[user.ID] = *user
	return nil
}

func (r *memRepo) GetUser(ctx context.Context, id int64) (*domain.UserAccount, error) {
	user, ok := r.state.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *memRepo) ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.UserAccount, error) {
	var out []domain.UserAccount
	for _, u := range r.state.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) CreateOrder(ctx context.Context, order *domain.CustomerOrder) error {
	order.ID = r.state.id()
	for i := range order.Items {
		order.Items[i].ID = r.state.id()
		order.Items[i].OrderID = order.ID
	}
	r.state.orders[order.ID] = copyOrder(*order)
	return r.fail("CreateOrder")
}

func (r *memRepo) GetOrder(ctx context.Context, id int64) (*domain.CustomerOrder, error) {
	o, ok := r.state.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *memRepo) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	o, ok := r.state.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.state.orders[id] = o
	return nil
}

func (r *memRepo) ListOrdersBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.CustomerOrder, error) {
	var out []domain.CustomerOrder
	for _, o := range r.state.orders {
		if o.RestaurantID == restaurantID && !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	if _, ok := r.state.orders[id]; !ok {
		return 0, nil
	}
	delete(r.state.orders, id)
	return 1, nil
}

func (r *memRepo) SavePayment(ctx context.Context, payment *domain.Payment) error {
	if err := r.fail("SavePayment"); err != nil {
		return err
	}
	o, ok := r.state.orders[payment.OrderID]
	if !ok {
		return domain.ErrConflict
	}
	if o.Payment != nil {
		payment.ID = o.Payment.ID
	} else {
		payment.ID = r.state.id()
	}
	p := *payment
	o.Payment = &p
	r.state.orders[o.ID] = o
	return nil
}

func (r *memRepo) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	reservation.ID = r.state.id()
	r.state.reservations[reservation.ID] = *reservation
	return r.fail("CreateReservation")
}

func (r *memRepo) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &res, nil
}

func (r *memRepo) UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := r.state.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Status = status
	r.state.reservations[id] = res
	return nil
}

func (r *memRepo) ListReservationsBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.state.reservations {
		if res.RestaurantID == restaurantID && !res.ReservationTime.Before(start) && res.ReservationTime.Before(end) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReservationTime.Equal(out[j].ReservationTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReservationTime.Before(out[j].ReservationTime)
	})
	return out, nil
}

func (r *memRepo) CountActivityBetween(ctx context.Context, restaurantID int64, start, end time.Time) (map[string]int64, error) {
	within := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }
	counters := map[string]int64{
		domain.EventOrderCreated:       0,
		domain.EventPaymentRecorded:    0,
		domain.EventReservationCreated: 0,
	}
	for _, o := range r.state.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if within(o.CreatedAt) {
			counters[domain.EventOrderCreated]++
		}
		if o.Payment != nil && within(o.Payment.PaidAt) {
			counters[domain.EventPaymentRecorded]++
		}
	}
	for _, res := range r.state.reservations {
		if res.RestaurantID == restaurantID && within(res.CreatedAt) {
			counters[domain.EventReservationCreated]++
		}
	}
	return counters, nil
}

func (r *memRepo) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	if _, ok := r.state.reservations[id]; !ok {
		return 0, nil
	}
	delete(r.state.reservations, id)
	return 1, nil
}

func (r *memRepo) CreateNotification(ctx context.Context, n *domain.Notification) error {
	n.ID = r.state.id()
	r.state.notifications[n.ID] = *n
	return nil
}

func (r *memRepo) ListNotifications(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.state.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) MarkNotificationDelivered(ctx context.Context, id int64) (int64, error) {
	n, ok := r.state.notifications[id]
	if !ok {
		return 0, nil
	}
	n.Delivered = true
	r.state.notifications[id] = n
	return 1, nil
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// seed holds the ids of a minimal restaurant with a burger on the menu.
type seed struct {
	restaurantID int64
	tableID      int64
	customerID   int64
	categoryID   int64
	burgerID     int64
	friesID      int64
}

func seedRestaurant(store *memStore) seed {
	ctx := context.Background()
	rest := &domain.Restaurant{Name: "Diner", OpeningTime: "08:00", ClosingTime: "22:00"}
	store.CreateRestaurant(ctx, rest)
	table := &domain.DiningTable{RestaurantID: rest.ID, Code: "T1", Capacity: 4}
	store.CreateTable(ctx, table)
	customer := &domain.UserAccount{FullName: "Ann Lee", Email: "ann@example.com", Phone: "555-0100", Role: domain.RoleCustomer}
	store.CreateUser(ctx, customer)
	category := &domain.MenuCategory{RestaurantID: rest.ID, Name: "Mains"}
	store.CreateCategory(ctx, category)
	burger := &domain.MenuItem{CategoryID: category.ID, RestaurantID: rest.ID, Name: "Burger", Price: money("9.50")}
	store.CreateMenuItem(ctx, burger)
	fries := &domain.MenuItem{CategoryID: category.ID, RestaurantID: rest.ID, Name: "Fries", Price: money("3.25")}
	store.CreateMenuItem(ctx, fries)
	return seed{
		restaurantID: rest.ID,
		tableID:      table.ID,
		customerID:   customer.ID,
		categoryID:   category.ID,
		burgerID:     burger.ID,
		friesID:      fries.ID,
	}
}
