package usecase

import (
	"context"
	"fmt"
	"time"

	"urbancart-backend/internal/domain"
)

// In-memory fakes for the repository interfaces. They keep just enough
// behavior to exercise the usecase logic.

type nopTxManager struct{}

func (nopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	entries map[string]interface{}
	deleted []string
	flushed bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) {
	c.entries[key] = value
}

func (c *fakeCache) Delete(key string) {
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
}

func (c *fakeCache) Flush() {
	c.entries = map[string]interface{}{}
	c.flushed = true
}

// --- products ---

type fakeProductRepo struct {
	products   map[string]*domain.Product
	nextID     int
	lastRating struct {
		productID  string
		rating     float64
		numReviews int
	}
	ratingCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) add(p domain.Product) *domain.Product {
	f.nextID++
	if p.ID == "" {
		p.ID = fmt.Sprintf("prod-%d", f.nextID)
	}
	cp := p
	f.products[cp.ID] = &cp
	return &cp
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	f.nextID++
	product.ID = fmt.Sprintf("prod-%d", f.nextID)
	cp := *product
	f.products[cp.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	f.products[cp.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) UpdateRating(ctx context.Context, id string, rating float64, numReviews int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Rating = rating
	p.NumReviews = numReviews
	f.lastRating.productID = id
	f.lastRating.rating = rating
	f.lastRating.numReviews = numReviews
	f.ratingCalls++
	return nil
}

// --- carts ---

type fakeCartRepo struct {
	byUser map[string]*domain.Cart
	nextID int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byUser: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *cart
	cp.Items = append([]domain.CartItem{}, cart.Items...)
	return &cp, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	if _, ok := f.byUser[userID]; ok {
		return nil, domain.ErrDuplicate
	}
	f.nextID++
	cart := &domain.Cart{ID: fmt.Sprintf("cart-%d", f.nextID), UserID: userID, Items: []domain.CartItem{}}
	f.byUser[userID] = cart
	cp := *cart
	return &cp, nil
}

func (f *fakeCartRepo) findByID(cartID string) *domain.Cart {
	for _, c := range f.byUser {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (f *fakeCartRepo) UpsertItem(ctx context.Context, cartID, productID string, quantity int, unitPrice float64) error {
	cart := f.findByID(cartID)
	if cart == nil {
		return domain.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	f.nextID++
	cart.Items = append(cart.Items, domain.CartItem{
		ID:        fmt.Sprintf("item-%d", f.nextID),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return nil
}

func (f *fakeCartRepo) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	cart := f.findByID(cartID)
	if cart == nil {
		return domain.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	cart := f.findByID(cartID)
	if cart == nil {
		return domain.ErrNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID string) error {
	cart := f.findByID(cartID)
	if cart == nil {
		return domain.ErrNotFound
	}
	cart.Items = []domain.CartItem{}
	return nil
}

// --- addresses ---

type fakeAddressRepo struct {
	addresses map[string]*domain.Address
	nextID    int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: map[string]*domain.Address{}}
}

func (f *fakeAddressRepo) Create(ctx context.Context, addr *domain.Address) error {
	f.nextID++
	addr.ID = fmt.Sprintf("addr-%d", f.nextID)
	cp := *addr
	f.addresses[cp.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAddressRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Address, error) {
	out := []domain.Address{}
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) Update(ctx context.Context, addr *domain.Address) error {
	if _, ok := f.addresses[addr.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *addr
	f.addresses[cp.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.addresses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.addresses, id)
	return nil
}

func (f *fakeAddressRepo) SetDefault(ctx context.Context, userID, id string) error {
	target, ok := f.addresses[id]
	if !ok || target.UserID != userID {
		return domain.ErrNotFound
	}
	for _, a := range f.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

// --- orders ---

type fakeOrderRepo struct {
	orders       []*domain.Order
	nextID       int
	paymentCalls int
}

func newFakeOrderRepo() *fakeOrderRepo { return &fakeOrderRepo{} }

func (f *fakeOrderRepo) find(id string) *domain.Order {
	for _, o := range f.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem{}, o.Items...)
	if o.PaymentResult != nil {
		res := *o.PaymentResult
		cp.PaymentResult = &res
	}
	return &cp
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = fmt.Sprintf("order-%d", f.nextID)
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].ID = fmt.Sprintf("%s-item-%d", order.ID, i)
	}
	f.orders = append(f.orders, copyOrder(order))
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o := f.find(id)
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return copyOrder(o), nil
}

func (f *fakeOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *copyOrder(f.orders[i]))
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetAll(ctx context.Context, page, limit int) ([]domain.Order, int64, error) {
	total := int64(len(f.orders))
	out := []domain.Order{}
	start := (page - 1) * limit
	for i := 0; i < limit; i++ {
		idx := len(f.orders) - 1 - start - i
		if idx < 0 {
			break
		}
		out = append(out, *copyOrder(f.orders[idx]))
	}
	return out, total, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	o := f.find(id)
	if o == nil {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdatePayment(ctx context.Context, id string, isPaid bool, paidAt *time.Time, result *domain.PaymentResult) error {
	o := f.find(id)
	if o == nil {
		return domain.ErrNotFound
	}
	o.IsPaid = isPaid
	o.PaidAt = paidAt
	o.PaymentResult = result
	f.paymentCalls++
	return nil
}

func (f *fakeOrderRepo) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	o := f.find(id)
	if o == nil {
		return domain.ErrNotFound
	}
	o.CheckoutSessionID = sessionID
	return nil
}

func (f *fakeOrderRepo) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.CheckoutSessionID == sessionID && sessionID != "" {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- reviews ---

type fakeReviewRepo struct {
	reviews []*domain.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo { return &fakeReviewRepo{} }

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	for _, r := range f.reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	review.ID = fmt.Sprintf("review-%d", f.nextID)
	cp := *review
	f.reviews = append(f.reviews, &cp)
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReviewRepo) GetAll(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	out := []domain.Review{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		out = append(out, *f.reviews[i])
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) GetByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if f.reviews[i].ProductID == productID {
			out = append(out, *f.reviews[i])
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if f.reviews[i].UserID == userID {
			out = append(out, *f.reviews[i])
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetTop(ctx context.Context, limit int) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range f.reviews {
		if r.Status == domain.ReviewStatusActive && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			cp := *review
			f.reviews[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- payment gateway ---

type fakeGateway struct {
	session     *domain.CheckoutSession
	createErr   error
	lastOrderID string
	lastItems   []domain.CheckoutItem

	event     *domain.WebhookEvent
	verifyErr error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, orderID string, items []domain.CheckoutItem) (*domain.CheckoutSession, error) {
	g.lastOrderID = orderID
	g.lastItems = items
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.session, nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.event, nil
}

// --- users ---

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	cp := *user
	f.users[cp.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
