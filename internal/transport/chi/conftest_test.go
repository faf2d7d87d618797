package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domcart "github.com/shirwani/chloe-nomura-home/internal/domain/cart"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	checkoutuc "github.com/shirwani/chloe-nomura-home/internal/usecase/checkout"
	healthuc "github.com/shirwani/chloe-nomura-home/internal/usecase/health"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
	usageuc "github.com/shirwani/chloe-nomura-home/internal/usecase/usage"
	useruc "github.com/shirwani/chloe-nomura-home/internal/usecase/user"
)

const testAdminKey = "test-admin-key"

// fakeCatalog is an in-memory inventory.Repository. The search, cart,
// and checkout services see it through the inventory service, so one
// fake covers the whole catalog side.
type fakeCatalog struct {
	items      map[string]item.Item
	views      map[string]int64
	likeCounts map[string]int64
	likes      map[string]map[string]bool
	err        error // when set, every call fails with it
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items:      make(map[string]item.Item),
		views:      make(map[string]int64),
		likeCounts: make(map[string]int64),
		likes:      make(map[string]map[string]bool),
	}
}

func (f *fakeCatalog) Upsert(_ context.Context, it item.Item) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, existed := f.items[it.ID()]
	f.items[it.ID()] = it
	return !existed, nil
}

func (f *fakeCatalog) UpsertMulti(_ context.Context, items []item.Item) error {
	if f.err != nil {
		return f.err
	}
	for _, it := range items {
		f.items[it.ID()] = it
	}
	return nil
}

func (f *fakeCatalog) Get(_ context.Context, id string) (item.Item, error) {
	if f.err != nil {
		return item.Item{}, f.err
	}
	it, ok := f.items[id]
	if !ok {
		return item.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (f *fakeCatalog) List(_ context.Context) ([]item.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]item.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, id)
	delete(f.likes, id)
	return nil
}

func (f *fakeCatalog) SetStatus(_ context.Context, id string, status item.Status, updatedAt int64) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	f.items[id] = item.Reconstruct(
		it.ID(), it.Name(), it.Description(), it.Category(),
		it.Price(), it.OriginalPrice(), status, it.Views(), it.Likes(),
		it.Images(), it.CreatedAt(), updatedAt,
	)
	return nil
}

func (f *fakeCatalog) SetCategory(_ context.Context, id, category string, updatedAt int64) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	f.items[id] = item.Reconstruct(
		it.ID(), it.Name(), it.Description(), category,
		it.Price(), it.OriginalPrice(), it.Status(), it.Views(), it.Likes(),
		it.Images(), it.CreatedAt(), updatedAt,
	)
	return nil
}

func (f *fakeCatalog) IncrementViews(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.views[id]++
	return f.views[id], nil
}

func (f *fakeCatalog) Liked(_ context.Context, itemID, userID string) (bool, error) {
	return f.likes[itemID][userID], nil
}

func (f *fakeCatalog) Like(_ context.Context, itemID, userID string) (int64, error) {
	if f.likes[itemID] == nil {
		f.likes[itemID] = make(map[string]bool)
	}
	f.likes[itemID][userID] = true
	f.likeCounts[itemID]++
	return f.likeCounts[itemID], nil
}

func (f *fakeCatalog) Unlike(_ context.Context, itemID, userID string) (int64, error) {
	delete(f.likes[itemID], userID)
	if f.likeCounts[itemID] > 0 {
		f.likeCounts[itemID]--
	}
	return f.likeCounts[itemID], nil
}

// fakeCartStore is an in-memory cart.Store shared with checkout.
type fakeCartStore struct {
	lines  map[string]map[string]domcart.Line
	pinned map[string]bool
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		lines:  make(map[string]map[string]domcart.Line),
		pinned: make(map[string]bool),
	}
}

func (f *fakeCartStore) SetLine(_ context.Context, cartID string, line domcart.Line) error {
	if f.lines[cartID] == nil {
		f.lines[cartID] = make(map[string]domcart.Line)
	}
	f.lines[cartID][line.ItemID()] = line
	return nil
}

func (f *fakeCartStore) Lines(_ context.Context, cartID string) ([]domcart.Line, error) {
	out := make([]domcart.Line, 0, len(f.lines[cartID]))
	for _, l := range f.lines[cartID] {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeCartStore) RemoveLine(_ context.Context, cartID, itemID string) error {
	delete(f.lines[cartID], itemID)
	return nil
}

func (f *fakeCartStore) Clear(_ context.Context, cartID string) error {
	delete(f.lines, cartID)
	return nil
}

func (f *fakeCartStore) Promote(_ context.Context, cartID string) error {
	f.pinned[cartID] = true
	return nil
}

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	byID    map[string]domuser.User
	byEmail map[string]string
	tokens  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domuser.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u domuser.User) error {
	if _, ok := f.byEmail[u.Email()]; ok {
		return domain.ErrUserExists
	}
	f.byID[u.ID()] = u
	f.byEmail[u.Email()] = u.ID()
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id string) (domuser.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domuser.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	f.byID[id] = domuser.Reconstruct(
		u.ID(), u.FirstName(), u.LastName(), u.Email(), u.Phone(),
		passwordHash, u.UserType(), u.CreatedAt(),
	)
	return nil
}

func (f *fakeUserRepo) SaveResetToken(_ context.Context, token, email string) error {
	f.tokens[token] = email
	return nil
}

func (f *fakeUserRepo) ConsumeResetToken(_ context.Context, token string) (string, error) {
	email, ok := f.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(f.tokens, token)
	return email, nil
}

// fakeOrders is an in-memory checkout.Orders.
type fakeOrders struct {
	orders map[string]domorder.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[string]domorder.Order)}
}

func (f *fakeOrders) Create(_ context.Context, o domorder.Order) error {
	f.orders[o.ID()] = o
	return nil
}

func (f *fakeOrders) Get(_ context.Context, id string) (domorder.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domorder.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

// stubEmbedder returns a shared unit vector per text unless vecFor
// overrides it, making every semantic score 1.0 by default.
type stubEmbedder struct {
	vecFor func(text string) []float32
	err    error
}

func (m *stubEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	embeddings := make([][]float32, len(texts))
	for i, t := range texts {
		if m.vecFor != nil {
			embeddings[i] = m.vecFor(t)
		} else {
			embeddings[i] = []float32{1, 0, 0}
		}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings, TotalTokens: 3 * len(texts)}, nil
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

type stubEmbedderChecker struct{ err error }

func (c *stubEmbedderChecker) HealthCheck(context.Context) error { return c.err }

// env bundles the wired services and their fakes for one test server.
type env struct {
	catalog    *fakeCatalog
	carts      *fakeCartStore
	users      *fakeUserRepo
	orders     *fakeOrders
	embedder   *stubEmbedder
	pinger     *stubPinger
	embedCheck *stubEmbedderChecker
	router     *gochi.Mux
}

// newTestEnv wires real services over in-memory fakes and mounts the
// full route tree, admin guard included.
func newTestEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		catalog:    newFakeCatalog(),
		carts:      newFakeCartStore(),
		users:      newFakeUserRepo(),
		orders:     newFakeOrders(),
		embedder:   &stubEmbedder{},
		pinger:     &stubPinger{},
		embedCheck: &stubEmbedderChecker{},
	}

	inventorySvc := inventoryuc.New(e.catalog)
	searchSvc := searchuc.New(e.catalog, e.embedder)
	cartSvc := cartuc.New(e.carts, e.catalog)
	checkoutSvc := checkoutuc.New(e.carts, inventorySvc, e.orders)
	userSvc := useruc.New(e.users)
	usageSvc := usageuc.New("openai", nil, nil)
	healthSvc := healthuc.New(e.pinger, e.embedCheck)

	server := NewServer(
		inventorySvc, searchSvc, cartSvc, checkoutSvc, userSvc,
		usageSvc, healthSvc,
		[]string{testAdminKey}, zap.NewNop(),
	)

	e.router = gochi.NewRouter()
	server.Register(e.router)
	return e
}

// seedItem puts an item directly into the fake catalog.
func (e *env) seedItem(t *testing.T, id, name, description, category string, price float64, status item.Status) {
	t.Helper()
	e.catalog.items[id] = item.Reconstruct(
		id, name, description, category, price, 0, status, 0, 0, nil, 1000, 1000,
	)
}

// do runs one request through the router. A non-nil body is JSON-encoded.
func (e *env) do(t *testing.T, method, path string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, opt := range opts {
		opt(req)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// asAdmin attaches the admin bearer key.
func asAdmin(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
}

// decodeBody unmarshals a JSON response body.
func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

// wantStatus fails the test with the response body when the status differs.
func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, want, rr.Body.String())
	}
}

// wantErrorCode asserts the JSON error envelope carries the given code.
func wantErrorCode(t *testing.T, rr *httptest.ResponseRecorder, code string) {
	t.Helper()
	resp := decodeBody[errorResponse](t, rr)
	if resp.Code != code {
		t.Fatalf("error code = %q, want %q (body: %s)", resp.Code, code, rr.Body.String())
	}
}
