package nomurahome

import (
	"context"

	dombatch "github.com/shirwani/chloe-nomura-home/internal/domain/batch"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	healthuc "github.com/shirwani/chloe-nomura-home/internal/usecase/health"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
)

// --- inventoryUseCase mock ---

type mockInventoryUC struct {
	listFn       func(ctx context.Context, f inventoryuc.Filter) ([]item.Item, error)
	getFn        func(ctx context.Context, id string) (item.Item, error)
	recordViewFn func(ctx context.Context, id string) (int64, error)
	createFn     func(ctx context.Context, it item.Item) (item.Item, error)
	updateFn     func(ctx context.Context, it item.Item) (item.Item, error)
	deleteFn     func(ctx context.Context, id string) error
	batchFn      func(ctx context.Context, drafts []inventoryuc.Draft) []dombatch.Result
	toggleLikeFn func(ctx context.Context, itemID, userID string) (bool, int64, error)
	markFn       func(ctx context.Context, id string) error
	categoriesFn func(ctx context.Context) (map[string]int, error)
	backfillFn   func(ctx context.Context) (int, error)
	renameCatFn  func(ctx context.Context, from, to string) (int, error)
	deleteCatFn  func(ctx context.Context, name string) (int, error)
}

func (m *mockInventoryUC) List(ctx context.Context, f inventoryuc.Filter) ([]item.Item, error) {
	return m.listFn(ctx, f)
}

func (m *mockInventoryUC) Get(ctx context.Context, id string) (item.Item, error) {
	return m.getFn(ctx, id)
}

func (m *mockInventoryUC) RecordView(ctx context.Context, id string) (int64, error) {
	return m.recordViewFn(ctx, id)
}

func (m *mockInventoryUC) Create(ctx context.Context, it item.Item) (item.Item, error) {
	return m.createFn(ctx, it)
}

func (m *mockInventoryUC) Update(ctx context.Context, it item.Item) (item.Item, error) {
	return m.updateFn(ctx, it)
}

func (m *mockInventoryUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockInventoryUC) BatchUpsert(ctx context.Context, drafts []inventoryuc.Draft) []dombatch.Result {
	return m.batchFn(ctx, drafts)
}

func (m *mockInventoryUC) ToggleLike(ctx context.Context, itemID, userID string) (bool, int64, error) {
	return m.toggleLikeFn(ctx, itemID, userID)
}

func (m *mockInventoryUC) MarkSold(ctx context.Context, id string) error {
	return m.markFn(ctx, id)
}

func (m *mockInventoryUC) MarkPending(ctx context.Context, id string) error {
	return m.markFn(ctx, id)
}

func (m *mockInventoryUC) MarkAvailable(ctx context.Context, id string) error {
	return m.markFn(ctx, id)
}

func (m *mockInventoryUC) Categories(ctx context.Context) (map[string]int, error) {
	return m.categoriesFn(ctx)
}

func (m *mockInventoryUC) BackfillCategories(ctx context.Context) (int, error) {
	return m.backfillFn(ctx)
}

func (m *mockInventoryUC) RenameCategory(ctx context.Context, from, to string) (int, error) {
	return m.renameCatFn(ctx, from, to)
}

func (m *mockInventoryUC) DeleteCategory(ctx context.Context, name string) (int, error) {
	return m.deleteCatFn(ctx, name)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, query string, topK int) ([]searchuc.ScoredResult, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query string, topK int) ([]searchuc.ScoredResult, error) {
	return m.searchFn(ctx, query, topK)
}

// --- cartUseCase mock ---

type mockCartUC struct {
	getFn     func(ctx context.Context, cartID string) (cartuc.View, error)
	addLineFn func(ctx context.Context, cartID, itemID string, quantity int) error
	updateFn  func(ctx context.Context, cartID, itemID string, quantity int) error
	removeFn  func(ctx context.Context, cartID, itemID string) error
	clearFn   func(ctx context.Context, cartID string) error
	promoteFn func(ctx context.Context, fromCartID, toCartID string) error
}

func (m *mockCartUC) Get(ctx context.Context, cartID string) (cartuc.View, error) {
	return m.getFn(ctx, cartID)
}

func (m *mockCartUC) AddLine(ctx context.Context, cartID, itemID string, quantity int) error {
	return m.addLineFn(ctx, cartID, itemID, quantity)
}

func (m *mockCartUC) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	return m.updateFn(ctx, cartID, itemID, quantity)
}

func (m *mockCartUC) RemoveLine(ctx context.Context, cartID, itemID string) error {
	return m.removeFn(ctx, cartID, itemID)
}

func (m *mockCartUC) Clear(ctx context.Context, cartID string) error {
	return m.clearFn(ctx, cartID)
}

func (m *mockCartUC) Promote(ctx context.Context, fromCartID, toCartID string) error {
	return m.promoteFn(ctx, fromCartID, toCartID)
}

// --- checkoutUseCase mock ---

type mockCheckoutUC struct {
	createSaleFn func(
		ctx context.Context, cartID string, customer domorder.Customer,
		shipping float64, paymentMethod, confirmation string,
	) (domorder.Order, error)
	orderFn func(ctx context.Context, id string) (domorder.Order, error)
}

func (m *mockCheckoutUC) CreateSale(
	ctx context.Context, cartID string, customer domorder.Customer,
	shipping float64, paymentMethod, confirmation string,
) (domorder.Order, error) {
	return m.createSaleFn(ctx, cartID, customer, shipping, paymentMethod, confirmation)
}

func (m *mockCheckoutUC) Order(ctx context.Context, id string) (domorder.Order, error) {
	return m.orderFn(ctx, id)
}

// --- userUseCase mock ---

type mockUserUC struct {
	registerFn      func(ctx context.Context, firstName, lastName, email, phone, password string) (domuser.User, error)
	registerTypedFn func(ctx context.Context, firstName, lastName, email, phone, password, userType string) (domuser.User, error)
	verifyFn        func(ctx context.Context, email, password string) (domuser.User, error)
	getFn           func(ctx context.Context, id string) (domuser.User, error)
	requestFn       func(ctx context.Context, email string) (string, error)
	resetFn         func(ctx context.Context, token, newPassword string) error
}

func (m *mockUserUC) Register(
	ctx context.Context, firstName, lastName, email, phone, password string,
) (domuser.User, error) {
	return m.registerFn(ctx, firstName, lastName, email, phone, password)
}

func (m *mockUserUC) RegisterWithType(
	ctx context.Context, firstName, lastName, email, phone, password, userType string,
) (domuser.User, error) {
	return m.registerTypedFn(ctx, firstName, lastName, email, phone, password, userType)
}

func (m *mockUserUC) VerifyPassword(ctx context.Context, email, password string) (domuser.User, error) {
	return m.verifyFn(ctx, email, password)
}

func (m *mockUserUC) Get(ctx context.Context, id string) (domuser.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserUC) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return m.requestFn(ctx, email)
}

func (m *mockUserUC) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.resetFn(ctx, token, newPassword)
}

// --- usageUseCase mock ---

type mockUsageUC struct {
	todayFn  func(ctx context.Context) (domusage.Report, error)
	windowFn func(ctx context.Context, days int) (domusage.Report, error)
}

func (m *mockUsageUC) Today(ctx context.Context) (domusage.Report, error) {
	return m.todayFn(ctx)
}

func (m *mockUsageUC) Window(ctx context.Context, days int) (domusage.Report, error) {
	return m.windowFn(ctx, days)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- helpers ---

func testItem(id, name, category string, price float64) item.Item {
	return item.Reconstruct(
		id, name, "", category, price, 0,
		item.StatusAvailable, 0, 0, nil, 1700000000000, 1700000000000,
	)
}
