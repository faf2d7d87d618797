package nomurahome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/db"
	dbRedis "github.com/shirwani/chloe-nomura-home/internal/db/redis"
	"github.com/shirwani/chloe-nomura-home/internal/domain"
	dombatch "github.com/shirwani/chloe-nomura-home/internal/domain/batch"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
	budgetrepo "github.com/shirwani/chloe-nomura-home/internal/repository/budget"
	cartrepo "github.com/shirwani/chloe-nomura-home/internal/repository/cart"
	inventoryrepo "github.com/shirwani/chloe-nomura-home/internal/repository/inventory"
	orderrepo "github.com/shirwani/chloe-nomura-home/internal/repository/order"
	userrepo "github.com/shirwani/chloe-nomura-home/internal/repository/user"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	checkoutuc "github.com/shirwani/chloe-nomura-home/internal/usecase/checkout"
	healthuc "github.com/shirwani/chloe-nomura-home/internal/usecase/health"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
	usageuc "github.com/shirwani/chloe-nomura-home/internal/usecase/usage"
	useruc "github.com/shirwani/chloe-nomura-home/internal/usecase/user"
)

const defaultReadinessTimeout = 10 * time.Second

// embeddingProvider labels usage counters; it must match the label the
// storefront server writes under so both read the same spend history.
const embeddingProvider = "openai"

// Internal use-case interfaces, narrowed to what the facade calls.
// Substituted in tests.
type inventoryUseCase interface {
	List(ctx context.Context, f inventoryuc.Filter) ([]item.Item, error)
	Get(ctx context.Context, id string) (item.Item, error)
	RecordView(ctx context.Context, id string) (int64, error)
	Create(ctx context.Context, it item.Item) (item.Item, error)
	Update(ctx context.Context, it item.Item) (item.Item, error)
	Delete(ctx context.Context, id string) error
	BatchUpsert(ctx context.Context, drafts []inventoryuc.Draft) []dombatch.Result
	ToggleLike(ctx context.Context, itemID, userID string) (bool, int64, error)
	MarkSold(ctx context.Context, id string) error
	MarkPending(ctx context.Context, id string) error
	MarkAvailable(ctx context.Context, id string) error
	Categories(ctx context.Context) (map[string]int, error)
	BackfillCategories(ctx context.Context) (int, error)
	RenameCategory(ctx context.Context, from, to string) (int, error)
	DeleteCategory(ctx context.Context, name string) (int, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string, topK int) ([]searchuc.ScoredResult, error)
}

type cartUseCase interface {
	Get(ctx context.Context, cartID string) (cartuc.View, error)
	AddLine(ctx context.Context, cartID, itemID string, quantity int) error
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
	Promote(ctx context.Context, fromCartID, toCartID string) error
}

type checkoutUseCase interface {
	CreateSale(
		ctx context.Context, cartID string, customer domorder.Customer,
		shipping float64, paymentMethod, confirmation string,
	) (domorder.Order, error)
	Order(ctx context.Context, id string) (domorder.Order, error)
}

type userUseCase interface {
	Register(ctx context.Context, firstName, lastName, email, phone, password string) (domuser.User, error)
	RegisterWithType(ctx context.Context, firstName, lastName, email, phone, password, userType string) (domuser.User, error)
	VerifyPassword(ctx context.Context, email, password string) (domuser.User, error)
	Get(ctx context.Context, id string) (domuser.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type usageUseCase interface {
	Today(ctx context.Context) (domusage.Report, error)
	Window(ctx context.Context, days int) (domusage.Report, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the storefront engine entry point: the same catalog,
// search, cart, and checkout pipeline the HTTP server exposes, wired
// for direct embedding into Go programs.
type Client struct {
	store       db.Store
	inventorySv inventoryUseCase
	searchSv    searchUseCase
	cartSv      cartUseCase
	checkoutSv  checkoutUseCase
	userSv      userUseCase
	usageSv     usageUseCase
	healthSv    healthUseCase
	obs         *observer
}

// New creates a Client and connects to Redis. The provided context
// bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("nomurahome: redis address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("nomurahome: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("nomurahome: redis not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	cartTTL := cfg.cartTTL
	if cartTTL <= 0 {
		cartTTL = 72 * time.Hour
	}

	invRepo := inventoryrepo.New(store)
	cartRepo := cartrepo.New(store, cartTTL)
	orderRepo := orderrepo.New(store)
	userRepo := userrepo.New(store, 30*time.Minute)
	budgetStore := budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour)

	// Embedder: noop when not configured. Catalog CRUD and carts work;
	// search reports ErrEmbedderNotConfigured.
	var domEmb domain.BatchEmbedder = noopEmbedder{}
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}

	invSvc := inventoryuc.New(invRepo)
	searchSvc := searchuc.New(invRepo, domEmb)
	if cfg.tuning != nil {
		searchSvc = searchSvc.WithTuning(searchuc.Tuning{
			SemanticWeight: cfg.tuning.SemanticWeight,
			KeywordWeight:  cfg.tuning.KeywordWeight,
			CategoryWeight: cfg.tuning.CategoryWeight,
			MinScore:       cfg.tuning.MinScore,
		})
	}
	cartSvc := cartuc.New(cartRepo, invRepo)
	checkoutSvc := checkoutuc.New(cartRepo, invSvc, orderRepo)
	userSvc := useruc.New(userRepo)

	// No live budget tracker in the embedded engine; historical spend
	// still comes from the shared counters the server writes.
	usageSvc := usageuc.New(embeddingProvider, nil, budgetStore)

	healthSvc := healthuc.New(store, embedderChecker(cfg.embedder))

	return &Client{
		store:       store,
		inventorySv: invSvc,
		searchSv:    searchSvc,
		cartSv:      cartSvc,
		checkoutSv:  checkoutSvc,
		userSv:      userSvc,
		usageSv:     usageSvc,
		healthSv:    healthSvc,
		obs:         obs,
	}
}

// embedderChecker exposes the embedder's health probe when the provided
// implementation has one. Returns nil otherwise so the health report
// simply omits the embedding check.
func embedderChecker(e Embedder) healthuc.EmbedderChecker {
	if hc, ok := e.(interface {
		HealthCheck(ctx context.Context) error
	}); ok {
		return hc
	}
	return nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks Redis connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Inventory returns the catalog management service.
func (c *Client) Inventory() *InventoryService {
	return &InventoryService{svc: c.inventorySv, obs: c.obs}
}

// Search returns the hybrid search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSv, obs: c.obs}
}

// Carts returns the shopping cart service.
func (c *Client) Carts() *CartService {
	return &CartService{svc: c.cartSv, obs: c.obs}
}

// Checkout returns the order pipeline service.
func (c *Client) Checkout() *CheckoutService {
	return &CheckoutService{svc: c.checkoutSv, obs: c.obs}
}

// Users returns the account service.
func (c *Client) Users() *UserService {
	return &UserService{svc: c.userSv, obs: c.obs}
}

// Usage returns the embedding spend reporting service.
func (c *Client) Usage() *UsageService {
	return &UsageService{svc: c.usageSv, obs: c.obs}
}

// Health checks the health of all engine components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSv.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// embedderAdapter wraps the public Embedder to satisfy internal
// domain.Embedder and domain.BatchEmbedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := a.inner.(BatchEmbedder); ok {
		r, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return domain.BatchEmbeddingResult{
			Embeddings:   r.Embeddings,
			PromptTokens: r.PromptTokens,
			TotalTokens:  r.TotalTokens,
		}, nil
	}
	res, err := domain.BatchFallback(ctx, a, texts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, err
	}
	return res, nil
}

// noopEmbedder fails every call with ErrEmbedderNotConfigured.
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, fmt.Errorf(
		"nomurahome: %w (use WithEmbedder to enable search)", domain.ErrEmbedderNotConfigured,
	)
}

func (noopEmbedder) BatchEmbed(_ context.Context, _ []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchEmbeddingResult{}, fmt.Errorf(
		"nomurahome: %w (use WithEmbedder to enable search)", domain.ErrEmbedderNotConfigured,
	)
}
