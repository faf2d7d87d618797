// Package chi exposes the storefront over HTTP: public catalog browsing
// and hybrid search, carts and checkout, account flows, and a
// bearer-guarded admin surface for inventory and category curation.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	dombatch "github.com/shirwani/chloe-nomura-home/internal/domain/batch"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	checkoutuc "github.com/shirwani/chloe-nomura-home/internal/usecase/checkout"
	healthuc "github.com/shirwani/chloe-nomura-home/internal/usecase/health"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
	usageuc "github.com/shirwani/chloe-nomura-home/internal/usecase/usage"
	useruc "github.com/shirwani/chloe-nomura-home/internal/usecase/user"
	"github.com/shirwani/chloe-nomura-home/internal/version"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the storefront services behind the HTTP routes.
type Server struct {
	inventory *inventoryuc.Service
	search    *searchuc.Service
	carts     *cartuc.Service
	checkout  *checkoutuc.Service
	users     *useruc.Service
	usage     *usageuc.Service
	health    *healthuc.Service
	logger    *zap.Logger

	admin         func(http.Handler) http.Handler
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. adminKeys guards the admin
// routes; an empty set disables the guard.
func NewServer(
	inventory *inventoryuc.Service,
	search *searchuc.Service,
	carts *cartuc.Service,
	checkout *checkoutuc.Service,
	users *useruc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	adminKeys []string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		inventory: inventory,
		search:    search,
		carts:     carts,
		checkout:  checkout,
		users:     users,
		usage:     usage,
		health:    health,
		logger:    logger,
		admin:     BearerAuth(adminKeys),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrCartNotFound, http.StatusNotFound, codeCartNotFound),
		sentinelHandler(domain.ErrOrderNotFound, http.StatusNotFound, codeOrderNotFound),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, codeUserNotFound),
		sentinelHandler(domain.ErrCategoryNotFound, http.StatusNotFound, codeCategoryNotFound),
		sentinelHandler(domain.ErrInvalidItem, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuantity, http.StatusBadRequest, codeInvalidQuantity),
		sentinelHandler(domain.ErrResetTokenInvalid, http.StatusBadRequest, codeResetTokenInvalid),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCredentials),
		sentinelHandler(domain.ErrItemExists, http.StatusConflict, codeItemExists),
		sentinelHandler(domain.ErrUserExists, http.StatusConflict, codeUserExists),
		sentinelHandler(domain.ErrItemUnavailable, http.StatusConflict, codeItemUnavailable),
		sentinelHandler(domain.ErrEmbeddingBudgetExceeded, http.StatusTooManyRequests, codeBudgetExceeded),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrEmbedderNotConfigured, http.StatusServiceUnavailable, codeSearchUnavailable),
	}
	return s
}

// Register mounts all storefront routes. The bearer guard sits on the
// admin groups only; storefront traffic needs no credentials.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsPage)
	r.Get("/version", s.versionInfo)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Route("/inventory", func(r gochi.Router) {
			r.Get("/", s.listInventory)
			r.Get("/search", s.searchInventory)
			r.Get("/{itemID}", s.getItem)
			r.Post("/{itemID}/like", s.toggleLike)

			r.Group(func(r gochi.Router) {
				r.Use(s.admin)
				r.Post("/", s.createItem)
				r.Post("/batch", s.batchUpsert)
				r.Put("/{itemID}", s.updateItem)
				r.Delete("/{itemID}", s.deleteItem)
			})
		})

		r.Route("/categories", func(r gochi.Router) {
			r.Get("/", s.listCategories)

			r.Group(func(r gochi.Router) {
				r.Use(s.admin)
				r.Post("/backfill", s.backfillCategories)
				r.Put("/{name}", s.renameCategory)
				r.Delete("/{name}", s.deleteCategory)
			})
		})

		r.Route("/carts/{cartID}", func(r gochi.Router) {
			r.Get("/", s.getCart)
			r.Delete("/", s.clearCart)
			r.Post("/lines", s.addCartLine)
			r.Put("/lines/{itemID}", s.updateCartLine)
			r.Delete("/lines/{itemID}", s.removeCartLine)
			r.Post("/promote", s.promoteCart)
			r.Post("/checkout", s.checkoutCart)
		})

		r.Route("/users", func(r gochi.Router) {
			r.Post("/", s.registerUser)
			r.Post("/verify", s.verifyUser)
			r.Post("/password-reset", s.requestPasswordReset)
			r.Post("/password-reset/confirm", s.confirmPasswordReset)
		})

		r.With(s.admin).Get("/orders/{orderID}", s.getOrder)
		r.With(s.admin).Get("/usage", s.getUsage)
	})
}

// listInventory handles GET /api/v1/inventory.
func (s *Server) listInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := inventoryuc.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Status:   item.Status(q.Get("status")),
	}
	if f.Status != "" && !f.Status.IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown status: "+string(f.Status))
		return
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a non-negative integer")
			return
		}
		f.Limit = n
	}

	items, err := s.inventory.List(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	payload := make([]itemPayload, len(items))
	for i := range items {
		payload[i] = itemToPayload(items[i])
	}
	writeJSON(w, http.StatusOK, listResponse{Items: payload, Count: len(payload)})
}

// searchInventory handles GET /api/v1/inventory/search.
func (s *Server) searchInventory(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be a positive integer")
			return
		}
		topK = n
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.search.Search(ctx, query, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	payload := make([]searchResultPayload, len(results))
	for i := range results {
		payload[i] = searchResultToPayload(&results[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponse{Results: payload, Count: len(payload)})
}

// getItem handles GET /api/v1/inventory/{itemID}. A product page load
// counts as a view; a failed counter bump never fails the page.
func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "itemID")

	it, err := s.inventory.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	payload := itemToPayload(it)
	if n, err := s.inventory.RecordView(r.Context(), id); err == nil {
		payload.Views = int(n)
	} else {
		s.logger.Warn("Failed to record view", zap.String("item_id", id), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, payload)
}

// toggleLike handles POST /api/v1/inventory/{itemID}/like.
func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "user_id is required")
		return
	}

	itemID := gochi.URLParam(r, "itemID")
	liked, likes, err := s.inventory.ToggleLike(r.Context(), itemID, req.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{ItemID: itemID, Liked: liked, Likes: likes})
}

// createItem handles POST /api/v1/inventory. A blank id gets a minted one.
func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var req upsertItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	it, err := item.New(
		req.ID, req.Name, req.Description, req.Category,
		req.Price, req.OriginalPrice, item.Status(req.Status), req.Images,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	created, err := s.inventory.Create(r.Context(), it)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/inventory/"+created.ID())
	writeJSON(w, http.StatusCreated, itemToPayload(created))
}

// updateItem handles PUT /api/v1/inventory/{itemID}. The path id wins
// over any id in the body.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var req upsertItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := item.New(
		gochi.URLParam(r, "itemID"), req.Name, req.Description, req.Category,
		req.Price, req.OriginalPrice, item.Status(req.Status), req.Images,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	updated, err := s.inventory.Update(r.Context(), it)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToPayload(updated))
}

// deleteItem handles DELETE /api/v1/inventory/{itemID}.
func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.Delete(r.Context(), gochi.URLParam(r, "itemID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// batchUpsert handles POST /api/v1/inventory/batch. Row outcomes come
// back per row; one bad row never sinks the file.
func (s *Server) batchUpsert(w http.ResponseWriter, r *http.Request) {
	var req batchUpsertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "items must not be empty")
		return
	}

	drafts := make([]inventoryuc.Draft, len(req.Items))
	for i, row := range req.Items {
		drafts[i] = inventoryuc.Draft{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			Category:      row.Category,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Status:        item.Status(row.Status),
			Images:        row.Images,
		}
	}

	results := s.inventory.BatchUpsert(r.Context(), drafts)

	items := make([]batchResultPayload, len(results))
	for i, res := range results {
		items[i] = batchResultPayload{ID: res.ID(), Status: string(res.Status())}
		if res.Err() != nil {
			items[i].Error = &errorResponse{
				Code:    batchErrorCode(res.Err()),
				Message: safeDomainMessage(res.Err()),
			}
		}
	}
	ok, failed := dombatch.Summarize(results)

	writeJSON(w, http.StatusOK, batchResponse{Items: items, Succeeded: ok, Failed: failed})
}

// listCategories handles GET /api/v1/categories.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.inventory.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: counts})
}

// backfillCategories handles POST /api/v1/categories/backfill.
func (s *Server) backfillCategories(w http.ResponseWriter, r *http.Request) {
	updated, err := s.inventory.BackfillCategories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backfillResponse{Updated: updated})
}

// renameCategory handles PUT /api/v1/categories/{name}.
func (s *Server) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req renameCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.To) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "target category name is required")
		return
	}

	moved, err := s.inventory.RenameCategory(r.Context(), gochi.URLParam(r, "name"), req.To)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryChangeResponse{Moved: moved})
}

// deleteCategory handles DELETE /api/v1/categories/{name}.
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	moved, err := s.inventory.DeleteCategory(r.Context(), gochi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryChangeResponse{Moved: moved})
}

// getCart handles GET /api/v1/carts/{cartID}. A missing cart is an empty
// cart, not an error.
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := s.carts.Get(r.Context(), gochi.URLParam(r, "cartID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToPayload(view))
}

// addCartLine handles POST /api/v1/carts/{cartID}/lines.
func (s *Server) addCartLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "item_id is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cartID := gochi.URLParam(r, "cartID")
	if err := s.carts.AddLine(r.Context(), cartID, req.ItemID, quantity); err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeCart(w, r, cartID)
}

// updateCartLine handles PUT /api/v1/carts/{cartID}/lines/{itemID}.
func (s *Server) updateCartLine(w http.ResponseWriter, r *http.Request) {
	var req updateLineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "quantity is required")
		return
	}

	cartID := gochi.URLParam(r, "cartID")
	itemID := gochi.URLParam(r, "itemID")
	if err := s.carts.UpdateQuantity(r.Context(), cartID, itemID, *req.Quantity); err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeCart(w, r, cartID)
}

// removeCartLine handles DELETE /api/v1/carts/{cartID}/lines/{itemID}.
func (s *Server) removeCartLine(w http.ResponseWriter, r *http.Request) {
	cartID := gochi.URLParam(r, "cartID")
	if err := s.carts.RemoveLine(r.Context(), cartID, gochi.URLParam(r, "itemID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeCart(w, r, cartID)
}

// clearCart handles DELETE /api/v1/carts/{cartID}.
func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.carts.Clear(r.Context(), gochi.URLParam(r, "cartID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// promoteCart handles POST /api/v1/carts/{cartID}/promote: the guest
// cart in the path merges into the user cart named in the body.
func (s *Server) promoteCart(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.To == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "target cart id is required")
		return
	}

	if err := s.carts.Promote(r.Context(), gochi.URLParam(r, "cartID"), req.To); err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.writeCart(w, r, req.To)
}

// checkoutCart handles POST /api/v1/carts/{cartID}/checkout.
func (s *Server) checkoutCart(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "payment_method is required")
		return
	}
	if req.ShippingFee < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "shipping_fee must not be negative")
		return
	}

	o, err := s.checkout.CreateSale(
		r.Context(),
		gochi.URLParam(r, "cartID"),
		domorder.Customer{
			Email:           req.Customer.Email,
			Name:            req.Customer.Name,
			ShippingAddress: req.Customer.ShippingAddress,
		},
		req.ShippingFee, req.PaymentMethod, req.Confirmation,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+o.ID())
	writeJSON(w, http.StatusCreated, orderToPayload(o))
}

// getOrder handles GET /api/v1/orders/{orderID}.
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.checkout.Order(r.Context(), gochi.URLParam(r, "orderID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToPayload(o))
}

// registerUser handles POST /api/v1/users.
func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "email and password are required")
		return
	}

	u, err := s.users.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Phone, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToPayload(u))
}

// verifyUser handles POST /api/v1/users/verify. Wrong email and wrong
// password are indistinguishable in the response.
func (s *Server) verifyUser(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, err := s.users.VerifyPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToPayload(u))
}

// requestPasswordReset handles POST /api/v1/users/password-reset. The
// token comes back to the caller; delivery is not this API's concern.
func (s *Server) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "email is required")
		return
	}

	token, err := s.users.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{ResetToken: token})
}

// confirmPasswordReset handles POST /api/v1/users/password-reset/confirm.
func (s *Server) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req confirmResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "token and new_password are required")
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getUsage handles GET /api/v1/usage. Without a days parameter it
// reports today only.
func (s *Server) getUsage(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "days must be a positive integer")
			return
		}
		days = n
	}

	var report domusage.Report
	var err error
	if days > 1 {
		report, err = s.usage.Window(r.Context(), days)
	} else {
		report, err = s.usage.Today(r.Context())
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usageToPayload(report))
}

// healthCheck handles GET /health. Degraded still serves traffic; only
// a lost store takes the pod out of rotation.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metricsPage handles GET /metrics.
func (s *Server) metricsPage(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// versionInfo handles GET /version.
func (s *Server) versionInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, versionResponse{
		Version: version.Version,
		Commit:  version.Commit,
		Date:    version.Date,
	})
}

// writeCart responds with the hydrated cart after a line edit, so
// clients refresh totals without a second round-trip.
func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, cartID string) {
	view, err := s.carts.Get(r.Context(), cartID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToPayload(view))
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

// decodeJSON reads a size-capped request body and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrItemNotFound,
		domain.ErrCartNotFound,
		domain.ErrOrderNotFound,
		domain.ErrUserNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrInvalidItem,
		domain.ErrInvalidQuantity,
		domain.ErrResetTokenInvalid,
		domain.ErrInvalidCredentials,
		domain.ErrItemExists,
		domain.ErrUserExists,
		domain.ErrItemUnavailable,
		domain.ErrEmbeddingBudgetExceeded,
		domain.ErrEmbeddingProviderError,
		domain.ErrEmbedderNotConfigured,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func batchErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return codeItemNotFound
	case errors.Is(err, domain.ErrItemExists):
		return codeItemExists
	case errors.Is(err, domain.ErrInvalidItem):
		return codeValidationFailed
	case errors.Is(err, domain.ErrEmbeddingBudgetExceeded):
		return codeBudgetExceeded
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		return codeEmbeddingProviderError
	default:
		return codeInternalError
	}
}
