package domain

import "errors"

var (
	// ErrItemNotFound signals a missing inventory item.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemExists signals a duplicate inventory item id.
	ErrItemExists = errors.New("item already exists")
	// ErrInvalidItem signals an inventory item that fails validation.
	ErrInvalidItem = errors.New("invalid item")
	// ErrItemUnavailable signals an item that is not in available status.
	ErrItemUnavailable = errors.New("item unavailable")
	// ErrCategoryNotFound signals an unknown category name.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCartNotFound signals a missing or expired cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrInvalidQuantity signals a cart quantity below one.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrOrderNotFound signals a missing order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUserNotFound signals a missing user account.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists signals a duplicate registration email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials signals a failed password verification.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrResetTokenInvalid signals an unknown, expired, or used reset token.
	ErrResetTokenInvalid = errors.New("reset token invalid")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingBudgetExceeded signals an exhausted daily embedding token budget.
	ErrEmbeddingBudgetExceeded = errors.New("embedding budget exceeded")
	// ErrEmbedderNotConfigured signals that no embedding provider was wired in.
	ErrEmbedderNotConfigured = errors.New("embedder not configured")
)
