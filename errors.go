package nomurahome

import "github.com/shirwani/chloe-nomura-home/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrItemNotFound       = domain.ErrItemNotFound
	ErrItemExists         = domain.ErrItemExists
	ErrInvalidItem        = domain.ErrInvalidItem
	ErrItemUnavailable    = domain.ErrItemUnavailable
	ErrCategoryNotFound   = domain.ErrCategoryNotFound
	ErrCartNotFound       = domain.ErrCartNotFound
	ErrInvalidQuantity    = domain.ErrInvalidQuantity
	ErrOrderNotFound      = domain.ErrOrderNotFound
	ErrUserNotFound       = domain.ErrUserNotFound
	ErrUserExists         = domain.ErrUserExists
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrResetTokenInvalid  = domain.ErrResetTokenInvalid

	ErrEmbedderNotConfigured   = domain.ErrEmbedderNotConfigured
	ErrEmbeddingBudgetExceeded = domain.ErrEmbeddingBudgetExceeded
	ErrEmbeddingProviderError  = domain.ErrEmbeddingProviderError
)
