package ports

import (
	"context"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for wallet aggregates.
// Update applies the same optimistic version check as deliveries, so two
// postings racing on one wallet cannot both commit from stale reads.
type AccountRepository interface {
	// Add persists a new wallet aggregate to storage.
	Add(ctx context.Context, aggregate *account.Wallet) error

	// Update persists new postings on an existing wallet, bumping its
	// version.
	Update(ctx context.Context, aggregate *account.Wallet) error

	// Get retrieves a wallet aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Wallet, error)

	// GetByOwner retrieves the wallet belonging to a user.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*account.Wallet, error)

	// GetPlatform retrieves the single platform wallet.
	GetPlatform(ctx context.Context) (*account.Wallet, error)
}
