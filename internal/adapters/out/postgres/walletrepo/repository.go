package walletrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM wallet repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists new postings on an existing wallet with an optimistic
// version check. Postings already in the database are left untouched; only
// rows the ledger does not yet carry are inserted.
func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	transactions := dto.Transactions
	dto.Transactions = nil

	result := r.db.WithContext(ctx).Model(&WalletDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("wallet")
	}

	// The ledger is append-only: existing postings are skipped by primary
	// key, new ones are inserted.
	if len(transactions) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&transactions).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a wallet by ID with its full ledger.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Wallet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Preload("Transactions", orderLedger).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOwner retrieves the wallet belonging to a user.
func (r *GormAccountRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*account.Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Preload("Transactions", orderLedger).
		First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ownerID", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPlatform retrieves the single platform wallet.
func (r *GormAccountRepository) GetPlatform(ctx context.Context) (*account.Wallet, error) {
	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Preload("Transactions", orderLedger).
		First(&dto, "kind = ?", int(account.KindPlatform)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", "platform")
		}
		return nil, err
	}

	return toDomain(dto)
}

// orderLedger replays postings in insertion order.
func orderLedger(db *gorm.DB) *gorm.DB {
	return db.Order("wallet_transactions.seq")
}
