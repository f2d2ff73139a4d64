// Package walletrepo provides data transfer objects and mapping functions
// for wallet persistence. Postings are stored append-only in a child table;
// a wallet row is never written without its full ledger.
package walletrepo

import (
	"time"

	"github.com/google/uuid"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
)

// WalletDTO represents the database structure for persisting wallet
// aggregates. One wallet per owner; Version backs the optimistic concurrency
// check that keeps racing postings from committing off stale balances.
type WalletDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Kind          int              `gorm:"not null;index"`
	Balance       float64          `gorm:"not null"`
	TotalEarnings float64          `gorm:"not null"`
	TotalRevenue  float64          `gorm:"not null"`
	Transactions  []TransactionDTO `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
	Version       int              `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "wallets".
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO is one immutable ledger posting. Rows are only ever
// inserted. Seq is assigned by the database on insert and fixes the replay
// order; CreatedAt can tie for postings written in one transaction.
type TransactionDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq          int64      `gorm:"autoIncrement;uniqueIndex"`
	WalletID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type         int        `gorm:"not null"`
	Amount       float64    `gorm:"not null"`
	Description  string     `gorm:"type:text"`
	DeliveryRef  *uuid.UUID `gorm:"type:uuid;index"`
	BalanceAfter float64    `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "wallet_transactions".
func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

// fromDomain converts a wallet aggregate to its database representation.
func fromDomain(aggregate *account.Wallet) WalletDTO {
	walletID := aggregate.ID().Bytes()
	transactions := make([]TransactionDTO, 0, len(aggregate.Transactions()))

	for _, tx := range aggregate.Transactions() {
		var deliveryRef *uuid.UUID
		if ref := tx.DeliveryRef(); ref != nil {
			raw := ref.Bytes()
			deliveryRef = &raw
		}

		transactions = append(transactions, TransactionDTO{
			ID:           tx.ID().Bytes(),
			WalletID:     walletID,
			Type:         int(tx.Type()),
			Amount:       tx.Amount(),
			Description:  tx.Description(),
			DeliveryRef:  deliveryRef,
			BalanceAfter: tx.BalanceAfter(),
			CreatedAt:    tx.At(),
		})
	}

	return WalletDTO{
		ID:            walletID,
		OwnerID:       aggregate.OwnerID().Bytes(),
		Kind:          int(aggregate.Kind()),
		Balance:       aggregate.Balance(),
		TotalEarnings: aggregate.TotalEarnings(),
		TotalRevenue:  aggregate.TotalRevenue(),
		Transactions:  transactions,
		Version:       aggregate.Version(),
	}
}

// toDomain converts a database DTO back into a wallet aggregate.
func toDomain(dto WalletDTO) (*account.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	transactions := make([]account.Transaction, 0, len(dto.Transactions))
	for _, row := range dto.Transactions {
		tx, txErr := transactionToDomain(row)
		if txErr != nil {
			return nil, txErr
		}
		transactions = append(transactions, tx)
	}

	return account.RestoreWallet(
		id,
		ownerID,
		account.Kind(dto.Kind),
		dto.Balance,
		dto.TotalEarnings,
		dto.TotalRevenue,
		transactions,
		dto.Version,
	)
}

func transactionToDomain(dto TransactionDTO) (account.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return account.Transaction{}, err
	}

	var deliveryRef *kernel.UUID
	if dto.DeliveryRef != nil {
		ref, refErr := kernel.UUIDFromBytes((*dto.DeliveryRef)[:])
		if refErr != nil {
			return account.Transaction{}, refErr
		}
		deliveryRef = &ref
	}

	return account.RestoreTransaction(
		id,
		account.TransactionType(dto.Type),
		dto.Amount,
		dto.Description,
		deliveryRef,
		dto.CreatedAt,
		dto.BalanceAfter,
	), nil
}
