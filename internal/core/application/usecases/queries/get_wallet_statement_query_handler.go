package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// GetWalletStatementQueryHandler reads a wallet and its recent postings from
// the database without rehydrating the aggregate.
type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletStatementQueryHandler creates a handler for wallet statement
// queries. Requires a GORM database connection for query execution.
func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle executes the statement query. Returns ErrObjectNotFound when the
// owner has no wallet.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (GetWalletStatementQueryResponse, error) {
	var statement GetWalletStatementQueryResponse

	if err := query.Validate(); err != nil {
		return statement, err
	}

	var walletID uuid.UUID
	var kind int
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			balance,
			total_earnings,
			total_revenue
		FROM wallets
		WHERE owner_id = ?
	`, query.OwnerID().Bytes()).Row()

	err := row.Scan(
		&walletID,
		&kind,
		&statement.Balance,
		&statement.TotalEarnings,
		&statement.TotalRevenue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return statement, errs.NewObjectNotFoundError("ownerID", query.OwnerID())
	}
	if err != nil {
		return statement, err
	}

	statement.WalletID, err = kernel.UUIDFromBytes(walletID[:])
	if err != nil {
		return statement, err
	}
	statement.OwnerID = query.OwnerID()
	statement.Kind = account.Kind(kind)

	statement.Transactions, err = h.lines(ctx, walletID, query.Limit())
	if err != nil {
		return statement, err
	}

	return statement, nil
}

func (h GetWalletStatementQueryHandler) lines(
	ctx context.Context,
	walletID uuid.UUID,
	limit int,
) ([]StatementLine, error) {
	lines := make([]StatementLine, 0, limit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			type,
			amount,
			description,
			delivery_ref,
			balance_after,
			created_at
		FROM wallet_transactions
		WHERE wallet_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`, walletID, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line StatementLine
		var txType int
		var deliveryRef uuid.NullUUID

		err = rows.Scan(
			&txType,
			&line.Amount,
			&line.Description,
			&deliveryRef,
			&line.BalanceAfter,
			&line.At,
		)
		if err != nil {
			return nil, err
		}

		line.Type = account.TransactionType(txType)
		line.DeliveryRef, err = optionalUUID(deliveryRef)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
