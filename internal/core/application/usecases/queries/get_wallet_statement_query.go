package queries

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var ErrGetWalletStatementQueryIsNotConstructed = errors.New(
	"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
)

// GetWalletStatementQuery retrieves a wallet balance together with its most
// recent postings.
//
// Example:
//
//	query, err := NewGetWalletStatementQuery(ownerID, 20)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetWalletStatementQueryHandler(db)
//
//	statement, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve statement: %w", err)
//	}
type GetWalletStatementQuery struct {
	ownerID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetWalletStatementQuery creates a query for the given wallet owner.
// The limit caps how many postings are returned, newest first.
func NewGetWalletStatementQuery(ownerID kernel.UUID, limit int) (GetWalletStatementQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetWalletStatementQuery{}, errs.NewValueIsRequiredError("ownerID")
	}
	if limit <= 0 {
		return GetWalletStatementQuery{}, errs.NewValueIsInvalidError("limit")
	}

	return GetWalletStatementQuery{
		ownerID: ownerID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OwnerID returns the wallet owner being queried.
func (q GetWalletStatementQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Limit returns the maximum number of postings to return.
func (q GetWalletStatementQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// StatementLine is one posting on the wallet statement.
type StatementLine struct {
	Type         account.TransactionType
	Amount       float64
	Description  string
	DeliveryRef  *kernel.UUID
	BalanceAfter float64
	At           time.Time
}

// GetWalletStatementQueryResponse is the wallet statement read model.
// Transactions are ordered newest first and capped by the query limit.
type GetWalletStatementQueryResponse struct {
	WalletID      kernel.UUID
	OwnerID       kernel.UUID
	Kind          account.Kind
	Balance       float64
	TotalEarnings float64
	TotalRevenue  float64
	Transactions  []StatementLine
}
