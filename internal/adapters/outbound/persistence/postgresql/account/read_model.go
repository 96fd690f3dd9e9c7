package account

import (
	"context"
	"database/sql"
	stderrors "errors"

	"sweepvault/internal/application/dto"
	portsout "sweepvault/internal/application/ports/out"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ReadModel struct {
	db *sql.DB
}

var _ portsout.AccountReadModel = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) GetByAddress(ctx context.Context, address string) (dto.AccountResource, bool, *apperrors.AppError) {
	const query = `
SELECT address, salt, owner, registry_ref, activated_at
FROM vault.accounts
WHERE address = $1
`

	resource := dto.AccountResource{}
	var salt sql.NullString
	err := r.db.QueryRowContext(ctx, query, address).Scan(
		&resource.Address,
		&salt,
		&resource.Owner,
		&resource.RegistryRef,
		&resource.ActivatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return dto.AccountResource{}, false, nil
	}
	if err != nil {
		return dto.AccountResource{}, false, apperrors.NewInternal(
			"account_query_failed",
			"failed to query account",
			map[string]any{"error": err.Error(), "address": address},
		)
	}
	resource.Salt = salt.String

	balances, appErr := r.listBalances(ctx, address)
	if appErr != nil {
		return dto.AccountResource{}, false, appErr
	}
	resource.Balances = balances

	return resource, true, nil
}

func (r *ReadModel) ExistsByAddress(ctx context.Context, address string) (bool, *apperrors.AppError) {
	const query = `SELECT EXISTS (SELECT 1 FROM vault.accounts WHERE address = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, address).Scan(&exists); err != nil {
		return false, apperrors.NewInternal(
			"account_query_failed",
			"failed to query account existence",
			map[string]any{"error": err.Error(), "address": address},
		)
	}

	return exists, nil
}

func (r *ReadModel) listBalances(ctx context.Context, address string) ([]dto.AccountBalance, *apperrors.AppError) {
	const query = `
SELECT asset_ref, amount_minor::text
FROM vault.balances
WHERE address = $1
ORDER BY asset_ref ASC
`

	rows, err := r.db.QueryContext(ctx, query, address)
	if err != nil {
		return nil, apperrors.NewInternal(
			"balance_query_failed",
			"failed to query account balances",
			map[string]any{"error": err.Error(), "address": address},
		)
	}
	defer rows.Close()

	balances := make([]dto.AccountBalance, 0)
	for rows.Next() {
		balance := dto.AccountBalance{}
		if scanErr := rows.Scan(&balance.AssetRef, &balance.AmountMinor); scanErr != nil {
			return nil, apperrors.NewInternal(
				"balance_scan_failed",
				"failed to parse account balance row",
				map[string]any{"error": scanErr.Error(), "address": address},
			)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"balance_rows_failed",
			"failed to iterate account balance rows",
			map[string]any{"error": err.Error(), "address": address},
		)
	}

	return balances, nil
}
