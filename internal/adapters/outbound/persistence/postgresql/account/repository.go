package account

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log"
	"time"

	"sweepvault/internal/application/dto"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db     *sql.DB
	logger *log.Logger
}

var _ portsout.AccountRepository = (*Repository)(nil)

func NewRepository(db *sql.DB, logger *log.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ActivateAndSweep(
	ctx context.Context,
	command dto.ActivateAndSweepPersistenceCommand,
) (result dto.ActivateAndSweepPersistenceResult, appErr *apperrors.AppError) {
	startedAt := time.Now()
	attemptResult := "failure"
	defer func() {
		reason := attemptResult
		if appErr != nil {
			reason = appErr.Code
		}
		if r.logger != nil {
			r.logger.Printf(
				"account activation attempt address=%s salt=%s asset=%s result=%s latency_ms=%d",
				command.Address,
				command.Salt,
				command.AssetRef,
				reason,
				time.Since(startedAt).Milliseconds(),
			)
		}
	}()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		appErr = txBeginFailed(err)
		return result, appErr
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if appErr = r.insertAccount(ctx, tx, command); appErr != nil {
		return result, appErr
	}

	sweptAmount, appErr := r.moveFullBalance(ctx, tx, command.Address, command.AssetRef, command.Destination, command.ActivatedAt)
	if appErr != nil {
		return result, appErr
	}

	if appErr = r.insertActivationEvent(ctx, tx, command, sweptAmount); appErr != nil {
		return result, appErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		appErr = txCommitFailed(commitErr)
		return result, appErr
	}
	committed = true

	attemptResult = "activated"
	result = dto.ActivateAndSweepPersistenceResult{SweptAmountMinor: sweptAmount}
	return result, nil
}

func (r *Repository) Sweep(
	ctx context.Context,
	command dto.SweepPersistenceCommand,
	authorize dto.AuthorizeAccountFunc,
) (dto.SweepPersistenceResult, *apperrors.AppError) {
	if authorize == nil {
		return dto.SweepPersistenceResult{}, apperrors.NewInternal(
			"account_authorizer_missing",
			"account authorization callback is required",
			nil,
		)
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dto.SweepPersistenceResult{}, txBeginFailed(err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	state, appErr := r.lockAccountForUpdate(ctx, tx, command.Address)
	if appErr != nil {
		return dto.SweepPersistenceResult{}, appErr
	}
	if appErr := authorize(state); appErr != nil {
		return dto.SweepPersistenceResult{}, appErr
	}

	sweptAmount, appErr := r.moveFullBalance(ctx, tx, command.Address, command.AssetRef, command.Destination, command.SweptAt)
	if appErr != nil {
		return dto.SweepPersistenceResult{}, appErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return dto.SweepPersistenceResult{}, txCommitFailed(commitErr)
	}
	committed = true

	return dto.SweepPersistenceResult{SweptAmountMinor: sweptAmount}, nil
}

func (r *Repository) TransferOwnership(
	ctx context.Context,
	command dto.TransferOwnershipPersistenceCommand,
	authorize dto.AuthorizeAccountFunc,
) (dto.TransferOwnershipPersistenceResult, *apperrors.AppError) {
	if authorize == nil {
		return dto.TransferOwnershipPersistenceResult{}, apperrors.NewInternal(
			"account_authorizer_missing",
			"account authorization callback is required",
			nil,
		)
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dto.TransferOwnershipPersistenceResult{}, txBeginFailed(err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	state, appErr := r.lockAccountForUpdate(ctx, tx, command.Address)
	if appErr != nil {
		return dto.TransferOwnershipPersistenceResult{}, appErr
	}
	if appErr := authorize(state); appErr != nil {
		return dto.TransferOwnershipPersistenceResult{}, appErr
	}

	const updateSQL = `
UPDATE vault.accounts
SET owner = $2
WHERE address = $1
`
	if _, err := tx.ExecContext(ctx, updateSQL, command.Address, command.NewOwner); err != nil {
		return dto.TransferOwnershipPersistenceResult{}, apperrors.NewInternal(
			"account_update_failed",
			"failed to update account owner",
			map[string]any{"error": err.Error(), "address": command.Address},
		)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return dto.TransferOwnershipPersistenceResult{}, txCommitFailed(commitErr)
	}
	committed = true

	return dto.TransferOwnershipPersistenceResult{
		PreviousOwner: state.Owner,
		RegistryRef:   state.RegistryRef,
	}, nil
}

func (r *Repository) CreditDeposit(
	ctx context.Context,
	command dto.CreditDepositPersistenceCommand,
) (dto.CreditDepositPersistenceResult, *apperrors.AppError) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dto.CreditDepositPersistenceResult{}, txBeginFailed(err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upsertSQL = `
INSERT INTO vault.balances (address, asset_ref, amount_minor, updated_at)
VALUES ($1, $2, $3::numeric, $4)
ON CONFLICT (address, asset_ref) DO UPDATE
SET amount_minor = vault.balances.amount_minor + EXCLUDED.amount_minor,
    updated_at = EXCLUDED.updated_at
RETURNING amount_minor::text
`

	var balanceMinor string
	if err := tx.QueryRowContext(
		ctx,
		upsertSQL,
		command.Address,
		command.AssetRef,
		command.AmountMinor,
		command.CreditedAt.UTC(),
	).Scan(&balanceMinor); err != nil {
		return dto.CreditDepositPersistenceResult{}, apperrors.NewInternal(
			"balance_credit_failed",
			"failed to credit deposit",
			map[string]any{"error": err.Error(), "address": command.Address},
		)
	}

	const existsSQL = `SELECT EXISTS (SELECT 1 FROM vault.accounts WHERE address = $1)`

	var activated bool
	if err := tx.QueryRowContext(ctx, existsSQL, command.Address).Scan(&activated); err != nil {
		return dto.CreditDepositPersistenceResult{}, apperrors.NewInternal(
			"account_query_failed",
			"failed to query account activation state",
			map[string]any{"error": err.Error(), "address": command.Address},
		)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return dto.CreditDepositPersistenceResult{}, txCommitFailed(commitErr)
	}
	committed = true

	return dto.CreditDepositPersistenceResult{
		BalanceMinor:     balanceMinor,
		AccountActivated: activated,
	}, nil
}

func (r *Repository) ListResweepCandidates(ctx context.Context, limit int) ([]dto.ResweepCandidate, *apperrors.AppError) {
	const query = `
SELECT b.address, b.asset_ref
FROM vault.balances AS b
JOIN vault.accounts AS a ON a.address = b.address
WHERE b.amount_minor > 0
  AND a.registry_ref <> $2
ORDER BY b.updated_at ASC, b.address ASC, b.asset_ref ASC
LIMIT $1
`

	rows, err := r.db.QueryContext(ctx, query, limit, valueobjects.ZeroAddress.String())
	if err != nil {
		return nil, apperrors.NewInternal(
			"resweep_candidates_query_failed",
			"failed to query resweep candidates",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	candidates := make([]dto.ResweepCandidate, 0, limit)
	for rows.Next() {
		candidate := dto.ResweepCandidate{}
		if err := rows.Scan(&candidate.Address, &candidate.AssetRef); err != nil {
			return nil, apperrors.NewInternal(
				"resweep_candidates_query_failed",
				"failed to parse resweep candidate",
				map[string]any{"error": err.Error()},
			)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"resweep_candidates_query_failed",
			"failed while iterating resweep candidates",
			map[string]any{"error": err.Error()},
		)
	}

	return candidates, nil
}

func (r *Repository) insertAccount(ctx context.Context, tx *sql.Tx, command dto.ActivateAndSweepPersistenceCommand) *apperrors.AppError {
	const insertSQL = `
INSERT INTO vault.accounts (address, salt, owner, registry_ref, activated_at)
VALUES ($1, $2, $3, $4, $5)
`

	_, err := tx.ExecContext(
		ctx,
		insertSQL,
		command.Address,
		command.Salt,
		command.Owner,
		command.RegistryRef,
		command.ActivatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflict(
				"account_already_activated",
				"an account is already activated at this address",
				map[string]any{"address": command.Address, "salt": command.Salt},
			)
		}

		return apperrors.NewInternal(
			"account_insert_failed",
			"failed to insert account",
			map[string]any{"error": err.Error(), "address": command.Address},
		)
	}

	return nil
}

func (r *Repository) lockAccountForUpdate(ctx context.Context, tx *sql.Tx, address string) (dto.AccountState, *apperrors.AppError) {
	const query = `
SELECT address, salt, owner, registry_ref, activated_at
FROM vault.accounts
WHERE address = $1
FOR UPDATE
`

	state := dto.AccountState{}
	var salt sql.NullString
	err := tx.QueryRowContext(ctx, query, address).Scan(
		&state.Address,
		&salt,
		&state.Owner,
		&state.RegistryRef,
		&state.ActivatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return dto.AccountState{}, apperrors.NewNotFound(
			"account_not_found",
			"no activated account exists at this address",
			map[string]any{"address": address},
		)
	}
	if err != nil {
		return dto.AccountState{}, apperrors.NewInternal(
			"account_query_failed",
			"failed to query account",
			map[string]any{"error": err.Error(), "address": address},
		)
	}
	state.Salt = salt.String

	return state, nil
}

// moveFullBalance drains the source balance row into the destination's
// row. The source row stays locked until commit, so the drain-to-zero and
// the destination credit are observed together or not at all.
func (r *Repository) moveFullBalance(
	ctx context.Context,
	tx *sql.Tx,
	address string,
	assetRef string,
	destination string,
	movedAt time.Time,
) (string, *apperrors.AppError) {
	const lockSQL = `
SELECT amount_minor::text
FROM vault.balances
WHERE address = $1 AND asset_ref = $2
FOR UPDATE
`

	var amountMinor string
	err := tx.QueryRowContext(ctx, lockSQL, address, assetRef).Scan(&amountMinor)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "0", nil
	}
	if err != nil {
		return "", apperrors.NewInternal(
			"balance_query_failed",
			"failed to query balance",
			map[string]any{"error": err.Error(), "address": address, "asset_ref": assetRef},
		)
	}
	if amountMinor == "0" {
		return "0", nil
	}

	const debitSQL = `
UPDATE vault.balances
SET amount_minor = 0,
    updated_at = $3
WHERE address = $1 AND asset_ref = $2
`
	if _, err := tx.ExecContext(ctx, debitSQL, address, assetRef, movedAt.UTC()); err != nil {
		return "", apperrors.NewInternal(
			"balance_transfer_failed",
			"failed to debit source balance",
			map[string]any{"error": err.Error(), "address": address, "asset_ref": assetRef},
		)
	}

	const creditSQL = `
INSERT INTO vault.balances (address, asset_ref, amount_minor, updated_at)
VALUES ($1, $2, $3::numeric, $4)
ON CONFLICT (address, asset_ref) DO UPDATE
SET amount_minor = vault.balances.amount_minor + EXCLUDED.amount_minor,
    updated_at = EXCLUDED.updated_at
`
	if _, err := tx.ExecContext(ctx, creditSQL, destination, assetRef, amountMinor, movedAt.UTC()); err != nil {
		return "", apperrors.NewInternal(
			"balance_transfer_failed",
			"failed to credit destination balance",
			map[string]any{"error": err.Error(), "destination": destination, "asset_ref": assetRef},
		)
	}

	return amountMinor, nil
}

type activationEventPayload struct {
	Address          string    `json:"address"`
	Salt             string    `json:"salt"`
	AssetRef         string    `json:"asset_ref"`
	Destination      string    `json:"destination"`
	SweptAmountMinor string    `json:"swept_amount_minor"`
	ActivatedAt      time.Time `json:"activated_at"`
}

func (r *Repository) insertActivationEvent(
	ctx context.Context,
	tx *sql.Tx,
	command dto.ActivateAndSweepPersistenceCommand,
	sweptAmount string,
) *apperrors.AppError {
	payload, marshalErr := json.Marshal(activationEventPayload{
		Address:          command.Address,
		Salt:             command.Salt,
		AssetRef:         command.AssetRef,
		Destination:      command.Destination,
		SweptAmountMinor: sweptAmount,
		ActivatedAt:      command.ActivatedAt.UTC(),
	})
	if marshalErr != nil {
		return apperrors.NewInternal(
			"activation_event_encode_failed",
			"failed to encode activation event payload",
			map[string]any{"error": marshalErr.Error()},
		)
	}

	const insertSQL = `
INSERT INTO vault.webhook_outbox_events (
  event_id,
  event_type,
  account_address,
  destination_url,
  payload,
  delivery_status,
  attempts,
  next_attempt_at,
  created_at,
  updated_at
) VALUES ($1, $2, $3, $4, $5, 'pending', 0, $6, $6, $6)
`

	_, err := tx.ExecContext(
		ctx,
		insertSQL,
		command.EventID,
		command.EventType,
		command.Address,
		command.DestinationURL,
		payload,
		command.ActivatedAt.UTC(),
	)
	if err != nil {
		return apperrors.NewInternal(
			"activation_event_insert_failed",
			"failed to insert activation event",
			map[string]any{"error": err.Error(), "event_id": command.EventID},
		)
	}

	return nil
}

func txBeginFailed(err error) *apperrors.AppError {
	return apperrors.NewInternal(
		"account_tx_begin_failed",
		"failed to start account transaction",
		map[string]any{"error": err.Error()},
	)
}

func txCommitFailed(err error) *apperrors.AppError {
	return apperrors.NewInternal(
		"account_tx_commit_failed",
		"failed to commit account transaction",
		map[string]any{"error": err.Error()},
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == "23505"
}
