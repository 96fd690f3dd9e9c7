package bootstrap

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log"
	"path/filepath"
	"time"

	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// RegistryConstants are the immutable identities the address derivation is
// committed to. Once seeded they must never change for a given database;
// changing them would silently re-map every unsold deposit address.
type RegistryConstants struct {
	RegistryID valueobjects.Address
	TemplateID valueobjects.Address
}

type Gateway struct {
	databaseURL    string
	databaseTarget string
	migrationsPath string
	constants      RegistryConstants
	logger         *log.Logger
}

var _ portsout.PersistenceBootstrapGateway = (*Gateway)(nil)

func NewGateway(
	databaseURL string,
	databaseTarget string,
	migrationsPath string,
	constants RegistryConstants,
	logger *log.Logger,
) *Gateway {
	return &Gateway{
		databaseURL:    databaseURL,
		databaseTarget: databaseTarget,
		migrationsPath: migrationsPath,
		constants:      constants,
		logger:         logger,
	}
}

func (g *Gateway) CheckReadiness(ctx context.Context) *apperrors.AppError {
	db, err := sql.Open("pgx", g.databaseURL)
	if err != nil {
		g.logf("database connection initialization failed target=%s error=%v", g.databaseTarget, err)
		return apperrors.NewInternal(
			"DB_CONNECT_INIT_FAILED",
			"failed to initialize database connection",
			map[string]any{"database_target": g.databaseTarget},
		)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		g.logf("database readiness check failed target=%s error=%v", g.databaseTarget, err)
		return apperrors.NewInternal(
			"DB_CONNECT_FAILED",
			"failed to connect to database",
			map[string]any{"database_target": g.databaseTarget},
		)
	}

	g.logf("database readiness check succeeded target=%s", g.databaseTarget)
	return nil
}

func (g *Gateway) RunMigrations(ctx context.Context) *apperrors.AppError {
	if err := ctx.Err(); err != nil {
		return apperrors.NewInternal(
			"DB_MIGRATION_CONTEXT_CANCELED",
			"migration context canceled",
			map[string]any{"database_target": g.databaseTarget},
		)
	}

	migrationsAbsPath, err := filepath.Abs(g.migrationsPath)
	if err != nil {
		return apperrors.NewInternal(
			"DB_MIGRATION_PATH_RESOLVE_FAILED",
			"failed to resolve migration path",
			map[string]any{"migrations_path": g.migrationsPath},
		)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsAbsPath)
	migrationRunner, err := migrate.New(sourceURL, g.databaseURL)
	if err != nil {
		return apperrors.NewInternal(
			"DB_MIGRATION_SETUP_FAILED",
			"failed to initialize migration runner",
			map[string]any{
				"database_target": g.databaseTarget,
				"migrations_path": g.migrationsPath,
			},
		)
	}

	defer func() {
		sourceErr, dbErr := migrationRunner.Close()
		if sourceErr != nil {
			g.logf("migration source close warning path=%s error=%v", g.migrationsPath, sourceErr)
		}
		if dbErr != nil {
			g.logf("migration db close warning target=%s error=%v", g.databaseTarget, dbErr)
		}
	}()

	err = migrationRunner.Up()
	if err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		g.logf("database migrations failed target=%s error=%v", g.databaseTarget, err)
		return apperrors.NewInternal(
			"DB_MIGRATION_APPLY_FAILED",
			"failed to apply migrations",
			map[string]any{
				"database_target": g.databaseTarget,
				"migrations_path": g.migrationsPath,
			},
		)
	}

	if stderrors.Is(err, migrate.ErrNoChange) {
		g.logf("database migrations up to date target=%s", g.databaseTarget)
	} else {
		g.logf("database migrations applied target=%s", g.databaseTarget)
	}

	return nil
}

func (g *Gateway) SeedRegistryState(ctx context.Context) *apperrors.AppError {
	db, err := sql.Open("pgx", g.databaseURL)
	if err != nil {
		return apperrors.NewInternal(
			"DB_CONNECT_INIT_FAILED",
			"failed to initialize database connection",
			map[string]any{"database_target": g.databaseTarget},
		)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return apperrors.NewInternal(
			"registry_seed_tx_begin_failed",
			"failed to start registry seed transaction",
			map[string]any{"error": err.Error()},
		)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if appErr := g.assertConstant(ctx, tx, "registry_id", g.constants.RegistryID.String()); appErr != nil {
		return appErr
	}
	if appErr := g.assertConstant(ctx, tx, "template_id", g.constants.TemplateID.String()); appErr != nil {
		return appErr
	}
	if appErr := g.seedTemplateAccount(ctx, tx); appErr != nil {
		return appErr
	}
	if appErr := g.seedNativeAsset(ctx, tx); appErr != nil {
		return appErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return apperrors.NewInternal(
			"registry_seed_tx_commit_failed",
			"failed to commit registry seed transaction",
			map[string]any{"error": commitErr.Error()},
		)
	}
	committed = true

	g.logf("registry state seeded target=%s registry_id=%s template_id=%s",
		g.databaseTarget, g.constants.RegistryID, g.constants.TemplateID)
	return nil
}

// assertConstant writes the constant on first boot and verifies it on
// every later boot. A mismatch means the process was pointed at a
// database seeded under different identities.
func (g *Gateway) assertConstant(ctx context.Context, tx *sql.Tx, key, value string) *apperrors.AppError {
	const upsertSQL = `
INSERT INTO vault.registry_state (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO NOTHING
`
	if _, err := tx.ExecContext(ctx, upsertSQL, key, value); err != nil {
		return apperrors.NewInternal(
			"registry_state_seed_failed",
			"failed to seed registry state",
			map[string]any{"error": err.Error(), "key": key},
		)
	}

	const selectSQL = `SELECT value FROM vault.registry_state WHERE key = $1`

	var stored string
	if err := tx.QueryRowContext(ctx, selectSQL, key).Scan(&stored); err != nil {
		return apperrors.NewInternal(
			"registry_state_query_failed",
			"failed to query registry state",
			map[string]any{"error": err.Error(), "key": key},
		)
	}
	if stored != value {
		return apperrors.NewInternal(
			"invalid_configuration",
			"seeded registry constant does not match configuration",
			map[string]any{"key": key, "stored": stored, "configured": value},
		)
	}

	return nil
}

// seedTemplateAccount reserves the template address with a zero owner and
// zero registry reference, so no caller can ever activate or sweep it.
func (g *Gateway) seedTemplateAccount(ctx context.Context, tx *sql.Tx) *apperrors.AppError {
	const insertSQL = `
INSERT INTO vault.accounts (address, salt, owner, registry_ref, activated_at)
VALUES ($1, NULL, $2, $2, $3)
ON CONFLICT (address) DO NOTHING
`

	_, err := tx.ExecContext(
		ctx,
		insertSQL,
		g.constants.TemplateID.String(),
		valueobjects.ZeroAddress.String(),
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.NewInternal(
			"template_account_seed_failed",
			"failed to seed template account",
			map[string]any{"error": err.Error(), "template_id": g.constants.TemplateID.String()},
		)
	}

	return nil
}

func (g *Gateway) seedNativeAsset(ctx context.Context, tx *sql.Tx) *apperrors.AppError {
	const insertSQL = `
INSERT INTO vault.asset_catalog (asset_ref, symbol, decimals, native, enabled)
VALUES ($1, 'NATIVE', 18, TRUE, TRUE)
ON CONFLICT (asset_ref) DO NOTHING
`

	if _, err := tx.ExecContext(ctx, insertSQL, valueobjects.NativeAssetRef); err != nil {
		return apperrors.NewInternal(
			"asset_catalog_seed_failed",
			"failed to seed native asset catalog entry",
			map[string]any{"error": err.Error()},
		)
	}

	return nil
}

func (g *Gateway) logf(format string, args ...any) {
	if g.logger == nil {
		return
	}
	g.logger.Printf(format, args...)
}
