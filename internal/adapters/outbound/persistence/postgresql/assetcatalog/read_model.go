package assetcatalog

import (
	"context"
	"database/sql"

	"sweepvault/internal/application/dto"
	portsout "sweepvault/internal/application/ports/out"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ReadModel struct {
	db *sql.DB
}

var _ portsout.AssetCatalogReadModel = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) ListEnabled(ctx context.Context) ([]dto.AssetCatalogEntry, *apperrors.AppError) {
	const query = `
SELECT asset_ref, symbol, decimals, native
FROM vault.asset_catalog
WHERE enabled = TRUE
ORDER BY native DESC, symbol ASC
`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternal(
			"asset_catalog_query_failed",
			"failed to query asset catalog",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	assets := make([]dto.AssetCatalogEntry, 0)
	for rows.Next() {
		entry := dto.AssetCatalogEntry{}
		if scanErr := rows.Scan(&entry.AssetRef, &entry.Symbol, &entry.Decimals, &entry.Native); scanErr != nil {
			return nil, apperrors.NewInternal(
				"asset_catalog_scan_failed",
				"failed to parse asset catalog row",
				map[string]any{"error": scanErr.Error()},
			)
		}
		assets = append(assets, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"asset_catalog_rows_failed",
			"failed to iterate asset catalog rows",
			map[string]any{"error": err.Error()},
		)
	}

	return assets, nil
}
