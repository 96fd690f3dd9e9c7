package valueobjects

import (
	"strings"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

// NativeAssetRef is the sentinel meaning "native currency" rather than a
// fungible-token contract.
const NativeAssetRef = "native"

// AssetRef identifies the asset being swept: the native sentinel or a
// token contract address.
type AssetRef string

func NormalizeAssetRef(raw string) (AssetRef, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, NativeAssetRef) {
		return AssetRef(NativeAssetRef), nil
	}

	contract, appErr := NormalizeAddressField(trimmed, "asset_ref")
	if appErr != nil {
		return "", apperrors.NewValidation(
			"invalid_request",
			"asset_ref must be \"native\" or a token contract address",
			map[string]any{"field": "asset_ref"},
		)
	}

	return AssetRef(contract.String()), nil
}

func (a AssetRef) String() string {
	return string(a)
}

func (a AssetRef) IsNative() bool {
	return a == AssetRef(NativeAssetRef)
}
