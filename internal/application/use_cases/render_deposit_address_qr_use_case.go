package use_cases

import (
	"context"

	"github.com/skip2/go-qrcode"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type renderDepositAddressQRUseCase struct {
	deriver portsout.AddressDeriver
}

func NewRenderDepositAddressQRUseCase(deriver portsout.AddressDeriver) portsin.RenderDepositAddressQRUseCase {
	return &renderDepositAddressQRUseCase{
		deriver: deriver,
	}
}

func (u *renderDepositAddressQRUseCase) Execute(_ context.Context, query dto.GetDepositAddressQRQuery) (dto.DepositAddressQROutput, *apperrors.AppError) {
	if u.deriver == nil {
		return dto.DepositAddressQROutput{}, apperrors.NewInternal(
			"address_deriver_missing",
			"address deriver is required",
			nil,
		)
	}

	salt, appErr := valueobjects.NormalizeSalt(query.Salt)
	if appErr != nil {
		return dto.DepositAddressQROutput{}, appErr
	}

	size := query.Size
	if size == 0 {
		size = defaultQRSize
	}
	if size < minQRSize || size > maxQRSize {
		return dto.DepositAddressQROutput{}, apperrors.NewValidation(
			"invalid_request",
			"qr size must be between 64 and 1024 pixels",
			map[string]any{"field": "size"},
		)
	}

	address := u.deriver.Derive(salt)
	png, err := qrcode.Encode(address.String(), qrcode.Medium, size)
	if err != nil {
		return dto.DepositAddressQROutput{}, apperrors.NewInternal(
			"qr_encode_failed",
			"failed to encode deposit address QR code",
			map[string]any{"error": err.Error()},
		)
	}

	return dto.DepositAddressQROutput{
		PNG:     png,
		Address: address.String(),
	}, nil
}
