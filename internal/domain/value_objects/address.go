package valueobjects

import (
	"encoding/hex"
	"regexp"
	"strings"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Address is a 20-byte vault address, stored as 0x + 40 lowercase hex.
// Accounts, owners, the orchestrator, the registry and the template
// identity all share this form.
type Address string

// ZeroAddress marks identity slots that must never authorize anything,
// such as the owner of the seeded template account.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

func NormalizeAddress(raw string) (Address, *apperrors.AppError) {
	return NormalizeAddressField(raw, "address")
}

func NormalizeAddressField(raw, field string) (Address, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "0x") {
		trimmed = "0x" + trimmed
	}
	if !addressPattern.MatchString(trimmed) {
		return "", apperrors.NewValidation(
			"invalid_request",
			field+" must be a 20-byte hex address",
			map[string]any{"field": field},
		)
	}

	return Address(strings.ToLower(trimmed)), nil
}

func (a Address) String() string {
	return string(a)
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) Bytes() []byte {
	decoded, err := hex.DecodeString(strings.TrimPrefix(string(a), "0x"))
	if err != nil {
		return nil
	}

	return decoded
}
