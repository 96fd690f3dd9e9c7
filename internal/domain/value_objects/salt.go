package valueobjects

import (
	"encoding/hex"
	"regexp"
	"strings"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

var saltPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

// Salt is a caller-chosen 256-bit identifier, stored as 0x + 64 lowercase hex.
type Salt string

func NormalizeSalt(raw string) (Salt, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if !saltPattern.MatchString(trimmed) {
		return "", apperrors.NewValidation(
			"invalid_request",
			"salt must be a 32-byte hex string",
			map[string]any{"field": "salt"},
		)
	}

	return Salt("0x" + strings.ToLower(strings.TrimPrefix(trimmed, "0x"))), nil
}

func (s Salt) String() string {
	return string(s)
}

func (s Salt) Bytes() []byte {
	decoded, err := hex.DecodeString(strings.TrimPrefix(string(s), "0x"))
	if err != nil {
		return nil
	}

	return decoded
}
