package valueobjects

import (
	"regexp"
	"strings"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

var amountMinorPattern = regexp.MustCompile(`^[0-9]{1,78}$`)

// NormalizeAmountMinor validates a minor-unit amount as an integer decimal
// string. 78 digits covers the full uint256 range.
func NormalizeAmountMinor(raw string) (string, *apperrors.AppError) {
	value := strings.TrimSpace(raw)
	if !amountMinorPattern.MatchString(value) {
		return "", apperrors.NewValidation(
			"invalid_request",
			"amount_minor must be an integer string with 1 to 78 digits",
			map[string]any{"field": "amount_minor"},
		)
	}

	normalized := strings.TrimLeft(value, "0")
	if normalized == "" {
		normalized = "0"
	}

	return normalized, nil
}
