package use_cases

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

func generateID(prefix string) (string, *apperrors.AppError) {
	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.NewInternal(
			"id_generation_failed",
			"failed to generate random identifier",
			map[string]any{"error": err.Error()},
		)
	}

	return prefix + strings.ToLower(hex.EncodeToString(randomBytes)), nil
}
