package dto

import (
	"time"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ActivateAndSweepCommand struct {
	CallerID    string
	Salt        string
	AssetRef    string
	Destination string
}

type ActivationResource struct {
	Address          string    `json:"address"`
	Salt             string    `json:"salt"`
	Owner            string    `json:"owner"`
	AssetRef         string    `json:"asset_ref"`
	Destination      string    `json:"destination"`
	SweptAmountMinor string    `json:"swept_amount_minor"`
	ActivatedAt      time.Time `json:"activated_at"`
}

type ActivateAndSweepOutput struct {
	Resource ActivationResource
}

// ActivateAndSweepPersistenceCommand is executed as a single database
// transaction: account insert, full-balance transfer and outbox event
// either all commit or none do.
type ActivateAndSweepPersistenceCommand struct {
	Address        string
	Salt           string
	Owner          string
	RegistryRef    string
	AssetRef       string
	Destination    string
	EventID        string
	EventType      string
	DestinationURL string
	ActivatedAt    time.Time
}

type ActivateAndSweepPersistenceResult struct {
	SweptAmountMinor string
}

// AccountState is the persisted account row handed to authorization
// callbacks while its row lock is held.
type AccountState struct {
	Address     string
	Salt        string
	Owner       string
	RegistryRef string
	ActivatedAt time.Time
}

// AuthorizeAccountFunc is evaluated inside the sweep/transfer transaction,
// after the account row has been locked, so authorization always sees the
// current owner.
type AuthorizeAccountFunc func(account AccountState) *apperrors.AppError
