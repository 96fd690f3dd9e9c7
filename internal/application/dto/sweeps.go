package dto

import "time"

type SweepAccountCommand struct {
	CallerID    string
	Address     string
	AssetRef    string
	Destination string
}

type SweepResource struct {
	Address          string    `json:"address"`
	AssetRef         string    `json:"asset_ref"`
	Destination      string    `json:"destination"`
	SweptAmountMinor string    `json:"swept_amount_minor"`
	SweptAt          time.Time `json:"swept_at"`
}

type SweepAccountOutput struct {
	Resource SweepResource
}

type SweepPersistenceCommand struct {
	Address     string
	AssetRef    string
	Destination string
	SweptAt     time.Time
}

type SweepPersistenceResult struct {
	SweptAmountMinor string
}
