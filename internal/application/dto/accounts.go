package dto

import "time"

type GetAccountQuery struct {
	Address string
}

type AccountBalance struct {
	AssetRef    string `json:"asset_ref"`
	AmountMinor string `json:"amount_minor"`
}

type AccountResource struct {
	Address     string           `json:"address"`
	Salt        string           `json:"salt"`
	Owner       string           `json:"owner"`
	RegistryRef string           `json:"registry_ref"`
	ActivatedAt time.Time        `json:"activated_at"`
	Balances    []AccountBalance `json:"balances"`
}

type TransferOwnershipCommand struct {
	CallerID string
	Address  string
	NewOwner string
}

type TransferOwnershipResource struct {
	Address       string    `json:"address"`
	PreviousOwner string    `json:"previous_owner"`
	Owner         string    `json:"owner"`
	RegistryRef   string    `json:"registry_ref"`
	TransferredAt time.Time `json:"transferred_at"`
}

type TransferOwnershipOutput struct {
	Resource TransferOwnershipResource
}

type TransferOwnershipPersistenceCommand struct {
	Address       string
	NewOwner      string
	TransferredAt time.Time
}

type TransferOwnershipPersistenceResult struct {
	PreviousOwner string
	RegistryRef   string
}
