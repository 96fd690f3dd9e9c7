package dto

import "time"

type CreditDepositCommand struct {
	CallerID    string
	Address     string
	AssetRef    string
	AmountMinor string
}

type DepositResource struct {
	Address          string    `json:"address"`
	AssetRef         string    `json:"asset_ref"`
	AmountMinor      string    `json:"amount_minor"`
	BalanceMinor     string    `json:"balance_minor"`
	AccountActivated bool      `json:"account_activated"`
	CreditedAt       time.Time `json:"credited_at"`
}

type CreditDepositOutput struct {
	Resource DepositResource
}

type CreditDepositPersistenceCommand struct {
	Address     string
	AssetRef    string
	AmountMinor string
	CreditedAt  time.Time
}

type CreditDepositPersistenceResult struct {
	BalanceMinor     string
	AccountActivated bool
}
