package dto

import "time"

type ResweepAccountsCommand struct {
	Now           time.Time
	BatchSize     int
	WorkerID      string
	LeaseDuration time.Duration
	Destination   string
}

type ResweepAccountsOutput struct {
	Claimed int
	Swept   int
	Skipped int
	Errors  int
}

// ResweepCandidate is an activated account holding a nonzero balance of
// one asset after its activation sweep.
type ResweepCandidate struct {
	Address  string
	AssetRef string
}
