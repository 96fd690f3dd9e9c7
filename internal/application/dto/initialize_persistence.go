package dto

import "time"

// InitializePersistenceCommand bounds the database readiness wait both
// binaries perform before migrations and registry seeding run.
type InitializePersistenceCommand struct {
	ReadinessTimeout       time.Duration
	ReadinessRetryInterval time.Duration
}
