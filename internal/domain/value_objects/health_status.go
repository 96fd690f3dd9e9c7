package valueobjects

// HealthStatus is the liveness check result. The service reports ok
// whenever the process is serving; database health is the readiness
// gate's concern at startup.
type HealthStatus string

const (
	HealthStatusOK HealthStatus = "ok"
)

func NewHealthyStatus() HealthStatus {
	return HealthStatusOK
}

func (h HealthStatus) String() string {
	return string(h)
}
