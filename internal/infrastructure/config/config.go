package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	valueobjects "sweepvault/internal/domain/value_objects"
)

const (
	defaultPort                     = "8080"
	defaultOpenAPISpec              = "api/openapi.yaml"
	defaultShutdownTimeout          = 10 * time.Second
	defaultDBReadinessTimeout       = 30 * time.Second
	defaultDBReadinessRetryInterval = 2 * time.Second
	defaultMigrationsPath           = "internal/adapters/outbound/persistence/postgresql/migrations"

	defaultWebhookDispatchInterval = 5 * time.Second
	defaultWebhookDispatchBatch    = 25
	defaultWebhookLeaseDuration    = 30 * time.Second
	defaultWebhookInitialBackoff   = 30 * time.Second
	defaultWebhookMaxBackoff       = 15 * time.Minute
	defaultWebhookHTTPTimeout      = 5 * time.Second

	defaultResweepInterval  = time.Minute
	defaultResweepBatchSize = 50
)

type ConfigError struct {
	Code     string
	Message  string
	Metadata map[string]string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

type Config struct {
	Port                     string
	OpenAPISpecPath          string
	ShutdownTimeout          time.Duration
	DatabaseURL              string
	DatabaseTarget           string
	DBReadinessTimeout       time.Duration
	DBReadinessRetryInterval time.Duration
	MigrationsPath           string

	TemplateID       valueobjects.Address
	RegistryID       valueobjects.Address
	OrchestratorID   valueobjects.Address
	DepositMonitorID valueobjects.Address

	ActivationWebhookURL   string
	WebhookHMACSecret      string
	WebhookHTTPTimeout     time.Duration
	WebhookDispatchWorker  string
	WebhookDispatchEnabled bool
	WebhookDispatchConfig  WebhookDispatchConfig

	ResweepEnabled     bool
	ResweepDestination valueobjects.Address
	ResweepInterval    time.Duration
	ResweepBatchSize   int
}

type WebhookDispatchConfig struct {
	Interval       time.Duration
	BatchSize      int
	LeaseDuration  time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func LoadConfig() (Config, *ConfigError) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_DATABASE_URL_REQUIRED",
			Message: "DATABASE_URL is required",
		}
	}

	databaseTarget, parseErr := parseDatabaseTarget(databaseURL)
	if parseErr != nil {
		return Config{}, parseErr
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	openAPISpecPath := os.Getenv("OPENAPI_SPEC_PATH")
	if openAPISpecPath == "" {
		openAPISpecPath = defaultOpenAPISpec
	}

	templateID, parseErr := requireAddressEnv("SWEEPVAULT_TEMPLATE_ID")
	if parseErr != nil {
		return Config{}, parseErr
	}
	registryID, parseErr := requireAddressEnv("SWEEPVAULT_REGISTRY_ID")
	if parseErr != nil {
		return Config{}, parseErr
	}
	orchestratorID, parseErr := requireAddressEnv("SWEEPVAULT_ORCHESTRATOR_ID")
	if parseErr != nil {
		return Config{}, parseErr
	}

	depositMonitorID := orchestratorID
	if raw := strings.TrimSpace(os.Getenv("SWEEPVAULT_DEPOSIT_MONITOR_ID")); raw != "" {
		parsed, appErr := valueobjects.NormalizeAddress(raw)
		if appErr != nil || parsed.IsZero() {
			return Config{}, &ConfigError{
				Code:    "CONFIG_DEPOSIT_MONITOR_ID_INVALID",
				Message: "SWEEPVAULT_DEPOSIT_MONITOR_ID must be a nonzero hex address",
			}
		}
		depositMonitorID = parsed
	}

	if templateID == registryID {
		return Config{}, &ConfigError{
			Code:    "CONFIG_REGISTRY_IDENTITY_COLLISION",
			Message: "SWEEPVAULT_TEMPLATE_ID and SWEEPVAULT_REGISTRY_ID must differ",
		}
	}

	activationWebhookURL := strings.TrimSpace(os.Getenv("ACTIVATION_WEBHOOK_URL"))
	webhookHMACSecret := strings.TrimSpace(os.Getenv("WEBHOOK_HMAC_SECRET"))
	if activationWebhookURL != "" && webhookHMACSecret == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_WEBHOOK_HMAC_SECRET_REQUIRED",
			Message: "WEBHOOK_HMAC_SECRET is required when ACTIVATION_WEBHOOK_URL is set",
		}
	}

	webhookHTTPTimeout, parseErr := durationEnv("WEBHOOK_HTTP_TIMEOUT", defaultWebhookHTTPTimeout)
	if parseErr != nil {
		return Config{}, parseErr
	}
	dispatchInterval, parseErr := durationEnv("WEBHOOK_DISPATCH_INTERVAL", defaultWebhookDispatchInterval)
	if parseErr != nil {
		return Config{}, parseErr
	}
	dispatchBatch, parseErr := intEnv("WEBHOOK_DISPATCH_BATCH_SIZE", defaultWebhookDispatchBatch)
	if parseErr != nil {
		return Config{}, parseErr
	}
	leaseDuration, parseErr := durationEnv("WEBHOOK_DISPATCH_LEASE_DURATION", defaultWebhookLeaseDuration)
	if parseErr != nil {
		return Config{}, parseErr
	}
	initialBackoff, parseErr := durationEnv("WEBHOOK_DISPATCH_INITIAL_BACKOFF", defaultWebhookInitialBackoff)
	if parseErr != nil {
		return Config{}, parseErr
	}
	maxBackoff, parseErr := durationEnv("WEBHOOK_DISPATCH_MAX_BACKOFF", defaultWebhookMaxBackoff)
	if parseErr != nil {
		return Config{}, parseErr
	}

	dispatchWorker := strings.TrimSpace(os.Getenv("WEBHOOK_DISPATCH_WORKER_ID"))
	if dispatchWorker == "" {
		hostname, err := os.Hostname()
		if err != nil || strings.TrimSpace(hostname) == "" {
			hostname = "webhook-dispatcher"
		}
		dispatchWorker = hostname
	}

	resweepEnabled, parseErr := boolEnv("RESWEEP_ENABLED", false)
	if parseErr != nil {
		return Config{}, parseErr
	}
	resweepInterval, parseErr := durationEnv("RESWEEP_INTERVAL", defaultResweepInterval)
	if parseErr != nil {
		return Config{}, parseErr
	}
	resweepBatchSize, parseErr := intEnv("RESWEEP_BATCH_SIZE", defaultResweepBatchSize)
	if parseErr != nil {
		return Config{}, parseErr
	}

	resweepDestination := valueobjects.ZeroAddress
	if raw := strings.TrimSpace(os.Getenv("RESWEEP_DESTINATION")); raw != "" {
		parsed, appErr := valueobjects.NormalizeAddress(raw)
		if appErr != nil || parsed.IsZero() {
			return Config{}, &ConfigError{
				Code:    "CONFIG_RESWEEP_DESTINATION_INVALID",
				Message: "RESWEEP_DESTINATION must be a nonzero hex address",
			}
		}
		resweepDestination = parsed
	}
	if resweepEnabled && resweepDestination.IsZero() {
		return Config{}, &ConfigError{
			Code:    "CONFIG_RESWEEP_DESTINATION_REQUIRED",
			Message: "RESWEEP_DESTINATION is required when RESWEEP_ENABLED is true",
		}
	}

	return Config{
		Port:                     port,
		OpenAPISpecPath:          openAPISpecPath,
		ShutdownTimeout:          defaultShutdownTimeout,
		DatabaseURL:              databaseURL,
		DatabaseTarget:           databaseTarget,
		DBReadinessTimeout:       defaultDBReadinessTimeout,
		DBReadinessRetryInterval: defaultDBReadinessRetryInterval,
		MigrationsPath:           defaultMigrationsPath,
		TemplateID:               templateID,
		RegistryID:               registryID,
		OrchestratorID:           orchestratorID,
		DepositMonitorID:         depositMonitorID,
		ActivationWebhookURL:     activationWebhookURL,
		WebhookHMACSecret:        webhookHMACSecret,
		WebhookHTTPTimeout:       webhookHTTPTimeout,
		WebhookDispatchWorker:    dispatchWorker,
		WebhookDispatchEnabled:   activationWebhookURL != "",
		WebhookDispatchConfig: WebhookDispatchConfig{
			Interval:       dispatchInterval,
			BatchSize:      dispatchBatch,
			LeaseDuration:  leaseDuration,
			InitialBackoff: initialBackoff,
			MaxBackoff:     maxBackoff,
		},
		ResweepEnabled:     resweepEnabled,
		ResweepDestination: resweepDestination,
		ResweepInterval:    resweepInterval,
		ResweepBatchSize:   resweepBatchSize,
	}, nil
}

func (c Config) Address() string {
	return ":" + c.Port
}

func parseDatabaseTarget(databaseURL string) (string, *ConfigError) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_INVALID",
			Message: "DATABASE_URL is invalid",
		}
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_SCHEME_INVALID",
			Message: "DATABASE_URL must use postgres or postgresql scheme",
		}
	}

	if parsed.Host == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_HOST_MISSING",
			Message: "DATABASE_URL host is required",
		}
	}

	databaseName := strings.TrimPrefix(parsed.Path, "/")
	if databaseName == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_NAME_MISSING",
			Message: "DATABASE_URL database name is required",
		}
	}

	return parsed.Host + "/" + databaseName, nil
}

func requireAddressEnv(name string) (valueobjects.Address, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", &ConfigError{
			Code:    "CONFIG_" + name + "_REQUIRED",
			Message: name + " is required",
		}
	}

	address, appErr := valueobjects.NormalizeAddress(raw)
	if appErr != nil {
		return "", &ConfigError{
			Code:     "CONFIG_" + name + "_INVALID",
			Message:  name + " must be a 20-byte hex address",
			Metadata: map[string]string{"value": raw},
		}
	}
	if address.IsZero() {
		return "", &ConfigError{
			Code:    "CONFIG_" + name + "_INVALID",
			Message: name + " must not be the zero address",
		}
	}

	return address, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return 0, &ConfigError{
			Code:    "CONFIG_" + name + "_INVALID",
			Message: name + " must be a positive duration",
		}
	}

	return parsed, nil
}

func intEnv(name string, fallback int) (int, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, &ConfigError{
			Code:    "CONFIG_" + name + "_INVALID",
			Message: name + " must be a positive integer",
		}
	}

	return parsed, nil
}

func boolEnv(name string, fallback bool) (bool, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigError{
			Code:    "CONFIG_" + name + "_INVALID",
			Message: name + " must be a boolean",
		}
	}

	return parsed, nil
}
