package di

import (
	"database/sql"
	"log"

	"sweepvault/internal/adapters/inbound/http/controllers"
	httpRouter "sweepvault/internal/adapters/inbound/http/router"
	"sweepvault/internal/adapters/outbound/address/deterministic"
	"sweepvault/internal/adapters/outbound/docs"
	postgresqlaccount "sweepvault/internal/adapters/outbound/persistence/postgresql/account"
	postgresqlassetcatalog "sweepvault/internal/adapters/outbound/persistence/postgresql/assetcatalog"
	postgresqlbootstrap "sweepvault/internal/adapters/outbound/persistence/postgresql/bootstrap"
	postgresqlshared "sweepvault/internal/adapters/outbound/persistence/postgresql/shared"
	postgresqlwebhookoutbox "sweepvault/internal/adapters/outbound/persistence/postgresql/webhookoutbox"
	webhookhttp "sweepvault/internal/adapters/outbound/webhook/http"
	portsin "sweepvault/internal/application/ports/in"
	"sweepvault/internal/application/use_cases"
	"sweepvault/internal/infrastructure/config"
	"sweepvault/internal/infrastructure/httpserver"
	"sweepvault/internal/infrastructure/resweeper"
	"sweepvault/internal/infrastructure/webhook"
)

const resweeperWorkerID = "resweeper"

type Container struct {
	Database                     *sql.DB
	Server                       *httpserver.Server
	InitializePersistenceUseCase portsin.InitializePersistenceUseCase
	ResweeperWorker              *resweeper.Worker
	WebhookWorker                *webhook.Worker
}

func BuildServer(cfg config.Config, logger *log.Logger) (Container, error) {
	persistenceGateway := newPersistenceGateway(cfg, logger)
	initializePersistenceUseCase := use_cases.NewInitializePersistenceUseCase(persistenceGateway)
	databasePool := postgresqlshared.NewDatabasePool(cfg.DatabaseURL, logger)

	deriver := deterministic.NewDeriver(cfg.RegistryID, cfg.TemplateID)
	accountRepository := postgresqlaccount.NewRepository(databasePool, logger)
	accountReadModel := postgresqlaccount.NewReadModel(databasePool)
	assetCatalogReadModel := postgresqlassetcatalog.NewReadModel(databasePool)
	webhookOutboxRepository := postgresqlwebhookoutbox.NewRepository(databasePool)
	webhookOutboxReadModel := postgresqlwebhookoutbox.NewReadModel(databasePool)
	openAPIReadModel := docs.NewFileOpenAPISpecReadModel(cfg.OpenAPISpecPath)

	clock := use_cases.NewSystemClock()

	healthUseCase := use_cases.NewGetHealthUseCase()
	openAPIUseCase := use_cases.NewGetOpenAPISpecUseCase(openAPIReadModel)
	getDepositAddressUseCase := use_cases.NewGetDepositAddressUseCase(deriver, accountReadModel)
	renderQRUseCase := use_cases.NewRenderDepositAddressQRUseCase(deriver)
	activateAndSweepUseCase := use_cases.NewActivateAndSweepUseCase(
		deriver,
		accountRepository,
		cfg.OrchestratorID,
		cfg.RegistryID,
		cfg.ActivationWebhookURL,
		clock,
	)
	getAccountUseCase := use_cases.NewGetAccountUseCase(accountReadModel)
	sweepAccountUseCase := use_cases.NewSweepAccountUseCase(accountRepository, clock)
	transferOwnershipUseCase := use_cases.NewTransferAccountOwnershipUseCase(accountRepository, clock)
	creditDepositUseCase := use_cases.NewCreditDepositUseCase(accountRepository, cfg.DepositMonitorID, clock)
	listAssetsUseCase := use_cases.NewListAssetsUseCase(assetCatalogReadModel)
	listWebhookDLQUseCase := use_cases.NewListWebhookDLQEventsUseCase(webhookOutboxReadModel)
	requeueWebhookDLQUseCase := use_cases.NewRequeueWebhookDLQEventUseCase(webhookOutboxRepository)
	cancelWebhookEventUseCase := use_cases.NewCancelWebhookOutboxEventUseCase(webhookOutboxRepository)
	resweepUseCase := use_cases.NewResweepAccountsUseCase(accountRepository, cfg.RegistryID)

	resweeperWorker := resweeper.NewWorker(
		cfg.ResweepEnabled,
		cfg.ResweepInterval,
		cfg.ResweepBatchSize,
		resweeperWorkerID,
		cfg.ResweepDestination.String(),
		resweepUseCase,
		logger,
	)

	healthController := controllers.NewHealthController(healthUseCase, logger)
	swaggerController := controllers.NewSwaggerController(openAPIUseCase, logger)
	depositAddressController := controllers.NewDepositAddressesController(getDepositAddressUseCase, renderQRUseCase, logger)
	activationsController := controllers.NewActivationsController(activateAndSweepUseCase, logger)
	accountsController := controllers.NewAccountsController(
		getAccountUseCase,
		sweepAccountUseCase,
		transferOwnershipUseCase,
		logger,
	)
	depositsController := controllers.NewDepositsController(creditDepositUseCase, logger)
	assetsController := controllers.NewAssetsController(listAssetsUseCase, logger)
	webhookOutboxController := controllers.NewWebhookOutboxController(
		listWebhookDLQUseCase,
		requeueWebhookDLQUseCase,
		cancelWebhookEventUseCase,
		logger,
	)

	router := httpRouter.New(httpRouter.Dependencies{
		HealthController:         healthController,
		SwaggerController:        swaggerController,
		DepositAddressController: depositAddressController,
		ActivationsController:    activationsController,
		AccountsController:       accountsController,
		DepositsController:       depositsController,
		AssetsController:         assetsController,
		WebhookOutboxController:  webhookOutboxController,
	})

	server := httpserver.New(cfg.Address(), router, logger)

	return Container{
		Database:                     databasePool,
		Server:                       server,
		InitializePersistenceUseCase: initializePersistenceUseCase,
		ResweeperWorker:              resweeperWorker,
	}, nil
}

func BuildWebhookDispatcher(cfg config.Config, logger *log.Logger) (Container, error) {
	persistenceGateway := newPersistenceGateway(cfg, logger)
	initializePersistenceUseCase := use_cases.NewInitializePersistenceUseCase(persistenceGateway)
	databasePool := postgresqlshared.NewDatabasePool(cfg.DatabaseURL, logger)

	webhookOutboxRepository := postgresqlwebhookoutbox.NewRepository(databasePool)
	webhookGateway := webhookhttp.NewGateway(webhookhttp.Config{
		HMACSecret: cfg.WebhookHMACSecret,
		Timeout:    cfg.WebhookHTTPTimeout,
	})
	dispatchUseCase := use_cases.NewDispatchWebhookEventsUseCase(webhookOutboxRepository, webhookGateway)

	webhookWorker := webhook.NewWorker(
		cfg.WebhookDispatchEnabled,
		cfg.WebhookDispatchConfig.Interval,
		cfg.WebhookDispatchConfig.BatchSize,
		cfg.WebhookDispatchWorker,
		cfg.WebhookDispatchConfig.LeaseDuration,
		cfg.WebhookDispatchConfig.InitialBackoff,
		cfg.WebhookDispatchConfig.MaxBackoff,
		dispatchUseCase,
		logger,
	)

	return Container{
		Database:                     databasePool,
		InitializePersistenceUseCase: initializePersistenceUseCase,
		WebhookWorker:                webhookWorker,
	}, nil
}

func newPersistenceGateway(cfg config.Config, logger *log.Logger) *postgresqlbootstrap.Gateway {
	return postgresqlbootstrap.NewGateway(
		cfg.DatabaseURL,
		cfg.DatabaseTarget,
		cfg.MigrationsPath,
		postgresqlbootstrap.RegistryConstants{
			RegistryID: cfg.RegistryID,
			TemplateID: cfg.TemplateID,
		},
		logger,
	)
}
