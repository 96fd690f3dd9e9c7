package router

import (
	"net/http"

	"sweepvault/internal/adapters/inbound/http/controllers"
)

type Dependencies struct {
	HealthController         *controllers.HealthController
	SwaggerController        *controllers.SwaggerController
	DepositAddressController *controllers.DepositAddressesController
	ActivationsController    *controllers.ActivationsController
	AccountsController       *controllers.AccountsController
	DepositsController       *controllers.DepositsController
	AssetsController         *controllers.AssetsController
	WebhookOutboxController  *controllers.WebhookOutboxController
}

func New(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", deps.HealthController.GetHealth)

	mux.HandleFunc("GET /swagger", deps.SwaggerController.RedirectToIndex)
	mux.HandleFunc("GET /swagger/openapi.yaml", deps.SwaggerController.GetOpenAPISpec)
	mux.HandleFunc("GET /swagger/", deps.SwaggerController.ServeUI)

	mux.HandleFunc("GET /v1/deposit-addresses/{salt}", deps.DepositAddressController.GetDepositAddress)
	mux.HandleFunc("GET /v1/deposit-addresses/{salt}/qr", deps.DepositAddressController.GetDepositAddressQR)

	mux.HandleFunc("POST /v1/activations", deps.ActivationsController.ActivateAndSweep)

	mux.HandleFunc("GET /v1/accounts/{address}", deps.AccountsController.GetAccount)
	mux.HandleFunc("POST /v1/accounts/{address}/sweeps", deps.AccountsController.SweepAccount)
	mux.HandleFunc("POST /v1/accounts/{address}/owner", deps.AccountsController.TransferOwnership)

	mux.HandleFunc("POST /v1/deposits", deps.DepositsController.CreditDeposit)

	mux.HandleFunc("GET /v1/assets", deps.AssetsController.ListAssets)

	mux.HandleFunc("GET /v1/webhook-outbox/dlq", deps.WebhookOutboxController.ListDLQ)
	mux.HandleFunc("POST /v1/webhook-outbox/dlq/{event_id}/requeue", deps.WebhookOutboxController.RequeueDLQEvent)
	mux.HandleFunc("POST /v1/webhook-outbox/events/{event_id}/cancel", deps.WebhookOutboxController.CancelEvent)

	return mux
}
