package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

type DepositAddressesController struct {
	getUseCase portsin.GetDepositAddressUseCase
	qrUseCase  portsin.RenderDepositAddressQRUseCase
	logger     *log.Logger
}

func NewDepositAddressesController(
	getUseCase portsin.GetDepositAddressUseCase,
	qrUseCase portsin.RenderDepositAddressQRUseCase,
	logger *log.Logger,
) *DepositAddressesController {
	return &DepositAddressesController{
		getUseCase: getUseCase,
		qrUseCase:  qrUseCase,
		logger:     logger,
	}
}

func (c *DepositAddressesController) GetDepositAddress(w http.ResponseWriter, r *http.Request) {
	salt := r.PathValue("salt")
	resource, appErr := c.getUseCase.Execute(r.Context(), dto.GetDepositAddressQuery{Salt: salt})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/deposit-addresses/{salt} method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *DepositAddressesController) GetDepositAddressQR(w http.ResponseWriter, r *http.Request) {
	salt := r.PathValue("salt")

	size := 0
	rawSize := strings.TrimSpace(r.URL.Query().Get("size"))
	if rawSize != "" {
		parsed, err := strconv.Atoi(rawSize)
		if err != nil {
			writeAppError(w, apperrors.NewValidation(
				"invalid_request",
				"size must be an integer",
				map[string]any{"field": "size"},
			))
			return
		}
		size = parsed
	}

	output, appErr := c.qrUseCase.Execute(r.Context(), dto.GetDepositAddressQRQuery{Salt: salt, Size: size})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/deposit-addresses/{salt}/qr method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Deposit-Address", output.Address)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output.PNG); err != nil {
		c.logger.Printf("response write error path=/v1/deposit-addresses/{salt}/qr method=%s error=%v", r.Method, err)
	}
}
