package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type getHealthUseCase struct{}

func NewGetHealthUseCase() portsin.GetHealthUseCase {
	return &getHealthUseCase{}
}

func (u *getHealthUseCase) Execute(_ context.Context, _ dto.GetHealthCommand) (dto.HealthOutput, *apperrors.AppError) {
	status := valueobjects.NewHealthyStatus()

	return dto.HealthOutput{
		Status: status.String(),
	}, nil
}
