package usecases

import (
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
)

// Usecase - агрегатор сценариев: каталог, приготовление, прямые команды клапанам
type Usecase struct {
	repo     interfaces.Repository
	dispense interfaces.DispenseService
	status   interfaces.StatusService
	logger   *logging.Logger
}

// NewUsecases - конструктор для Usecase
func NewUsecases(
	repo interfaces.Repository,
	dispense interfaces.DispenseService,
	status interfaces.StatusService,
	logger *logging.Logger,
) interfaces.Usecases {
	return &Usecase{
		repo:     repo,
		dispense: dispense,
		status:   status,
		logger:   logger.WithPrefix("USECASE"),
	}
}
