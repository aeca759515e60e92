package interfaces

import (
	"context"

	"github.com/iwtcode/velvetpour/internal/domain/models"
)

// DispenseService - это агрегирующий интерфейс для управления стендом.
type DispenseService interface {
	HardwareManager
	DispenseManager
}

// HardwareManager определяет контракт подготовки и освобождения линий.
type HardwareManager interface {
	// SetupLines настраивает все линии и закрывает все клапаны.
	SetupLines() error
	// ReleaseLines закрывает все клапаны и освобождает драйвер.
	ReleaseLines() error
	Pumps() models.PumpMapping
}

// DispenseManager определяет контракт фонового исполнения рецептов.
type DispenseManager interface {
	Start(ctx context.Context)
	Stop()
	// Dispense принимает задание и сразу возвращает управление.
	// ErrBusy - идет другой прогон, ErrScheduling - исполнитель не может принять задание.
	Dispense(job models.DispenseJob) error
	// ExecuteValveCommand выполняет прямую команду клапану (объем 0 - открыть, <0 - закрыть).
	ExecuteValveCommand(ctx context.Context, req models.PourRequest) (models.PourResult, error)
	InFlight() bool
}

// StatusService - мост статуса машины и уведомлений наблюдателей.
type StatusService interface {
	Started(operation string)
	Completed(operation string)
	Failed(operation, message string)
	ClientConnected() models.MachineStatus
	ClientDisconnected()
	Status() models.MachineStatus
}

// EventPublisher - широковещательная отправка события наблюдателям, без ожидания доставки.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{})
}
