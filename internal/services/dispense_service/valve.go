package dispense_service

import (
	"fmt"

	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// Инверсная логика стенда: закрытый клапан - высокий уровень, открытый - низкий.
// Это контракт с платой реле, уровни нигде кроме ValveActuator не используются.
const (
	ClosedLevel = gpio.High
	OpenLevel   = gpio.Low
)

// ValveActuator открывает и закрывает клапаны. Состояния, кроме уровня линии, не хранит.
type ValveActuator struct {
	driver gpio.Driver
}

func NewValveActuator(driver gpio.Driver) *ValveActuator {
	return &ValveActuator{driver: driver}
}

// Setup переводит линию в режим выхода сразу в закрытом состоянии.
func (v *ValveActuator) Setup(line int) error {
	if err := v.driver.SetupOutput(line, ClosedLevel); err != nil {
		return fmt.Errorf("%w: настройка клапана %d: %v", errors.ErrHardwareFault, line, err)
	}
	return nil
}

func (v *ValveActuator) Open(line int) error {
	if err := v.driver.Write(line, OpenLevel); err != nil {
		return fmt.Errorf("%w: открытие клапана %d: %v", errors.ErrHardwareFault, line, err)
	}
	return nil
}

// Close идемпотентен: повторное закрытие просто снова выставляет высокий уровень.
func (v *ValveActuator) Close(line int) error {
	if err := v.driver.Write(line, ClosedLevel); err != nil {
		return fmt.Errorf("%w: закрытие клапана %d: %v", errors.ErrHardwareFault, line, err)
	}
	return nil
}
