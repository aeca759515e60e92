// Package gpio абстрагирует доступ к линиям ввода-вывода стенда.
// Остальная система работает с логическими уровнями и не знает о конкретном драйвере.
package gpio

import (
	"fmt"
	"strings"
)

// Level - логический уровень линии.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Driver - минимальный контракт драйвера линий.
type Driver interface {
	Name() string
	// SetupOutput переводит линию в режим выхода и сразу выставляет уровень.
	SetupOutput(line int, initial Level) error
	// SetupInput переводит линию в режим входа с подтяжкой к питанию.
	SetupInput(line int) error
	Write(line int, level Level) error
	Read(line int) (Level, error)
	Close() error
}

// New создает драйвер по имени из конфигурации.
func New(name string) (Driver, error) {
	switch strings.ToLower(name) {
	case "", "sim", "simulated":
		return NewSim(), nil
	case "periph", "rpi":
		return NewPeriph()
	default:
		return nil, fmt.Errorf("неизвестный драйвер GPIO '%s'", name)
	}
}
