package gpio

import (
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph - драйвер реальных линий через periph.io (Raspberry Pi и совместимые платы).
// Линии адресуются BCM номером: 17 -> "GPIO17".
type Periph struct {
	mu   sync.Mutex
	pins map[int]pgpio.PinIO
}

func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return &Periph{pins: make(map[int]pgpio.PinIO)}, nil
}

func (p *Periph) Name() string { return "periph" }

func (p *Periph) pin(line int) (pgpio.PinIO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pin, ok := p.pins[line]; ok {
		return pin, nil
	}
	pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", line))
	if pin == nil {
		return nil, fmt.Errorf("линия GPIO%d не найдена", line)
	}
	p.pins[line] = pin
	return pin, nil
}

func (p *Periph) SetupOutput(line int, initial Level) error {
	pin, err := p.pin(line)
	if err != nil {
		return err
	}
	if err := pin.Out(pgpio.Level(initial)); err != nil {
		return fmt.Errorf("GPIO%d out(%s): %w", line, initial, err)
	}
	return nil
}

func (p *Periph) SetupInput(line int) error {
	pin, err := p.pin(line)
	if err != nil {
		return err
	}
	if err := pin.In(pgpio.PullUp, pgpio.NoEdge); err != nil {
		return fmt.Errorf("GPIO%d in: %w", line, err)
	}
	return nil
}

func (p *Periph) Write(line int, level Level) error {
	pin, err := p.pin(line)
	if err != nil {
		return err
	}
	if err := pin.Out(pgpio.Level(level)); err != nil {
		return fmt.Errorf("GPIO%d write(%s): %w", line, level, err)
	}
	return nil
}

func (p *Periph) Read(line int) (Level, error) {
	pin, err := p.pin(line)
	if err != nil {
		return Low, err
	}
	return Level(pin.Read()), nil
}

// Close освобождает линии: входы остаются с подтяжкой, выходы не трогаются,
// чтобы не открыть клапаны при остановке сервиса.
func (p *Periph) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pins = make(map[int]pgpio.PinIO)
	return nil
}
