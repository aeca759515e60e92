package dispense_service

import (
	"context"
	"fmt"
	"time"

	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// DefaultPollInterval - шаг опроса датчика. При 1 мс надежно считается поток до 250 Гц
// (не меньше двух выборок на полупериод), это ~555 мл/с при 2.22 мл на импульс.
const DefaultPollInterval = time.Millisecond

// Measurement - итог измерения потока.
type Measurement struct {
	Pulses  int
	Volume  float64
	Elapsed time.Duration
}

// FlowMeter считает импульсы датчика (спад high -> low) и переводит их в объем.
// Клапаны не трогает.
type FlowMeter struct {
	driver       gpio.Driver
	pulseVolume  float64
	pollInterval time.Duration
	progressStep float64
}

// NewFlowMeter: mlPerPulse - калибровка датчика, mlPerUnit - мл в единице отчета (унция).
func NewFlowMeter(driver gpio.Driver, mlPerPulse, mlPerUnit float64, pollInterval time.Duration, progressStep float64) *FlowMeter {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if mlPerUnit <= 0 {
		mlPerUnit = 1
	}
	return &FlowMeter{
		driver:       driver,
		pulseVolume:  mlPerPulse / mlPerUnit,
		pollInterval: pollInterval,
		progressStep: progressStep,
	}
}

// PulseVolume - объем одного импульса в единицах отчета.
func (f *FlowMeter) PulseVolume() float64 { return f.pulseVolume }

// Volume линейно переводит число импульсов в объем.
func (f *FlowMeter) Volume(pulses int) float64 {
	return float64(pulses) * f.pulseVolume
}

// Measure опрашивает датчик, пока объем не достигнет target или не истечет timeout.
// Частичный объем возвращается всегда. Ошибки: ErrTimeout, ErrHardwareFault, ошибка контекста.
// progress вызывается при пересечении каждого шага progressStep.
func (f *FlowMeter) Measure(ctx context.Context, sensorLine int, target float64, timeout time.Duration, progress func(volume float64)) (Measurement, error) {
	start := time.Now()
	m := Measurement{}

	if target <= 0 {
		return m, nil
	}
	if timeout <= 0 {
		return m, fmt.Errorf("%w: таймаут налива должен быть положительным", errors.ErrConfiguration)
	}

	last, err := f.driver.Read(sensorLine)
	if err != nil {
		return m, fmt.Errorf("%w: чтение датчика %d: %v", errors.ErrHardwareFault, sensorLine, err)
	}

	nextMark := f.progressStep
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Elapsed = time.Since(start)
			return m, fmt.Errorf("налив прерван после %s: %w", m.Elapsed, ctx.Err())
		case <-ticker.C:
		}

		level, err := f.driver.Read(sensorLine)
		m.Elapsed = time.Since(start)
		if err != nil {
			return m, fmt.Errorf("%w: чтение датчика %d через %s: %v", errors.ErrHardwareFault, sensorLine, m.Elapsed, err)
		}

		if last == gpio.High && level == gpio.Low {
			m.Pulses++
			m.Volume = f.Volume(m.Pulses)
			if progress != nil && f.progressStep > 0 && m.Volume >= nextMark {
				progress(m.Volume)
				for nextMark <= m.Volume {
					nextMark += f.progressStep
				}
			}
		}
		last = level

		if m.Volume >= target {
			return m, nil
		}
		if m.Elapsed > timeout {
			return m, fmt.Errorf("%w: %.2f из %.2f за %s (датчик %d)", errors.ErrTimeout, m.Volume, target, m.Elapsed, sensorLine)
		}
	}
}
