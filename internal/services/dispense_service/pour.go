package dispense_service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/internal/tracing"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// PourState - состояние автомата налива.
type PourState string

const (
	StateIdle         PourState = "idle"
	StateValveOpen    PourState = "valve_open"
	StateMeasuring    PourState = "measuring"
	StateValveClosing PourState = "valve_closing"
	StateDone         PourState = "done"
)

// Pourer выполняет один налив: открыть -> измерять до цели или таймаута -> закрыть.
// Клапан закрывается на любом пути выхода из измерения.
type Pourer struct {
	pins         *PinMap
	valves       *ValveActuator
	meter        *FlowMeter
	timeout      time.Duration
	logger       *logging.Logger
	onTransition func(models.PourRequest, PourState)
}

func NewPourer(pins *PinMap, valves *ValveActuator, meter *FlowMeter, timeout time.Duration, logger *logging.Logger) *Pourer {
	return &Pourer{
		pins:    pins,
		valves:  valves,
		meter:   meter,
		timeout: timeout,
		logger:  logger.WithPrefix("POUR"),
	}
}

// OnTransition подписывает наблюдателя на смену состояний автомата.
func (p *Pourer) OnTransition(fn func(models.PourRequest, PourState)) {
	p.onTransition = fn
}

func (p *Pourer) transition(req models.PourRequest, state PourState) {
	p.logger.Debug("Pour state", "pump", req.ValveID, "ingredient", req.Ingredient, "state", state)
	if p.onTransition != nil {
		p.onTransition(req, state)
	}
}

// Pour выполняет запрос и всегда возвращает результат; ошибка лежит в PourResult.Err.
func (p *Pourer) Pour(ctx context.Context, req models.PourRequest) (result models.PourResult) {
	start := time.Now()
	result = models.PourResult{Request: req}

	ctx, span := tracing.StartSpan(ctx, "dispense.pour", map[string]string{
		"pump":       strconv.Itoa(req.ValveID),
		"ingredient": req.Ingredient,
		"target":     strconv.FormatFloat(req.TargetVolume, 'f', 2, 64),
	})
	defer func() {
		result.Elapsed = time.Since(start)
		if result.Err != nil {
			result.Error = result.Err.Error()
		}
		tracing.EndSpan(span, result.Err)
	}()

	p.transition(req, StateIdle)

	lines, err := p.pins.Resolve(req)
	if err != nil {
		p.logger.Error("Pour rejected", "pump", req.ValveID, "error", err)
		result.Err = err
		p.transition(req, StateDone)
		return result
	}

	switch {
	case req.IsOpenCommand():
		result.Err = p.valves.Open(lines.Valve)
		result.Success = result.Err == nil
		p.logger.Info("Valve opened by direct command", "line", lines.Valve, "error", result.Err)
		p.transition(req, StateDone)
		return result
	case req.IsCloseCommand():
		result.Err = p.valves.Close(lines.Valve)
		result.Success = result.Err == nil
		p.logger.Info("Valve closed by direct command", "line", lines.Valve, "error", result.Err)
		p.transition(req, StateDone)
		return result
	}

	if err := ctx.Err(); err != nil {
		p.logger.Warn("Pour skipped, context done", "pump", req.ValveID, "error", err)
		result.Err = fmt.Errorf("налив не начат: %w", err)
		p.transition(req, StateDone)
		return result
	}

	p.transition(req, StateValveOpen)
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Err = fmt.Errorf("%w: сбой во время налива: %v", errors.ErrHardwareFault, r)
		}
		p.transition(req, StateValveClosing)
		if cerr := p.valves.Close(lines.Valve); cerr != nil {
			p.logger.Error("Failed to close valve", "pump", req.ValveID, "line", lines.Valve, "error", cerr)
			result.Success = false
			result.Err = stderrors.Join(result.Err, cerr)
		}
		p.transition(req, StateDone)
	}()

	if err := p.valves.Open(lines.Valve); err != nil {
		p.logger.Error("Failed to open valve", "pump", req.ValveID, "line", lines.Valve, "error", err)
		result.Err = err
		return result
	}

	p.transition(req, StateMeasuring)
	p.logger.Info("Pour started", "pump", req.ValveID, "ingredient", req.Ingredient,
		"target", req.TargetVolume, "valve_line", lines.Valve, "sensor_line", lines.Sensor)

	m, err := p.meter.Measure(ctx, lines.Sensor, req.TargetVolume, p.timeout, func(volume float64) {
		p.logger.Info("Pour progress", "pump", req.ValveID, "volume", fmt.Sprintf("%.2f", volume), "target", req.TargetVolume)
	})
	result.Dispensed = m.Volume
	result.Err = err
	result.Success = err == nil

	if err != nil {
		p.logger.Warn("Pour failed", "pump", req.ValveID, "line", lines.Sensor,
			"dispensed", fmt.Sprintf("%.2f", m.Volume), "elapsed", m.Elapsed, "error", err)
	} else {
		p.logger.Info("Pour finished", "pump", req.ValveID,
			"dispensed", fmt.Sprintf("%.2f", m.Volume), "pulses", m.Pulses, "elapsed", m.Elapsed)
	}
	return result
}
