package dispense_service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

type dispenseService struct {
	driver     gpio.Driver
	pins       *PinMap
	valves     *ValveActuator
	pourer     *Pourer
	dispatcher *Dispatcher
	masterLine int
	logger     *logging.Logger
}

func NewDispenseService(cfg *config.AppConfig, driver gpio.Driver, logger *logging.Logger) interfaces.DispenseService {
	pins := NewPinMap(cfg.Hardware.Pumps)
	valves := NewValveActuator(driver)
	meter := NewFlowMeter(driver, cfg.Dispense.MLPerPulse, cfg.Dispense.MLPerUnit, cfg.Dispense.PollInterval, cfg.Dispense.ProgressStep)
	pourer := NewPourer(pins, valves, meter, cfg.Dispense.PourTimeout, logger)
	orchestrator := NewOrchestrator(pourer, valves, cfg.Hardware.MasterValveLine, cfg.Dispense.SettleDelay, cfg.Dispense.AbortOnFailure, logger)

	return &dispenseService{
		driver:     driver,
		pins:       pins,
		valves:     valves,
		pourer:     pourer,
		dispatcher: NewDispatcher(orchestrator, logger),
		masterLine: cfg.Hardware.MasterValveLine,
		logger:     logger.WithPrefix("DISPENSE"),
	}
}

// --- HardwareManager ---

func (s *dispenseService) SetupLines() error {
	s.logger.Info("Configuring GPIO lines", "driver", s.driver.Name(), "pumps", len(s.pins.IDs()), "master_line", s.masterLine)

	if err := s.valves.Setup(s.masterLine); err != nil {
		return err
	}
	pumps := s.pins.Pumps()
	for _, id := range s.pins.IDs() {
		pair := pumps[id]
		if err := s.valves.Setup(pair.ValveLine); err != nil {
			return fmt.Errorf("насос %d: %w", id, err)
		}
		if err := s.driver.SetupInput(pair.SensorLine); err != nil {
			return fmt.Errorf("%w: насос %d, датчик %d: %v", errors.ErrHardwareFault, id, pair.SensorLine, err)
		}
	}
	return nil
}

func (s *dispenseService) ReleaseLines() error {
	var errs []error
	pumps := s.pins.Pumps()
	for _, id := range s.pins.IDs() {
		if err := s.valves.Close(pumps[id].ValveLine); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.valves.Close(s.masterLine); err != nil {
		errs = append(errs, err)
	}
	if err := s.driver.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		s.logger.Error("Failed to release some GPIO lines", "errors", len(errs))
	}
	return stderrors.Join(errs...)
}

func (s *dispenseService) Pumps() models.PumpMapping {
	return s.pins.Pumps()
}

// --- DispenseManager ---

func (s *dispenseService) Start(ctx context.Context) {
	s.dispatcher.Start(ctx)
}

func (s *dispenseService) Stop() {
	s.dispatcher.Stop()
}

func (s *dispenseService) Dispense(job models.DispenseJob) error {
	return s.dispatcher.Dispense(job)
}

func (s *dispenseService) ExecuteValveCommand(ctx context.Context, req models.PourRequest) (models.PourResult, error) {
	if req.TargetVolume > 0 {
		return models.PourResult{Request: req}, fmt.Errorf("%w: прямая команда не отмеряет объем", errors.ErrInvalidRequest)
	}
	// закрыть клапан безопасно всегда, поэтому закрытие проходит и во время прогона
	if req.IsCloseCommand() {
		res := s.pourer.Pour(ctx, req)
		return res, res.Err
	}

	release, err := s.dispatcher.TryAcquire()
	if err != nil {
		return models.PourResult{Request: req}, err
	}
	defer release()

	res := s.pourer.Pour(ctx, req)
	return res, res.Err
}

func (s *dispenseService) InFlight() bool {
	return s.dispatcher.InFlight()
}
