package dispense_service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/internal/tracing"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// Runner исполняет рецепт целиком. Реализуется Orchestrator, подменяется в тестах исполнителя.
type Runner interface {
	Run(ctx context.Context, runID string, recipe models.Recipe) models.DispenseReport
}

// Orchestrator: мастер-клапан -> наливы по порядку -> пауза стекания -> закрыть мастер-клапан.
type Orchestrator struct {
	pourer         *Pourer
	valves         *ValveActuator
	masterLine     int
	settleDelay    time.Duration
	abortOnFailure bool
	logger         *logging.Logger
}

func NewOrchestrator(pourer *Pourer, valves *ValveActuator, masterLine int, settleDelay time.Duration, abortOnFailure bool, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		pourer:         pourer,
		valves:         valves,
		masterLine:     masterLine,
		settleDelay:    settleDelay,
		abortOnFailure: abortOnFailure,
		logger:         logger.WithPrefix("ORCHESTRATOR"),
	}
}

// Run не прерывает рецепт на неудачном наливе, если abortOnFailure выключен:
// Success тогда отражает только работу мастер-клапана, а итоги наливов лежат в Results.
// Отмена контекста прекращает рецепт: оставшиеся шаги не открывают клапаны и
// попадают в Results неудачными, прогон помечается Aborted.
func (o *Orchestrator) Run(ctx context.Context, runID string, recipe models.Recipe) (report models.DispenseReport) {
	report = models.DispenseReport{
		RunID:     runID,
		Recipe:    recipe.Name,
		Results:   make([]models.PourResult, 0, len(recipe.Steps)),
		Success:   true,
		StartedAt: time.Now(),
	}

	ctx, span := tracing.StartSpan(ctx, "dispense.run", map[string]string{
		"run_id": runID,
		"recipe": recipe.Name,
		"steps":  strconv.Itoa(len(recipe.Steps)),
	})
	defer func() {
		report.FinishedAt = time.Now()
		var spanErr error
		if failed := report.FailedSteps(); len(failed) > 0 {
			spanErr = failed[0].Err
		}
		tracing.EndSpan(span, spanErr)
	}()

	o.logger.Info("Dispense run started", "runID", runID, "recipe", recipe.Name, "steps", len(recipe.Steps))

	defer func() {
		if err := o.valves.Close(o.masterLine); err != nil {
			o.logger.Error("Failed to close master valve", "runID", runID, "line", o.masterLine, "error", err)
			report.Success = false
		}
		o.logger.Info("Dispense run finished", "runID", runID, "recipe", recipe.Name,
			"success", report.Success, "aborted", report.Aborted, "failed_steps", len(report.FailedSteps()),
			"elapsed", time.Since(report.StartedAt))
	}()

	if err := ctx.Err(); err != nil {
		o.logger.Warn("Dispense run cancelled before start", "runID", runID, "error", err)
		report.Results = append(report.Results, skipped(recipe.Steps, err)...)
		report.Success = false
		report.Aborted = true
		return report
	}

	if err := o.valves.Open(o.masterLine); err != nil {
		o.logger.Error("Failed to open master valve, skipping recipe", "runID", runID, "line", o.masterLine, "error", err)
		report.Success = false
		report.Aborted = true
		return report
	}

	for i, step := range recipe.Steps {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("Dispense run cancelled", "runID", runID, "step", i+1, "remaining", len(recipe.Steps)-i, "error", err)
			report.Results = append(report.Results, skipped(recipe.Steps[i:], err)...)
			report.Success = false
			report.Aborted = true
			break
		}

		var res models.PourResult
		if step.TargetVolume <= 0 {
			// 0 и отрицательный объем - прямые команды клапану, в рецепте им не место
			res = rejected(step, fmt.Errorf("%w: шаг %d (насос %d) с объемом %.2f",
				errors.ErrConfiguration, i+1, step.ValveID, step.TargetVolume))
		} else {
			res = o.pourer.Pour(ctx, step)
		}
		report.Results = append(report.Results, res)
		if res.Success {
			continue
		}

		o.logger.Warn("Ingredient pour failed", "runID", runID, "step", i+1, "pump", step.ValveID,
			"ingredient", step.Ingredient, "dispensed", res.Dispensed, "target", step.TargetVolume, "error", res.Err)
		if o.abortOnFailure {
			report.Success = false
			report.Aborted = true
			break
		}
	}

	o.settle(ctx)
	return report
}

// rejected - неудачный результат шага, линии которого не трогались.
func rejected(step models.PourRequest, err error) models.PourResult {
	return models.PourResult{Request: step, Err: err, Error: err.Error()}
}

func skipped(steps []models.PourRequest, err error) []models.PourResult {
	out := make([]models.PourResult, 0, len(steps))
	for _, step := range steps {
		out = append(out, rejected(step, fmt.Errorf("шаг пропущен: %w", err)))
	}
	return out
}

// settle ждет стекания остатков; отмена контекста сокращает паузу.
func (o *Orchestrator) settle(ctx context.Context) {
	if o.settleDelay <= 0 {
		return
	}
	timer := time.NewTimer(o.settleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		o.logger.Warn("Settle delay interrupted", "error", ctx.Err())
	}
}
