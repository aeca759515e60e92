package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// PrepareDrink находит рецепт и ставит его на исполнение, не дожидаясь налива.
// Статус машины меняется при принятии задания и по его завершении.
func (u *Usecase) PrepareDrink(drinkID int) (*models.PrepareResponse, error) {
	drink, err := u.repo.GetRecipe(drinkID)
	if err != nil {
		return nil, err
	}

	recipe := drink.ToRecipe()
	runID := uuid.NewString()

	job := models.DispenseJob{
		RunID:  runID,
		Recipe: recipe,
		OnStart: func() {
			u.status.Started(recipe.Name)
		},
		OnComplete: func(report models.DispenseReport) {
			u.finish(report)
		},
	}

	if err := u.dispense.Dispense(job); err != nil {
		if stderrors.Is(err, errors.ErrScheduling) {
			u.status.Failed(recipe.Name, err.Error())
		}
		u.logger.Warn("Drink was not accepted", "drink", recipe.Name, "runID", runID, "error", err)
		return nil, err
	}

	u.logger.Info("Drink accepted", "drink", recipe.Name, "runID", runID, "steps", len(recipe.Steps))
	return &models.PrepareResponse{
		Status:  "accepted",
		Message: fmt.Sprintf("Preparing %s", recipe.Name),
		Drink:   recipe.Name,
		RunID:   runID,
	}, nil
}

// finish переводит машину в "available". Неудачные шаги не превращают прогон
// в operation_failed, пока он не прерван: они попадают в лог и в отчет.
func (u *Usecase) finish(report models.DispenseReport) {
	failed := report.FailedSteps()
	for _, res := range failed {
		u.logger.Warn("Pour step failed",
			"runID", report.RunID,
			"ingredient", res.Request.Ingredient,
			"pump", res.Request.ValveID,
			"target", res.Request.TargetVolume,
			"dispensed", res.Dispensed,
			"error", res.Error,
		)
	}

	if report.Aborted {
		u.status.Failed(report.Recipe, abortMessage(failed))
		return
	}
	u.logger.Info("Drink finished",
		"runID", report.RunID,
		"drink", report.Recipe,
		"success", report.Success,
		"failed_steps", len(failed),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	u.status.Completed(report.Recipe)
}

func abortMessage(failed []models.PourResult) string {
	if len(failed) == 0 {
		return "dispense run aborted"
	}
	msgs := make([]string, 0, len(failed))
	for _, res := range failed {
		msgs = append(msgs, res.Error)
	}
	return strings.Join(msgs, "; ")
}

func (u *Usecase) OpenValve(ctx context.Context, pumpID int) (models.PourResult, error) {
	return u.valveCommand(ctx, pumpID, 0)
}

func (u *Usecase) CloseValve(ctx context.Context, pumpID int) (models.PourResult, error) {
	return u.valveCommand(ctx, pumpID, -1)
}

func (u *Usecase) valveCommand(ctx context.Context, pumpID int, target float64) (models.PourResult, error) {
	res, err := u.dispense.ExecuteValveCommand(ctx, models.PourRequest{
		ValveID:      pumpID,
		TargetVolume: target,
	})
	if err != nil {
		u.logger.Warn("Valve command failed", "pump", pumpID, "target", target, "error", err)
		return res, err
	}
	u.logger.Info("Valve command executed", "pump", pumpID, "target", target)
	return res, nil
}
