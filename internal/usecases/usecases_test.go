package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

type fakeRepo struct{}

func (fakeRepo) GetAll() ([]entities.Bottle, error)            { return nil, nil }
func (fakeRepo) GetMounted() ([]entities.BottleMounted, error) { return nil, nil }
func (fakeRepo) GetAvailable() ([]entities.Drink, error)       { return nil, nil }
func (fakeRepo) GetRecipe(id int) (*models.DrinkRecipe, error) {
	if id != 3 {
		return nil, fmt.Errorf("%w: id=%d", errors.ErrDrinkNotFound, id)
	}
	return &models.DrinkRecipe{DrinkID: 3, Name: "Negroni", Rows: []models.RecipeRow{
		{Name: "Negroni", BottleID: 10, BottleName: "Gin", Oz: 1, ValveID: 1},
		{Name: "Negroni", BottleID: 11, BottleName: "Campari", Oz: 1, ValveID: 2},
	}}, nil
}

type fakeDispense struct {
	err      error
	jobs     []models.DispenseJob
	commands []models.PourRequest
}

func (f *fakeDispense) SetupLines() error         { return nil }
func (f *fakeDispense) ReleaseLines() error       { return nil }
func (f *fakeDispense) Pumps() models.PumpMapping { return nil }
func (f *fakeDispense) Start(context.Context)     {}
func (f *fakeDispense) Stop()                     {}
func (f *fakeDispense) InFlight() bool            { return len(f.jobs) > 0 }

func (f *fakeDispense) Dispense(job models.DispenseJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	job.OnStart()
	return nil
}

func (f *fakeDispense) ExecuteValveCommand(_ context.Context, req models.PourRequest) (models.PourResult, error) {
	f.commands = append(f.commands, req)
	return models.PourResult{Request: req, Success: true}, nil
}

type fakeStatus struct {
	calls []string
}

func (f *fakeStatus) Started(op string)                     { f.calls = append(f.calls, "started:"+op) }
func (f *fakeStatus) Completed(op string)                   { f.calls = append(f.calls, "completed:"+op) }
func (f *fakeStatus) Failed(op, msg string)                 { f.calls = append(f.calls, "failed:"+op+":"+msg) }
func (f *fakeStatus) ClientConnected() models.MachineStatus { return models.MachineStatus{} }
func (f *fakeStatus) ClientDisconnected()                   {}
func (f *fakeStatus) Status() models.MachineStatus          { return models.MachineStatus{Status: models.StatusBusy} }

func newTestUsecase(d *fakeDispense, s *fakeStatus) *Usecase {
	return NewUsecases(fakeRepo{}, d, s, logging.NewNop()).(*Usecase)
}

func TestPrepareDrinkSchedulesRecipe(t *testing.T) {
	d, s := &fakeDispense{}, &fakeStatus{}
	uc := newTestUsecase(d, s)

	resp, err := uc.PrepareDrink(3)
	require.NoError(t, err)
	require.Equal(t, "accepted", resp.Status)
	require.Equal(t, "Negroni", resp.Drink)
	require.Equal(t, "Preparing Negroni", resp.Message)
	require.NotEmpty(t, resp.RunID)

	require.Len(t, d.jobs, 1)
	job := d.jobs[0]
	require.Equal(t, resp.RunID, job.RunID)
	require.Equal(t, []models.PourRequest{
		{Ingredient: "Gin", ValveID: 1, TargetVolume: 1},
		{Ingredient: "Campari", ValveID: 2, TargetVolume: 1},
	}, job.Recipe.Steps, "порядок шагов сохраняется")
	require.Equal(t, []string{"started:Negroni"}, s.calls)

	job.OnComplete(models.DispenseReport{RunID: job.RunID, Recipe: "Negroni", Success: true,
		Results: []models.PourResult{{Success: true}, {Success: false, Error: "pour timeout"}}})
	require.Equal(t, []string{"started:Negroni", "completed:Negroni"}, s.calls,
		"неудачный шаг без прерывания завершает прогон как completed")
}

func TestPrepareDrinkAbortedRunFails(t *testing.T) {
	d, s := &fakeDispense{}, &fakeStatus{}
	uc := newTestUsecase(d, s)

	_, err := uc.PrepareDrink(3)
	require.NoError(t, err)

	d.jobs[0].OnComplete(models.DispenseReport{Recipe: "Negroni", Aborted: true,
		Results: []models.PourResult{{Success: false, Error: "hardware fault"}}})
	require.Equal(t, "failed:Negroni:hardware fault", s.calls[len(s.calls)-1])
}

func TestPrepareDrinkNotFound(t *testing.T) {
	d, s := &fakeDispense{}, &fakeStatus{}
	uc := newTestUsecase(d, s)

	_, err := uc.PrepareDrink(99)
	require.ErrorIs(t, err, errors.ErrDrinkNotFound)
	require.Empty(t, d.jobs)
	require.Empty(t, s.calls)
}

func TestPrepareDrinkBusyKeepsStatus(t *testing.T) {
	d := &fakeDispense{err: fmt.Errorf("%w: Negroni", errors.ErrBusy)}
	s := &fakeStatus{}
	uc := newTestUsecase(d, s)

	_, err := uc.PrepareDrink(3)
	require.ErrorIs(t, err, errors.ErrBusy)
	require.Empty(t, s.calls, "занятая машина не меняет статус")
}

func TestPrepareDrinkSchedulingFailure(t *testing.T) {
	d := &fakeDispense{err: fmt.Errorf("%w: исполнитель не запущен", errors.ErrScheduling)}
	s := &fakeStatus{}
	uc := newTestUsecase(d, s)

	_, err := uc.PrepareDrink(3)
	require.ErrorIs(t, err, errors.ErrScheduling)
	require.Len(t, s.calls, 1)
	require.Contains(t, s.calls[0], "failed:Negroni:")
}

func TestValveCommandsTargets(t *testing.T) {
	d := &fakeDispense{}
	uc := newTestUsecase(d, &fakeStatus{})

	_, err := uc.OpenValve(context.Background(), 4)
	require.NoError(t, err)
	_, err = uc.CloseValve(context.Background(), 4)
	require.NoError(t, err)

	require.Equal(t, []models.PourRequest{
		{ValveID: 4, TargetVolume: 0},
		{ValveID: 4, TargetVolume: -1},
	}, d.commands)
}

func TestStatusPassThrough(t *testing.T) {
	uc := newTestUsecase(&fakeDispense{}, &fakeStatus{})
	require.Equal(t, models.StatusBusy, uc.GetStatus().Status)
}
