package dispense_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// Dispatcher - единственный фоновый исполнитель рецептов с затвором "один прогон за раз".
// Затвор снимается только после вызова OnComplete.
type Dispatcher struct {
	runner Runner
	logger *logging.Logger

	mu       sync.Mutex
	queue    chan models.DispenseJob
	inFlight bool
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewDispatcher(runner Runner, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		runner: runner,
		logger: logger.WithPrefix("DISPATCHER"),
		queue:  make(chan models.DispenseJob, 1),
	}
}

// Start запускает горутину исполнителя. Повторный вызов ничего не делает.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		d.logger.Warn("Dispatcher already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	go d.loop(childCtx, d.done)
	d.logger.Info("Dispatcher started")
}

// Stop отменяет текущий прогон (налив завершится неудачей, клапаны закроются),
// дожидается исполнителя и завершает непринятые задания отчетом Aborted.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	cancel()
	<-done

	for {
		select {
		case job := <-d.queue:
			d.logger.Warn("Dropping queued job on shutdown", "runID", job.RunID)
			now := time.Now()
			d.complete(job, models.DispenseReport{
				RunID:      job.RunID,
				Recipe:     job.Recipe.Name,
				Aborted:    true,
				StartedAt:  now,
				FinishedAt: now,
			})
		default:
			d.logger.Info("Dispatcher stopped")
			return
		}
	}
}

// Dispense принимает задание без ожидания его выполнения.
func (d *Dispatcher) Dispense(job models.DispenseJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return fmt.Errorf("%w: исполнитель не запущен", errors.ErrScheduling)
	}
	if d.inFlight {
		return fmt.Errorf("%w: идет приготовление, задание '%s' отклонено", errors.ErrBusy, job.Recipe.Name)
	}

	d.inFlight = true
	if job.OnStart != nil {
		job.OnStart()
	}

	select {
	case d.queue <- job:
		d.logger.Info("Job accepted", "runID", job.RunID, "recipe", job.Recipe.Name, "steps", len(job.Recipe.Steps))
		return nil
	default:
		d.inFlight = false
		return fmt.Errorf("%w: очередь исполнителя заполнена", errors.ErrScheduling)
	}
}

// TryAcquire занимает затвор для синхронной операции (прямые команды клапанам).
func (d *Dispatcher) TryAcquire() (release func(), err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inFlight {
		return nil, fmt.Errorf("%w: идет приготовление", errors.ErrBusy)
	}
	d.inFlight = true
	return d.release, nil
}

// InFlight сообщает, занят ли затвор.
func (d *Dispatcher) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

func (d *Dispatcher) release() {
	d.mu.Lock()
	d.inFlight = false
	d.mu.Unlock()
}

func (d *Dispatcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-d.queue:
			d.run(ctx, job)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, job models.DispenseJob) {
	started := time.Now()
	var report models.DispenseReport

	func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Dispense run panicked", "runID", job.RunID, "panic", r)
				report = models.DispenseReport{
					RunID:      job.RunID,
					Recipe:     job.Recipe.Name,
					Aborted:    true,
					StartedAt:  started,
					FinishedAt: time.Now(),
				}
			}
		}()
		report = d.runner.Run(ctx, job.RunID, job.Recipe)
	}()

	d.complete(job, report)
}

// complete вызывает OnComplete и только потом освобождает затвор.
func (d *Dispatcher) complete(job models.DispenseJob, report models.DispenseReport) {
	defer d.release()
	if job.OnComplete == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("OnComplete callback panicked", "runID", job.RunID, "panic", r)
		}
	}()
	job.OnComplete(report)
}
