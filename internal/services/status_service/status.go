package status_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
)

// StatusService владеет состоянием машины. Все изменения идут через
// Started/Completed/Failed и хуки подключения наблюдателей.
type StatusService struct {
	mu        sync.RWMutex
	state     models.MachineStatus
	publisher interfaces.EventPublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewStatusService(publisher interfaces.EventPublisher, logger *logging.Logger) *StatusService {
	return &StatusService{
		state:     models.MachineStatus{Status: models.StatusAvailable},
		publisher: publisher,
		logger:    logger.WithPrefix("STATUS"),
		now:       time.Now,
	}
}

func (s *StatusService) Started(operation string) {
	s.mu.Lock()
	started := s.now()
	op := operation
	s.state.Status = models.StatusBusy
	s.state.CurrentOperation = &op
	s.state.StartedAt = &started
	s.mu.Unlock()

	s.logger.Info("Operation started", "operation", operation)
	s.publish(models.EventOperationStarted, models.OperationEvent{
		Status:    models.StatusBusy,
		Operation: operation,
		Message:   fmt.Sprintf("Machine is busy preparing: %s", operation),
	})
}

func (s *StatusService) Completed(operation string) {
	s.reset()
	s.logger.Info("Operation completed", "operation", operation)
	s.publish(models.EventOperationCompleted, models.OperationEvent{
		Status:    models.StatusAvailable,
		Operation: operation,
		Message:   fmt.Sprintf("Machine has finished preparing: %s", operation),
	})
}

func (s *StatusService) Failed(operation, message string) {
	s.reset()
	s.logger.Warn("Operation failed", "operation", operation, "error", message)
	s.publish(models.EventOperationFailed, models.OperationEvent{
		Status:    models.StatusAvailable,
		Operation: operation,
		Error:     message,
		Message:   fmt.Sprintf("Failed to prepare %s: %s", operation, message),
	})
}

// ClientConnected увеличивает счетчик и возвращает снимок для нового наблюдателя.
func (s *StatusService) ClientConnected() models.MachineStatus {
	s.mu.Lock()
	s.state.ConnectedClients++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Client connected", "clients", snapshot.ConnectedClients)
	return snapshot
}

func (s *StatusService) ClientDisconnected() {
	s.mu.Lock()
	if s.state.ConnectedClients > 0 {
		s.state.ConnectedClients--
	}
	clients := s.state.ConnectedClients
	s.mu.Unlock()

	s.logger.Info("Client disconnected", "clients", clients)
}

func (s *StatusService) Status() models.MachineStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *StatusService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = models.StatusAvailable
	s.state.CurrentOperation = nil
	s.state.StartedAt = nil
}

// snapshotLocked копирует указатели, чтобы снимок не менялся вместе с состоянием.
func (s *StatusService) snapshotLocked() models.MachineStatus {
	snap := s.state
	if s.state.CurrentOperation != nil {
		op := *s.state.CurrentOperation
		snap.CurrentOperation = &op
	}
	if s.state.StartedAt != nil {
		at := *s.state.StartedAt
		snap.StartedAt = &at
	}
	return snap
}

func (s *StatusService) publish(event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(context.Background(), event, payload)
}
