package models

import "time"

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
)

// События, рассылаемые наблюдателям.
const (
	EventStatusUpdate       = "status_update"
	EventOperationStarted   = "operation_started"
	EventOperationCompleted = "operation_completed"
	EventOperationFailed    = "operation_failed"
)

// MachineStatus - снимок состояния машины для наблюдателей.
type MachineStatus struct {
	Status           string     `json:"status"`
	CurrentOperation *string    `json:"current_operation"`
	StartedAt        *time.Time `json:"start_time"`
	ConnectedClients int        `json:"connected_clients"`
}

// OperationEvent - полезная нагрузка operation_started/completed/failed.
type OperationEvent struct {
	Status    string `json:"status"`
	Operation string `json:"operation"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message"`
}

// Envelope - сообщение в канале наблюдателей и в Kafka.
type Envelope struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}
