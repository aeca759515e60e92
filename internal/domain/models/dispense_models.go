package models

import "time"

// PinPair - физические линии одного насоса: управление клапаном и датчик потока.
type PinPair struct {
	ValveLine  int `yaml:"valve" json:"valve_line"`
	SensorLine int `yaml:"sensor" json:"sensor_line"`
}

// PumpMapping - логический номер насоса -> линии GPIO.
type PumpMapping map[int]PinPair

// PourRequest описывает один налив.
// TargetVolume == 0 - только открыть клапан, TargetVolume < 0 - только закрыть.
type PourRequest struct {
	Ingredient   string  `json:"ingredient,omitempty"`
	ValveID      int     `json:"valve_id"`
	TargetVolume float64 `json:"target_volume"`
	ValveLine    *int    `json:"valve_line,omitempty"`  // прямое указание линии клапана
	SensorLine   *int    `json:"sensor_line,omitempty"` // прямое указание линии датчика
}

// IsOpenCommand - прямая команда открытия клапана без измерения.
func (r PourRequest) IsOpenCommand() bool { return r.TargetVolume == 0 }

// IsCloseCommand - прямая команда закрытия клапана.
func (r PourRequest) IsCloseCommand() bool { return r.TargetVolume < 0 }

// PourResult - итог одного налива. Dispensed отражает фактический объем и при неудаче.
type PourResult struct {
	Request   PourRequest   `json:"request"`
	Dispensed float64       `json:"dispensed"`
	Success   bool          `json:"success"`
	Err       error         `json:"-"`
	Error     string        `json:"error,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Recipe - упорядоченный список наливов; порядок значим.
type Recipe struct {
	Name  string        `json:"name"`
	Steps []PourRequest `json:"steps"`
}

// DispenseReport - результат полного прогона рецепта.
type DispenseReport struct {
	RunID      string       `json:"run_id"`
	Recipe     string       `json:"recipe"`
	Results    []PourResult `json:"results"`
	Success    bool         `json:"success"`
	Aborted    bool         `json:"aborted"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// FailedSteps возвращает результаты неуспешных наливов.
func (r DispenseReport) FailedSteps() []PourResult {
	var failed []PourResult
	for _, res := range r.Results {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}

// DispenseJob - задание для фонового исполнителя.
// OnStart вызывается синхронно при принятии задания, OnComplete - ровно один раз по завершении.
type DispenseJob struct {
	RunID      string
	Recipe     Recipe
	OnStart    func()
	OnComplete func(DispenseReport)
}
