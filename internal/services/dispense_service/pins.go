package dispense_service

import (
	"fmt"
	"sort"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

// Lines - разрешенные физические линии одного налива.
type Lines struct {
	Valve     int
	Sensor    int
	HasSensor bool
}

// PinMap сопоставляет логический насос с линиями. Неизменяема после создания.
type PinMap struct {
	pumps models.PumpMapping
}

func NewPinMap(pumps models.PumpMapping) *PinMap {
	cp := make(models.PumpMapping, len(pumps))
	for id, pair := range pumps {
		cp[id] = pair
	}
	return &PinMap{pumps: cp}
}

// Resolve возвращает линии для запроса. Явно заданная линия клапана имеет приоритет
// над номером насоса; линия датчика обязательна, только если нужно отмерить объем.
func (m *PinMap) Resolve(req models.PourRequest) (Lines, error) {
	if req.ValveLine != nil {
		lines := Lines{Valve: *req.ValveLine}
		if req.SensorLine != nil {
			lines.Sensor = *req.SensorLine
			lines.HasSensor = true
		}
		if req.TargetVolume > 0 && !lines.HasSensor {
			return Lines{}, fmt.Errorf("%w: для линии %d не задан датчик потока при объеме %.2f",
				errors.ErrConfiguration, *req.ValveLine, req.TargetVolume)
		}
		return lines, nil
	}

	pair, ok := m.pumps[req.ValveID]
	if !ok {
		return Lines{}, fmt.Errorf("%w: насос %d отсутствует в карте разводки", errors.ErrUnknownPump, req.ValveID)
	}
	return Lines{Valve: pair.ValveLine, Sensor: pair.SensorLine, HasSensor: true}, nil
}

// Pumps возвращает копию таблицы разводки.
func (m *PinMap) Pumps() models.PumpMapping {
	return NewPinMap(m.pumps).pumps
}

// IDs возвращает номера насосов по возрастанию.
func (m *PinMap) IDs() []int {
	ids := make([]int, 0, len(m.pumps))
	for id := range m.pumps {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
