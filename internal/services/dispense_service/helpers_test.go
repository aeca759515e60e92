package dispense_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
)

const (
	testMaster      = 26
	testPollEvery   = 500 * time.Microsecond
	testPulsePeriod = 4 * time.Millisecond
	// 0.25 единицы на импульс: 4 импульса дают 1.0
	testMLPerPulse = 0.25
	testMLPerUnit  = 1.0
)

var testPumps = models.PumpMapping{
	1: {ValveLine: 17, SensorLine: 27},
	2: {ValveLine: 22, SensorLine: 23},
}

type rig struct {
	sim    *gpio.Sim
	pins   *PinMap
	valves *ValveActuator
	meter  *FlowMeter
	pourer *Pourer
	logger *logging.Logger
}

// newRig собирает стенд на симуляторе: все клапаны закрыты, датчики настроены.
func newRig(t *testing.T, timeout time.Duration) *rig {
	t.Helper()

	sim := gpio.NewSim()
	logger := logging.NewNop()
	valves := NewValveActuator(sim)
	require.NoError(t, valves.Setup(testMaster))
	for _, pair := range testPumps {
		require.NoError(t, valves.Setup(pair.ValveLine))
		require.NoError(t, sim.SetupInput(pair.SensorLine))
	}

	pins := NewPinMap(testPumps)
	meter := NewFlowMeter(sim, testMLPerPulse, testMLPerUnit, testPollEvery, 0.5)
	return &rig{
		sim:    sim,
		pins:   pins,
		valves: valves,
		meter:  meter,
		pourer: NewPourer(pins, valves, meter, timeout, logger),
		logger: logger,
	}
}

// withFlow подключает поток ко всем насосам.
func (r *rig) withFlow() *rig {
	for _, pair := range testPumps {
		r.sim.AttachFlow(pair.SensorLine, pair.ValveLine, testPulsePeriod)
	}
	return r
}

func (r *rig) requireClosed(t *testing.T, line int) {
	t.Helper()
	lvl, ok := r.sim.Level(line)
	require.True(t, ok, "линия %d не настраивалась", line)
	require.Equal(t, ClosedLevel, lvl, "клапан на линии %d должен быть закрыт", line)
}

func (r *rig) requireOpen(t *testing.T, line int) {
	t.Helper()
	lvl, ok := r.sim.Level(line)
	require.True(t, ok, "линия %d не настраивалась", line)
	require.Equal(t, OpenLevel, lvl, "клапан на линии %d должен быть открыт", line)
}

func intPtr(v int) *int { return &v }
