package dispense_service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

func TestResolveByPumpID(t *testing.T) {
	pins := NewPinMap(testPumps)

	lines, err := pins.Resolve(models.PourRequest{ValveID: 2, TargetVolume: 1})
	require.NoError(t, err)
	require.Equal(t, Lines{Valve: 22, Sensor: 23, HasSensor: true}, lines)
}

func TestResolveUnknownPump(t *testing.T) {
	pins := NewPinMap(testPumps)

	_, err := pins.Resolve(models.PourRequest{ValveID: 9, TargetVolume: 1})
	require.ErrorIs(t, err, errors.ErrUnknownPump)
}

func TestResolveExplicitLines(t *testing.T) {
	pins := NewPinMap(testPumps)

	lines, err := pins.Resolve(models.PourRequest{ValveID: 1, ValveLine: intPtr(5), SensorLine: intPtr(6), TargetVolume: 1})
	require.NoError(t, err)
	require.Equal(t, Lines{Valve: 5, Sensor: 6, HasSensor: true}, lines, "явная линия важнее номера насоса")

	lines, err = pins.Resolve(models.PourRequest{ValveLine: intPtr(5)})
	require.NoError(t, err, "для открытия датчик не нужен")
	require.False(t, lines.HasSensor)

	_, err = pins.Resolve(models.PourRequest{ValveLine: intPtr(5), TargetVolume: 0.5})
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestPinMapIsImmutable(t *testing.T) {
	src := models.PumpMapping{3: {ValveLine: 1, SensorLine: 2}, 1: {ValveLine: 3, SensorLine: 4}}
	pins := NewPinMap(src)

	src[3] = models.PinPair{ValveLine: 9, SensorLine: 9}
	got := pins.Pumps()
	require.Equal(t, 1, got[3].ValveLine)

	got[1] = models.PinPair{}
	require.Equal(t, 3, pins.Pumps()[1].ValveLine)

	require.Equal(t, []int{1, 3}, pins.IDs())
}
