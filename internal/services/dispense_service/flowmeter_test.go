package dispense_service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/gpio"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

func TestVolumeIsLinear(t *testing.T) {
	meter := NewFlowMeter(gpio.NewSim(), testMLPerPulse, testMLPerUnit, testPollEvery, 0)

	require.Equal(t, 0.0, meter.Volume(0))
	require.InDelta(t, 1.0, meter.Volume(4), 1e-9)
	require.InDelta(t, 2*meter.Volume(7), meter.Volume(14), 1e-9)
}

func TestDefaultCalibration(t *testing.T) {
	meter := NewFlowMeter(gpio.NewSim(), 2.22, 29.5735, 0, 0)
	require.InDelta(t, 0.0750672, meter.PulseVolume(), 1e-6, "2.22 мл на импульс в унциях")
	require.Equal(t, DefaultPollInterval, meter.pollInterval)
}

func TestMeasureReachesTarget(t *testing.T) {
	r := newRig(t, time.Second).withFlow()
	require.NoError(t, r.valves.Open(17))

	var marks []float64
	m, err := r.meter.Measure(context.Background(), 27, 1.0, 2*time.Second, func(v float64) {
		marks = append(marks, v)
	})
	require.NoError(t, err)
	require.Equal(t, 4, m.Pulses)
	require.InDelta(t, 1.0, m.Volume, 1e-9)
	require.Equal(t, []float64{0.5, 1.0}, marks, "прогресс каждые 0.5")
}

func TestMeasureTimeoutBoundary(t *testing.T) {
	r := newRig(t, time.Second)
	timeout := 20 * time.Millisecond

	start := time.Now()
	m, err := r.meter.Measure(context.Background(), 27, 1.0, timeout, nil)
	require.ErrorIs(t, err, errors.ErrTimeout)
	require.Equal(t, 0, m.Pulses)
	require.Equal(t, 0.0, m.Volume)
	require.GreaterOrEqual(t, m.Elapsed, timeout, "таймаут не раньше заданного")
	require.Less(t, time.Since(start), timeout+time.Second)
}

func TestMeasureReadFault(t *testing.T) {
	r := newRig(t, time.Second)
	r.sim.FailRead(27, stderrors.New("sensor unplugged"))

	_, err := r.meter.Measure(context.Background(), 27, 1.0, time.Second, nil)
	require.ErrorIs(t, err, errors.ErrHardwareFault)
}

func TestMeasureGuards(t *testing.T) {
	r := newRig(t, time.Second)

	m, err := r.meter.Measure(context.Background(), 27, 0, time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, Measurement{}, m)

	_, err = r.meter.Measure(context.Background(), 27, 1.0, 0, nil)
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestMeasureCancelled(t *testing.T) {
	r := newRig(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := r.meter.Measure(ctx, 27, 1.0, 5*time.Second, nil)
	require.ErrorIs(t, err, context.Canceled)
}
