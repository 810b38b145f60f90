// Copyright (c) 2024-2025, The IOT-NS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarthome-sim/iot-ns/energy"
	"github.com/smarthome-sim/iot-ns/types"
)

func tempReading(id string, value, power float64) types.SensorReading {
	return types.SensorReading{
		SensorId: id,
		Class:    types.ClassTemperature,
		Value:    value,
		Unit:     types.ClassTemperature.Unit(),
		PowerMw:  power,
	}
}

func testDevices() []*energy.Device {
	return []*energy.Device{
		energy.NewDevice("living_room_01", types.ClassTemperature, "Living Room"),
		energy.NewDevice("pir_01", types.ClassMotion, "Front Door"),
	}
}

func TestAggregateDisabledPassesThrough(t *testing.T) {
	o := New(DefaultConfig())

	readings := []types.SensorReading{
		tempReading("a_temp", 20, 0.15),
		tempReading("b_temp", 22, 0.15),
	}
	out := o.Aggregate(readings)
	assert.Equal(t, readings, out)
}

func TestAggregateSingleReadingUnchanged(t *testing.T) {
	o := New(DefaultConfig())
	o.SetEnabled(true)

	readings := []types.SensorReading{tempReading("a_temp", 20, 0.15)}
	out := o.Aggregate(readings)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "a_temp", out[0].SensorId)
	assert.Equal(t, 20.0, out[0].Value)
	assert.Equal(t, 0.15, out[0].PowerMw)
}

func TestAggregateGroupsByClass(t *testing.T) {
	o := New(DefaultConfig())
	o.SetEnabled(true)

	readings := []types.SensorReading{
		tempReading("a_temp", 20, 0.1),
		tempReading("b_temp", 22, 0.1),
		tempReading("c_temp", 24, 0.1),
		{SensorId: "light_01_light", Class: types.ClassLight, Value: 500, Unit: "lux", PowerMw: 0.025},
	}

	out := o.Aggregate(readings)
	assert.Equal(t, 2, len(out))

	// temperature group is collapsed to its mean, power scaled by the factor
	agg := out[0]
	assert.Equal(t, "aggregated_temp", agg.SensorId)
	assert.Equal(t, types.ClassTemperature, agg.Class)
	assert.InDelta(t, 22.0, agg.Value, 1e-12)
	assert.InDelta(t, 0.3*0.7, agg.PowerMw, 1e-12)
	assert.Equal(t, "°C", agg.Unit)

	// singleton light group passes through, class order is preserved
	assert.Equal(t, "light_01_light", out[1].SensorId)
}

func TestUpdateParamsValidation(t *testing.T) {
	o := New(DefaultConfig())
	devices := testDevices()

	dc := 0.5
	agg := 0.6
	assert.True(t, o.UpdateParams(devices, &dc, &agg))
	assert.Equal(t, 0.5, o.DutyCycle())
	assert.Equal(t, 0.6, o.AggregationFactor())
	assert.Equal(t, 0.5, devices[0].DutyCycle())

	// out-of-range values are ignored, previous settings stay
	bad := 1.5
	assert.False(t, o.UpdateParams(devices, &bad, &bad))
	assert.Equal(t, 0.5, o.DutyCycle())
	assert.Equal(t, 0.6, o.AggregationFactor())

	low := 0.05
	assert.False(t, o.UpdateParams(devices, &low, nil))
	assert.Equal(t, 0.5, o.DutyCycle())

	// nil leaves a parameter untouched
	newAgg := 0.9
	assert.True(t, o.UpdateParams(devices, nil, &newAgg))
	assert.Equal(t, 0.5, o.DutyCycle())
	assert.Equal(t, 0.9, o.AggregationFactor())
}

func TestEnableDutyCycling(t *testing.T) {
	o := New(DefaultConfig())
	devices := testDevices()

	o.EnableDutyCycling(devices, 0.8)
	for _, d := range devices {
		assert.Equal(t, 0.8, d.DutyCycle())
	}
}

func TestSleepModeDisabled(t *testing.T) {
	o := New(DefaultConfig())
	devices := testDevices()

	delta := o.UpdateSleepMode(devices, []types.SensorReading{tempReading("a_temp", 20, 0.1)})
	assert.Equal(t, 0.0, delta)
	assert.Equal(t, 0, o.SleepLevel())
}

func TestSleepModeDeepensAfterInactivity(t *testing.T) {
	o := New(DefaultConfig())
	o.EnableAdaptive(true)
	devices := testDevices()

	// constant readings: no activity
	steady := []types.SensorReading{tempReading("a_temp", 20, 0.1)}

	// first call only learns the last value; four more reach the timeout
	var delta float64
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, o.SleepLevel())
		delta = o.UpdateSleepMode(devices, steady)
	}
	assert.Equal(t, 1, o.SleepLevel())

	// level 0 (0.8) -> level 1 (0.6) over a 5s window, summed over devices
	want := (0.8 - 0.6) * (1.5 + 0.8) * 5.0
	assert.InDelta(t, want, delta, 1e-9)
	for _, d := range devices {
		assert.Equal(t, 0.6, d.DutyCycle())
	}

	// counter was reset: the next four cycles stay at level 1
	for i := 0; i < 4; i++ {
		delta = o.UpdateSleepMode(devices, steady)
		assert.Equal(t, 1, o.SleepLevel())
		assert.Equal(t, 0.0, delta)
	}
	o.UpdateSleepMode(devices, steady)
	assert.Equal(t, 2, o.SleepLevel())
}

func TestSleepModeNeverPassesDeepestLevel(t *testing.T) {
	o := New(DefaultConfig())
	o.EnableAdaptive(true)
	devices := testDevices()

	steady := []types.SensorReading{tempReading("a_temp", 20, 0.1)}
	for i := 0; i < 100; i++ {
		o.UpdateSleepMode(devices, steady)
	}
	assert.Equal(t, 3, o.SleepLevel())
	assert.Equal(t, 0.2, devices[0].DutyCycle())
}

func TestSleepModeWakesOnActivity(t *testing.T) {
	o := New(DefaultConfig())
	o.EnableAdaptive(true)
	devices := testDevices()

	steady := []types.SensorReading{tempReading("a_temp", 20, 0.1)}
	for i := 0; i < 10; i++ {
		o.UpdateSleepMode(devices, steady)
	}
	assert.Equal(t, 2, o.SleepLevel())

	// a >5% change wakes the devices all the way up
	delta := o.UpdateSleepMode(devices, []types.SensorReading{tempReading("a_temp", 30, 0.1)})
	assert.Equal(t, 0, o.SleepLevel())
	assert.Less(t, delta, 0.0)
	assert.Equal(t, 0.8, devices[0].DutyCycle())
}

func TestSleepModeMotionIsActivity(t *testing.T) {
	o := New(DefaultConfig())
	o.EnableAdaptive(true)
	devices := testDevices()

	steady := []types.SensorReading{tempReading("a_temp", 20, 0.1)}
	for i := 0; i < 6; i++ {
		o.UpdateSleepMode(devices, steady)
	}
	assert.Equal(t, 1, o.SleepLevel())

	motion := []types.SensorReading{
		tempReading("a_temp", 20, 0.1),
		{SensorId: "pir_01_motion", Class: types.ClassMotion, Value: 1, Unit: "binary", PowerMw: 0.08},
	}
	o.UpdateSleepMode(devices, motion)
	assert.Equal(t, 0, o.SleepLevel())

	// motion of zero is not activity
	idle := []types.SensorReading{
		tempReading("a_temp", 20, 0.1),
		{SensorId: "pir_01_motion", Class: types.ClassMotion, Value: 0, Unit: "binary", PowerMw: 0.08},
	}
	for i := 0; i < 5; i++ {
		o.UpdateSleepMode(devices, idle)
	}
	assert.Equal(t, 1, o.SleepLevel())
}

func TestEnableAdaptiveResetsState(t *testing.T) {
	o := New(DefaultConfig())
	o.EnableAdaptive(true)
	devices := testDevices()

	steady := []types.SensorReading{tempReading("a_temp", 20, 0.1)}
	for i := 0; i < 6; i++ {
		o.UpdateSleepMode(devices, steady)
	}
	assert.Equal(t, 1, o.SleepLevel())

	o.EnableAdaptive(true)
	assert.Equal(t, 0, o.SleepLevel())
}
