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

package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smarthome-sim/iot-ns/types"
)

type captureNotifier struct {
	alerts []*Alert
}

func (n *captureNotifier) Notify(alert *Alert) {
	n.alerts = append(n.alerts, alert)
}

func reading(id string, class types.SensorClass, value float64) types.SensorReading {
	return types.SensorReading{
		Timestamp: time.Now(),
		SensorId:  id,
		Class:     class,
		Value:     value,
		Unit:      class.Unit(),
	}
}

func TestCheckSeverityBands(t *testing.T) {
	c := NewChecker(nil, &captureNotifier{})
	c.SetCooldown(0)

	// in the comfort band: no alert
	assert.Nil(t, c.Check(reading("t1", types.ClassTemperature, 22), "Kitchen"))

	a := c.Check(reading("t1", types.ClassTemperature, 30), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "High Temperature", a.Type)
	assert.Equal(t, SeverityHigh, a.Severity)
	assert.Equal(t, 28.0, a.Threshold)

	a = c.Check(reading("t1", types.ClassTemperature, 36), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "Critical High Temperature", a.Type)
	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Equal(t, 35.0, a.Threshold)

	a = c.Check(reading("t1", types.ClassTemperature, 17), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "Low Temperature", a.Type)
	assert.Equal(t, SeverityHigh, a.Severity)

	a = c.Check(reading("t1", types.ClassTemperature, 5), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "Critical Low Temperature", a.Type)
	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Equal(t, 10.0, a.Threshold)
}

func TestCheckMotionHasNoThresholds(t *testing.T) {
	c := NewChecker(nil, &captureNotifier{})

	assert.Nil(t, c.Check(reading("pir_01_motion", types.ClassMotion, 1), "Front Door"))
	assert.Equal(t, 0, len(c.History()))
}

func TestCheckCooldownSuppressesRepeats(t *testing.T) {
	c := NewChecker(nil, &captureNotifier{})

	now := time.Now()
	c.now = func() time.Time { return now }

	hot := reading("t1", types.ClassTemperature, 30)
	assert.NotNil(t, c.Check(hot, "Kitchen"))
	assert.Nil(t, c.Check(hot, "Kitchen"))

	// a different condition on the same sensor is not suppressed
	assert.NotNil(t, c.Check(reading("t1", types.ClassTemperature, 36), "Kitchen"))

	// nor is the same condition on another sensor
	assert.NotNil(t, c.Check(reading("t2", types.ClassTemperature, 30), "Kitchen"))

	// past the cooldown window the condition fires again
	now = now.Add(5*time.Minute + time.Second)
	assert.NotNil(t, c.Check(hot, "Kitchen"))
}

func TestCheckNotifiesAndRecordsHistory(t *testing.T) {
	n := &captureNotifier{}
	c := NewChecker(nil, n)
	c.SetCooldown(0)

	c.Check(reading("n1", types.ClassNoise, 90), "Living Room")
	c.Check(reading("n1", types.ClassNoise, 65), "Living Room")
	c.Check(reading("n1", types.ClassNoise, 45), "Living Room") // in band

	assert.Equal(t, 2, len(n.alerts))
	history := c.History()
	assert.Equal(t, 2, len(history))
	assert.Equal(t, "Critical High Noise", history[0].Type)
	assert.Equal(t, "High Noise", history[1].Type)

	summary := c.Summary()
	assert.Equal(t, 1, summary[SeverityCritical])
	assert.Equal(t, 1, summary[SeverityHigh])
}

func TestCheckAirQualityDisplayName(t *testing.T) {
	c := NewChecker(nil, &captureNotifier{})

	a := c.Check(reading("air_01_air", types.ClassAirQuality, 150), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "Critical High Air Quality", a.Type)
	assert.Contains(t, a.Message, "Kitchen")
}

func TestCustomThresholds(t *testing.T) {
	thresholds := map[types.SensorClass]Thresholds{
		types.ClassLight: {Min: 100, Max: 500, CriticalMin: 10, CriticalMax: 900},
	}
	c := NewChecker(thresholds, &captureNotifier{})

	// temperature has no thresholds in this configuration
	assert.Nil(t, c.Check(reading("t1", types.ClassTemperature, 50), "Kitchen"))

	a := c.Check(reading("l1", types.ClassLight, 600), "Kitchen")
	assert.NotNil(t, a)
	assert.Equal(t, "High Light", a.Type)
	assert.Equal(t, 500.0, a.Threshold)
}
