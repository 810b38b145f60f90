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

package energy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/smarthome-sim/iot-ns/types"
)

func TestPowerSensing(t *testing.T) {
	p, err := Power(ProfileDHT22, OpSensing, 0.1, 1.0)
	assert.Nil(t, err)
	assert.InDelta(t, 1.5*0.1*1.0, p, 1e-12)

	p, err = Power(ProfileDHT22, OpSensing, 0.1, 0.5)
	assert.Nil(t, err)
	assert.InDelta(t, 1.5*0.1*0.5, p, 1e-12)
}

func TestPowerCommunicationIgnoresDutyCycle(t *testing.T) {
	p1, err := Power(ProfileAirQuality, OpCommunication, 2.0, 1.0)
	assert.Nil(t, err)
	p2, err := Power(ProfileAirQuality, OpCommunication, 2.0, 0.1)
	assert.Nil(t, err)
	assert.Equal(t, p1, p2)
	assert.InDelta(t, 20.0*2.0, p1, 1e-12)
}

func TestPowerProcessing(t *testing.T) {
	p, err := Power(ProfileNoise, OpProcessing, 3.0, 0.2)
	assert.Nil(t, err)
	assert.InDelta(t, 0.9*3.0, p, 1e-12)
}

func TestPowerSleep(t *testing.T) {
	// fully active device draws no sleep power
	p, err := Power(ProfilePIR, OpSleep, 1.0, 1.0)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, p)

	p, err = Power(ProfilePIR, OpSleep, 1.0, 0.8)
	assert.Nil(t, err)
	assert.InDelta(t, 0.03*1.0*0.2, p, 1e-12)
}

func TestPowerInvalidOperation(t *testing.T) {
	_, err := Power(ProfileLDR, Operation(42), 1.0, 1.0)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestProfileForClass(t *testing.T) {
	assert.Equal(t, ProfileDHT22, ProfileForClass(types.ClassTemperature))
	assert.Equal(t, ProfileDHT22, ProfileForClass(types.ClassHumidity))
	assert.Equal(t, ProfileLDR, ProfileForClass(types.ClassLight))
	assert.Equal(t, ProfileAirQuality, ProfileForClass(types.ClassAirQuality))
	assert.Equal(t, ProfileNoise, ProfileForClass(types.ClassNoise))
	assert.Equal(t, ProfilePIR, ProfileForClass(types.ClassMotion))
	assert.Equal(t, ProfileDHT22, ProfileForClass(types.SensorClass(99)))
}

func TestDeviceDutyCycle(t *testing.T) {
	d := NewDevice("kitchen_01", types.ClassTemperature, "Kitchen")
	assert.Equal(t, 1.0, d.DutyCycle())

	d.SetDutyCycle(0.6)
	assert.Equal(t, 0.6, d.DutyCycle())

	d.SetDutyCycle(-1)
	assert.Equal(t, 0.0, d.DutyCycle())
	d.SetDutyCycle(2)
	assert.Equal(t, 1.0, d.DutyCycle())
}

func TestDevicePowerFor(t *testing.T) {
	d := NewDevice("pir_01", types.ClassMotion, "Front Door")
	d.SetDutyCycle(0.5)

	p, err := d.PowerFor(OpSensing, 0.1)
	assert.Nil(t, err)
	assert.InDelta(t, 0.8*0.1*0.5, p, 1e-12)

	p, err = d.PowerFor(OpSleep, 1.0)
	assert.Nil(t, err)
	assert.InDelta(t, 0.03*1.0*0.5, p, 1e-12)
}

func TestNewPowerMetricsTotal(t *testing.T) {
	m := types.NewPowerMetrics(1.5, 2.5, 3.0, 0.5)
	assert.Equal(t, 7.5, m.TotalMw)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, ok := r.Latest()
	assert.False(t, ok)

	r.Add(1, types.NewPowerMetrics(1, 2, 3, 4))
	r.Add(2, types.NewPowerMetrics(2, 3, 4, 5))

	latest, ok := r.Latest()
	assert.True(t, ok)
	assert.Equal(t, uint64(2), latest.Cycle)
	assert.Equal(t, 14.0, latest.Metrics.TotalMw)
	assert.Equal(t, 2, len(r.History()))

	r.Clear()
	assert.Equal(t, 0, len(r.History()))
}
