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

// Package sensors provides the simulated smart-home sensor fleet. Each sensor
// wraps an energy.Device and synthesizes plausible readings: diurnal patterns,
// gaussian noise, and occasional abnormal values that exercise the alerting
// path. Reading ids are formed as "<deviceId>_<classSuffix>".
package sensors

import (
	"math/rand"
	"time"

	"github.com/smarthome-sim/iot-ns/energy"
	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/prng"
	"github.com/smarthome-sim/iot-ns/types"
)

// Sensor is one simulated sensor unit. Read returns one or more readings per
// sampling cycle; a combined sensor (temperature + humidity) returns several.
type Sensor interface {
	Device() *energy.Device
	Read() []types.SensorReading
}

// baseSensor carries the shared state of all sensor kinds. The random source
// and the clock are per-sensor so tests can pin both.
type baseSensor struct {
	dev *energy.Device
	rnd *rand.Rand
	now func() time.Time
}

func newBaseSensor(id string, class types.SensorClass, location string) baseSensor {
	return baseSensor{
		dev: energy.NewDevice(id, class, location),
		rnd: rand.New(rand.NewSource(int64(prng.NewSensorRandomSeed()))),
		now: time.Now,
	}
}

func (b *baseSensor) Device() *energy.Device {
	return b.dev
}

// sensingPower charges the sensing operation for the given duration. The
// operation is always valid here, so an error means a broken profile.
func (b *baseSensor) sensingPower(duration float64) float64 {
	power, err := b.dev.PowerFor(energy.OpSensing, duration)
	logger.PanicIfError(err)
	return power
}

// gauss returns a normally distributed value with the given mean and stddev.
func (b *baseSensor) gauss(mean, stddev float64) float64 {
	return mean + b.rnd.NormFloat64()*stddev
}

// uniform returns a uniformly distributed value in [lo, hi).
func (b *baseSensor) uniform(lo, hi float64) float64 {
	return lo + b.rnd.Float64()*(hi-lo)
}

// DefaultSensors builds the default smart-home deployment: combined
// temperature/humidity units in the main rooms, air quality near cooking and
// living areas, light sensors where lighting automation matters, noise sensors
// in the quiet rooms, and motion sensors at the entrances.
func DefaultSensors() []Sensor {
	return []Sensor{
		NewTempHumiditySensor("living_room_01", "Living Room"),
		NewTempHumiditySensor("bedroom_01", "Master Bedroom"),
		NewTempHumiditySensor("kitchen_01", "Kitchen"),
		NewAirQualitySensor("air_01", "Living Room"),
		NewAirQualitySensor("air_02", "Kitchen"),
		NewLightSensor("light_01", "Living Room"),
		NewLightSensor("light_02", "Master Bedroom"),
		NewLightSensor("light_03", "Home Office"),
		NewNoiseSensor("noise_01", "Living Room"),
		NewNoiseSensor("noise_02", "Master Bedroom"),
		NewMotionSensor("pir_01", "Front Door"),
		NewMotionSensor("pir_02", "Back Yard"),
	}
}

// Devices extracts the energy devices of a sensor fleet, in fleet order.
func Devices(fleet []Sensor) []*energy.Device {
	devices := make([]*energy.Device, len(fleet))
	for i, s := range fleet {
		devices[i] = s.Device()
	}
	return devices
}
