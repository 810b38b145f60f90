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

// Package energy models the power draw of battery-powered sensor devices and
// keeps the per-cycle power bookkeeping of the simulated network.
package energy

import (
	"github.com/pkg/errors"

	"github.com/smarthome-sim/iot-ns/types"
)

// Operation is the kind of device activity being charged for.
type Operation int

const (
	OpSensing Operation = iota
	OpCommunication
	OpProcessing
	OpSleep
)

func (op Operation) String() string {
	switch op {
	case OpSensing:
		return "sensing"
	case OpCommunication:
		return "communication"
	case OpProcessing:
		return "processing"
	case OpSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// ErrInvalidOperation signals an operation kind outside the four known ones.
// An unknown kind is a programming error upstream, not a transient condition.
var ErrInvalidOperation = errors.New("invalid power operation kind")

// DeviceProfile holds the static power coefficients (mW) of one device class.
// Immutable once constructed.
type DeviceProfile struct {
	SensingMw    float64
	CommMw       float64
	ProcessingMw float64
	SleepMw      float64
}

// Per-class power coefficients (mW), taken from component datasheet figures.
var (
	ProfileDHT22      = DeviceProfile{SensingMw: 1.5, CommMw: 15.0, ProcessingMw: 0.8, SleepMw: 0.05}
	ProfileLDR        = DeviceProfile{SensingMw: 0.5, CommMw: 12.0, ProcessingMw: 0.3, SleepMw: 0.02}
	ProfileAirQuality = DeviceProfile{SensingMw: 2.5, CommMw: 20.0, ProcessingMw: 1.2, SleepMw: 0.1}
	ProfileNoise      = DeviceProfile{SensingMw: 1.8, CommMw: 16.0, ProcessingMw: 0.9, SleepMw: 0.06}
	ProfilePIR        = DeviceProfile{SensingMw: 0.8, CommMw: 10.0, ProcessingMw: 0.5, SleepMw: 0.03}
)

// ProfileForClass returns the device profile attached to a sensor class.
// Temperature and humidity share the DHT22 combo sensor. Unknown classes fall
// back to the DHT22 profile.
func ProfileForClass(sc types.SensorClass) DeviceProfile {
	switch sc {
	case types.ClassTemperature, types.ClassHumidity:
		return ProfileDHT22
	case types.ClassLight:
		return ProfileLDR
	case types.ClassAirQuality:
		return ProfileAirQuality
	case types.ClassNoise:
		return ProfileNoise
	case types.ClassMotion:
		return ProfilePIR
	default:
		return ProfileDHT22
	}
}

// Power converts an operation of the given duration (s) into an energy draw (mW).
//
//	sensing       -> SensingMw * t * dutyCycle
//	communication -> CommMw * t          (duty cycle does not gate communication)
//	processing    -> ProcessingMw * t
//	sleep         -> SleepMw * t * (1 - dutyCycle)
//
// Pure function of its inputs; deterministic for identical inputs.
func Power(p DeviceProfile, op Operation, duration, dutyCycle float64) (float64, error) {
	switch op {
	case OpSensing:
		return p.SensingMw * duration * dutyCycle, nil
	case OpCommunication:
		return p.CommMw * duration, nil
	case OpProcessing:
		return p.ProcessingMw * duration, nil
	case OpSleep:
		return p.SleepMw * duration * (1 - dutyCycle), nil
	default:
		return 0, errors.Wrapf(ErrInvalidOperation, "operation %d", int(op))
	}
}
