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
	"sync"

	"github.com/smarthome-sim/iot-ns/types"
)

// Device is one physical sensor device: a profile, an identity and a mutable
// duty cycle. The optimizer is the only writer of the duty cycle; the power
// model and the sensors read it, possibly from other goroutines, hence the lock.
type Device struct {
	id       string
	class    types.SensorClass
	location string
	profile  DeviceProfile

	mu        sync.RWMutex
	dutyCycle float64
}

// NewDevice creates a device of the given class at a named location, fully
// active (duty cycle 1.0).
func NewDevice(id string, class types.SensorClass, location string) *Device {
	return &Device{
		id:        id,
		class:     class,
		location:  location,
		profile:   ProfileForClass(class),
		dutyCycle: 1.0,
	}
}

func (d *Device) Id() string {
	return d.id
}

func (d *Device) Class() types.SensorClass {
	return d.class
}

func (d *Device) Location() string {
	return d.location
}

func (d *Device) Profile() DeviceProfile {
	return d.profile
}

// DutyCycle returns the fraction of time the device is actively sampling.
func (d *Device) DutyCycle() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dutyCycle
}

// SetDutyCycle sets the duty cycle, clamped to [0, 1]. Out-of-range input is a
// tuning-surface condition, not an error.
func (d *Device) SetDutyCycle(dc float64) {
	if dc < 0 {
		dc = 0
	} else if dc > 1 {
		dc = 1
	}
	d.mu.Lock()
	d.dutyCycle = dc
	d.mu.Unlock()
}

// PowerFor charges an operation of the given duration (s) at the device's
// current duty cycle.
func (d *Device) PowerFor(op Operation, duration float64) (float64, error) {
	return Power(d.profile, op, duration, d.DutyCycle())
}
