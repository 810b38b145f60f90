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
	"math"

	"github.com/smarthome-sim/iot-ns/energy"
	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/types"
)

// detectActivity reports whether the latest readings show meaningful change
// compared to the previous cycle. Motion above zero is activity by itself and
// bypasses the change tracking. For the remaining classes the relative change
// against the last seen value is compared to the activity threshold; a value
// appearing from zero counts as a 100% change.
// Must be called with o.mu held.
func (o *Optimizer) detectActivity(readings []types.SensorReading) bool {
	active := false
	for _, r := range readings {
		if r.Class == types.ClassMotion {
			if r.Value > 0 {
				active = true
			}
			continue
		}

		prev, seen := o.lastValues[r.SensorId]
		o.lastValues[r.SensorId] = r.Value
		if !seen {
			continue
		}

		var changePct float64
		switch {
		case prev == 0 && r.Value != 0:
			changePct = 100
		case prev == 0 && r.Value == 0:
			changePct = 0
		default:
			changePct = math.Abs(r.Value-prev) / math.Abs(prev) * 100
		}
		if changePct > o.cfg.ActivityThresholdPct {
			active = true
		}
	}
	return active
}

// UpdateSleepMode advances the progressive-sleep state machine by one cycle
// and applies the resulting duty cycle to all devices. Activity wakes the
// devices back to the most active level immediately; sustained inactivity
// steps one level deeper every SleepLevelTimeout cycles, never past the
// deepest level.
//
// The returned value is the estimated sensing-power saving (mW) of the
// duty-cycle change over the delta window, summed over all devices. It is
// positive when stepping deeper, negative when waking up, and zero when
// nothing changed or the controller is disabled.
func (o *Optimizer) UpdateSleepMode(devices []*energy.Device, readings []types.SensorReading) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.adaptive {
		return 0
	}

	active := o.detectActivity(readings)

	oldLevel := o.sleepLevel
	if active {
		o.inactivityCounter = 0
		if o.sleepLevel > 0 {
			o.sleepLevel = 0
		}
	} else {
		o.inactivityCounter++
		if o.inactivityCounter >= o.cfg.SleepLevelTimeout {
			if o.sleepLevel < len(o.cfg.SleepLevels)-1 {
				o.sleepLevel++
			}
			o.inactivityCounter = 0
		}
	}

	if o.sleepLevel == oldLevel {
		return 0
	}

	oldDc := o.cfg.SleepLevels[oldLevel]
	newDc := o.cfg.SleepLevels[o.sleepLevel]

	delta := 0.0
	for _, d := range devices {
		d.SetDutyCycle(newDc)
		delta += (oldDc - newDc) * d.Profile().SensingMw * o.cfg.PowerDeltaWindowSec
	}

	if o.sleepLevel > oldLevel {
		logger.Infof("optimizer: sleep level %d -> %d (duty cycle %.0f%%), saving %.2f mW",
			oldLevel, o.sleepLevel, newDc*100, delta)
	} else {
		logger.Infof("optimizer: activity detected, waking to duty cycle %.0f%% (%.2f mW)",
			newDc*100, delta)
	}
	return delta
}
