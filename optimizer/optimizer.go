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

// Package optimizer implements the runtime energy optimization strategies:
// uniform duty cycling, correlated-reading aggregation, and an adaptive
// progressive-sleep controller driven by observed sensor activity.
//
// The optimizer is a live tuning surface, not a strict API: malformed optional
// parameters are ignored or clamped, never raised as errors, so that a noisy
// external control (a dashboard slider, a CLI) can never crash a running
// simulation.
package optimizer

import (
	"fmt"
	"sync"
	"time"

	"github.com/smarthome-sim/iot-ns/energy"
	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/types"
)

// Config holds the optimizer tunables.
type Config struct {
	DutyCycle            float64   // uniform duty cycle applied by EnableDutyCycling
	AggregationFactor    float64   // fraction of power retained after aggregation; lower = more savings
	ActivityThresholdPct float64   // percent change that counts as activity
	SleepLevels          []float64 // progressive sleep duty-cycle levels, most active first
	SleepLevelTimeout    int       // inactive cycles before stepping one level deeper
	PowerDeltaWindowSec  float64   // window over which duty-cycle changes are converted to a power delta
}

// DefaultConfig returns the optimizer defaults.
func DefaultConfig() Config {
	return Config{
		DutyCycle:            0.8,
		AggregationFactor:    0.7,
		ActivityThresholdPct: 5.0,
		SleepLevels:          []float64{0.8, 0.6, 0.4, 0.2},
		SleepLevelTimeout:    5,
		PowerDeltaWindowSec:  5.0,
	}
}

// Optimizer is the stateful energy-optimization controller. It is the only
// writer of device duty cycles.
type Optimizer struct {
	mu  sync.Mutex
	cfg Config

	enabled  bool // aggregation / optimization on
	adaptive bool // progressive sleep on

	inactivityCounter int
	sleepLevel        int
	lastValues        map[string]float64
}

// New creates an optimizer with the given tunables. A nil-ish zero config is
// replaced by the defaults.
func New(cfg Config) *Optimizer {
	if len(cfg.SleepLevels) == 0 {
		cfg = DefaultConfig()
	}
	return &Optimizer{
		cfg:        cfg,
		lastValues: make(map[string]float64),
	}
}

// SetEnabled turns the optimization strategies (aggregation) on or off.
func (o *Optimizer) SetEnabled(enabled bool) {
	o.mu.Lock()
	o.enabled = enabled
	o.mu.Unlock()
}

// Enabled reports whether optimization is on.
func (o *Optimizer) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// EnableDutyCycling sets a uniform duty cycle on all devices.
func (o *Optimizer) EnableDutyCycling(devices []*energy.Device, dutyCycle float64) {
	o.mu.Lock()
	if dutyCycle > 0 {
		o.cfg.DutyCycle = dutyCycle
	}
	dc := o.cfg.DutyCycle
	o.mu.Unlock()

	for _, d := range devices {
		d.SetDutyCycle(dc)
	}
	logger.Infof("optimizer: duty cycling enabled: %.0f%% active time", dc*100)
}

// EnableAdaptive turns the adaptive progressive-sleep controller on or off,
// resetting its state when enabled.
func (o *Optimizer) EnableAdaptive(enabled bool) {
	o.mu.Lock()
	o.adaptive = enabled
	if enabled {
		o.inactivityCounter = 0
		o.sleepLevel = 0
	}
	o.mu.Unlock()

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	logger.Infof("optimizer: adaptive progressive sleep %s", status)
}

// Adaptive reports whether the progressive-sleep controller is on.
func (o *Optimizer) Adaptive() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.adaptive
}

// DutyCycle returns the currently configured uniform duty cycle.
func (o *Optimizer) DutyCycle() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg.DutyCycle
}

// AggregationFactor returns the current aggregation power factor.
func (o *Optimizer) AggregationFactor() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg.AggregationFactor
}

// SleepLevel returns the current progressive-sleep level index.
func (o *Optimizer) SleepLevel() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sleepLevel
}

// UpdateParams updates tunables in real time. Nil pointers leave a parameter
// unchanged; values outside [0.1, 1.0] are silently ignored, tolerating noisy
// external input such as a live control slider. Returns whether anything
// was applied.
func (o *Optimizer) UpdateParams(devices []*energy.Device, dutyCycle, aggregationFactor *float64) bool {
	updated := false

	if dutyCycle != nil && *dutyCycle >= 0.1 && *dutyCycle <= 1.0 {
		o.mu.Lock()
		o.cfg.DutyCycle = *dutyCycle
		o.mu.Unlock()
		for _, d := range devices {
			d.SetDutyCycle(*dutyCycle)
		}
		updated = true
		logger.Infof("optimizer: duty cycle updated: %.1f%% active time", *dutyCycle*100)
	}

	if aggregationFactor != nil && *aggregationFactor >= 0.1 && *aggregationFactor <= 1.0 {
		o.mu.Lock()
		o.cfg.AggregationFactor = *aggregationFactor
		o.mu.Unlock()
		updated = true
		logger.Infof("optimizer: aggregation factor updated: %.1f%% power reduction", (1-*aggregationFactor)*100)
	}

	return updated
}

// Aggregate collapses correlated readings before transmission. It is a no-op
// unless optimization is enabled. Readings are grouped by sensor class; groups
// of one pass through unchanged, larger groups become a single synthetic
// reading whose value is the arithmetic mean and whose power is the group sum
// scaled by the aggregation factor: fewer messages go out, and processing the
// overlapping signals together is cheaper per-unit than independently.
func (o *Optimizer) Aggregate(readings []types.SensorReading) []types.SensorReading {
	o.mu.Lock()
	enabled := o.enabled
	factor := o.cfg.AggregationFactor
	o.mu.Unlock()

	if !enabled {
		return readings
	}

	groups := make(map[types.SensorClass][]types.SensorReading)
	order := make([]types.SensorClass, 0, len(readings))
	for _, r := range readings {
		if _, seen := groups[r.Class]; !seen {
			order = append(order, r.Class)
		}
		groups[r.Class] = append(groups[r.Class], r)
	}

	aggregated := make([]types.SensorReading, 0, len(readings))
	for _, class := range order {
		group := groups[class]
		if len(group) == 1 {
			aggregated = append(aggregated, group[0])
			continue
		}

		sumValue := 0.0
		sumPower := 0.0
		for _, r := range group {
			sumValue += r.Value
			sumPower += r.PowerMw
		}
		aggregated = append(aggregated, types.SensorReading{
			Timestamp: time.Now(),
			SensorId:  fmt.Sprintf("aggregated_%s", class.Suffix()),
			Class:     class,
			Value:     sumValue / float64(len(group)),
			Unit:      group[0].Unit,
			PowerMw:   sumPower * factor,
		})
	}

	return aggregated
}
