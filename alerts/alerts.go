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

// Package alerts detects abnormal sensor readings against per-class threshold
// bands and rate-limits the resulting notifications. Motion has no thresholds;
// it is an event, not a measured quantity.
package alerts

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/types"
)

// Severity of a raised alert.
const (
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Thresholds is one class's normal and critical operating band.
type Thresholds struct {
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	CriticalMin float64 `yaml:"critical_min"`
	CriticalMax float64 `yaml:"critical_max"`
}

// DefaultThresholds returns the smart-home comfort bands per sensor class.
func DefaultThresholds() map[types.SensorClass]Thresholds {
	return map[types.SensorClass]Thresholds{
		types.ClassTemperature: {Min: 18, Max: 28, CriticalMin: 10, CriticalMax: 35},
		types.ClassHumidity:    {Min: 40, Max: 70, CriticalMin: 25, CriticalMax: 85},
		types.ClassAirQuality:  {Min: 0, Max: 50, CriticalMin: 0, CriticalMax: 100},
		types.ClassLight:       {Min: 200, Max: 1000, CriticalMin: 50, CriticalMax: 1500},
		types.ClassNoise:       {Min: 30, Max: 60, CriticalMin: 20, CriticalMax: 80},
	}
}

// Alert describes one abnormal condition detected on a sensor reading.
type Alert struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Type      string    `json:"type" yaml:"type"`
	Severity  string    `json:"severity" yaml:"severity"`
	SensorId  string    `json:"sensor_id" yaml:"sensor_id"`
	Location  string    `json:"location" yaml:"location"`
	Value     float64   `json:"value" yaml:"value"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Unit      string    `json:"unit" yaml:"unit"`
	Message   string    `json:"message" yaml:"message"`
}

// Notifier delivers a raised alert. The default implementation logs it; a
// deployment could add email or a home-automation webhook here.
type Notifier interface {
	Notify(alert *Alert)
}

// LogNotifier writes alerts to the simulation log.
type LogNotifier struct{}

func (LogNotifier) Notify(alert *Alert) {
	logger.Warnf("ALERT [%s] %s: %s at %s, value %.1f %s (threshold %.1f)",
		alert.Severity, alert.Type, alert.SensorId, alert.Location,
		alert.Value, alert.Unit, alert.Threshold)
}

// Checker evaluates readings against the thresholds, applying a cooldown per
// (sensor, alert type) pair so a sustained abnormal condition raises one alert
// per cooldown window rather than one per sample.
type Checker struct {
	mu         sync.Mutex
	thresholds map[types.SensorClass]Thresholds
	cooldown   time.Duration
	lastAlert  map[string]time.Time
	history    []Alert
	notifier   Notifier

	now func() time.Time // for tests
}

// NewChecker creates a checker with a 5 minute per-condition cooldown. Nil
// thresholds select the defaults; a nil notifier selects LogNotifier.
func NewChecker(thresholds map[types.SensorClass]Thresholds, notifier Notifier) *Checker {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Checker{
		thresholds: thresholds,
		cooldown:   5 * time.Minute,
		lastAlert:  make(map[string]time.Time),
		notifier:   notifier,
		now:        time.Now,
	}
}

// SetCooldown overrides the per-condition cooldown window.
func (c *Checker) SetCooldown(d time.Duration) {
	c.mu.Lock()
	c.cooldown = d
	c.mu.Unlock()
}

// Check evaluates one reading and returns the alert raised, or nil when the
// value is in band, the class has no thresholds, or the condition is still in
// its cooldown window. The notifier is invoked for every returned alert.
func (c *Checker) Check(reading types.SensorReading, location string) *Alert {
	th, ok := c.thresholds[reading.Class]
	if !ok {
		return nil
	}

	className := classDisplayName(reading.Class)
	var alertType, severity string
	var threshold float64

	// critical band first, then the comfort band
	switch {
	case reading.Value < th.CriticalMin:
		alertType = "Critical Low " + className
		severity = SeverityCritical
		threshold = th.CriticalMin
	case reading.Value > th.CriticalMax:
		alertType = "Critical High " + className
		severity = SeverityCritical
		threshold = th.CriticalMax
	case reading.Value < th.Min:
		alertType = "Low " + className
		severity = SeverityHigh
		threshold = th.Min
	case reading.Value > th.Max:
		alertType = "High " + className
		severity = SeverityHigh
		threshold = th.Max
	default:
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	key := reading.SensorId + "|" + alertType
	if last, seen := c.lastAlert[key]; seen && now.Sub(last) < c.cooldown {
		logger.Debugf("alerts: %s in cooldown (%.0fs remaining)", key, (c.cooldown - now.Sub(last)).Seconds())
		return nil
	}
	c.lastAlert[key] = now

	alert := Alert{
		Timestamp: now,
		Type:      alertType,
		Severity:  severity,
		SensorId:  reading.SensorId,
		Location:  location,
		Value:     reading.Value,
		Threshold: threshold,
		Unit:      reading.Unit,
		Message: fmt.Sprintf("%s at %s: %.1f %s (threshold %.1f %s)",
			alertType, location, reading.Value, reading.Unit, threshold, reading.Unit),
	}
	c.history = append(c.history, alert)
	c.notifier.Notify(&alert)
	return &alert
}

// History returns a copy of all alerts raised so far.
func (c *Checker) History() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Alert, len(c.history))
	copy(out, c.history)
	return out
}

// Summary returns the alert totals grouped by severity.
func (c *Checker) Summary() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary := make(map[string]int)
	for _, a := range c.history {
		summary[a.Severity]++
	}
	return summary
}

// classDisplayName renders a sensor class in alert-title case, e.g.
// "Air Quality".
func classDisplayName(class types.SensorClass) string {
	name := class.String()
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
