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

// Package simulation wires the sensor fleet, the lossy channel, the optimizer
// and the alert checker into cycles and runs them, recording the per-cycle
// power figures.
package simulation

import (
	"sync"
	"time"

	"github.com/smarthome-sim/iot-ns/alerts"
	"github.com/smarthome-sim/iot-ns/channel"
	"github.com/smarthome-sim/iot-ns/energy"
	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/optimizer"
	"github.com/smarthome-sim/iot-ns/progctx"
	"github.com/smarthome-sim/iot-ns/radiomodel"
	"github.com/smarthome-sim/iot-ns/sensors"
	"github.com/smarthome-sim/iot-ns/types"
)

// publishPayload is the message body sent per reading.
type publishPayload struct {
	SensorId  string  `json:"sensor_id"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Timestamp string  `json:"timestamp"`
	Location  string  `json:"location"`
}

// Simulation is one running smart-home energy simulation.
type Simulation struct {
	ctx *progctx.ProgCtx
	cfg *Config

	fleet   []sensors.Sensor
	devices []*energy.Device
	model   *radiomodel.Model
	channel *channel.Channel
	opt     *optimizer.Optimizer
	checker *alerts.Checker
	rec     *energy.Recorder
	stats   *statsCollector

	mu            sync.Mutex
	cycle         int
	baselineMw    float64
	haveBaseline  bool
	paused        bool
	speed         float64
	cycleInterval time.Duration
}

// NewSimulation assembles a simulation from the config using the default
// sensor fleet and floor plan.
func NewSimulation(ctx *progctx.ProgCtx, cfg *Config) *Simulation {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	fleet := sensors.DefaultSensors()
	devices := sensors.Devices(fleet)
	model := radiomodel.NewModel(nil, nil)

	chParams := channel.DefaultParams()
	if cfg.BatchSize > 0 {
		chParams.BatchSizeLimit = cfg.BatchSize
	}
	if cfg.BatchTimeout > 0 {
		chParams.BatchTimeout = cfg.BatchTimeout
	}
	ch := channel.NewChannel(model, chParams)
	if !cfg.BatchEnabled {
		ch.SetBatchParams(false, 0, 0)
	}

	optCfg := optimizer.DefaultConfig()
	optCfg.DutyCycle = cfg.DutyCycle
	optCfg.AggregationFactor = cfg.AggregationFactor
	optCfg.ActivityThresholdPct = cfg.ActivityThresholdPct
	if len(cfg.SleepLevels) > 0 {
		optCfg.SleepLevels = cfg.SleepLevels
	}
	if cfg.SleepLevelTimeout > 0 {
		optCfg.SleepLevelTimeout = cfg.SleepLevelTimeout
	}
	opt := optimizer.New(optCfg)

	s := &Simulation{
		ctx:           ctx,
		cfg:           cfg,
		fleet:         fleet,
		devices:       devices,
		model:         model,
		channel:       ch,
		opt:           opt,
		checker:       alerts.NewChecker(nil, nil),
		rec:           energy.NewRecorder(),
		stats:         newStatsCollector(),
		paused:        !cfg.AutoGo,
		speed:         cfg.Speed,
		cycleInterval: cfg.CycleInterval,
	}
	if s.speed <= 0 {
		s.speed = 1.0
	}

	if cfg.OptimizationEnabled {
		opt.SetEnabled(true)
		opt.EnableDutyCycling(devices, cfg.DutyCycle)
	}
	if cfg.AdaptiveSleep {
		opt.EnableAdaptive(true)
	}

	logger.Infof("simulation: initialized %d sensors, optimization=%v, batch=%v",
		len(fleet), cfg.OptimizationEnabled, cfg.BatchEnabled)
	return s
}

func (s *Simulation) Channel() *channel.Channel       { return s.channel }
func (s *Simulation) Optimizer() *optimizer.Optimizer { return s.opt }
func (s *Simulation) Checker() *alerts.Checker        { return s.checker }
func (s *Simulation) Recorder() *energy.Recorder      { return s.rec }
func (s *Simulation) Model() *radiomodel.Model        { return s.model }
func (s *Simulation) Devices() []*energy.Device       { return s.devices }
func (s *Simulation) Fleet() []sensors.Sensor         { return s.fleet }

// Cycle returns the number of completed cycles.
func (s *Simulation) Cycle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}

// Paused reports whether the autonomous run loop is paused.
func (s *Simulation) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Pause suspends the autonomous run loop after the current cycle.
func (s *Simulation) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	logger.Infof("simulation: paused")
}

// Resume continues the autonomous run loop.
func (s *Simulation) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	logger.Infof("simulation: resumed")
}

// Speed returns the current simulation speed multiplier.
func (s *Simulation) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// SetSpeed sets the simulation speed multiplier; higher is faster.
func (s *Simulation) SetSpeed(speed float64) {
	if speed <= 0 {
		logger.Warnf("simulation: ignoring non-positive speed %v", speed)
		return
	}
	s.mu.Lock()
	s.speed = speed
	s.mu.Unlock()
	logger.Infof("simulation: speed set to %vx", speed)
}

// Step runs n cycles synchronously, regardless of the paused state.
func (s *Simulation) Step(n int) {
	for i := 0; i < n; i++ {
		if s.ctx.Err() != nil {
			return
		}
		s.RunCycle()
	}
}

// Run is the autonomous loop: one cycle per interval, scaled by speed, until
// the context is canceled. It is typically run on its own goroutine next to
// the CLI.
func (s *Simulation) Run() {
	s.ctx.WaitAdd("simulation", 1)
	defer s.ctx.WaitDone("simulation")

	for s.ctx.Err() == nil {
		if s.Paused() {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
			continue
		}

		s.RunCycle()

		interval := time.Duration(float64(s.cycleInterval) / s.Speed())
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// RunCycle executes one full sampling cycle: read all sensors, check alerts,
// advance the sleep controller, aggregate, publish over the channel, and
// record the cycle's power snapshot.
func (s *Simulation) RunCycle() types.PowerMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, locations := s.collect()

	// the unoptimized first cycle anchors the savings estimate
	sensingRaw := 0.0
	for _, r := range readings {
		sensingRaw += r.PowerMw
	}
	if !s.haveBaseline {
		s.baselineMw = sensingRaw
		s.haveBaseline = true
	}

	s.opt.UpdateSleepMode(s.devices, readings)

	originalCount := len(readings)
	readings = s.opt.Aggregate(readings)
	if len(readings) != originalCount {
		logger.Debugf("simulation: aggregation %d -> %d readings", originalCount, len(readings))
	}

	commPower := 0.0
	for _, r := range readings {
		location := locations[r.SensorId] // aggregated ids resolve to ""
		payload := publishPayload{
			SensorId:  r.SensorId,
			Value:     r.Value,
			Unit:      r.Unit,
			Timestamp: r.Timestamp.Format(time.RFC3339),
			Location:  location,
		}
		_, power := s.channel.Publish("sensors/"+r.SensorId, payload, location)
		commPower += power
	}

	sensing := 0.0
	for _, r := range readings {
		sensing += r.PowerMw
	}
	processing := float64(len(readings)) * s.cfg.ProcessingMwPerRead
	sleep := 0.0
	for _, d := range s.devices {
		p, err := d.PowerFor(energy.OpSleep, 1.0)
		logger.PanicIfError(err)
		sleep += p
	}

	metrics := types.NewPowerMetrics(sensing, commPower, processing, sleep)

	s.cycle++
	s.rec.Add(uint64(s.cycle), metrics)
	s.stats.update(s.cycle, len(readings), metrics, s.savingsLocked(metrics))

	logger.Infof("simulation: cycle %d: total power = %.2f mW", s.cycle, metrics.TotalMw)
	return metrics
}

// collect reads all sensors, checks each reading against the alert thresholds
// and returns the readings plus a reading-id to location table for the
// distance-based channel cost. Must be called with s.mu held.
func (s *Simulation) collect() ([]types.SensorReading, map[string]string) {
	readings := make([]types.SensorReading, 0, len(s.fleet)*2)
	locations := make(map[string]string, len(s.fleet)*2)

	for _, sensor := range s.fleet {
		location := sensor.Device().Location()
		for _, r := range sensor.Read() {
			readings = append(readings, r)
			locations[r.SensorId] = location
			if alert := s.checker.Check(r, location); alert != nil {
				s.stats.countAlert(alert.Severity)
			}
		}
	}
	return readings, locations
}

// savingsLocked estimates the power saved by optimization in this cycle,
// against the unoptimized baseline. Must be called with s.mu held.
func (s *Simulation) savingsLocked(metrics types.PowerMetrics) float64 {
	if !s.opt.Enabled() || !s.haveBaseline {
		return 0
	}
	return s.baselineMw - metrics.SensingMw
}

// TriggerPollutionEvent raises the AQI on all air-quality sensors, simulating
// cooking or cleaning activity. The sensors are read by the cycle loop under
// s.mu, so the event injection takes the same lock.
func (s *Simulation) TriggerPollutionEvent(intensity float64) {
	s.mu.Lock()
	n := 0
	for _, sensor := range s.fleet {
		if aq, ok := sensor.(*sensors.AirQualitySensor); ok {
			aq.TriggerPollutionEvent(intensity)
			n++
		}
	}
	s.mu.Unlock()
	logger.Infof("simulation: pollution event (intensity %.1f) on %d sensors", intensity, n)
}

// Stats returns a snapshot of the run statistics.
func (s *Simulation) Stats() Stats {
	return s.stats.snapshot(s.channel.Counters(), s.checker.Summary())
}

// SaveStats writes the run statistics as JSON next to the energy results.
func (s *Simulation) SaveStats() error {
	stats := s.Stats()
	return stats.SaveToFile(s.cfg.OutputName)
}

// SaveEnergy writes the recorded per-cycle power history as a TSV file.
func (s *Simulation) SaveEnergy() error {
	return s.rec.SaveToFile(s.cfg.OutputName)
}
