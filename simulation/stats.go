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

package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/smarthome-sim/iot-ns/channel"
	"github.com/smarthome-sim/iot-ns/types"
)

const statsDirName = "energy_results"

// Stats is the cumulative run statistics snapshot, written out as JSON at the
// end of a run or on demand.
type Stats struct {
	StartTime     time.Time          `json:"start_time"`
	Cycles        int                `json:"cycles"`
	TotalReadings int                `json:"total_readings"`
	AvgPowerMw    float64            `json:"avg_power_mw"`
	PeakPowerMw   float64            `json:"peak_power_mw"`
	TotalSavings  float64            `json:"total_savings_mw"`
	LastMetrics   types.PowerMetrics `json:"last_metrics"`
	Channel       channel.Counters   `json:"channel"`
	Alerts        map[string]int     `json:"alerts"`
}

// statsCollector accumulates statistics across cycles; Stats snapshots are
// derived from it.
type statsCollector struct {
	mu         sync.Mutex
	startTime  time.Time
	cycles     int
	readings   int
	sumPowerMw float64
	peakPower  float64
	savings    float64
	last       types.PowerMetrics
	alertCount map[string]int
}

// newStatsCollector creates an empty statistics collector.
func newStatsCollector() *statsCollector {
	return &statsCollector{
		startTime:  time.Now(),
		alertCount: make(map[string]int),
	}
}

// update folds one completed cycle into the totals.
func (s *statsCollector) update(cycle, readings int, metrics types.PowerMetrics, savings float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles = cycle
	s.readings += readings
	s.sumPowerMw += metrics.TotalMw
	if metrics.TotalMw > s.peakPower {
		s.peakPower = metrics.TotalMw
	}
	s.savings += savings
	s.last = metrics
}

// countAlert records one raised alert of the given severity.
func (s *statsCollector) countAlert(severity string) {
	s.mu.Lock()
	s.alertCount[severity]++
	s.mu.Unlock()
}

// snapshot derives a Stats value, merging in the channel counters and the
// alert summary.
func (s *statsCollector) snapshot(counters channel.Counters, alertSummary map[string]int) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	avg := 0.0
	if s.cycles > 0 {
		avg = s.sumPowerMw / float64(s.cycles)
	}
	return Stats{
		StartTime:     s.startTime,
		Cycles:        s.cycles,
		TotalReadings: s.readings,
		AvgPowerMw:    avg,
		PeakPowerMw:   s.peakPower,
		TotalSavings:  s.savings,
		LastMetrics:   s.last,
		Channel:       counters,
		Alerts:        alertSummary,
	}
}

// SaveToFile writes the statistics as indented JSON to
// energy_results/stats_<name>.json, creating the directory if needed.
func (s Stats) SaveToFile(name string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling run statistics")
	}

	if err := os.MkdirAll(statsDirName, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", statsDirName)
	}
	path := filepath.Join(statsDirName, fmt.Sprintf("stats_%s.json", name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing statistics file %s", path)
	}
	return nil
}
