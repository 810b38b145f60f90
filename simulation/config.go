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
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smarthome-sim/iot-ns/prng"
)

// Config holds all tunables of a simulation run. A config file overrides the
// defaults field by field; flags override the file.
type Config struct {
	Seed                 prng.RandomSeed `yaml:"seed"`
	CycleInterval        time.Duration   `yaml:"cycle_interval"`
	Speed                float64         `yaml:"speed"`
	AutoGo               bool            `yaml:"autogo"`
	OutputName           string          `yaml:"output_name"`
	OptimizationEnabled  bool            `yaml:"optimization"`
	AdaptiveSleep        bool            `yaml:"adaptive_sleep"`
	DutyCycle            float64         `yaml:"duty_cycle"`
	AggregationFactor    float64         `yaml:"aggregation_factor"`
	ActivityThresholdPct float64         `yaml:"activity_threshold_pct"`
	SleepLevels          []float64       `yaml:"sleep_levels"`
	SleepLevelTimeout    int             `yaml:"sleep_level_timeout"`
	BatchEnabled         bool            `yaml:"batch_enabled"`
	BatchSize            int             `yaml:"batch_size"`
	BatchTimeout         time.Duration   `yaml:"batch_timeout"`
	ProcessingMwPerRead  float64         `yaml:"processing_mw_per_reading"`
}

// DefaultConfig returns the default simulation configuration.
func DefaultConfig() *Config {
	return &Config{
		Seed:                 0, // 0 selects a time-based seed
		CycleInterval:        200 * time.Millisecond,
		Speed:                1.0,
		AutoGo:               true,
		OutputName:           "smarthome",
		OptimizationEnabled:  false,
		AdaptiveSleep:        false,
		DutyCycle:            0.8,
		AggregationFactor:    0.7,
		ActivityThresholdPct: 5.0,
		SleepLevels:          []float64{0.8, 0.6, 0.4, 0.2},
		SleepLevelTimeout:    5,
		BatchEnabled:         true,
		BatchSize:            5,
		BatchTimeout:         3 * time.Second,
		ProcessingMwPerRead:  0.5,
	}
}

// LoadConfigFile reads a YAML config file on top of the defaults: fields
// absent from the file keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}
