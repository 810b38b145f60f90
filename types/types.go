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

// Package types holds the data types shared by the sensor, channel, optimizer
// and simulation packages.
package types

import "time"

// SensorClass identifies the measurement class of a sensor. It is carried
// explicitly on every SensorReading so that downstream consumers (aggregation,
// alerting, sleep control) never need to parse it back out of the sensor id.
type SensorClass int

const (
	ClassTemperature SensorClass = iota
	ClassHumidity
	ClassAirQuality
	ClassLight
	ClassNoise
	ClassMotion
)

var classNames = map[SensorClass]string{
	ClassTemperature: "temperature",
	ClassHumidity:    "humidity",
	ClassAirQuality:  "air_quality",
	ClassLight:       "light",
	ClassNoise:       "noise",
	ClassMotion:      "motion",
}

// Suffix tags appended to sensor ids in reading ids, e.g. "living_room_01_temp".
var classSuffixes = map[SensorClass]string{
	ClassTemperature: "temp",
	ClassHumidity:    "hum",
	ClassAirQuality:  "air",
	ClassLight:       "light",
	ClassNoise:       "noise",
	ClassMotion:      "motion",
}

var classUnits = map[SensorClass]string{
	ClassTemperature: "°C",
	ClassHumidity:    "%",
	ClassAirQuality:  "AQI",
	ClassLight:       "lux",
	ClassNoise:       "dB",
	ClassMotion:      "binary",
}

func (sc SensorClass) String() string {
	if n, ok := classNames[sc]; ok {
		return n
	}
	return "unknown"
}

// Suffix returns the short id-suffix for the class.
func (sc SensorClass) Suffix() string {
	return classSuffixes[sc]
}

// Unit returns the measurement unit for readings of the class.
func (sc SensorClass) Unit() string {
	return classUnits[sc]
}

// SensorReading is one measurement taken by a sensor, together with the
// sensing power it cost to produce.
type SensorReading struct {
	Timestamp time.Time
	SensorId  string
	Class     SensorClass
	Value     float64
	Unit      string
	PowerMw   float64
}

// PowerMetrics is the per-cycle power snapshot of the whole system. It is
// created once per simulation cycle and not mutated afterwards; TotalMw is
// always the exact sum of the four components.
type PowerMetrics struct {
	SensingMw    float64 `json:"sensing_mw" yaml:"sensing_mw"`
	CommMw       float64 `json:"comm_mw" yaml:"comm_mw"`
	ProcessingMw float64 `json:"processing_mw" yaml:"processing_mw"`
	SleepMw      float64 `json:"sleep_mw" yaml:"sleep_mw"`
	TotalMw      float64 `json:"total_mw" yaml:"total_mw"`
}

// NewPowerMetrics builds a snapshot with TotalMw filled in.
func NewPowerMetrics(sensing, comm, processing, sleep float64) PowerMetrics {
	return PowerMetrics{
		SensingMw:    sensing,
		CommMw:       comm,
		ProcessingMw: processing,
		SleepMw:      sleep,
		TotalMw:      sensing + comm + processing + sleep,
	}
}
