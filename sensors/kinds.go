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

package sensors

import (
	"math"
	"time"

	"github.com/smarthome-sim/iot-ns/types"
)

// Sensing durations in seconds per sensor kind. A gas sensor needs a longer
// sampling window than a photoresistor.
const (
	fastSenseSec  = 0.1
	airSenseSec   = 0.3
	lightSenseSec = 0.05
)

// TempHumiditySensor models a combined DHT22 temperature/humidity unit.
// Humidity is derived from the same physical sample as temperature, so Read
// returns both readings.
type TempHumiditySensor struct {
	baseSensor
	baseTemp     float64
	baseHumidity float64
}

func NewTempHumiditySensor(id, location string) *TempHumiditySensor {
	return &TempHumiditySensor{
		baseSensor:   newBaseSensor(id, types.ClassTemperature, location),
		baseTemp:     25.0,
		baseHumidity: 60.0,
	}
}

func (s *TempHumiditySensor) Read() []types.SensorReading {
	temp := s.readTemperature()
	hum := s.readHumidity(temp.Value)
	return []types.SensorReading{temp, hum}
}

func (s *TempHumiditySensor) readTemperature() types.SensorReading {
	now := s.now()
	hour := float64(now.Hour())
	seasonal := math.Sin(float64(now.Unix())/(365*24*3600)*2*math.Pi) * 10
	daily := math.Sin(hour/24*2*math.Pi) * 5
	temp := s.baseTemp + seasonal + daily + s.gauss(0, 1)

	// occasional abnormal sample, feeding the alerting path
	if s.rnd.Float64() < 0.1 {
		if s.rnd.Float64() < 0.5 {
			temp = s.uniform(45, 55)
		} else {
			temp = s.uniform(-5, 5)
		}
	}

	return types.SensorReading{
		Timestamp: now,
		SensorId:  s.dev.Id() + "_temp",
		Class:     types.ClassTemperature,
		Value:     temp,
		Unit:      types.ClassTemperature.Unit(),
		PowerMw:   s.sensingPower(fastSenseSec),
	}
}

func (s *TempHumiditySensor) readHumidity(temp float64) types.SensorReading {
	humidity := s.baseHumidity - (temp-s.baseTemp)*2 + s.gauss(0, 3)
	humidity = math.Max(20, math.Min(95, humidity))

	if s.rnd.Float64() < 0.08 {
		if s.rnd.Float64() < 0.5 {
			humidity = s.uniform(96, 100)
		} else {
			humidity = s.uniform(10, 19)
		}
	}

	return types.SensorReading{
		Timestamp: s.now(),
		SensorId:  s.dev.Id() + "_hum",
		Class:     types.ClassHumidity,
		Value:     humidity,
		Unit:      types.ClassHumidity.Unit(),
		PowerMw:   s.sensingPower(fastSenseSec),
	}
}

// AirQualitySensor models an MQ-135 style gas sensor reporting an AQI figure.
// Pollution events (cooking, cleaning) raise the level and decay 5% per sample.
type AirQualitySensor struct {
	baseSensor
	baseAqi        float64
	pollutionEvent float64
}

func NewAirQualitySensor(id, location string) *AirQualitySensor {
	return &AirQualitySensor{
		baseSensor: newBaseSensor(id, types.ClassAirQuality, location),
		baseAqi:    25.0,
	}
}

// TriggerPollutionEvent raises the AQI by the given intensity; the effect
// diminishes over subsequent samples.
func (s *AirQualitySensor) TriggerPollutionEvent(intensity float64) {
	s.pollutionEvent += intensity
}

func (s *AirQualitySensor) Read() []types.SensorReading {
	now := s.now()
	hour := now.Hour()

	// cooking hours raise the baseline, night lowers it
	var daily float64
	switch {
	case (7 <= hour && hour <= 9) || (17 <= hour && hour <= 19):
		daily = 15
	case 22 <= hour || hour <= 6:
		daily = -5
	}

	aqi := math.Max(0, s.baseAqi+daily+s.pollutionEvent+s.gauss(0, 3))
	s.pollutionEvent *= 0.95

	if s.rnd.Float64() < 0.08 {
		if s.rnd.Float64() < 0.5 {
			aqi = s.uniform(150, 200)
		} else {
			aqi = s.uniform(0, 10)
		}
	}

	return []types.SensorReading{{
		Timestamp: now,
		SensorId:  s.dev.Id() + "_air",
		Class:     types.ClassAirQuality,
		Value:     aqi,
		Unit:      types.ClassAirQuality.Unit(),
		PowerMw:   s.sensingPower(airSenseSec),
	}}
}

// LightSensor models an LDR photoresistor following the natural daylight curve.
type LightSensor struct {
	baseSensor
}

func NewLightSensor(id, location string) *LightSensor {
	return &LightSensor{baseSensor: newBaseSensor(id, types.ClassLight, location)}
}

func (s *LightSensor) Read() []types.SensorReading {
	now := s.now()
	hour := float64(now.Hour())

	baseLight := 50.0
	if 6 <= hour && hour <= 18 {
		baseLight = 800 * math.Sin((hour-6)/12*math.Pi)
	}

	weather := s.uniform(0.7, 1.3)
	light := math.Max(10, baseLight*weather+s.gauss(0, 50))

	if s.rnd.Float64() < 0.06 {
		if s.rnd.Float64() < 0.5 {
			light = s.uniform(3500, 5000)
		} else {
			light = s.uniform(20, 49)
		}
	}

	return []types.SensorReading{{
		Timestamp: now,
		SensorId:  s.dev.Id() + "_light",
		Class:     types.ClassLight,
		Value:     light,
		Unit:      types.ClassLight.Unit(),
		PowerMw:   s.sensingPower(lightSenseSec),
	}}
}

// NoiseSensor models a digital microphone reporting ambient sound level in dB.
type NoiseSensor struct {
	baseSensor
	baseNoise float64
}

func NewNoiseSensor(id, location string) *NoiseSensor {
	return &NoiseSensor{
		baseSensor: newBaseSensor(id, types.ClassNoise, location),
		baseNoise:  35.0,
	}
}

func (s *NoiseSensor) Read() []types.SensorReading {
	now := s.now()
	hour := now.Hour()

	var daily float64
	if 7 <= hour && hour <= 22 {
		daily = s.uniform(10, 25)
	} else {
		daily = s.uniform(-5, 5)
	}

	noise := math.Max(20, s.baseNoise+daily+s.gauss(0, 3))

	if s.rnd.Float64() < 0.06 {
		if s.rnd.Float64() < 0.5 {
			noise = s.uniform(85, 100)
		} else {
			noise = s.uniform(15, 19)
		}
	}

	return []types.SensorReading{{
		Timestamp: now,
		SensorId:  s.dev.Id() + "_noise",
		Class:     types.ClassNoise,
		Value:     noise,
		Unit:      types.ClassNoise.Unit(),
		PowerMw:   s.sensingPower(fastSenseSec),
	}}
}

// MotionSensor models a PIR occupancy detector with a post-detection cooldown:
// after a trigger the element needs to settle before it can fire again.
type MotionSensor struct {
	baseSensor
	lastDetection time.Time
	cooldown      time.Duration
}

func NewMotionSensor(id, location string) *MotionSensor {
	b := newBaseSensor(id, types.ClassMotion, location)
	return &MotionSensor{
		baseSensor:    b,
		lastDetection: b.now().Add(-time.Hour),
		cooldown:      30 * time.Second,
	}
}

func (s *MotionSensor) Read() []types.SensorReading {
	now := s.now()
	hour := now.Hour()

	detectionProb := 0.1
	if 6 <= hour && hour <= 18 {
		detectionProb = 0.3
	}

	motion := 0.0
	if now.Sub(s.lastDetection) > s.cooldown && s.rnd.Float64() < detectionProb {
		motion = 1.0
		s.lastDetection = now
	}

	return []types.SensorReading{{
		Timestamp: now,
		SensorId:  s.dev.Id() + "_motion",
		Class:     types.ClassMotion,
		Value:     motion,
		Unit:      types.ClassMotion.Unit(),
		PowerMw:   s.sensingPower(fastSenseSec),
	}}
}
