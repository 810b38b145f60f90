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

package radiomodel

import "math"

// Model combines the path-loss parameters with a floor plan, giving the
// distance-aware power figures the communication channel charges for.
type Model struct {
	params *Params
	plan   *FloorPlan
}

// NewModel creates a radio model. Nil arguments select the defaults.
func NewModel(params *Params, plan *FloorPlan) *Model {
	if params == nil {
		params = NewParams()
	}
	if plan == nil {
		plan = DefaultFloorPlan()
	}
	return &Model{params: params, plan: plan}
}

func (m *Model) Params() *Params {
	return m.params
}

// Distance returns the gateway distance (m) for a named location. An
// unrecognized name must still produce a plausible transmission cost, so it
// falls back to DefaultDistanceM rather than erroring.
func (m *Model) Distance(location string) float64 {
	if d, ok := m.plan.Distance(location); ok {
		return d
	}
	return m.params.DefaultDistanceM
}

// Locations returns the known location names of the floor plan.
func (m *Model) Locations() []string {
	return m.plan.Locations()
}

// TransmissionPower computes the transmission power (mW) required to reach the
// gateway from the given distance, using a log-distance path-loss model:
//
//	Ptx = Pmin * 10^((n * log10(d/dRef)) / 10)
//
// Within the reference distance the radio emits at its minimum power; beyond
// it the requirement grows with the path-loss exponent, capped at MaxTxPowerMw.
// Pure and total for distance >= 0.
func (m *Model) TransmissionPower(distance float64) float64 {
	p := m.params
	if distance <= p.RefDistanceM {
		return p.MinTxPowerMw
	}
	powerRatio := math.Pow(10, (p.PathLossExponent*math.Log10(distance/p.RefDistanceM))/10)
	return math.Min(p.MinTxPowerMw*powerRatio, p.MaxTxPowerMw)
}

// TxPowerForLocation resolves a location name to the transmission power (mW)
// needed from there. An empty location selects DefaultTxPowerMw.
func (m *Model) TxPowerForLocation(location string) float64 {
	if location == "" {
		return m.params.DefaultTxPowerMw
	}
	return m.TransmissionPower(m.Distance(location))
}

// CommPower is the full power cost (mW) of one transmission taking txTime
// seconds: P_tx * t_tx + P_rx * t_rx + P_idle * t_idle, with ACK reception
// estimated at a tenth of the transmission time.
func (m *Model) CommPower(txTime float64, location string) float64 {
	p := m.params
	ptx := m.TxPowerForLocation(location)
	trx := txTime * 0.1
	return ptx*txTime + p.RxPowerMw*trx + p.IdlePowerMw*p.IdleTimeSec
}
