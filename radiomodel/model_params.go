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

// Package radiomodel computes the distance-dependent transmission power of the
// simulated wireless link between sensors and the home gateway.
package radiomodel

// default radio model parameters for an indoor smart-home deployment
const (
	defaultMinTxPowerMw     = 50.0  // minimum transmission power (mW)
	defaultMaxTxPowerMw     = 200.0 // cap to keep transmission power realistic (mW)
	defaultRefDistanceM     = 10.0  // path-loss reference distance (m)
	defaultPathLossExponent = 3.0   // indoor environments measure 2.7-3.5 typically
	defaultRxPowerMw        = 50.0  // ACK reception power (mW)
	defaultIdlePowerMw      = 5.0   // idle power between operations (mW)
	defaultIdleTimeSec      = 0.1   // idle time charged per transmission (s)
	defaultTxPowerMw        = 100.0 // transmission power when no location is known (mW)
	defaultDistanceM        = 50.0  // fallback distance for unknown locations (m)
)

// Params stores the model parameters of the radio link.
type Params struct {
	MinTxPowerMw     float64 // lowest transmission power the radio emits (mW)
	MaxTxPowerMw     float64 // highest transmission power the radio emits (mW)
	RefDistanceM     float64 // reference distance of the path-loss model (m)
	PathLossExponent float64 // rate at which required power grows with distance
	RxPowerMw        float64 // reception power while awaiting the ACK (mW)
	IdlePowerMw      float64 // idle power between operations (mW)
	IdleTimeSec      float64 // idle time charged per transmission (s)
	DefaultTxPowerMw float64 // transmission power used without location info (mW)
	DefaultDistanceM float64 // distance assumed for unknown location names (m)
}

// NewParams gets a new set of parameters with default values, as a basis to configure further.
func NewParams() *Params {
	return &Params{
		MinTxPowerMw:     defaultMinTxPowerMw,
		MaxTxPowerMw:     defaultMaxTxPowerMw,
		RefDistanceM:     defaultRefDistanceM,
		PathLossExponent: defaultPathLossExponent,
		RxPowerMw:        defaultRxPowerMw,
		IdlePowerMw:      defaultIdlePowerMw,
		IdleTimeSec:      defaultIdleTimeSec,
		DefaultTxPowerMw: defaultTxPowerMw,
		DefaultDistanceM: defaultDistanceM,
	}
}
