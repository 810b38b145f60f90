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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransmissionPowerWithinReference(t *testing.T) {
	m := NewModel(nil, nil)

	assert.Equal(t, 50.0, m.TransmissionPower(0))
	assert.Equal(t, 50.0, m.TransmissionPower(5))
	assert.Equal(t, 50.0, m.TransmissionPower(10))
}

func TestTransmissionPowerBeyondReference(t *testing.T) {
	m := NewModel(nil, nil)

	// log-distance path loss with exponent 3.0 and 10m reference
	want := 50.0 * math.Pow(10, (3.0*math.Log10(40.0/10.0))/10)
	assert.InDelta(t, want, m.TransmissionPower(40), 1e-9)
	assert.Greater(t, m.TransmissionPower(11), 50.0)
}

func TestTransmissionPowerCapped(t *testing.T) {
	m := NewModel(nil, nil)

	assert.Equal(t, 200.0, m.TransmissionPower(1e6))
}

func TestTransmissionPowerMonotonic(t *testing.T) {
	m := NewModel(nil, nil)

	prev := 0.0
	for d := 1.0; d <= 100; d += 1.0 {
		p := m.TransmissionPower(d)
		assert.GreaterOrEqual(t, p, prev, "power must not decrease with distance (d=%v)", d)
		prev = p
	}
}

func TestFloorPlanDistances(t *testing.T) {
	fp := DefaultFloorPlan()

	d, ok := fp.Distance("Living Room")
	assert.True(t, ok)
	assert.InDelta(t, math.Sqrt(8*8+12*12), d, 1e-9)

	d, ok = fp.Distance("Back Yard")
	assert.True(t, ok)
	assert.InDelta(t, math.Sqrt(10*10+25*25), d, 1e-9)

	_, ok = fp.Distance("Garage")
	assert.False(t, ok)
	_, ok = fp.Distance("")
	assert.False(t, ok)

	assert.Equal(t, 8, len(fp.Locations()))
}

func TestDistanceUnknownLocationUsesParams(t *testing.T) {
	// unrecognized locations still get a plausible distance, taken from the
	// model parameters rather than a fixed constant
	assert.Equal(t, 50.0, NewModel(nil, nil).Distance("Garage"))

	params := NewParams()
	params.DefaultDistanceM = 80.0
	m := NewModel(params, nil)
	assert.Equal(t, 80.0, m.Distance("Garage"))
	assert.Equal(t, 80.0, m.Distance(""))
}

func TestTxPowerForLocation(t *testing.T) {
	m := NewModel(nil, nil)

	// Front Door is within the 10m reference distance
	assert.Equal(t, 50.0, m.TxPowerForLocation("Front Door"))

	// empty location means unknown origin at default power
	assert.Equal(t, 100.0, m.TxPowerForLocation(""))

	want := m.TransmissionPower(m.Distance("Back Yard"))
	assert.Equal(t, want, m.TxPowerForLocation("Back Yard"))
}

func TestCommPower(t *testing.T) {
	m := NewModel(nil, nil)

	// P_tx*t + P_rx*(0.1t) + P_idle*t_idle
	txTime := 0.05
	ptx := m.TxPowerForLocation("Kitchen")
	want := ptx*txTime + 50.0*(0.1*txTime) + 5.0*0.1
	assert.InDelta(t, want, m.CommPower(txTime, "Kitchen"), 1e-9)

	// zero transmission time still pays the idle listening cost
	assert.InDelta(t, 5.0*0.1, m.CommPower(0, "Kitchen"), 1e-9)
}
