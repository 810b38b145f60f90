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
	"sort"
)

// Point is a position in the 2-D floor plan, in meters.
type Point struct {
	X float64
	Y float64
}

// FloorPlan maps named locations to coordinates relative to the home gateway.
// The table is read-only after construction.
type FloorPlan struct {
	gateway   Point
	locations map[string]Point
}

// DefaultFloorPlan returns the smart-home floor plan with the gateway (WiFi
// router) at the origin.
func DefaultFloorPlan() *FloorPlan {
	return &FloorPlan{
		gateway: Point{0, 0},
		locations: map[string]Point{
			"Living Room":    {8, 12},
			"Master Bedroom": {15, 20},
			"Kitchen":        {6, 8},
			"Guest Bedroom":  {20, 18},
			"Bathroom":       {12, 6},
			"Home Office":    {25, 15},
			"Front Door":     {3, 5},
			"Back Yard":      {10, 25},
		},
	}
}

// Distance returns the Euclidean distance (m) from the gateway to the named
// location, and whether the location is known. The fallback distance for
// unknown names is a model parameter, applied by Model.Distance.
func (fp *FloorPlan) Distance(location string) (float64, bool) {
	pos, ok := fp.locations[location]
	if !ok {
		return 0, false
	}
	return math.Sqrt((pos.X-fp.gateway.X)*(pos.X-fp.gateway.X) +
		(pos.Y-fp.gateway.Y)*(pos.Y-fp.gateway.Y)), true
}

// Locations returns the known location names, sorted.
func (fp *FloorPlan) Locations() []string {
	names := make([]string, 0, len(fp.locations))
	for name := range fp.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
