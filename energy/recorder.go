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

package energy

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/smarthome-sim/iot-ns/types"
)

// Sample is one recorded power snapshot with its cycle number and wall time.
type Sample struct {
	Cycle     uint64
	Timestamp time.Time
	Metrics   types.PowerMetrics
}

// Recorder keeps the per-cycle PowerMetrics history of a simulation run and
// can save it to tab-separated result files for offline analysis.
type Recorder struct {
	mu      sync.Mutex
	history []Sample
	title   string
}

// NewRecorder creates an empty power recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		history: make([]Sample, 0, 3600),
	}
}

// Add appends one cycle's snapshot.
func (r *Recorder) Add(cycle uint64, m types.PowerMetrics) {
	r.mu.Lock()
	r.history = append(r.history, Sample{Cycle: cycle, Timestamp: time.Now(), Metrics: m})
	r.mu.Unlock()
}

// Latest returns the most recent snapshot, or false when nothing was recorded yet.
func (r *Recorder) Latest() (Sample, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Sample{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns a copy of all recorded samples.
func (r *Recorder) History() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := make([]Sample, len(r.history))
	copy(h, r.history)
	return h
}

// Clear drops all recorded samples.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.history = make([]Sample, 0, 3600)
	r.mu.Unlock()
}

// SetTitle sets the default file name used by SaveToFile.
func (r *Recorder) SetTitle(title string) {
	r.mu.Lock()
	r.title = title
	r.mu.Unlock()
}

// SaveToFile writes the recorded history to energy_results/<name>.txt under
// the current directory. An empty name uses the recorder title, or "energy".
func (r *Recorder) SaveToFile(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		if r.title == "" {
			name = "energy"
		} else {
			name = r.title
		}
	}

	dir, _ := os.Getwd()
	resultsDir := dir + "/energy_results"
	if _, err := os.Stat(resultsDir); os.IsNotExist(err) {
		if err := os.Mkdir(resultsDir, 0777); err != nil {
			return errors.Wrap(err, "failed to create energy_results directory")
		}
	}

	path := fmt.Sprintf("%s/%s.txt", resultsDir, name)
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating file %s", path)
	}
	defer file.Close()

	fmt.Fprintf(file, "Recorded simulation cycles: %d\n", len(r.history))
	fmt.Fprintf(file, "Cycle\tSensing (mW)\tComm (mW)\tProcessing (mW)\tSleep (mW)\tTotal (mW)\n")
	for _, s := range r.history {
		fmt.Fprintf(file, "%d\t%f\t%f\t%f\t%f\t%f\n",
			s.Cycle,
			s.Metrics.SensingMw,
			s.Metrics.CommMw,
			s.Metrics.ProcessingMw,
			s.Metrics.SleepMw,
			s.Metrics.TotalMw,
		)
	}
	return nil
}
