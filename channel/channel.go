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

// Package channel simulates the lossy wireless uplink between the sensors and
// the home gateway: per-message success probability, retry cost, and batched
// delivery with an efficiency discount. It is a numeric model only; no real
// transport is involved.
package channel

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/prng"
	"github.com/smarthome-sim/iot-ns/radiomodel"
)

// Params stores the tunables of the simulated link.
type Params struct {
	SingleSuccessProb float64       // delivery probability of a singleton publish
	BatchSuccessProb  float64       // delivery probability of a batched flush (grouped delivery is more complex)
	SingleRateBps     float64       // effective singleton link rate (bytes/s)
	BatchRateBps      float64       // effective batched link rate (bytes/s)
	QueueTimeFraction float64       // fraction of the transmission time charged when a message is queued
	RetryPowerFactor  float64       // power multiplier of a failed singleton publish
	BatchRetryFactor  float64       // power multiplier of a failed batch flush
	EfficiencyStep    float64       // per-message power saving of a batch
	EfficiencyFloor   float64       // lower bound of the batch efficiency factor
	BatchSizeLimit    int           // flush the batch when it reaches this many messages
	BatchTimeout      time.Duration // flush a partial batch after this long
}

// DefaultParams returns the link tunables used by the original deployment model.
func DefaultParams() *Params {
	return &Params{
		SingleSuccessProb: 0.95,
		BatchSuccessProb:  0.93,
		SingleRateBps:     1000,
		BatchRateBps:      1200,
		QueueTimeFraction: 0.2,
		RetryPowerFactor:  2.0,
		BatchRetryFactor:  1.5,
		EfficiencyStep:    0.1,
		EfficiencyFloor:   0.5,
		BatchSizeLimit:    5,
		BatchTimeout:      3 * time.Second,
	}
}

// Counters are the channel-wide delivery totals. They are owned by one Channel
// instance; callers that need them read a copy via Counters().
type Counters struct {
	MessagesSent uint64 `json:"messages_sent" yaml:"messages_sent"`
	BytesSent    uint64 `json:"bytes_sent" yaml:"bytes_sent"`
	Retries      uint64 `json:"retries" yaml:"retries"`
}

// message is one queued descriptor awaiting batch flush.
type message struct {
	topic    string
	size     int
	txTime   float64
	location string
}

// Channel simulates publishing messages to the gateway. All publish paths,
// including batch append and flush, run under one lock: flush decisions need a
// consistent view of batch length and elapsed time.
type Channel struct {
	mu       sync.Mutex
	params   *Params
	model    *radiomodel.Model
	rnd      *rand.Rand
	counters Counters

	batchEnabled bool
	batch        []message
	lastFlush    time.Time

	now func() time.Time // for tests
}

// NewChannel creates a channel over the given radio model with batch mode
// enabled. Nil params select the defaults.
func NewChannel(model *radiomodel.Model, params *Params) *Channel {
	if params == nil {
		params = DefaultParams()
	}
	c := &Channel{
		params:       params,
		model:        model,
		rnd:          rand.New(rand.NewSource(int64(prng.NewChannelRandomSeed()))),
		batchEnabled: true,
		now:          time.Now,
	}
	c.lastFlush = c.now()
	return c
}

// Counters returns a copy of the channel-wide delivery totals.
func (c *Channel) Counters() Counters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters
}

// BatchEnabled reports whether publishes are being batched.
func (c *Channel) BatchEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batchEnabled
}

// PendingBatch returns the number of queued, unflushed messages.
func (c *Channel) PendingBatch() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batch)
}

// SetBatchParams configures batch transmission. Size is floored at 1 message
// and timeout at 500ms. Disabling batch mode flushes any in-flight batch first,
// so queued state is never silently invalidated.
func (c *Channel) SetBatchParams(enabled bool, size int, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !enabled && c.batchEnabled && len(c.batch) > 0 {
		ok, power := c.flushLocked("")
		logger.Debugf("channel: flushed pending batch on batch-mode disable (ok=%v, power=%.2f mW)", ok, power)
	}
	c.batchEnabled = enabled
	if size > 0 {
		c.params.BatchSizeLimit = size
		// a shrunk limit must not leave the next flush over-full
		if c.batchEnabled && len(c.batch) >= size {
			ok, power := c.flushLocked("")
			logger.Debugf("channel: flushed pending batch on size-limit change (ok=%v, power=%.2f mW)", ok, power)
		}
	}
	if timeout > 0 {
		if timeout < 500*time.Millisecond {
			timeout = 500 * time.Millisecond
		}
		c.params.BatchTimeout = timeout
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	logger.Infof("channel: batch mode %s, size: %d, timeout: %v", status, c.params.BatchSizeLimit, c.params.BatchTimeout)
}

// Publish simulates sending one message to the gateway. The payload is
// serialized to derive the message size; the location name (may be empty)
// selects the distance-based transmission power. It returns whether delivery
// succeeded and the power consumed (mW). A failed publish is an expected,
// first-class outcome; retrying is up to the caller.
func (c *Channel) Publish(topic string, payload interface{}, location string) (bool, float64) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("channel: cannot serialize payload for %s: %v", topic, err)
		return false, 0
	}
	size := len(data)
	txTime := float64(size) / c.params.SingleRateBps

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.batchEnabled {
		return c.batchMessage(topic, size, txTime, location)
	}
	return c.publishSingle(topic, size, txTime, location)
}

// publishSingle sends one message immediately. Success draws with probability
// SingleSuccessProb; failure charges double, modeling the wasted first attempt
// plus the resend.
func (c *Channel) publishSingle(topic string, size int, txTime float64, location string) (bool, float64) {
	power := c.model.CommPower(txTime, location)

	if c.rnd.Float64() < c.params.SingleSuccessProb {
		c.counters.MessagesSent++
		c.counters.BytesSent += uint64(size)
		if location != "" {
			logger.Debugf("channel: published to %s from %s (distance: %.1fm), size: %d bytes, power: %.2f mW",
				topic, location, c.model.Distance(location), size, power)
		} else {
			logger.Debugf("channel: published to %s, size: %d bytes, power: %.2f mW", topic, size, power)
		}
		return true, power
	}

	c.counters.Retries++
	logger.Warnf("channel: retry for topic %s from location %q", topic, location)
	return false, power * c.params.RetryPowerFactor
}
