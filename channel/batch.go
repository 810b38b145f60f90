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

package channel

import (
	"math"

	"github.com/smarthome-sim/iot-ns/logger"
)

// batchMessage queues a message for grouped transmission. Queuing itself costs
// power: the comm-power formula with the transmission time scaled down by
// QueueTimeFraction, charged unconditionally at enqueue time. The batch state
// machine is Accumulating -> (size >= limit or elapsed > timeout) -> Flushing
// -> Accumulating; flush is synchronous within the publish call that triggers it.
// Must be called with c.mu held.
func (c *Channel) batchMessage(topic string, size int, txTime float64, location string) (bool, float64) {
	c.batch = append(c.batch, message{
		topic:    topic,
		size:     size,
		txTime:   txTime,
		location: location,
	})

	queuingPower := c.model.CommPower(txTime*c.params.QueueTimeFraction, location)

	batchFull := len(c.batch) >= c.params.BatchSizeLimit
	timeoutReached := c.now().Sub(c.lastFlush) > c.params.BatchTimeout
	if !batchFull && !timeoutReached {
		// actual transmission happens on a later flush
		return true, queuingPower
	}

	ok, share := c.flushLocked(location)
	return ok, queuingPower + share
}

// flushLocked transmits the whole batch as one grouped delivery and returns
// the per-message share of the flush cost. The batch is cleared and the flush
// timer reset regardless of the outcome; a failed batch is not retried here.
// Must be called with c.mu held.
func (c *Channel) flushLocked(triggerLocation string) (bool, float64) {
	batchLen := len(c.batch)
	if batchLen == 0 {
		c.lastFlush = c.now()
		return true, 0
	}

	totalSize := 0
	for _, msg := range c.batch {
		totalSize += msg.size
	}
	// batched transfer is modeled as 20% faster per byte than singleton transfer
	batchTxTime := float64(totalSize) / c.params.BatchRateBps

	// average the transmission power across the distinct locations represented,
	// not per-message weighted
	distinct := make(map[string]struct{})
	for _, msg := range c.batch {
		if msg.location != "" {
			distinct[msg.location] = struct{}{}
		}
	}

	var batchPower float64
	if triggerLocation != "" && len(distinct) > 0 {
		sumDist := 0.0
		for loc := range distinct {
			sumDist += c.model.Distance(loc)
		}
		avgDist := sumDist / float64(len(distinct))
		batchPower = c.model.TransmissionPower(avgDist) * batchTxTime
	} else {
		batchPower = c.model.CommPower(batchTxTime, triggerLocation)
	}

	// each additional message in the batch saves proportionally more power
	efficiency := math.Max(c.params.EfficiencyFloor, 1.0-c.params.EfficiencyStep*float64(batchLen))
	batchPower *= efficiency

	ok := c.rnd.Float64() < c.params.BatchSuccessProb
	if ok {
		c.counters.MessagesSent += uint64(batchLen)
		c.counters.BytesSent += uint64(totalSize)
		logger.Debugf("channel: batch published %d messages, size: %d bytes, power: %.2f mW, efficiency: %.0f%% saving",
			batchLen, totalSize, batchPower, (1-efficiency)*100)
	} else {
		c.counters.Retries++
		// failed batch costs more due to retry overhead
		batchPower *= c.params.BatchRetryFactor
		logger.Warnf("channel: failed batch transmission of %d messages", batchLen)
	}

	c.batch = c.batch[:0]
	c.lastFlush = c.now()

	return ok, batchPower / math.Max(float64(batchLen), 1)
}
