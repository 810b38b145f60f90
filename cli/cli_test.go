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

package cli

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	err := ParseBytes([]byte("wrongcmd"), &cmd)
	assert.NotNil(t, err)

	assert.True(t, ParseBytes([]byte("adaptive"), &cmd) == nil && cmd.Adaptive != nil && cmd.Adaptive.Mode == nil)
	assert.True(t, ParseBytes([]byte("adaptive on"), &cmd) == nil && cmd.Adaptive.Mode.On != nil)
	assert.True(t, ParseBytes([]byte("adaptive off"), &cmd) == nil && cmd.Adaptive.Mode.Off != nil)

	assert.True(t, ParseBytes([]byte("agg"), &cmd) == nil && cmd.Agg != nil && cmd.Agg.Val == nil)
	assert.True(t, ParseBytes([]byte("agg 0.6"), &cmd) == nil && *cmd.Agg.Val == 0.6)
	assert.True(t, ParseBytes([]byte("agg 1"), &cmd) == nil && *cmd.Agg.Val == 1)

	assert.True(t, ParseBytes([]byte("alerts"), &cmd) == nil && cmd.Alerts != nil && cmd.Alerts.Summary == nil)
	assert.True(t, ParseBytes([]byte("alerts summary"), &cmd) == nil && cmd.Alerts.Summary != nil)

	assert.True(t, ParseBytes([]byte("batch"), &cmd) == nil && cmd.Batch != nil && cmd.Batch.Mode == nil)
	assert.True(t, ParseBytes([]byte("batch on"), &cmd) == nil && cmd.Batch.Mode.On != nil)
	assert.True(t, ParseBytes([]byte("batch off"), &cmd) == nil && cmd.Batch.Mode.Off != nil)
	assert.Nil(t, ParseBytes([]byte("batch on size 8 timeout 2"), &cmd))
	assert.True(t, cmd.Batch.Mode.On != nil && *cmd.Batch.Size == 8 && *cmd.Batch.Timeout == 2)
	assert.Nil(t, ParseBytes([]byte("batch on size 8 to 1.5"), &cmd))
	assert.True(t, *cmd.Batch.Size == 8 && *cmd.Batch.Timeout == 1.5)

	assert.True(t, ParseBytes([]byte("counters"), &cmd) == nil && cmd.Counters != nil)
	assert.True(t, ParseBytes([]byte("devices"), &cmd) == nil && cmd.Devices != nil)

	assert.True(t, ParseBytes([]byte("dutycycle"), &cmd) == nil && cmd.DutyCycle != nil && cmd.DutyCycle.Val == nil)
	assert.True(t, ParseBytes([]byte("dutycycle 0.5"), &cmd) == nil && *cmd.DutyCycle.Val == 0.5)

	assert.True(t, ParseBytes([]byte("energy"), &cmd) == nil && cmd.Energy != nil && cmd.Energy.Save == nil)
	assert.True(t, ParseBytes([]byte("energy save"), &cmd) == nil && cmd.Energy.Save != nil)

	assert.True(t, ParseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)

	assert.True(t, ParseBytes([]byte("go 10"), &cmd) == nil && cmd.Go != nil && cmd.Go.Cycles == 10)
	assert.NotNil(t, ParseBytes([]byte("go"), &cmd))

	assert.True(t, ParseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil)
	assert.True(t, ParseBytes([]byte("help batch"), &cmd) == nil && cmd.Help.HelpTopic == "batch")

	assert.True(t, ParseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel != nil && cmd.LogLevel.Level == "")
	assert.True(t, ParseBytes([]byte("log debug"), &cmd) == nil && cmd.LogLevel.Level == "debug")
	assert.True(t, ParseBytes([]byte("log info"), &cmd) == nil && cmd.LogLevel.Level == "info")
	assert.True(t, ParseBytes([]byte("log warn"), &cmd) == nil && cmd.LogLevel.Level == "warn")
	assert.True(t, ParseBytes([]byte("log error"), &cmd) == nil && cmd.LogLevel.Level == "error")
	assert.NotNil(t, ParseBytes([]byte("log fatal"), &cmd)) // not supported.

	assert.True(t, ParseBytes([]byte("optimize"), &cmd) == nil && cmd.Optimize != nil && cmd.Optimize.Mode == nil)
	assert.True(t, ParseBytes([]byte("optimize on"), &cmd) == nil && cmd.Optimize.Mode.On != nil)
	assert.True(t, ParseBytes([]byte("optimize off"), &cmd) == nil && cmd.Optimize.Mode.Off != nil)

	assert.True(t, ParseBytes([]byte("pause"), &cmd) == nil && cmd.Pause != nil)
	assert.True(t, ParseBytes([]byte("resume"), &cmd) == nil && cmd.Resume != nil)

	assert.True(t, ParseBytes([]byte("pollution 40"), &cmd) == nil && cmd.Pollution != nil && cmd.Pollution.Intensity == 40)
	assert.True(t, ParseBytes([]byte("pollution 12.5"), &cmd) == nil && cmd.Pollution.Intensity == 12.5)
	assert.NotNil(t, ParseBytes([]byte("pollution"), &cmd))

	assert.True(t, ParseBytes([]byte("power"), &cmd) == nil && cmd.Power != nil && cmd.Power.Location == nil)
	assert.True(t, ParseBytes([]byte("power \"Back Yard\""), &cmd) == nil && *cmd.Power.Location == "Back Yard")

	assert.True(t, ParseBytes([]byte("speed"), &cmd) == nil && cmd.Speed != nil && cmd.Speed.Val == nil)
	assert.True(t, ParseBytes([]byte("speed 1.5"), &cmd) == nil && *cmd.Speed.Val == 1.5)

	assert.True(t, ParseBytes([]byte("stats"), &cmd) == nil && cmd.Stats != nil && cmd.Stats.Save == nil)
	assert.True(t, ParseBytes([]byte("stats save"), &cmd) == nil && cmd.Stats.Save != nil)
}

type mockCliHandler struct {
	expectedCmd string
	handleError error
	handleCount int
	t           *testing.T
}

func (hnd *mockCliHandler) HandleCommand(cmd string, output io.Writer) error {
	assert.Equal(hnd.t, hnd.expectedCmd, cmd)
	hnd.handleCount += 1
	return hnd.handleError
}

func (hnd *mockCliHandler) GetPrompt() string {
	return Prompt
}

func TestCliStartStop(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "help",
		handleError: nil,
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "help\n")
	time.Sleep(time.Millisecond * 500)
	_ = w.Close()
	Cli.Stop()

	assert.Nil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)
}

func TestCliCommandNotDefined(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "xyz",
		handleError: fmt.Errorf("undefined command"),
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "xyz\n") // unknown command triggers handle-error, which causes CLI exit.

	assert.NotNil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)

	Cli.Stop() // calling Stop() after CLI has already exited.
}
