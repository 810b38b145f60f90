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

// Package cli is the interactive command line of the simulator: the live
// tuning surface for the optimizer, the channel and the run loop.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/progctx"
	"github.com/smarthome-sim/iot-ns/simulation"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

type CmdRunner struct {
	sim  *simulation.Simulation
	ctx  *progctx.ProgCtx
	help Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	return &CmdRunner{
		ctx:  ctx,
		sim:  sim,
		help: newHelp(),
	}
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := ParseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Adaptive != nil {
		rt.executeAdaptive(cc, cmd.Adaptive)
	} else if cmd.Agg != nil {
		rt.executeAgg(cc, cmd.Agg)
	} else if cmd.Alerts != nil {
		rt.executeAlerts(cc, cmd.Alerts)
	} else if cmd.Batch != nil {
		rt.executeBatch(cc, cmd.Batch)
	} else if cmd.Counters != nil {
		rt.executeCounters(cc)
	} else if cmd.Devices != nil {
		rt.executeDevices(cc)
	} else if cmd.DutyCycle != nil {
		rt.executeDutyCycle(cc, cmd.DutyCycle)
	} else if cmd.Energy != nil {
		rt.executeEnergy(cc, cmd.Energy)
	} else if cmd.Exit != nil {
		rt.executeExit(cc)
	} else if cmd.Go != nil {
		rt.executeGo(cc, cmd.Go)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Optimize != nil {
		rt.executeOptimize(cc, cmd.Optimize)
	} else if cmd.Pause != nil {
		rt.sim.Pause()
	} else if cmd.Pollution != nil {
		rt.sim.TriggerPollutionEvent(cmd.Pollution.Intensity)
	} else if cmd.Power != nil {
		rt.executePower(cc, cmd.Power)
	} else if cmd.Resume != nil {
		rt.sim.Resume()
	} else if cmd.Speed != nil {
		rt.executeSpeed(cc, cmd.Speed)
	} else if cmd.Stats != nil {
		rt.executeStats(cc, cmd.Stats)
	} else {
		cc.errorf("unimplemented command")
	}
}

func (rt *CmdRunner) executeAdaptive(cc *CommandContext, cmd *AdaptiveCmd) {
	if cmd.Mode == nil {
		cc.outputf("adaptive sleep: %v, level: %d\n", rt.sim.Optimizer().Adaptive(), rt.sim.Optimizer().SleepLevel())
		return
	}
	rt.sim.Optimizer().EnableAdaptive(cmd.Mode.On != nil)
}

func (rt *CmdRunner) executeAgg(cc *CommandContext, cmd *AggCmd) {
	if cmd.Val == nil {
		cc.outputf("aggregation factor: %.2f\n", rt.sim.Optimizer().AggregationFactor())
		return
	}
	if !rt.sim.Optimizer().UpdateParams(rt.sim.Devices(), nil, cmd.Val) {
		cc.outputf("value %.2f out of range [0.1, 1.0], ignored\n", *cmd.Val)
	}
}

func (rt *CmdRunner) executeAlerts(cc *CommandContext, cmd *AlertsCmd) {
	if cmd.Summary != nil {
		cc.outputItemsAsYaml(rt.sim.Checker().Summary())
		return
	}
	for _, a := range rt.sim.Checker().History() {
		cc.outputf("%s [%s] %s\n", a.Timestamp.Format(time.RFC3339), a.Severity, a.Message)
	}
}

func (rt *CmdRunner) executeBatch(cc *CommandContext, cmd *BatchCmd) {
	ch := rt.sim.Channel()
	if cmd.Mode == nil && cmd.Size == nil && cmd.Timeout == nil {
		cc.outputf("batch mode: %v, pending: %d\n", ch.BatchEnabled(), ch.PendingBatch())
		return
	}

	enabled := ch.BatchEnabled()
	if cmd.Mode != nil {
		enabled = cmd.Mode.On != nil
	}
	size := 0
	if cmd.Size != nil {
		size = *cmd.Size
	}
	var timeout time.Duration
	if cmd.Timeout != nil {
		timeout = time.Duration(*cmd.Timeout * float64(time.Second))
	}
	ch.SetBatchParams(enabled, size, timeout)
}

func (rt *CmdRunner) executeCounters(cc *CommandContext) {
	cc.outputItemsAsYaml(rt.sim.Channel().Counters())
}

func (rt *CmdRunner) executeDevices(cc *CommandContext) {
	model := rt.sim.Model()
	for _, d := range rt.sim.Devices() {
		cc.outputf("%-16s %-12s %-16s distance: %5.1fm, duty cycle: %.0f%%\n",
			d.Id(), d.Class(), d.Location(), model.Distance(d.Location()), d.DutyCycle()*100)
	}
}

func (rt *CmdRunner) executeDutyCycle(cc *CommandContext, cmd *DutyCycleCmd) {
	if cmd.Val == nil {
		cc.outputf("duty cycle: %.2f\n", rt.sim.Optimizer().DutyCycle())
		return
	}
	if !rt.sim.Optimizer().UpdateParams(rt.sim.Devices(), cmd.Val, nil) {
		cc.outputf("value %.2f out of range [0.1, 1.0], ignored\n", *cmd.Val)
	}
}

func (rt *CmdRunner) executeEnergy(cc *CommandContext, cmd *EnergyCmd) {
	if cmd.Save != nil {
		cc.error(rt.sim.SaveEnergy())
		return
	}
	sample, ok := rt.sim.Recorder().Latest()
	if !ok {
		cc.outputf("no cycles recorded yet\n")
		return
	}
	cc.outputf("cycle %d:\n", sample.Cycle)
	cc.outputItemsAsYaml(sample.Metrics)
}

func (rt *CmdRunner) executeExit(cc *CommandContext) {
	rt.ctx.Cancel(nil)
}

func (rt *CmdRunner) executeGo(cc *CommandContext, cmd *GoCmd) {
	if cmd.Cycles <= 0 {
		cc.errorf("cycle count must be positive")
		return
	}
	rt.sim.Step(cmd.Cycles)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if cmd.HelpTopic == "" {
		cc.outputf("%s", rt.help.outputGeneralHelp())
	} else {
		cc.outputf("%s", rt.help.outputCommandHelp(cmd.HelpTopic))
	}
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("log level: %s\n", logger.GetLevel())
		return
	}
	logger.SetLevel(logger.ParseLevel(cmd.Level))
}

func (rt *CmdRunner) executeOptimize(cc *CommandContext, cmd *OptimizeCmd) {
	opt := rt.sim.Optimizer()
	if cmd.Mode == nil {
		cc.outputf("optimization: %v\n", opt.Enabled())
		return
	}
	enabled := cmd.Mode.On != nil
	opt.SetEnabled(enabled)
	if enabled {
		opt.EnableDutyCycling(rt.sim.Devices(), 0)
	}
}

func (rt *CmdRunner) executePower(cc *CommandContext, cmd *PowerCmd) {
	model := rt.sim.Model()
	if cmd.Location != nil {
		loc := *cmd.Location
		cc.outputf("%-16s distance: %5.1fm, tx power: %6.2f mW\n",
			loc, model.Distance(loc), model.TxPowerForLocation(loc))
		return
	}
	for _, loc := range model.Locations() {
		cc.outputf("%-16s distance: %5.1fm, tx power: %6.2f mW\n",
			loc, model.Distance(loc), model.TxPowerForLocation(loc))
	}
}

func (rt *CmdRunner) executeSpeed(cc *CommandContext, cmd *SpeedCmd) {
	if cmd.Val == nil {
		cc.outputf("speed: %v\n", rt.sim.Speed())
		return
	}
	rt.sim.SetSpeed(*cmd.Val)
}

func (rt *CmdRunner) executeStats(cc *CommandContext, cmd *StatsCmd) {
	if cmd.Save != nil {
		cc.error(rt.sim.SaveStats())
		return
	}
	cc.outputItemsAsYaml(rt.sim.Stats())
}
