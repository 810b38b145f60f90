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

// Package iotns_main assembles and runs the smart-home energy simulator: flag
// parsing, signal handling, the simulation loop and the interactive CLI.
package iotns_main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/smarthome-sim/iot-ns/cli"
	"github.com/smarthome-sim/iot-ns/logger"
	"github.com/smarthome-sim/iot-ns/prng"
	"github.com/smarthome-sim/iot-ns/progctx"
	"github.com/smarthome-sim/iot-ns/simulation"
)

type MainArgs struct {
	ConfigFile string
	LogLevel   string
	Seed       int64
	Speed      float64
	AutoGo     bool
	Optimize   bool
	Adaptive   bool
	NoBatch    bool
	OutputName string
}

var (
	args MainArgs
)

func parseArgs() {
	flag.StringVar(&args.ConfigFile, "config", "", "load simulation config from a YAML file")
	flag.StringVar(&args.LogLevel, "log", "info", "set logging level: trace, debug, info, warn, error.")
	flag.Int64Var(&args.Seed, "seed", 0, "set the random seed for a reproducible run (0 selects a time-based seed)")
	flag.Float64Var(&args.Speed, "speed", 1.0, "set simulating speed")
	flag.BoolVar(&args.AutoGo, "autogo", true, "auto go (runs simulation cycles at given speed, without issuing 'go' commands.)")
	flag.BoolVar(&args.Optimize, "optimize", false, "enable the energy optimization strategies (aggregation and duty cycling)")
	flag.BoolVar(&args.Adaptive, "adaptive", false, "enable the adaptive progressive-sleep controller")
	flag.BoolVar(&args.NoBatch, "no-batch", false, "disable batched transmission on the channel")
	flag.StringVar(&args.OutputName, "output", "smarthome", "base name for the energy and statistics output files")

	flag.Parse()
}

// buildConfig merges the defaults, the optional config file and the command
// line flags, in increasing priority.
func buildConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	if args.ConfigFile != "" {
		var err error
		cfg, err = simulation.LoadConfigFile(args.ConfigFile)
		logger.FatalIfError(err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = prng.RandomSeed(args.Seed)
		case "speed":
			cfg.Speed = args.Speed
		case "autogo":
			cfg.AutoGo = args.AutoGo
		case "optimize":
			cfg.OptimizationEnabled = args.Optimize
		case "adaptive":
			cfg.AdaptiveSleep = args.Adaptive
		case "no-batch":
			cfg.BatchEnabled = !args.NoBatch
		case "output":
			cfg.OutputName = args.OutputName
		}
	})
	return cfg
}

func Main(ctx *progctx.ProgCtx, cliOptions *cli.CliOptions) {
	parseArgs()
	logger.SetLevel(logger.ParseLevel(args.LogLevel))

	cfg := buildConfig()
	prng.Init(int64(cfg.Seed))

	// run console in the main goroutine
	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})

	handleSignals(ctx)

	sim := simulation.NewSimulation(ctx, cfg)
	rt := cli.NewCmdRunner(ctx, sim)
	logger.SetStdoutCallback(cli.Cli)

	go sim.Run()

	err := cli.Cli.Run(rt, cliOptions)
	ctx.Cancel(errors.Wrapf(err, "console exit"))

	logger.Debugf("waiting for the simulator to stop gracefully ...")
	ctx.Wait()

	if err := sim.SaveEnergy(); err != nil {
		logger.Errorf("saving energy results: %v", err)
	}
	if err := sim.SaveStats(); err != nil {
		logger.Errorf("saving run statistics: %v", err)
	}
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	signal.Ignore(syscall.SIGALRM)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer logger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
				go func() {
					// give the CLI a moment to unblock, then force it closed
					time.Sleep(100 * time.Millisecond)
					cli.Cli.Stop()
				}()
			case <-ctx.Done():
				return
			}
		}
	}()
}
