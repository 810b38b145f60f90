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
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Adaptive  *AdaptiveCmd  `  @@` //nolint
	Agg       *AggCmd       `| @@` //nolint
	Alerts    *AlertsCmd    `| @@` //nolint
	Batch     *BatchCmd     `| @@` //nolint
	Counters  *CountersCmd  `| @@` //nolint
	Devices   *DevicesCmd   `| @@` //nolint
	DutyCycle *DutyCycleCmd `| @@` //nolint
	Energy    *EnergyCmd    `| @@` //nolint
	Exit      *ExitCmd      `| @@` //nolint
	Go        *GoCmd        `| @@` //nolint
	Help      *HelpCmd      `| @@` //nolint
	LogLevel  *LogLevelCmd  `| @@` //nolint
	Optimize  *OptimizeCmd  `| @@` //nolint
	Pause     *PauseCmd     `| @@` //nolint
	Pollution *PollutionCmd `| @@` //nolint
	Power     *PowerCmd     `| @@` //nolint
	Resume    *ResumeCmd    `| @@` //nolint
	Speed     *SpeedCmd     `| @@` //nolint
	Stats     *StatsCmd     `| @@` //nolint
}

// noinspection GoStructTag
type OnOrOff struct {
	On  *OnFlag  `( @@`   //nolint
	Off *OffFlag `| @@ )` //nolint
}

// noinspection GoStructTag
type OnFlag struct {
	Dummy struct{} `"on"` //nolint
}

// noinspection GoStructTag
type OffFlag struct {
	Dummy struct{} `"off"` //nolint
}

// noinspection GoStructTag
type AdaptiveCmd struct {
	Cmd  struct{} `"adaptive"` //nolint
	Mode *OnOrOff `[ @@ ]`     //nolint
}

// noinspection GoStructTag
type AggCmd struct {
	Cmd struct{} `"agg"`             //nolint
	Val *float64 `[ (@Int|@Float) ]` //nolint
}

// noinspection GoStructTag
type AlertsCmd struct {
	Cmd     struct{} `"alerts"`       //nolint
	Summary *string  `[ @"summary" ]` //nolint
}

// noinspection GoStructTag
type BatchCmd struct {
	Cmd     struct{} `"batch"`                            //nolint
	Mode    *OnOrOff `[ @@ ]`                             //nolint
	Size    *int     `[ "size" @Int ]`                    //nolint
	Timeout *float64 `[ ("timeout"|"to") (@Int|@Float) ]` //nolint
}

// noinspection GoStructTag
type CountersCmd struct {
	Cmd struct{} `"counters"` //nolint
}

// noinspection GoStructTag
type DevicesCmd struct {
	Cmd struct{} `"devices"` //nolint
}

// noinspection GoStructTag
type DutyCycleCmd struct {
	Cmd struct{} `"dutycycle"`       //nolint
	Val *float64 `[ (@Int|@Float) ]` //nolint
}

// noinspection GoStructTag
type EnergyCmd struct {
	Cmd  struct{} `"energy"`    //nolint
	Save *string  `[ @"save" ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

// noinspection GoStructTag
type GoCmd struct {
	Cmd    struct{} `"go"` //nolint
	Cycles int      `@Int` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                     //nolint
	Level string   `[@( "trace"|"debug"|"info"|"warn"|"error"|"off"|"none" )]` //nolint
}

// noinspection GoStructTag
type OptimizeCmd struct {
	Cmd  struct{} `"optimize"` //nolint
	Mode *OnOrOff `[ @@ ]`     //nolint
}

// noinspection GoStructTag
type PauseCmd struct {
	Cmd struct{} `"pause"` //nolint
}

// noinspection GoStructTag
type PollutionCmd struct {
	Cmd       struct{} `"pollution"`   //nolint
	Intensity float64  `(@Int|@Float)` //nolint
}

// noinspection GoStructTag
type PowerCmd struct {
	Cmd      struct{} `"power"`     //nolint
	Location *string  `[ @String ]` //nolint
}

// noinspection GoStructTag
type ResumeCmd struct {
	Cmd struct{} `"resume"` //nolint
}

// noinspection GoStructTag
type SpeedCmd struct {
	Cmd struct{} `"speed"`           //nolint
	Val *float64 `[ (@Int|@Float) ]` //nolint
}

// noinspection GoStructTag
type StatsCmd struct {
	Cmd  struct{} `"stats"`     //nolint
	Save *string  `[ @"save" ]` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func ParseBytes(b []byte, cmd *Command) error {
	err := commandParser.ParseBytes(b, cmd)
	return err
}
