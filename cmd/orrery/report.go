package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Step     time.Duration
	Seed     uint64
	Bodies   int
	Realtime bool

	// Results
	TotalTicks    int64
	TotalTime     time.Duration
	TickTime      Stats
	Systems       []ecs.SystemStats
	Clock         sim.Clock
	Meteors       sim.MeteorField
	Label         string
	Pose          sim.CameraPose
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Orrery Headless Report

## Run Configuration
- **Simulated Duration:** {{.Duration}}
- **Step:** {{.Step}}{{if .Realtime}} (wall-clock ticker){{end}}
- **Seed:** {{.Seed}}
- **Bodies:** {{.Bodies}}

## Simulation
- **Ticks:** {{.TotalTicks}} (clock frame {{.Clock.Frame}}, elapsed {{printf "%.3f" .Clock.Elapsed}}s)
- **Meteors:** {{.Meteors.Active}} active, {{.Meteors.Spawned}} spawned, {{.Meteors.Removed}} removed
- **Camera:** {{.Label}}
  - **Position:** {{vec .Pose.Position}}
  - **Look At:** {{vec .Pose.LookAt}}

## Performance Results
- **Total Wall Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"vec": func(v sim.Vec3) string {
		return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
