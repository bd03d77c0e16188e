package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/ecs"
)

// Report collects the configuration and measurements of one stress run.
type Report struct {
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int

	Frames    FrameTimes
	TotalTime time.Duration
	Spawned   int
	Destroyed int
	World     *ecs.WorldStats
	Scheduler *ecs.SchedulerStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// FrameTimes accumulates the duration of every Scheduler.Once call.
type FrameTimes struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration

	samples []time.Duration
}

func (f *FrameTimes) Record(d time.Duration) {
	f.samples = append(f.samples, d)
	f.Count++
}

// Finalize computes the summary from the recorded samples.
func (f *FrameTimes) Finalize() {
	if len(f.samples) == 0 {
		return
	}

	sorted := slices.Clone(f.samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}

	f.Min = sorted[0]
	f.Max = sorted[len(sorted)-1]
	f.Avg = total / time.Duration(len(sorted))
	f.P50 = percentile(sorted, 50)
	f.P95 = percentile(sorted, 95)
	f.P99 = percentile(sorted, 99)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	i := (len(sorted) - 1) * p / 100
	return sorted[i]
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}).Parse(`
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Registered Components:** {{.Components}}
- **Systems:** {{.Systems}}

## Frame Times
- **Frames:** {{.Frames.Count}} in {{.TotalTime}}
- **Avg:** {{.Frames.Avg}}
- **Min / Max:** {{.Frames.Min}} / {{.Frames.Max}}
- **p50 / p95 / p99:** {{.Frames.P50}} / {{.Frames.P95}} / {{.Frames.P99}}

## Entity Churn
- **Spawned:** {{.Spawned}}
- **Destroyed:** {{.Destroyed}}
- **Alive at End:** {{.World.EntityCount}}
- **Components at End:** {{.World.TotalComponents}}

## Storages
| Component | Count |
|---|---|
{{- range .World.Storages}}
| {{.Type}} | {{.Count}} |
{{- end}}

## Systems
| System | Priority | Runs | Avg | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.Priority}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Total Alloc: {{.MemStatsStart.TotalAlloc}} -> {{.MemStatsEnd.TotalAlloc}} (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- Sys Memory:  {{.MemStatsStart.Sys}} -> {{.MemStatsEnd.Sys}} (delta {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}})
- Num GC:      {{.MemStatsStart.NumGC}} -> {{.MemStatsEnd.NumGC}} (delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}})
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`))

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	if err := reportTemplate.Execute(w, r); err != nil {
		return eris.Wrap(err, "render stress report")
	}
	return nil
}
