// Package report renders run summaries for the command line tools.
package report

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/zyra/ecs"
)

// Report summarizes one simulation run
type Report struct {
	Title    string
	Settings []Setting

	Frames    uint64
	Steps     int64
	TotalTime time.Duration
	StepTime  Stats

	Systems []ecs.SystemStats
	World   *ecs.StorageStats

	// Digest is printed when HasDigest is set
	Digest    uint64
	HasDigest bool

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Setting is one configuration line of the report header
type Setting struct {
	Name  string
	Value any
}

// Stats tracks duration samples without keeping them
type Stats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

// Add records one sample
func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
	s.Total += d
}

// Avg returns the mean sample, or 0 with no samples
func (s Stats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Set appends a configuration line
func (r *Report) Set(name string, value any) {
	r.Settings = append(r.Settings, Setting{Name: name, Value: value})
}

// Begin records the starting memory statistics
func (r *Report) Begin() {
	runtime.ReadMemStats(&r.MemStatsStart)
}

// End records the final memory and world statistics
func (r *Report) End(world *ecs.World) {
	runtime.ReadMemStats(&r.MemStatsEnd)
	if world != nil {
		r.Frames = world.Frame()
		r.Systems = world.Stats().Systems
		r.World = world.CollectStats()
	}
}

const reportTemplate = `
# {{.Title}}

## Configuration
{{- range .Settings}}
- **{{.Name}}:** {{.Value}}
{{- end}}

## Results
- **Frames:** {{.Frames}}
- **Steps:** {{.Steps}}
- **Total Time:** {{.TotalTime}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
{{- if .HasDigest}}
- **Digest:** {{hex .Digest}}
{{- end}}
{{if .Systems}}
## Systems
| System | Stage | Runs | Avg | Min | Max |
|---|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.Stage}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}
{{- with .World}}
## World
- **Live Entities:** {{.TotalEntityCount}}
- **Pending Destroy:** {{.PendingDestroyCount}}
- **Component Kinds:** {{.ComponentKindCount}}
{{- range .ComponentBreakdown}}
  - {{.Name}}: {{.Count}}
{{- end}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} B
- Sys Memory:     {{mb .MemStatsStart.Sys}} MiB (start) -> {{mb .MemStatsEnd.Sys}} MiB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (u64sub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"u64sub": func(a, b uint64) uint64 {
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"hex": func(v uint64) string {
		return fmt.Sprintf("%016x", v)
	},
}).Parse(reportTemplate))

// Generate writes the report as markdown
func (r *Report) Generate(w io.Writer) error {
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}
