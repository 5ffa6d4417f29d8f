package ui

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/rrsim/pkg/model"
)

// pidPalette colours process blocks; ids wrap around it.
var pidPalette = []string{
	"#4F46E5", "#059669", "#D97706", "#DC2626",
	"#7C3AED", "#0891B2", "#DB2777", "#65A30D",
}

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	},
	"deref": func(v *int) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	},
	"stateColor": func(state model.ProcessState) string {
		switch state {
		case model.ProcessStateCompleted:
			return "green"
		case model.ProcessStateStarted:
			return "blue"
		default:
			return "gray"
		}
	},
	"blockColor": func(b model.Block) string {
		if b.Idle {
			return "#D1D5DB"
		}
		return pidPalette[(b.PID-1+len(pidPalette))%len(pidPalette)]
	},
	"percent": func(a, b int) float64 {
		if b == 0 {
			return 0
		}
		return float64(a*100) / float64(b)
	},
}

// renderTemplate renders a content template inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(templates["layout"])
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.Execute(w, data)
}

var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 h-16 flex items-center">
            <a href="/" class="text-xl font-bold text-indigo-600">rrsim</a>
            <span class="ml-4 text-sm text-gray-500">Round Robin CPU scheduling simulator</span>
        </div>
    </nav>
    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"dashboard": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-4">Runs <span class="text-gray-400 text-base">({{.Total}})</span></h1>
<form method="get" action="/" class="mb-4">
    <input type="search" name="name" value="{{.Name}}" placeholder="Filter by name" class="border rounded px-2 py-1 text-sm">
</form>
{{if .Runs}}
<table class="min-w-full divide-y divide-gray-200 bg-white shadow rounded">
    <thead class="bg-gray-50">
        <tr>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Run</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Quantum</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Completed</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Avg waiting</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Avg turnaround</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Created</th>
        </tr>
    </thead>
    <tbody class="divide-y divide-gray-200">
        {{range .Runs}}
        <tr>
            <td class="px-4 py-2"><a class="text-indigo-600 hover:underline" href="/runs/{{.ID}}">{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</a></td>
            <td class="px-4 py-2">{{.TimeQuantum}}</td>
            <td class="px-4 py-2">{{.Summary.CompletedCount}} / {{.Summary.ProcessCount}}{{if .Summary.CutOff}} <span class="text-orange-600">(cut off)</span>{{end}}</td>
            {{if .Summary.HasCompletions}}
            <td class="px-4 py-2">{{printf "%.2f" .Summary.AvgWaitingTime}}</td>
            <td class="px-4 py-2">{{printf "%.2f" .Summary.AvgTurnaroundTime}}</td>
            {{else}}
            <td class="px-4 py-2">-</td>
            <td class="px-4 py-2">-</td>
            {{end}}
            <td class="px-4 py-2 text-gray-500" title="{{formatTime .CreatedAt}}">{{ago .CreatedAt}}</td>
        </tr>
        {{end}}
    </tbody>
</table>
{{if .HasMore}}<p class="mt-4"><a class="text-indigo-600" href="/?offset={{.NextOffset}}&name={{.Name}}">Older runs</a></p>{{end}}
{{else}}
{{if .Name}}<p class="text-gray-500">No runs match "{{.Name}}".</p>{{else}}<p class="text-gray-500">No runs stored yet. Submit one with <code>rrsim submit</code> or POST /api/v1/simulations.</p>{{end}}
{{end}}
{{end}}`,

	"run": `{{define "content"}}
{{with .Run}}
<h1 class="text-2xl font-semibold text-gray-900">{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</h1>
<p class="text-sm text-gray-500 mb-6">{{.ID}} &middot; quantum {{.TimeQuantum}} &middot; max time {{.MaxTime}} &middot; {{formatTime .CreatedAt}}</p>
{{end}}

<h2 class="text-lg font-medium mb-2">CPU timeline</h2>
{{if .Blocks}}
<div class="flex w-full h-10 rounded overflow-hidden border">
    {{range .Blocks}}
    <div style="width: {{percent .Len $.Units}}%; background: {{blockColor .}};" class="text-white text-xs flex items-center justify-center" title="{{.Start}}-{{.End}}">{{if .Idle}}idle{{else}}P{{.PID}}{{end}}</div>
    {{end}}
</div>
<div class="flex w-full text-xs text-gray-500 mb-6">
    {{range .Blocks}}<div style="width: {{percent .Len $.Units}}%;">{{.Start}}</div>{{end}}
    <div>{{.Units}}</div>
</div>
{{else}}
<p class="text-gray-500 mb-6">Empty timeline: nothing was simulated.</p>
{{end}}

<h2 class="text-lg font-medium mb-2">Processes</h2>
<table class="min-w-full divide-y divide-gray-200 bg-white shadow rounded mb-6">
    <thead class="bg-gray-50">
        <tr>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">PID</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Arrival</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Burst</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Start</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Completion</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Turnaround</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">Waiting</th>
            <th class="px-4 py-2 text-left text-xs font-medium text-gray-500 uppercase">State</th>
        </tr>
    </thead>
    <tbody class="divide-y divide-gray-200">
        {{range .Rows}}
        <tr>
            <td class="px-4 py-2">{{.Label}}</td>
            <td class="px-4 py-2">{{.ArrivalTime}}</td>
            <td class="px-4 py-2">{{.BurstTime}}</td>
            <td class="px-4 py-2">{{deref .StartTime}}</td>
            <td class="px-4 py-2">{{deref .CompletionTime}}</td>
            <td class="px-4 py-2">{{.Turnaround}}</td>
            <td class="px-4 py-2">{{.Waiting}}</td>
            <td class="px-4 py-2 text-{{stateColor .State}}-700">{{.State}}</td>
        </tr>
        {{end}}
    </tbody>
</table>

{{with .Run.Summary}}
{{if .HasCompletions}}
<p>Average waiting time: <strong>{{printf "%.2f" .AvgWaitingTime}}</strong>, average turnaround time: <strong>{{printf "%.2f" .AvgTurnaroundTime}}</strong> over {{.CompletedCount}} completed processes.</p>
{{else}}
<p>No process completed in given simulation time.</p>
{{end}}
{{if .CutOff}}<p class="text-orange-600">Simulation stopped at t={{.TotalTime}} with {{.ProcessCount}} processes, {{.CompletedCount}} finished.</p>{{end}}
{{end}}
<p class="mt-6 text-sm"><a class="text-indigo-600" href="/api/v1/simulations/{{.Run.ID}}/gantt">Text chart</a> &middot; <a class="text-indigo-600" href="/api/v1/simulations/{{.Run.ID}}">JSON</a></p>
{{end}}`,

	"error": `{{define "content"}}
<div class="rounded-md bg-red-50 p-4">
    <h1 class="text-lg font-medium text-red-800">{{.Title}}</h1>
    <p class="text-sm text-red-700">{{.Message}}</p>
</div>
<p class="mt-4"><a class="text-indigo-600" href="/">Back to runs</a></p>
{{end}}`,
}
