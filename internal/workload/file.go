package workload

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"
)

// Format identifies a workload file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported workload file extension %q (want .yaml, .yml, .json or .hcl)", filepath.Ext(path))
	}
}

// Load reads and decodes a workload file.
func Load(path string) (*Workload, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	w, err := decode(format, path, data)
	if err != nil {
		return nil, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return w, nil
}

// Decode parses workload data in the given format.
func Decode(format Format, data []byte) (*Workload, error) {
	return decode(format, "workload."+string(format), data)
}

func decode(format Format, filename string, data []byte) (*Workload, error) {
	var w Workload
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
	case FormatHCL:
		return decodeHCL(filename, data)
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
	return &w, nil
}

// hclWorkloadFile is the top-level structure of an HCL workload:
//
//	name         = "demo"
//	time_quantum = 3
//
//	process "P1" {
//	  arrival_time = 0
//	  burst_time   = 5
//	}
//
// Attribute values may use the arithmetic functions in hclFunctions, e.g.
// burst_time = max(2, floor(7 / 2)).
type hclWorkloadFile struct {
	Name        *string       `hcl:"name,optional"`
	TimeQuantum *int          `hcl:"time_quantum,optional"`
	MaxTime     *int          `hcl:"max_time,optional"`
	Processes   []*hclProcess `hcl:"process,block"`
}

type hclProcess struct {
	Label       string `hcl:"label,label"`
	ID          *int   `hcl:"id,optional"`
	ArrivalTime int    `hcl:"arrival_time"`
	BurstTime   int    `hcl:"burst_time"`
}

var hclFunctions = map[string]function.Function{
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
}

func hclEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: hclFunctions}
}

func decodeHCL(filename string, data []byte) (*Workload, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var parsed hclWorkloadFile
	diags = gohcl.DecodeBody(file.Body, hclEvalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	w := &Workload{Processes: make([]ProcessSpec, 0, len(parsed.Processes))}
	if parsed.Name != nil {
		w.Name = *parsed.Name
	}
	if parsed.TimeQuantum != nil {
		w.TimeQuantum = *parsed.TimeQuantum
	}
	if parsed.MaxTime != nil {
		w.MaxTime = *parsed.MaxTime
	}
	for _, p := range parsed.Processes {
		spec := ProcessSpec{ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime}
		if p.ID != nil {
			spec.ID = *p.ID
		}
		w.Processes = append(w.Processes, spec)
	}
	return w, nil
}

// EncodeYAML renders a workload as YAML.
func EncodeYAML(w *Workload) ([]byte, error) {
	return yaml.Marshal(w)
}
