package mcp

import "github.com/mesa-tools/mesaplot/internal/runs"

// RunsInput defines the input for the mesa_runs tool.
type RunsInput struct {
	RunsDir string `json:"runs_dir,omitempty" jsonschema:"Directory holding one subdirectory per run; defaults to the server's runs directory"`
}

// RunsOutput defines the output for the mesa_runs tool.
type RunsOutput struct {
	Runs    []runs.Summary `json:"runs" jsonschema:"One summary per run with a readable history"`
	Skipped []string       `json:"skipped,omitempty" jsonschema:"Run directories that could not be summarized"`
	Count   int            `json:"count" jsonschema:"Number of summarized runs"`
}

// SummaryInput defines the input for the mesa_summary tool.
type SummaryInput struct {
	Dir string `json:"dir" jsonschema:"Run directory containing a LOGS subdirectory"`
}

// SummaryOutput defines the output for the mesa_summary tool.
type SummaryOutput struct {
	Summary runs.Summary `json:"summary"`
	History string       `json:"history" jsonschema:"Path of the history file that was read"`
}

// ColumnsInput defines the input for the mesa_columns tool.
type ColumnsInput struct {
	Path string `json:"path" jsonschema:"Path to a history.data or profile<N>.data file"`
}

// ColumnsOutput defines the output for the mesa_columns tool.
type ColumnsOutput struct {
	HeaderNames []string `json:"header_names" jsonschema:"Header column names from the file preamble"`
	Columns     []string `json:"columns" jsonschema:"Body column names in file order"`
	Filters     []string `json:"filters,omitempty" jsonschema:"Photometric filter columns; those after Flux_bol"`
	System      string   `json:"system,omitempty" jsonschema:"Detected photometric system"`
	Rows        int      `json:"rows" jsonschema:"Number of data rows"`
}

// PlotInput defines the input for the mesa_plot tool.
type PlotInput struct {
	Dir  string `json:"dir" jsonschema:"Run directory containing a LOGS subdirectory"`
	Kind string `json:"kind" jsonschema:"Plot kind: cmd (color-magnitude) or core (central conditions) or composition (surface mass fractions) or lightcurve (magnitude vs age)"`
	GIF  bool   `json:"gif,omitempty" jsonschema:"Also render an animated GIF of the track; cmd only"`
}

// PlotOutput defines the output for the mesa_plot tool.
type PlotOutput struct {
	Paths  []string `json:"paths" jsonschema:"Files that were written"`
	System string   `json:"system,omitempty" jsonschema:"Photometric system used"`
	Points int      `json:"points" jsonschema:"Number of points plotted"`
}
