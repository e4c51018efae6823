package runs

import (
	"fmt"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

// CoreMassColumns is the preference order for the convective/helium core
// mass. conv_mx1_top is a mass fraction and needs scaling by star_mass.
var CoreMassColumns = []string{"he_core_mass", "mass_conv_core", "conv_mx1_top"}

// CoreMass extracts the best available core mass column from d.
// The returned label names the column used.
func CoreMass(d *mesa.Data) (values []float64, label string, ok bool) {
	for _, name := range CoreMassColumns {
		col, found := d.Column(name)
		if !found {
			continue
		}
		if name == "conv_mx1_top" {
			if starMass, found := d.Column("star_mass"); found {
				col = mul(col, starMass)
			}
		}
		return col, name, true
	}
	return nil, "", false
}

func mul(a, b []float64) []float64 {
	if len(a) != len(b) {
		return a
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// Summary holds the final-row values of one run, used by the batch plots,
// the catalog, and the MCP tools.
type Summary struct {
	Name        string  `json:"name"`
	Mass        float64 `json:"mass"`
	Metallicity float64 `json:"metallicity"`
	Scheme      string  `json:"scheme"`
	Fov         float64 `json:"fov"`

	System    string  `json:"system"`
	Color     float64 `json:"color"`
	Magnitude float64 `json:"magnitude"`

	LogL       float64 `json:"log_l"`
	LogTeff    float64 `json:"log_teff"`
	LogCenterT float64 `json:"log_center_t"`
	LogCenterD float64 `json:"log_center_rho"`
	AgeYears   float64 `json:"age_years"`
	CoreMass   float64 `json:"core_mass"`
	Models     int     `json:"models"`
}

// Loaded pairs a discovered run with its parsed history and detected
// photometric system.
type Loaded struct {
	Run
	Data   *mesa.Data
	System *photometry.System
}

// Load parses the run's history table and detects its photometric system.
// Runs without at least two filter columns fail here.
func Load(r Run) (*Loaded, error) {
	d, err := mesa.Load(r.History)
	if err != nil {
		return nil, err
	}
	sys, ok := photometry.Detect(d.FilterColumns())
	if !ok {
		return nil, fmt.Errorf("no usable photometric system in %s", r.Name)
	}
	return &Loaded{Run: r, Data: d, System: sys}, nil
}

// Summarize computes the final-row summary of a loaded run.
func Summarize(lr *Loaded) (Summary, error) {
	color, err := lr.System.PrimaryColor.Values(lr.Data)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing %s: %w", lr.Name, err)
	}
	mag, ok := lr.Data.Column(lr.System.PrimaryMag)
	if !ok {
		return Summary{}, fmt.Errorf("summarizing %s: missing magnitude column %s", lr.Name, lr.System.PrimaryMag)
	}
	if len(color) == 0 {
		return Summary{}, fmt.Errorf("summarizing %s: history has no rows", lr.Name)
	}

	s := Summary{
		Name:        lr.Name,
		Mass:        lr.Params.Mass,
		Metallicity: lr.Params.Metallicity,
		Scheme:      lr.Params.Scheme,
		Fov:         lr.Params.Fov,
		System:      lr.System.Name,
		Color:       color[len(color)-1],
		Magnitude:   mag[len(mag)-1],
		Models:      lr.Data.Len(),
	}

	final := func(name string) float64 {
		v, _ := lr.Data.Final(name)
		return v
	}
	s.LogL = final("log_L")
	s.LogTeff = final("log_Teff")
	s.LogCenterT = final("log_center_T")
	s.LogCenterD = final("log_center_Rho")
	s.AgeYears = final("star_age")

	if core, _, ok := CoreMass(lr.Data); ok && len(core) > 0 {
		s.CoreMass = core[len(core)-1]
	}

	return s, nil
}

// CommonSystem returns the most frequent photometric system name among the
// loaded runs, and the runs carrying it. Ties break toward the system seen
// first, matching a stable pass over the input order.
func CommonSystem(loaded []*Loaded) (string, []*Loaded) {
	counts := make(map[string]int)
	var order []string
	for _, lr := range loaded {
		if counts[lr.System.Name] == 0 {
			order = append(order, lr.System.Name)
		}
		counts[lr.System.Name]++
	}

	best := ""
	for _, name := range order {
		if best == "" || counts[name] > counts[best] {
			best = name
		}
	}
	if best == "" {
		return "", nil
	}

	var filtered []*Loaded
	for _, lr := range loaded {
		if lr.System.Name == best {
			filtered = append(filtered, lr)
		}
	}
	return best, filtered
}

// AgeMyr converts the star_age column to megayears, falling back to the
// model_number column when star_age is absent. The label reflects which.
func AgeMyr(d *mesa.Data) (values []float64, label string) {
	if age, ok := d.Column("star_age"); ok {
		return vecmath.Scale(age, 1e-6), "Age (Myr)"
	}
	models, _ := d.Column("model_number")
	return models, "Model Number"
}
