// Package mesa reads MESA history and profile tables into named float64
// columns. The on-disk format is fixed: a three-line header block (column
// indices, names, values), a blank line, then the body column indices,
// body column names, and whitespace-separated data rows.
package mesa

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mesa-tools/mesaplot/internal/pathutil"
)

// Data holds one loaded MESA table: header scalars plus the body columns.
type Data struct {
	// Path is the file the table was loaded from.
	Path string

	headerNames  []string
	headerValues []string

	names   []string
	index   map[string]int
	columns [][]float64
}

// Load reads a MESA history or profile file from path.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MESA table %s: %w", pathutil.RedactPath(path), err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	// Preamble: header indices, header names, header values, blank line,
	// body indices, body names.
	preamble := make([]string, 0, 6)
	for len(preamble) < 6 && sc.Scan() {
		preamble = append(preamble, sc.Text())
	}
	if len(preamble) < 6 {
		return nil, fmt.Errorf("malformed MESA table %s: preamble has %d lines, want 6", pathutil.RedactPath(path), len(preamble))
	}

	headerNames := strings.Fields(preamble[1])
	headerValues := splitHeaderValues(preamble[2])
	if len(headerValues) != len(headerNames) {
		return nil, fmt.Errorf("malformed MESA table %s: %d header names but %d values",
			pathutil.RedactPath(path), len(headerNames), len(headerValues))
	}

	names := strings.Fields(preamble[5])
	if len(names) == 0 {
		return nil, fmt.Errorf("malformed MESA table %s: no body columns", pathutil.RedactPath(path))
	}

	d := &Data{
		Path:         path,
		headerNames:  headerNames,
		headerValues: headerValues,
		names:        names,
		index:        make(map[string]int, len(names)),
		columns:      make([][]float64, len(names)),
	}
	for i, n := range names {
		// Duplicate names keep the first occurrence, matching mesa_reader.
		if _, ok := d.index[n]; !ok {
			d.index[n] = i
		}
	}

	line := 6
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(names) {
			return nil, fmt.Errorf("malformed MESA table %s: line %d has %d values, want %d",
				pathutil.RedactPath(path), line, len(fields), len(names))
		}
		for i, field := range fields {
			v, err := ParseFloat(field)
			if err != nil {
				return nil, fmt.Errorf("malformed MESA table %s: line %d column %s: %w",
					pathutil.RedactPath(path), line, names[i], err)
			}
			d.columns[i] = append(d.columns[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read MESA table %s: %w", pathutil.RedactPath(path), err)
	}
	return d, nil
}

// ParseFloat parses a MESA numeric field. Fortran double-precision output
// uses a D exponent marker ("1.5D+02"), which strconv does not accept.
func ParseFloat(s string) (float64, error) {
	if i := strings.IndexAny(s, "dD"); i >= 0 {
		s = s[:i] + "E" + s[i+1:]
	}
	return strconv.ParseFloat(s, 64)
}

// splitHeaderValues splits the header value line, honoring double-quoted
// strings (MESA quotes values like version_number and compiler).
func splitHeaderValues(line string) []string {
	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				out = append(out, strings.Trim(rest, `"`))
				break
			}
			out = append(out, rest[1:1+end])
			rest = strings.TrimSpace(rest[end+2:])
			continue
		}
		sp := strings.IndexAny(rest, " \t")
		if sp < 0 {
			out = append(out, rest)
			break
		}
		out = append(out, rest[:sp])
		rest = strings.TrimSpace(rest[sp:])
	}
	return out
}

// Names returns the body column names in file order.
func (d *Data) Names() []string { return d.names }

// Len returns the number of data rows.
func (d *Data) Len() int {
	if len(d.columns) == 0 {
		return 0
	}
	return len(d.columns[0])
}

// Has reports whether the table carries a body column with the given name.
func (d *Data) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the named body column.
func (d *Data) Column(name string) ([]float64, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Final returns the last value of the named column.
func (d *Data) Final(name string) (float64, bool) {
	col, ok := d.Column(name)
	if !ok || len(col) == 0 {
		return 0, false
	}
	return col[len(col)-1], true
}

// HeaderNames returns the header column names in file order.
func (d *Data) HeaderNames() []string { return d.headerNames }

// HeaderString returns the named header value as written.
func (d *Data) HeaderString(name string) (string, bool) {
	for i, n := range d.headerNames {
		if n == name {
			return d.headerValues[i], true
		}
	}
	return "", false
}

// HeaderFloat returns the named header value parsed as a float64.
func (d *Data) HeaderFloat(name string) (float64, bool) {
	s, ok := d.HeaderString(name)
	if !ok {
		return 0, false
	}
	v, err := ParseFloat(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FilterColumns returns the body columns that follow Flux_bol. MESA's
// custom-colors module appends one magnitude column per filter after the
// bolometric flux, so everything past it is a photometric band.
func (d *Data) FilterColumns() []string {
	for i, n := range d.names {
		if n == "Flux_bol" {
			return d.names[i+1:]
		}
	}
	return nil
}
