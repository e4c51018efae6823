// Package export writes MESA tables to Arrow IPC files for use from
// analysis tools outside this one.
package export

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/pathutil"
)

// WriteArrow writes the selected columns of d to path as an Arrow IPC file.
// An empty columns slice exports every column. Header values travel as
// schema metadata so the file is self-describing.
func WriteArrow(path string, d *mesa.Data, columns []string) error {
	if len(columns) == 0 {
		columns = d.Names()
	}
	for _, name := range columns {
		if !d.Has(name) {
			return fmt.Errorf("column %q not present in %s", name, pathutil.RedactPath(d.Path))
		}
	}

	schema := arrow.NewSchema(fields(columns), headerMetadata(d))

	mem := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, name := range columns {
		col, _ := d.Column(name)
		builder.Field(i).(*array.Float64Builder).AppendValues(col, nil)
	}
	rec := builder.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", pathutil.RedactPath(path), err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to open writer for %s: %w", pathutil.RedactPath(path), err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", pathutil.RedactPath(path), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", pathutil.RedactPath(path), err)
	}
	return nil
}

func fields(columns []string) []arrow.Field {
	out := make([]arrow.Field, len(columns))
	for i, name := range columns {
		out[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	return out
}

// headerMetadata carries the table preamble (initial mass, metallicity,
// version and the rest) into the IPC schema.
func headerMetadata(d *mesa.Data) *arrow.Metadata {
	keys := d.HeaderNames()
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i], _ = d.HeaderString(k)
	}
	md := arrow.NewMetadata(keys, vals)
	return &md
}

// ReadArrow loads an Arrow IPC file written by WriteArrow back into
// column slices, keyed by field name. Used by the round-trip tests and
// available to callers that cache exported tables.
func ReadArrow(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pathutil.RedactPath(path), err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pathutil.RedactPath(path), err)
	}
	defer r.Close()

	out := make(map[string][]float64)
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d of %s: %w", i, pathutil.RedactPath(path), err)
		}
		for j, field := range rec.Schema().Fields() {
			col, ok := rec.Column(j).(*array.Float64)
			if !ok {
				return nil, fmt.Errorf("column %q in %s is not float64", field.Name, pathutil.RedactPath(path))
			}
			out[field.Name] = append(out[field.Name], col.Float64Values()...)
		}
	}
	return out, nil
}
