package area

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
)

//go:embed data/*.csv
var embedded embed.FS

// CodeTable maps a geography code to its human-readable name. Loaded once at
// startup and never mutated, so unsynchronized concurrent reads are safe.
type CodeTable map[string]string

// Tables bundles the three program-family code tables.
type Tables struct {
	QCEW CodeTable // area_fips → area_title
	LAUS CodeTable // area_code → area_text
	OES  CodeTable // area_code → area_name
}

// tableSpec declares where each table loads from and which header columns
// carry the code and the name.
type tableSpec struct {
	file    string
	keyCol  string
	nameCol string
	assign  func(*Tables, CodeTable)
}

var tableSpecs = []tableSpec{
	{"area_titles.csv", "area_fips", "area_title", func(t *Tables, c CodeTable) { t.QCEW = c }},
	{"la_area.csv", "area_code", "area_text", func(t *Tables, c CodeTable) { t.LAUS = c }},
	{"oes_areas.csv", "area_code", "area_name", func(t *Tables, c CodeTable) { t.OES = c }},
}

// LoadCodeTable reads one code table from CSV, selecting the declared key
// and name columns by header. Extra columns are ignored.
func LoadCodeTable(r io.Reader, keyCol, nameCol string) (CodeTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	ki, ni := -1, -1
	for i, col := range header {
		switch col {
		case keyCol:
			ki = i
		case nameCol:
			ni = i
		}
	}
	if ki < 0 {
		return nil, fmt.Errorf("key column %q not found in header %v", keyCol, header)
	}
	if ni < 0 {
		return nil, fmt.Errorf("name column %q not found in header %v", nameCol, header)
	}

	table := make(CodeTable)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		table[rec[ki]] = rec[ni]
	}
	return table, nil
}

// LoadEmbedded loads the bundled reference tables. The bundled copies are
// the published BLS area-title files.
func LoadEmbedded() (Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return Tables{}, err
	}
	return loadFrom(sub)
}

// LoadDir loads the three reference tables from dir, expecting the standard
// BLS file names (area_titles.csv, la_area.csv, oes_areas.csv). Used to swap
// in full or newer table snapshots without rebuilding.
func LoadDir(dir string) (Tables, error) {
	return loadFrom(os.DirFS(dir))
}

func loadFrom(fsys fs.FS) (Tables, error) {
	var tables Tables
	for _, spec := range tableSpecs {
		f, err := fsys.Open(spec.file)
		if err != nil {
			return Tables{}, fmt.Errorf("open %s: %w", spec.file, err)
		}
		table, err := LoadCodeTable(f, spec.keyCol, spec.nameCol)
		f.Close()
		if err != nil {
			return Tables{}, fmt.Errorf("load %s: %w", spec.file, err)
		}
		spec.assign(&tables, table)
	}
	return tables, nil
}
