package ripeness

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// DefaultWindow is the ripeness window for unknown or missing seed codes.
const DefaultWindow = 110

var ErrNoWindows = errors.New("no seed windows loaded")

// Windows maps a normalized seed code to days from planting until ripe.
type Windows map[string]int

func DefaultWindows() Windows {
	return Windows{
		"CL":     100,
		"269":    104,
		"467":    110,
		"297":    110,
		"HYBRID": 104,
	}
}

func normSeed(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (w Windows) For(seed string) int {
	if d, ok := w[normSeed(seed)]; ok && d > 0 {
		return d
	}
	return DefaultWindow
}

// Merge returns a copy of w overlaid with o.
func (w Windows) Merge(o Windows) Windows {
	out := make(Windows, len(w)+len(o))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range o {
		out[normSeed(k)] = v
	}
	return out
}

// Seeds returns the seed codes in sorted order.
func (w Windows) Seeds() []string {
	out := make([]string, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadWindows reads a seed window table (.csv, .xlsx or .yaml/.yml) and
// merges it over the defaults.
func LoadWindows(path string) (Windows, error) {
	var (
		rows Windows
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = loadWindowsCSV(path)
	case ".xlsx":
		rows, err = loadWindowsXLSX(path)
	case ".yaml", ".yml":
		rows, err = loadWindowsYAML(path)
	default:
		return nil, fmt.Errorf("seed windows %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("seed windows %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("seed windows %s: %w", path, ErrNoWindows)
	}
	return DefaultWindows().Merge(rows), nil
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// windowsFromRows accepts a header row followed by data rows.
func windowsFromRows(head []string, next func() ([]string, error)) (Windows, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}
	cSeed := findAny("Seed", "benih", "variety", "seed_code")
	cDays := findAny("Days", "window", "ripe_days", "ripeness_days", "hari")
	if cSeed == -1 || cDays == -1 {
		return nil, fmt.Errorf("missing required columns, found headers %v, need Seed and Days", head)
	}

	out := Windows{}
	for {
		rec, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		seed := normSeed(get(cSeed))
		days, _ := strconv.Atoi(get(cDays))
		if seed == "" || days <= 0 {
			continue
		}
		out[seed] = days
	}
	return out, nil
}

func loadWindowsCSV(path string) (Windows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWindowsCSV(f)
}

func readWindowsCSV(r io.Reader) (Windows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}
	return windowsFromRows(head, cr.Read)
}

func loadWindowsXLSX(path string) (Windows, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWindows
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoWindows
	}
	i := 1
	return windowsFromRows(rows[0], func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		i++
		return rows[i-1], nil
	})
}

func loadWindowsYAML(path string) (Windows, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]int
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := Windows{}
	for k, v := range raw {
		if k = normSeed(k); k != "" && v > 0 {
			out[k] = v
		}
	}
	return out, nil
}
