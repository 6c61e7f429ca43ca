package neighborhoods

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/9seconds/nearby/geolib"
	"github.com/antzucaro/matchr"
	"github.com/spf13/afero"
)

// FuzzyMatchThreshold is a minimal Jaro-Winkler similarity of names
// which are treated as the same neighborhood.
const FuzzyMatchThreshold = 0.9

// ErrNoNameColumn is returned if CSV file has no column which can be
// used as a name of neighborhood.
var ErrNoNameColumn = errors.New("cannot find a column with neighborhood name")

var nameColumns = []string{
	"Name_of_neighborhood",
	"اسم_الحي",
	"neighborhood_name",
	"neighborhood",
	"name",
}

type storeRecord struct {
	name   string
	record geolib.NeighborhoodRecord
}

// Store is an in-memory read-only collection of neighborhoods loaded
// from CSV file. It is safe for concurrent use.
type Store struct {
	records []storeRecord
	byName  map[string]int
}

// Names returns names of all known neighborhoods in order of the file.
func (s *Store) Names() []string {
	rv := make([]string, len(s.records))

	for i := range s.records {
		rv[i] = s.records[i].name
	}

	return rv
}

// FindNeighborhoodInfo searches for a neighborhood by name. Name can
// be given with or without a neighborhood prefix word. An exact match
// wins, then a substring match, then a closest fuzzy match.
func (s *Store) FindNeighborhoodInfo(name string) (geolib.NeighborhoodRecord, bool) {
	clean := geolib.StripNeighborhoodPrefix(name)
	if clean == "" {
		return nil, false
	}

	candidates := []string{clean, geolib.NormalizeNeighborhoodName(clean)}

	for _, v := range candidates {
		if idx, ok := s.byName[v]; ok {
			return s.records[idx].record, true
		}
	}

	for _, v := range candidates {
		lowered := strings.ToLower(v)

		for i := range s.records {
			if strings.Contains(strings.ToLower(s.records[i].name), lowered) {
				return s.records[i].record, true
			}
		}
	}

	bestIdx := -1
	bestScore := 0.0

	for i := range s.records {
		score := matchr.JaroWinkler(geolib.StripNeighborhoodPrefix(s.records[i].name), clean, false)
		if score >= FuzzyMatchThreshold && score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 {
		return nil, false
	}

	return s.records[bestIdx].record, true
}

// NewStore reads neighborhoods from CSV with a header line. One of the
// columns has to contain a name of the neighborhood, the rest is kept
// as is.
func NewStore(src io.Reader) (*Store, error) {
	reader, err := newCSVReader(src)
	if err != nil {
		return nil, err
	}

	nameColumn := findNameColumn(reader.header)
	if nameColumn == "" {
		return nil, ErrNoNameColumn
	}

	store := &Store{
		byName: map[string]int{},
	}

	for {
		row, err := reader.Read()

		switch {
		case errors.Is(err, io.EOF):
			return store, nil
		case err != nil:
			return nil, err
		}

		name := row[nameColumn]
		if name == "" {
			continue
		}

		record := make(geolib.NeighborhoodRecord, len(row))

		for k, v := range row {
			record[k] = v
		}

		if _, ok := store.byName[name]; !ok {
			store.byName[name] = len(store.records)
		}

		store.records = append(store.records, storeRecord{
			name:   name,
			record: record,
		})
	}
}

// Load reads a CSV file from a given filesystem.
func Load(fs afero.Fs, path string) (*Store, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	defer file.Close()

	store, err := NewStore(file)
	if err != nil {
		return nil, fmt.Errorf("cannot load neighborhoods from %s: %w", path, err)
	}

	return store, nil
}

func findNameColumn(header []string) string {
	for _, alias := range nameColumns {
		for _, column := range header {
			if strings.EqualFold(column, alias) {
				return column
			}
		}
	}

	return ""
}
