package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/anim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "rotations.csv"
)

// ErrRunNotFound is returned when a run directory has no metadata.
var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps recorded traces as run directories under baseDir, each with
// a metadata.json and a rotations.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`
	Seed      int64       `json:"seed"`
	Scale     float64     `json:"scale"`
	Preset    string      `json:"preset,omitempty"`
	FPS       float64     `json:"fps"`
	Duration  float64     `json:"duration"`
	Frames    int         `json:"frames"`
	Columns   []string    `json:"columns"`
	Bindings  []anim.Spec `json:"bindings"`
}

// Save writes meta and trace to a new run directory and returns its ID.
// ID, Timestamp, Frames and Columns are filled in from the trace.
func (s *Store) Save(meta RunMetadata, trace anim.Trace) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", meta.Kind, now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "storage: create run dir")
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(trace.Rows)
	meta.Columns = trace.Columns

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", errors.Wrap(err, "storage: write metadata")
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(append([]string{"time"}, trace.Columns...)); err != nil {
		return "", err
	}
	for i, row := range trace.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(trace.Times[i], 'f', 6, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "storage: write trace")
	}
	return runID, nil
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRunNotFound, "%s", runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "storage: metadata of %s", runID)
	}
	return &meta, nil
}

// LoadTrace reads the rotation table of a run. Unparseable rows are
// skipped.
func (s *Store) LoadTrace(runID string) (anim.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return anim.Trace{}, errors.Wrapf(ErrRunNotFound, "%s", runID)
		}
		return anim.Trace{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return anim.Trace{}, errors.Wrapf(err, "storage: trace of %s", runID)
	}
	if len(records) == 0 {
		return anim.Trace{}, nil
	}

	tr := anim.Trace{
		Columns: records[0][1:],
		Times:   make([]float64, 0, len(records)-1),
		Rows:    make([][]float64, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		if len(rec) != len(tr.Columns)+1 {
			continue
		}
		vals := make([]float64, len(rec))
		ok := true
		for j, field := range rec {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Rows = append(tr.Rows, vals[1:])
	}
	return tr, nil
}
