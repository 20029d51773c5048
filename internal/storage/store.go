package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/iqmath/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// ErrRunNotFound is returned when a run id has no metadata on disk.
var ErrRunNotFound = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Kernel    string             `json:"kernel"`
	Label     string             `json:"label,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Start     int64              `json:"start"`
	Stop      int64              `json:"stop"`
	Step      int64              `json:"step"`
	Tolerance float64            `json:"tolerance"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Range returns the swept input range.
func (m *RunMetadata) Range() sweep.Config {
	return sweep.Config{Start: m.Start, Stop: m.Stop, Step: m.Step}
}

func (s *Store) Save(tolerance float64, result *sweep.Result) (string, error) {
	return s.SaveLabeled("", tolerance, result)
}

// SaveLabeled stores a run whose id starts with label instead of the kernel
// name. The metadata keeps both.
func (s *Store) SaveLabeled(label string, tolerance float64, result *sweep.Result) (string, error) {
	now := time.Now()
	prefix := result.Kernel
	if label != "" {
		prefix = label
	}
	runID := fmt.Sprintf("%s_%d", prefix, now.UnixNano())

	meta := RunMetadata{
		ID:        runID,
		Kernel:    result.Kernel,
		Label:     label,
		Timestamp: now,
		Start:     result.Config.Start,
		Stop:      result.Config.Stop,
		Step:      result.Config.Step,
		Tolerance: tolerance,
		Samples:   len(result.Samples),
		Metrics:   result.Metrics,
	}

	if err := writeRun(filepath.Join(s.baseDir, runID), &meta, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// writeRun writes samples before metadata, since List only sees directories
// with metadata, and removes the directory if either write fails.
func writeRun(runDir string, meta *RunMetadata, samples []sweep.Sample) (err error) {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err := writeSamples(filepath.Join(runDir, samplesFile), samples); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, metadataFile), meta)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []sweep.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteSamplesCSV(w, samples); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteSamplesCSV writes a header row followed by one row per sample.
func WriteSamplesCSV(w *csv.Writer, samples []sweep.Sample) error {
	if err := w.Write([]string{"input", "output", "reference", "error"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatInt(smp.Input, 10),
			strconv.FormatInt(smp.Output, 10),
			strconv.FormatFloat(smp.Reference, 'f', 6, 64),
			strconv.FormatFloat(smp.Error, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the samples of a run. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sweep.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, samplesFile)
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sweep.Sample{}, nil
	}

	samples := make([]sweep.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		smp, err := parseSample(record)
		if err != nil {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseSample(record []string) (sweep.Sample, error) {
	var smp sweep.Sample
	var err error
	if smp.Input, err = strconv.ParseInt(record[0], 10, 64); err != nil {
		return smp, err
	}
	if smp.Output, err = strconv.ParseInt(record[1], 10, 64); err != nil {
		return smp, err
	}
	if smp.Reference, err = strconv.ParseFloat(record[2], 64); err != nil {
		return smp, err
	}
	if smp.Error, err = strconv.ParseFloat(record[3], 64); err != nil {
		return smp, err
	}
	return smp, nil
}
