package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/structure"
)

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
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	Mode          string        `json:"mode"`   // "mass" or "radius"
	Target        float64       `json:"target"` // Earth units
	Layers        planet.Layers `json:"layers"`
	CoreMassFrac  float64       `json:"core_mass_frac"`
	WaterMassFrac float64       `json:"water_mass_frac"`
	Iterations    int           `json:"iterations"`
	Residual      float64       `json:"residual"`

	// Derived bulk quantities, for listing without reloading the profile.
	MassKg         float64 `json:"mass_kg"`
	RadiusM        float64 `json:"radius_m"`
	BulkDensity    float64 `json:"bulk_density"`
	SurfaceGravity float64 `json:"surface_gravity"`
	CMBRadiusM     float64 `json:"cmb_radius_m"`
	CMBPressureBar float64 `json:"cmb_pressure_bar"`
}

var profileHeader = []string{
	"radius_m", "density", "gravity", "pressure_bar",
	"temperature_k", "alpha", "cp", "mass_kg", "phase",
}

// Save writes one solved structure as a run directory: metadata.json with
// the run parameters and bulk quantities, profile.csv with the per-layer
// columns. Returns the generated run ID.
func (s *Store) Save(mode string, target float64, comp planet.Composition, res *structure.Result) (string, error) {
	runID := fmt.Sprintf("%s_%.3g_%d", mode, target, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	p := res.Profile
	cmbR, cmbP := p.CoreMantleBoundary()
	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Mode:           mode,
		Target:         target,
		Layers:         p.Layers,
		CoreMassFrac:   comp.CoreMassFrac,
		WaterMassFrac:  comp.WaterMassFrac,
		Iterations:     res.Iterations,
		Residual:       res.Residual,
		MassKg:         p.TotalMass(),
		RadiusM:        p.TotalRadius(),
		BulkDensity:    p.BulkDensity(),
		SurfaceGravity: p.SurfaceGravity(),
		CMBRadiusM:     cmbR,
		CMBPressureBar: cmbP,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "profile.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(profileHeader); err != nil {
		return "", err
	}

	for i := 0; i < p.Layers.Total(); i++ {
		phase := ""
		if i < len(p.Phases) {
			phase = p.Phases[i]
		}
		row := []string{
			strconv.FormatFloat(p.Radius[i], 'g', -1, 64),
			strconv.FormatFloat(p.Density[i], 'g', -1, 64),
			strconv.FormatFloat(p.Gravity[i], 'g', -1, 64),
			strconv.FormatFloat(p.Pressure[i], 'g', -1, 64),
			strconv.FormatFloat(p.Temperature[i], 'g', -1, 64),
			strconv.FormatFloat(p.Alpha[i], 'g', -1, 64),
			strconv.FormatFloat(p.Cp[i], 'g', -1, 64),
			strconv.FormatFloat(p.Mass[i], 'g', -1, 64),
			phase,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadProfile reads a run's profile.csv back into a Profile. The layer
// counts come from the run's metadata.
func (s *Store) LoadProfile(runID string) (*planet.Profile, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "profile.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has an empty profile", runID)
	}

	n := meta.Layers.Total()
	if len(records)-1 != n {
		return nil, fmt.Errorf("storage: run %s has %d profile rows, metadata says %d layers",
			runID, len(records)-1, n)
	}

	p := planet.NewProfile(meta.Layers)
	p.Phases = make([]string, n)
	for i := 0; i < n; i++ {
		rec := records[i+1]
		if len(rec) < len(profileHeader) {
			return nil, fmt.Errorf("storage: run %s row %d has %d columns, want %d",
				runID, i+1, len(rec), len(profileHeader))
		}
		cols := []*float64{
			&p.Radius[i], &p.Density[i], &p.Gravity[i], &p.Pressure[i],
			&p.Temperature[i], &p.Alpha[i], &p.Cp[i], &p.Mass[i],
		}
		for j, dst := range cols {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s row %d column %s: %w",
					runID, i+1, profileHeader[j], err)
			}
			*dst = v
		}
		p.Phases[i] = rec[len(profileHeader)-1]
	}

	return p, nil
}
