package report

import (
	"encoding/json"
	"os"
	"time"
)

// New creates an empty report for the given source.
func New(src Source) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      src,
	}
}

// ComputeStats recalculates aggregate statistics from results.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalResults = len(r.Results)
	for _, res := range r.Results {
		s.TotalOutputBytes += int64(res.SizeBytes)
		if !res.WithinBudget {
			s.OverBudget++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
