package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReportRoundtrip(t *testing.T) {
	r := New(Source{Path: "photo.png", Width: 1000, Height: 800, Size: 250000})
	r.Results = append(r.Results,
		Result{
			Format: "jpeg", Width: 1000, Height: 800,
			SizeBytes: 46000, TargetBytes: 51200, WithinBudget: true,
			Hash: "abcd1234abcd1234", Path: "photo.1000x800.abcd1234.jpeg",
		},
		Result{
			Format: "jpeg", Width: 100, Height: 80,
			SizeBytes: 60000, TargetBytes: 10240, WithinBudget: false,
			Hash: "ffff0000ffff0000", Path: "photo.100x80.ffff0000.jpeg",
		},
	)

	dir := t.TempDir()
	path := filepath.Join(dir, "imgfit.report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var r2 Report
	if err := json.Unmarshal(data, &r2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r2.Version != SupportedReportVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedReportVersion)
	}
	if r2.Source.Path != "photo.png" || r2.Source.Width != 1000 {
		t.Errorf("source: got %+v", r2.Source)
	}
	if len(r2.Results) != 2 {
		t.Fatalf("results: got %d", len(r2.Results))
	}
	if !r2.Results[0].WithinBudget || r2.Results[1].WithinBudget {
		t.Error("within_budget flags lost")
	}

	// Stats are computed on write.
	if r2.Stats.TotalResults != 2 {
		t.Errorf("total_results: got %d", r2.Stats.TotalResults)
	}
	if r2.Stats.TotalOutputBytes != 106000 {
		t.Errorf("total_output_bytes: got %d", r2.Stats.TotalOutputBytes)
	}
	if r2.Stats.OverBudget != 1 {
		t.Errorf("over_budget: got %d", r2.Stats.OverBudget)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2026-01-01T00:00:00Z",
		"source": { "path": "x.png", "width": 10, "height": 10, "size": 100, "future": true },
		"results": [],
		"stats": { "total_results": 0, "total_output_bytes": 0, "new_stat": 42 }
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.Version != 1 || r.Source.Path != "x.png" {
		t.Error("report not parsed correctly")
	}
}
