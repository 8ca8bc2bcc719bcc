package report

// Report is the JSON record a fit run writes next to its outputs.
type Report struct {
	Version     int      `json:"version"`
	GeneratedAt string   `json:"generated_at"`
	Source      Source   `json:"source"`
	Results     []Result `json:"results"`
	Stats       Stats    `json:"stats"`
}

// Source holds metadata about the input image.
type Source struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int64  `json:"size"`
	Cropped bool   `json:"cropped,omitempty"`
}

// Result is one fitted output at a specific target budget.
type Result struct {
	Format       string `json:"format"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SizeBytes    int    `json:"size_bytes"`
	TargetBytes  int    `json:"target_bytes"`
	WithinBudget bool   `json:"within_budget"`
	Hash         string `json:"hash"` // first 16 hex chars of xxhash64
	Path         string `json:"path"` // relative to the report location
}

// Stats aggregates run metrics.
type Stats struct {
	TotalResults     int   `json:"total_results"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	OverBudget       int   `json:"over_budget,omitempty"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
