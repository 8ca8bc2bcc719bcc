package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
	"github.com/AnyUserName/imgfit-cli/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <out_dir_or_report>",
	Short: "Verify a fit report against the files on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the report inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "imgfit.report.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	baseDir := filepath.Dir(path)
	errors := verifyReport(&rep, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d result(s) — all files present and matching\n", rep.Stats.TotalResults)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errors))
}

func verifyReport(rep *report.Report, baseDir string) []string {
	var errs []string

	if rep.Version != report.SupportedReportVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", rep.Version))
	}
	if rep.Source.Width <= 0 || rep.Source.Height <= 0 {
		errs = append(errs, fmt.Sprintf("invalid source dimensions %dx%d", rep.Source.Width, rep.Source.Height))
	}
	if len(rep.Results) == 0 {
		errs = append(errs, "no results")
	}

	seenPaths := map[string]bool{}
	for i, r := range rep.Results {
		if r.Format == "" {
			errs = append(errs, fmt.Sprintf("result[%d]: empty format", i))
		}
		if r.Width <= 0 || r.Height <= 0 {
			errs = append(errs, fmt.Sprintf("result[%d]: invalid dimensions %dx%d", i, r.Width, r.Height))
		}
		if r.TargetBytes <= 0 {
			errs = append(errs, fmt.Sprintf("result[%d]: invalid target %d", i, r.TargetBytes))
		}
		if r.WithinBudget && r.SizeBytes > r.TargetBytes {
			errs = append(errs, fmt.Sprintf("result[%d]: flagged within budget but %d > %d", i, r.SizeBytes, r.TargetBytes))
		}
		if r.Path == "" {
			errs = append(errs, fmt.Sprintf("result[%d]: missing path", i))
			continue
		}
		if seenPaths[r.Path] {
			errs = append(errs, fmt.Sprintf("result[%d]: duplicate path %q", i, r.Path))
		}
		seenPaths[r.Path] = true

		fullPath := filepath.Join(baseDir, r.Path)
		data, err := os.ReadFile(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("result[%d]: file not found: %s", i, r.Path))
			continue
		}
		if len(data) != r.SizeBytes {
			errs = append(errs, fmt.Sprintf("result[%d]: size mismatch: report=%d, disk=%d", i, r.SizeBytes, len(data)))
		}
		onDisk := &artifact.Artifact{Data: data}
		if hash := onDisk.ContentHash(16); r.Hash != "" && hash != r.Hash {
			errs = append(errs, fmt.Sprintf("result[%d]: hash mismatch: report=%s, disk=%s", i, r.Hash, hash))
		}
	}

	return errs
}
