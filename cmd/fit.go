package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
	"github.com/AnyUserName/imgfit-cli/internal/compressor"
	"github.com/AnyUserName/imgfit-cli/internal/cropper"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	"github.com/AnyUserName/imgfit-cli/internal/profile"
	"github.com/AnyUserName/imgfit-cli/internal/raster"
	"github.com/AnyUserName/imgfit-cli/internal/report"
	"github.com/AnyUserName/imgfit-cli/internal/session"
)

var (
	fitOutDir   string
	fitProfile  string
	fitTargets  []int
	fitFormat   string
	fitCrop     string
	fitDisplay  string
	fitNoReport bool
)

var fitCmd = &cobra.Command{
	Use:   "fit <image>",
	Short: "Re-encode an image to approximate target sizes in KB",
	Long: `Decodes one image, optionally crops a display-space region out of it,
and produces one output per target budget. Quality is searched first;
pixel dimensions shrink only when even maximal compression at full
resolution is too large. Outputs that still miss the budget are written
anyway and flagged in the report.

Output filenames are content-addressed: <name>.<w>x<h>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&fitOutDir, "out", "o", "./imgfit_out", "output directory")
	fitCmd.Flags().StringVarP(&fitProfile, "profile", "p", "web", "fitting profile")
	fitCmd.Flags().IntSliceVar(&fitTargets, "kb", nil, "target sizes in KB (overrides profile)")
	fitCmd.Flags().StringVarP(&fitFormat, "format", "f", "", "output format: jpeg or webp (overrides profile)")
	fitCmd.Flags().StringVar(&fitCrop, "crop", "", "crop region x,y,w,h in display coordinates")
	fitCmd.Flags().StringVar(&fitDisplay, "display", "", "displayed size WxH (defaults to natural size)")
	fitCmd.Flags().BoolVar(&fitNoReport, "no-report", false, "skip writing imgfit.report.json")
	rootCmd.AddCommand(fitCmd)
}

func runFit(_ *cobra.Command, args []string) error {
	srcPath := args[0]
	start := time.Now()

	prof := profile.Get(fitProfile)
	if fitTargets != nil {
		prof.TargetKB = fitTargets
	}
	targets := prof.EffectiveTargets()
	if len(targets) == 0 {
		return fmt.Errorf("no positive target sizes given")
	}

	enc, err := resolveEncoder(fitFormat, prof.Format)
	if err != nil {
		return err
	}

	img, srcSize, err := openImage(srcPath)
	if err != nil {
		return err
	}
	if fitDisplay != "" {
		w, h, err := parseDisplay(fitDisplay)
		if err != nil {
			return err
		}
		img.SetDisplaySize(w, h)
	}

	logVerbose("input:   %s (%dx%d, %s)", srcPath, img.NaturalWidth(), img.NaturalHeight(), formatBytes(srcSize))
	logVerbose("profile: %s (targets=%v KB, format=%s)", prof.Name, targets, enc.Format())

	if raster.HasAlpha(img.Image()) {
		fmt.Fprintf(os.Stderr, "[imgfit] warning: transparency will be flattened by the %s encode\n", enc.Format())
	}

	cropped := false
	if fitCrop != "" {
		region, err := parseRegion(fitCrop)
		if err != nil {
			return err
		}
		art, err := cropper.Crop(img, region, enc)
		if err != nil {
			return fmt.Errorf("crop: %w", err)
		}
		// The search runs on the cropped output, so decode it back into
		// a fresh source image.
		img, err = raster.Decode(bytes.NewReader(art.Data))
		if err != nil {
			return fmt.Errorf("re-decode cropped image: %w", err)
		}
		cropped = true
		logVerbose("cropped: %dx%d at (%d,%d) → %dx%d", region.Width, region.Height, region.X, region.Y, art.Width, art.Height)
	}

	if err := os.MkdirAll(fitOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	comp := compressor.New(enc)
	comp.SetLogf(logVerbose)

	history := session.NewHistory(0)
	defer history.Clear()

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	rep := report.New(report.Source{
		Path:    srcPath,
		Width:   img.NaturalWidth(),
		Height:  img.NaturalHeight(),
		Size:    srcSize,
		Cropped: cropped,
	})

	for _, kb := range targets {
		targetBytes := compressor.KBToBytes(kb)

		art, err := comp.Compress(img, targetBytes)
		if err != nil {
			return fmt.Errorf("fit %d KB: %w", kb, err)
		}

		// Preview handle for this loop body; the history entry clones
		// its own retained handle so releasing ours below is safe.
		preview := artifact.NewHandle(art)
		name := fmt.Sprintf("%s@%dKB", base, kb)
		if _, err := history.Add(name, preview, targetBytes); err != nil {
			return err
		}

		fileName := art.FileName(base)
		outPath := filepath.Join(fitOutDir, fileName)
		if err := os.WriteFile(outPath, preview.Bytes(), 0o644); err != nil {
			preview.Release()
			return fmt.Errorf("write %s: %w", fileName, err)
		}

		within := art.SizeBytes() <= targetBytes
		mark := "✓"
		if !within {
			mark = "✗ over budget"
		}
		fmt.Printf("  %4d KB → %-40s %8s at %dx%d  %s\n",
			kb, fileName, formatBytes(int64(art.SizeBytes())), art.Width, art.Height, mark)

		rep.Results = append(rep.Results, report.Result{
			Format:       art.Format,
			Width:        art.Width,
			Height:       art.Height,
			SizeBytes:    art.SizeBytes(),
			TargetBytes:  targetBytes,
			WithinBudget: within,
			Hash:         art.ContentHash(16),
			Path:         fileName,
		})

		if err := preview.Release(); err != nil {
			return err
		}
	}

	// Stats feed the summary even when no report file is written.
	rep.ComputeStats()

	if !fitNoReport {
		reportPath := filepath.Join(fitOutDir, "imgfit.report.json")
		if err := report.WriteJSON(rep, reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printFitSummary(rep, srcSize, time.Since(start))
	return nil
}

func printFitSummary(rep *report.Report, srcSize int64, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Source:   %s (%s)\n", rep.Source.Path, formatBytes(srcSize))
	fmt.Printf("  Outputs:  %d (%s total)\n", rep.Stats.TotalResults, formatBytes(rep.Stats.TotalOutputBytes))
	if rep.Stats.OverBudget > 0 {
		fmt.Printf("  Warning:  %d output(s) exceeded their budget — best effort only\n", rep.Stats.OverBudget)
	}
	fmt.Printf("  Time:     %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

// resolveEncoder picks the output encoder: explicit flag first, then
// the profile, then the config file, then jpeg.
func resolveEncoder(flagFormat, profileFormat string) (encoder.Encoder, error) {
	registry := encoder.NewRegistry()

	format := flagFormat
	if format == "" {
		format = profileFormat
	}
	if format == "" && cfg != nil {
		format = cfg.Output.Format
	}
	if format == "" {
		return registry.Default(), nil
	}

	enc := registry.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("unsupported format %q (%s)", format, registry.String())
	}
	return enc, nil
}

func openImage(path string) (*raster.DecodedImage, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}

	img, err := raster.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, info.Size(), nil
}

// parseRegion parses "x,y,w,h" into a crop region.
func parseRegion(s string) (cropper.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return cropper.Region{}, fmt.Errorf("crop: expected x,y,w,h, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return cropper.Region{}, fmt.Errorf("crop: bad value %q: %w", p, err)
		}
		vals[i] = v
	}
	return cropper.Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// parseDisplay parses "WxH" into display dimensions.
func parseDisplay(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("display: expected WxH, got %q", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("display: bad width %q: %w", parts[0], err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("display: bad height %q: %w", parts[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("display: dimensions must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}
