package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/cropper"
)

var (
	cropRect    string
	cropDisplay string
	cropFormat  string
	cropOut     string
)

var cropCmd = &cobra.Command{
	Use:   "crop <image>",
	Short: "Crop a display-space region and encode it at maximum quality",
	Long: `Extracts a rectangular region from an image and writes it re-encoded
at maximum quality. The region is given in display coordinates: when
--display names a rendered size different from the image's natural
size, the region is scaled back to natural pixels before cropping, so
no resolution is lost.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrop,
}

func init() {
	cropCmd.Flags().StringVar(&cropRect, "rect", "", "crop region x,y,w,h in display coordinates (required)")
	cropCmd.Flags().StringVar(&cropDisplay, "display", "", "displayed size WxH (defaults to natural size)")
	cropCmd.Flags().StringVarP(&cropFormat, "format", "f", "", "output format: jpeg or webp")
	cropCmd.Flags().StringVarP(&cropOut, "out", "o", "", "output file (default <name>.crop.<w>x<h>.<hash>.<ext>)")
	cropCmd.MarkFlagRequired("rect")
	rootCmd.AddCommand(cropCmd)
}

func runCrop(_ *cobra.Command, args []string) error {
	srcPath := args[0]

	region, err := parseRegion(cropRect)
	if err != nil {
		return err
	}

	enc, err := resolveEncoder(cropFormat, "")
	if err != nil {
		return err
	}

	img, _, err := openImage(srcPath)
	if err != nil {
		return err
	}
	if cropDisplay != "" {
		w, h, err := parseDisplay(cropDisplay)
		if err != nil {
			return err
		}
		img.SetDisplaySize(w, h)
	}

	art, err := cropper.Crop(img, region, enc)
	if err != nil {
		return fmt.Errorf("crop: %w", err)
	}

	outPath := cropOut
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
		outPath = art.FileName(base + ".crop")
	}
	if err := os.WriteFile(outPath, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("  %s → %s (%dx%d, %s)\n",
		srcPath, outPath, art.Width, art.Height, formatBytes(int64(art.SizeBytes())))
	return nil
}
