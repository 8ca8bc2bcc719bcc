package cmd

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/raster"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Display decoded properties of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	_, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read header %s: %w", path, err)
	}

	img, size, err := openImage(path)
	if err != nil {
		return err
	}

	aspect := float64(img.NaturalWidth()) / float64(img.NaturalHeight())
	avg := raster.AvgColor(img.Image())

	fmt.Println()
	fmt.Printf("  File:         %s\n", path)
	fmt.Printf("  Format:       %s\n", format)
	fmt.Printf("  Dimensions:   %dx%d\n", img.NaturalWidth(), img.NaturalHeight())
	fmt.Printf("  Aspect ratio: %.4f\n", aspect)
	fmt.Printf("  Size:         %s\n", formatBytes(size))
	fmt.Printf("  Alpha:        %v\n", raster.HasAlpha(img.Image()))
	fmt.Printf("  Avg color:    #%02x%02x%02x\n", avg[0], avg[1], avg[2])
	fmt.Println()
	return nil
}
