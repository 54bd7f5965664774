package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshirya/xrd-tool/src/figure"
	"github.com/dshirya/xrd-tool/src/xlog"
)

// RunExportMode renders the given pattern files headlessly to a single PNG
// without creating a window. The angle window is data-derived, all other
// controls use their defaults.
func RunExportMode(paths []string, outPath, ratio string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no pattern files given")
	}
	var files []figure.UploadedFile
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, figure.UploadedFile{Filename: baseName(p), Content: string(raw)})
	}
	params := figure.DefaultParams()
	params.AngleMin, params.AngleMax = defaultAngleWindow(files)
	params.SyncSliders(len(files))

	ratioW, ratioH := parseRatioFlag(ratio)
	data, err := figure.Export(params, files, ratioW, ratioH)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	xlog.Infof("exported %d pattern(s) to %s", len(files), outPath)
	return nil
}

// parseRatioFlag parses the -ratio W:H flag, falling back to 4:3.
func parseRatioFlag(s string) (float64, float64) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 4, 3
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 4, 3
	}
	return w, h
}
