package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"io"
	"os"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dshirya/xrd-tool/cmd/xrdviewer/uihelpers"
	"github.com/dshirya/xrd-tool/src/figure"
	"github.com/dshirya/xrd-tool/src/pattern"
	"github.com/dshirya/xrd-tool/src/xlog"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	// session state: uploaded patterns plus the current control snapshot
	files  []figure.UploadedFile
	params figure.Params
	ratioW float64
	ratioH float64

	// widgets
	chartCanvas    *canvas.Image
	angleMinSlider *widget.Slider
	angleMaxSlider *widget.Slider
	sepSlider      *widget.Slider
	fileControls   *fyne.Container
	countLabel     *widget.Label

	showStatus bool
}

func main() {
	var exportPath string
	var ratioFlag string
	var logLevel string
	flag.StringVar(&exportPath, "export", "", "Render the given .xy files headlessly to this PNG and exit")
	flag.StringVar(&ratioFlag, "ratio", "4:3", "Export aspect ratio as W:H")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	xlog.SetLevel(logLevel)

	if exportPath != "" {
		if err := RunExportMode(flag.Args(), exportPath, ratioFlag); err != nil {
			xlog.Errorf("export: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.dshirya.xrdviewer")
	w := a.NewWindow("XRD Viewer")
	w.Resize(fyne.NewSize(1200, 800))

	state := &uiState{
		app:    a,
		window: w,
		params: figure.DefaultParams(),
		ratioW: 4,
		ratioH: 3,
	}
	state.params.ShowLegend = a.Preferences().BoolWithFallback("showLegend", true)
	state.params.Transparent = a.Preferences().BoolWithFallback("transparentExport", false)
	state.showStatus = a.Preferences().BoolWithFallback("showStatus", false)
	state.ratioW = a.Preferences().FloatWithFallback("ratioW", 4)
	state.ratioH = a.Preferences().FloatWithFallback("ratioH", 3)

	// chart area
	state.chartCanvas = canvas.NewImageFromImage(blank(800, 600))
	state.chartCanvas.FillMode = canvas.ImageFillContain
	state.chartCanvas.SetMinSize(fyne.NewSize(800, 600))

	// global sliders
	state.angleMinSlider = widget.NewSlider(0, 100)
	state.angleMinSlider.Step = 1
	state.angleMinSlider.SetValue(state.params.AngleMin)
	state.angleMaxSlider = widget.NewSlider(0, 100)
	state.angleMaxSlider.Step = 1
	state.angleMaxSlider.SetValue(state.params.AngleMax)
	state.sepSlider = widget.NewSlider(0, 100)
	state.sepSlider.Step = 1

	angleMinLabel := widget.NewLabel(fmt.Sprintf("Angle min: %.0f", state.params.AngleMin))
	angleMaxLabel := widget.NewLabel(fmt.Sprintf("Angle max: %.0f", state.params.AngleMax))
	sepLabel := widget.NewLabel("Separation: 0")
	state.angleMinSlider.OnChanged = func(v float64) {
		state.params.AngleMin = v
		angleMinLabel.SetText(fmt.Sprintf("Angle min: %.0f", v))
		redraw(state)
	}
	state.angleMaxSlider.OnChanged = func(v float64) {
		state.params.AngleMax = v
		angleMaxLabel.SetText(fmt.Sprintf("Angle max: %.0f", v))
		redraw(state)
	}
	state.sepSlider.OnChanged = func(v float64) {
		state.params.GlobalSep = v
		sepLabel.SetText(fmt.Sprintf("Separation: %.0f", v))
		redraw(state)
	}

	// display options
	legendChk := widget.NewCheck("Legend", func(b bool) {
		state.params.ShowLegend = b
		savePrefs(state)
		redraw(state)
	})
	legendChk.SetChecked(state.params.ShowLegend)
	transparentChk := widget.NewCheck("Transparent export", func(b bool) {
		state.params.Transparent = b
		savePrefs(state)
	})
	transparentChk.SetChecked(state.params.Transparent)
	statusChk := widget.NewCheck("Status", func(b bool) {
		state.showStatus = b
		savePrefs(state)
		redraw(state)
	})
	statusChk.SetChecked(state.showStatus)

	// export ratio
	ratioWEntry := widget.NewEntry()
	ratioWEntry.SetText(fmt.Sprintf("%g", state.ratioW))
	ratioHEntry := widget.NewEntry()
	ratioHEntry.SetText(fmt.Sprintf("%g", state.ratioH))
	onRatioChanged := func(string) {
		state.ratioW, state.ratioH = uihelpers.ParseRatio(ratioWEntry.Text, ratioHEntry.Text)
		savePrefs(state)
	}
	ratioWEntry.OnChanged = onRatioChanged
	ratioHEntry.OnChanged = onRatioChanged

	// per-file controls rebuilt whenever the file list changes
	state.fileControls = container.NewVBox()
	state.countLabel = widget.NewLabel("No patterns loaded")

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reset", func() { resetControls(state) }),
		widget.NewButton("Save PNG…", func() { savePlot(state) }),
		legendChk, transparentChk, statusChk,
		widget.NewLabel("Ratio:"), ratioWEntry, widget.NewLabel(":"), ratioHEntry,
		state.countLabel,
	)

	controls := container.NewVBox(
		angleMinLabel, state.angleMinSlider,
		angleMaxLabel, state.angleMaxSlider,
		sepLabel, state.sepSlider,
		widget.NewSeparator(),
		widget.NewLabel("Per-file controls:"),
		state.fileControls,
	)
	controlsScroll := container.NewVScroll(controls)
	controlsScroll.SetMinSize(fyne.NewSize(360, 600))

	split := container.NewHSplit(state.chartCanvas, controlsScroll)
	split.Offset = 0.72
	w.SetContent(container.NewBorder(top, nil, nil, nil, split))

	// drag & drop of .xy files onto the window
	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			if u.Scheme() != "file" {
				xlog.Warnf("drop ignored: unsupported scheme %q", u.Scheme())
				continue
			}
			paths = append(paths, u.Path())
		}
		addPaths(state, paths)
	})

	addPaths(state, flag.Args())
	redraw(state)
	w.ShowAndRun()
}

// addPaths reads each path, appends it to the session file list and
// re-aligns the per-file sliders. Unreadable files are skipped.
func addPaths(state *uiState, paths []string) {
	added := 0
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			xlog.Warnf("read %s: %v", p, err)
			continue
		}
		state.files = append(state.files, figure.UploadedFile{
			Filename: baseName(p),
			Content:  string(raw),
		})
		added++
	}
	if added == 0 {
		return
	}
	xlog.Infof("added %d pattern file(s), %d total", added, len(state.files))
	state.params.SyncSliders(len(state.files))
	rebuildFileControls(state)
	redraw(state)
}

// addFile appends one already-read file (Open… dialog path).
func addFile(state *uiState, name string, content string) {
	state.files = append(state.files, figure.UploadedFile{Filename: name, Content: content})
	state.params.SyncSliders(len(state.files))
	rebuildFileControls(state)
	redraw(state)
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, "/\\"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// rebuildFileControls recreates one BG/intensity slider row per file.
// Slider ranges follow the viewer conventions: BG -10..50 step 0.5,
// intensity 1..200 step 1.
func rebuildFileControls(state *uiState) {
	state.fileControls.Objects = nil
	for i := range state.files {
		i := i
		name := pattern.StripExtension(state.files[i].Filename)

		bg := widget.NewSlider(-10, 50)
		bg.Step = 0.5
		bg.SetValue(state.params.Background[i])
		bg.OnChanged = func(v float64) {
			state.params.Background[i] = v
			redraw(state)
		}

		intensity := widget.NewSlider(1, 200)
		intensity.Step = 1
		intensity.SetValue(state.params.Intensity[i])
		intensity.OnChanged = func(v float64) {
			state.params.Intensity[i] = v
			redraw(state)
		}

		state.fileControls.Add(widget.NewLabelWithStyle(name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		state.fileControls.Add(widget.NewLabel("BG:"))
		state.fileControls.Add(bg)
		state.fileControls.Add(widget.NewLabel("Int:"))
		state.fileControls.Add(intensity)
	}
	state.fileControls.Refresh()
	if state.countLabel != nil {
		if len(state.files) == 0 {
			state.countLabel.SetText("No patterns loaded")
		} else {
			state.countLabel.SetText(fmt.Sprintf("%d pattern(s)", len(state.files)))
		}
	}
}

// redraw rebuilds the chart from the current snapshot and swaps it into
// the canvas. Every interaction funnels through here; the figure package
// is a pure function of the snapshot, so no other state is consulted.
func redraw(state *uiState) {
	if state.chartCanvas == nil {
		return
	}
	cw, ch := chartSize(state)
	var buf bytes.Buffer
	err := figure.Render(state.params, state.files, cw, ch, &buf)
	var img image.Image
	switch {
	case errors.Is(err, figure.ErrEmptyChart):
		img = blank(cw, ch)
	case err != nil:
		xlog.Errorf("chart render: %v", err)
		img = blank(cw, ch)
	default:
		img, err = png.Decode(&buf)
		if err != nil {
			xlog.Errorf("chart decode: %v", err)
			img = blank(cw, ch)
		}
	}
	if state.showStatus {
		img = drawStatus(img, statusLine(state))
	}
	state.chartCanvas.Image = img
	state.chartCanvas.Refresh()
}

func statusLine(state *uiState) string {
	return fmt.Sprintf("%d pattern(s) · %.0f–%.0f° · sep %.0f",
		len(state.files), state.params.AngleMin, state.params.AngleMax, state.params.GlobalSep)
}

// chartSize derives the on-screen chart pixel size from the window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(800)
	}
	sz := state.window.Canvas().Size()
	return uihelpers.ComputeChartDimensions(int(sz.Width * 0.7))
}

// resetControls restores the default view: a data-derived angle window
// (global min/max across all files, 10..90 when nothing parses), zero
// separation and default per-file sliders.
func resetControls(state *uiState) {
	minA, maxA := defaultAngleWindow(state.files)
	state.params.GlobalSep = 0
	state.params.Background = nil
	state.params.Intensity = nil
	state.params.SyncSliders(len(state.files))
	state.sepSlider.SetValue(0)
	state.angleMinSlider.SetValue(minA)
	state.angleMaxSlider.SetValue(maxA)
	rebuildFileControls(state)
	redraw(state)
}

// defaultAngleWindow returns the global angle extent across all files, or
// the fixed defaults when no file has a valid angle column.
func defaultAngleWindow(files []figure.UploadedFile) (float64, float64) {
	contents := make([]string, len(files))
	for i, f := range files {
		contents[i] = f.Content
	}
	if minA, maxA, ok := pattern.AngleSpan(contents); ok {
		return minA, maxA
	}
	return figure.DefaultAngleMin, figure.DefaultAngleMax
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			xlog.Warnf("read %s: %v", rc.URI().Name(), err)
			return
		}
		addFile(state, rc.URI().Name(), string(raw))
	}, state.window)
	d.Show()
}

// savePlot exports the current chart as a high-resolution PNG. With no
// files loaded the export is skipped entirely rather than producing an
// empty image.
func savePlot(state *uiState) {
	if len(state.files) == 0 {
		dialog.ShowInformation("Save Plot", "No patterns to export.", state.window)
		return
	}
	data, err := figure.Export(state.params, state.files, state.ratioW, state.ratioH)
	if err != nil {
		if errors.Is(err, figure.ErrEmptyChart) {
			dialog.ShowInformation("Save Plot", "Nothing visible in the current angle window.", state.window)
			return
		}
		dialog.ShowError(err, state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if _, err := wc.Write(data); err != nil {
			xlog.Errorf("write export: %v", err)
		}
	}, state.window)
	fs.SetFileName("plot.png")
	fs.Show()
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetBool("showLegend", state.params.ShowLegend)
	prefs.SetBool("transparentExport", state.params.Transparent)
	prefs.SetBool("showStatus", state.showStatus)
	prefs.SetFloat("ratioW", state.ratioW)
	prefs.SetFloat("ratioH", state.ratioH)
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}
