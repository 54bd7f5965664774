package figure

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"
)

func TestComposeEmptyFileList(t *testing.T) {
	if _, err := Compose(DefaultParams(), nil, 800, 600); !errors.Is(err, ErrEmptyChart) {
		t.Fatalf("expected ErrEmptyChart, got %v", err)
	}
}

func TestComposeAllFilesSkipped(t *testing.T) {
	p := DefaultParams()
	p.SyncSliders(1)
	files := []UploadedFile{{Filename: "bad.xy", Content: "not numeric data"}}
	if _, err := Compose(p, files, 800, 600); !errors.Is(err, ErrEmptyChart) {
		t.Fatalf("expected ErrEmptyChart for all-skipped input, got %v", err)
	}
}

func TestComposeForcesXRange(t *testing.T) {
	p := oneFileParams()
	p.AngleMin = 5
	p.AngleMax = 95
	ch, err := Compose(p, []UploadedFile{{Filename: "a.xy", Content: triangle}}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng, ok := ch.XAxis.Range.(*chart.ContinuousRange)
	if !ok {
		t.Fatalf("expected continuous X range")
	}
	if rng.Min != 5 || rng.Max != 95 {
		t.Fatalf("X range not forced to window: [%v,%v]", rng.Min, rng.Max)
	}
}

func TestComposePadsSinglePointSeries(t *testing.T) {
	p := oneFileParams()
	p.AngleMin = 15
	p.AngleMax = 25
	ch, err := Compose(p, []UploadedFile{{Filename: "a.xy", Content: triangle}}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := ch.Series[0].(chart.ContinuousSeries)
	if !ok {
		t.Fatalf("expected continuous series")
	}
	if len(cs.XValues) != 2 || len(cs.YValues) != 2 {
		t.Fatalf("single-point series must be padded to 2 points, got %d/%d", len(cs.XValues), len(cs.YValues))
	}
	if cs.YValues[0] != cs.YValues[1] {
		t.Fatalf("padded point must repeat the y value")
	}
}

func TestComposePadsSinglePointAtRightEdgeInward(t *testing.T) {
	p := oneFileParams()
	p.AngleMin = 15
	p.AngleMax = 20 // lone surviving point sits exactly on the right edge
	ch, err := Compose(p, []UploadedFile{{Filename: "a.xy", Content: triangle}}, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := ch.Series[0].(chart.ContinuousSeries)
	if len(cs.XValues) != 2 {
		t.Fatalf("expected padded series, got %d points", len(cs.XValues))
	}
	for _, x := range cs.XValues {
		if x < p.AngleMin || x > p.AngleMax {
			t.Fatalf("padded x=%v outside display range [%v,%v]", x, p.AngleMin, p.AngleMax)
		}
	}
	if cs.XValues[0] != 19 || cs.XValues[1] != 20 {
		t.Fatalf("expected inward padding [19,20], got %v", cs.XValues)
	}
}

func TestComposeLegendToggle(t *testing.T) {
	p := oneFileParams()
	files := []UploadedFile{{Filename: "a.xy", Content: triangle}}
	p.ShowLegend = true
	ch, err := Compose(p, files, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.Elements) != 1 {
		t.Fatalf("expected legend renderable, got %d elements", len(ch.Elements))
	}
	p.ShowLegend = false
	ch, err = Compose(p, files, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.Elements) != 0 {
		t.Fatalf("expected no legend, got %d elements", len(ch.Elements))
	}
}

func TestRenderProducesPNG(t *testing.T) {
	p := oneFileParams()
	files := []UploadedFile{{Filename: "a.xy", Content: triangle}}
	var buf bytes.Buffer
	if err := Render(p, files, 640, 480, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("unexpected image size %dx%d", b.Dx(), b.Dy())
	}
}

func TestExportSize(t *testing.T) {
	w, h := ExportSize(4, 3)
	if w != 3200 || h != 2400 {
		t.Fatalf("4:3 export should be 3200x2400, got %dx%d", w, h)
	}
	w, h = ExportSize(16, 9)
	if w != 3200 || h != 1800 {
		t.Fatalf("16:9 export should be 3200x1800, got %dx%d", w, h)
	}
	w, h = ExportSize(0, -1)
	if w != 3200 || h != 2400 {
		t.Fatalf("invalid ratio should fall back to 4:3, got %dx%d", w, h)
	}
}

func TestExportNoSeries(t *testing.T) {
	p := DefaultParams()
	if _, err := Export(p, nil, 4, 3); !errors.Is(err, ErrEmptyChart) {
		t.Fatalf("expected ErrEmptyChart, got %v", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	p := oneFileParams()
	files := []UploadedFile{{Filename: "a.xy", Content: triangle}}
	data, err := Export(p, files, 4, 3)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 3200 {
		t.Fatalf("unexpected export width %d", img.Bounds().Dx())
	}
}
