package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

func testResult(t *testing.T) (masonry.Result, []masonry.Item) {
	t.Helper()
	items := []masonry.Item{
		{ID: "a", Image: "photos/a.jpg", NaturalHeight: 200},
		{ID: "b", Image: "photos/b.jpg", NaturalHeight: 100},
		{ID: "c", Image: "photos/c&d.jpg", NaturalHeight: 100},
	}
	res, err := masonry.Compute(items, 2, 200)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	return res, items
}

func TestRenderJSON(t *testing.T) {
	res, items := testResult(t)

	data, err := RenderJSON(res, WithJSONLabels(LabelsOf(items)), WithJSONSeed(42))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 200 || out.Height != 100 {
		t.Errorf("size = %vx%v, want 200x100", out.Width, out.Height)
	}
	if out.Seed != 42 {
		t.Errorf("Seed = %d, want 42", out.Seed)
	}
	if len(out.Tiles) != 3 {
		t.Fatalf("Tiles = %d, want 3", len(out.Tiles))
	}

	want := []struct {
		id     string
		column int
		y      float64
	}{
		{"a", 0, 0},
		{"b", 1, 0},
		{"c", 1, 50},
	}
	for i, w := range want {
		got := out.Tiles[i]
		if got.ID != w.id || got.Column != w.column || got.Y != w.y {
			t.Errorf("tile %d = %+v, want id %s column %d y %v", i, got, w.id, w.column, w.y)
		}
	}
	if out.Tiles[0].Image != "photos/a.jpg" {
		t.Errorf("Image = %q", out.Tiles[0].Image)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(masonry.Result{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"tiles": []`)) {
		t.Errorf("empty layout should export an empty tiles array:\n%s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	res, items := testResult(t)
	svg := string(RenderSVG(res, WithImages(items), WithLabels()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should be a complete svg element")
	}
	if got := strings.Count(svg, `id="tile-`); got != 3 {
		t.Errorf("tile count = %d, want 3", got)
	}
	if !strings.Contains(svg, `viewBox="0 0 200.0 100.0"`) {
		t.Error("viewBox should match the container size")
	}
	if !strings.Contains(svg, "photos/c&amp;d.jpg") {
		t.Error("labels should be escaped")
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	res, _ := testResult(t)
	if svg := string(RenderSVG(res)); strings.Contains(svg, "<text") {
		t.Error("labels are off by default")
	}
}

func TestRenderPNG(t *testing.T) {
	res, items := testResult(t)

	data, err := RenderPNG(res, WithPNGScale(2), WithPNGLabels(LabelsOf(items)))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}

func TestRenderPNGEmpty(t *testing.T) {
	if _, err := RenderPNG(masonry.Result{}); err == nil {
		t.Error("empty layout should fail")
	}
}

func TestTileColorIsStable(t *testing.T) {
	if TileColor("x") != TileColor("x") {
		t.Error("TileColor should be deterministic")
	}
}
