package measure

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeSizer_NaturalSize(t *testing.T) {
	fsys := fstest.MapFS{
		"images/chart.png": &fstest.MapFile{Data: pngBytes(t, 320, 240)},
		"notes.txt":        &fstest.MapFile{Data: []byte("not an image")},
	}
	sizer := NewDecodeSizer(fsys)

	t.Run("decodes dimensions", func(t *testing.T) {
		w, h, err := sizer.NaturalSize("images/chart.png")
		if err != nil {
			t.Fatal(err)
		}
		if w != 320 || h != 240 {
			t.Errorf("size = %dx%d, want 320x240", w, h)
		}
	})

	t.Run("leading dot-slash", func(t *testing.T) {
		if _, _, err := sizer.NaturalSize("./images/chart.png"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := sizer.NaturalSize("images/missing.png")
		if !errors.Is(err, ErrImageMetricsUnavailable) {
			t.Errorf("err = %v, want ErrImageMetricsUnavailable", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		_, _, err := sizer.NaturalSize("notes.txt")
		if !errors.Is(err, ErrImageMetricsUnavailable) {
			t.Errorf("err = %v, want ErrImageMetricsUnavailable", err)
		}
	})

	t.Run("remote source is not probed", func(t *testing.T) {
		_, _, err := sizer.NaturalSize("https://example.com/remote.png")
		if !errors.Is(err, ErrImageMetricsUnavailable) {
			t.Errorf("err = %v, want ErrImageMetricsUnavailable", err)
		}
	})
}

func TestStaticSizer(t *testing.T) {
	sizer := NewStaticSizer()
	sizer.Add("a.png", 100, 50)

	w, h, err := sizer.NaturalSize("a.png")
	if err != nil || w != 100 || h != 50 {
		t.Errorf("got %dx%d, %v", w, h, err)
	}

	if _, _, err := sizer.NaturalSize("b.png"); !errors.Is(err, ErrImageMetricsUnavailable) {
		t.Errorf("err = %v, want ErrImageMetricsUnavailable", err)
	}
}
