package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/planetgl/internal/engine/gpu/gputest"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"png", "bmp"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("jpeg"); err == nil {
		t.Error("expected error for jpeg")
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "planet", FormatBMP)
	sc.now = fixedClock

	want := filepath.Join("shots", "planet_2024-03-01_12-30-45.000.bmp")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFlipRGBA(t *testing.T) {
	// Two rows: bottom red, top blue, as GL reads them back.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRGBA(pixels, 1, 2)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel should be blue, got %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel should be red, got %v", got)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "planet", FormatPNG)
	if _, err := sc.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCapturePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sc := NewScreenshotCapture(dir, "planet", "")
	sc.now = fixedClock

	path, err := sc.Capture(gputest.New(), 4, 3)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("expected png file, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("expected 4x3 image, got %v", b)
	}
}

func TestCaptureBMP(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "planet", FormatBMP)
	sc.now = fixedClock

	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = 200
		if i%4 == 3 {
			pixels[i] = 255
		}
	}
	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("expected 2x2 image, got %v", b)
	}
}
