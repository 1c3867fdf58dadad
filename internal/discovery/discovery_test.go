package discovery

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeImage(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(file, img)
	default:
		err = jpeg.Encode(file, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestFromDirectory(t *testing.T) {
	dir := t.TempDir()

	// Deliberately created out of order; discovery must sort by filename.
	writeImage(t, filepath.Join(dir, "frame_0003.jpg"))
	writeImage(t, filepath.Join(dir, "frame_0001.jpg"))
	writeImage(t, filepath.Join(dir, "frame_0002.jpg"))

	// Must all be skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fake.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := FromDirectory(dir)
	if err != nil {
		t.Fatalf("FromDirectory error: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "frame_0001.jpg"),
		filepath.Join(dir, "frame_0002.jpg"),
		filepath.Join(dir, "frame_0003.jpg"),
	}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("FromDirectory = %v, want %v", paths, expected)
	}
}

func TestFromDirectoryMixedSubtypes(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.jpg"))
	writeImage(t, filepath.Join(dir, "b.png"))

	// The mixed-subtype condition warns but never fails.
	paths, err := FromDirectory(dir)
	if err != nil {
		t.Fatalf("FromDirectory error: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("FromDirectory returned %d paths, want 2", len(paths))
	}
}

func TestFromDirectoryMissing(t *testing.T) {
	if _, err := FromDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("FromDirectory on a missing directory should return an error")
	}
}

func TestFromListFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "frames.txt")

	content := `# time-lapse of 2026-06-12, east window
/data/b/frame_0002.jpg

/data/a/frame_0001.jpg
  /data/c/frame_0003.jpg

# trailing comment
`
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := FromListFile(listPath)
	if err != nil {
		t.Fatalf("FromListFile error: %v", err)
	}

	// Order preserved verbatim: no sorting in list mode.
	expected := []string{
		"/data/b/frame_0002.jpg",
		"/data/a/frame_0001.jpg",
		"/data/c/frame_0003.jpg",
	}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("FromListFile = %v, want %v", paths, expected)
	}
}

func TestFromListFileMissing(t *testing.T) {
	if _, err := FromListFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("FromListFile on a missing file should return an error")
	}
}
