package storage

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeBMP(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func TestLoadCoverSubstitutesHeight(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeBMP(t, filepath.Join(dir, "cover_226.bmp"), 150, 226)

	img, err := Covers{}.LoadCover(filepath.Join(dir, "cover_"+HeightPlaceholder+".bmp"), 226)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 150, 226), img.Bounds())
}

func TestLoadCoverErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Covers{}.LoadCover(filepath.Join(dir, "nope.bmp"), 100)
	require.ErrorIs(t, err, ErrCoverMissing)

	junk := filepath.Join(dir, "junk.bmp")
	require.NoError(t, os.WriteFile(junk, []byte("definitely not a bitmap"), 0o644))
	_, err = Covers{}.LoadCover(junk, 100)
	require.ErrorIs(t, err, ErrCoverDecode)
}

func TestCoverPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/c/x_400.bmp", CoverPath("/c/x_[HEIGHT].bmp", 400))
	require.Equal(t, "/c/plain.bmp", CoverPath("/c/plain.bmp", 400))
}
