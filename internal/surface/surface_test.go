package surface

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestProvide(t *testing.T) {
	t.Run("returns existing surface", func(t *testing.T) {
		existing := New()
		assert.Same(t, existing, Provide(existing))
	})

	t.Run("creates a new surface when none supplied", func(t *testing.T) {
		s := Provide(nil)
		require.NotNil(t, s)
		assert.True(t, s.Empty())
	})
}

func TestAllocate(t *testing.T) {
	s := New()

	img := s.Allocate(10, 5)
	assert.Equal(t, image.Rect(0, 0, 10, 5), img.Bounds())

	// same size reuses the backing image
	assert.Same(t, img, s.Allocate(10, 5))

	// a different size replaces it
	other := s.Allocate(3, 3)
	assert.NotSame(t, img, other)
	assert.Equal(t, image.Rect(0, 0, 3, 3), s.Bounds())

	s.Allocate(-1, 4)
	assert.True(t, s.Empty())
}

func TestNewWithImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s := NewWithImage(img)

	assert.Same(t, img, s.Allocate(4, 4))
	assert.NotSame(t, img, s.Allocate(8, 8))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "png", want: FormatPNG},
		{name: ".PNG", want: FormatPNG},
		{name: "jpg", want: FormatJPEG},
		{name: "jpeg", want: FormatJPEG},
		{name: "bmp", want: FormatBMP},
		{name: "tif", want: FormatTIFF},
		{name: "gif", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/out.jpeg")
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, f)
	assert.Equal(t, ".jpg", f.Extension())

	_, err = FormatFromPath("/tmp/out")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	s := New()
	s.Allocate(6, 4)

	t.Run("png round trip keeps size", func(t *testing.T) {
		data, err := s.Bytes(FormatPNG)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 6, img.Bounds().Dx())
		assert.Equal(t, 4, img.Bounds().Dy())
	})

	t.Run("bmp", func(t *testing.T) {
		data, err := s.Bytes(FormatBMP)
		require.NoError(t, err)
		_, err = bmp.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("tiff", func(t *testing.T) {
		data, err := s.Bytes(FormatTIFF)
		require.NoError(t, err)
		_, err = tiff.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("jpeg", func(t *testing.T) {
		data, err := s.Bytes(FormatJPEG)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("empty surface", func(t *testing.T) {
		_, err := New().Bytes(FormatPNG)
		assert.ErrorIs(t, err, ErrEmptySurface)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Bytes(Format("gif"))
		assert.Error(t, err)
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	s := New()
	s.Allocate(2, 2)

	path := filepath.Join(dir, "capture.png")
	require.NoError(t, s.WriteFile(path, FormatPNG))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// a failed encode leaves no partial file behind
	emptyPath := filepath.Join(dir, "empty.png")
	assert.ErrorIs(t, New().WriteFile(emptyPath, FormatPNG), ErrEmptySurface)
	_, err = os.Stat(emptyPath)
	assert.True(t, os.IsNotExist(err))
}
