package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ankek/domcapture/internal/surface"
)

func TestValidateOutputPath(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
		setup   func() string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name: "valid path in temp dir",
			setup: func() string {
				return filepath.Join(tmpDir, "capture.png")
			},
		},
		{
			name:    "path traversal attempt with ..",
			path:    "../../../etc/capture.png",
			wantErr: true,
		},
		{
			name:    "path in non-existent directory",
			path:    "/nonexistent/directory/capture.png",
			wantErr: true,
		},
		{
			name: "valid nested path",
			setup: func() string {
				nested := filepath.Join(tmpDir, "nested", "dir")
				os.MkdirAll(nested, 0755)
				return filepath.Join(nested, "card.jpg")
			},
		},
		{
			name:    "existing directory",
			wantErr: true,
			setup: func() string {
				dir := filepath.Join(tmpDir, "shots")
				os.MkdirAll(dir, 0755)
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup()
			}

			err := ValidateOutputPath(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPathLeavesNoProbe(t *testing.T) {
	tmpDir := t.TempDir()
	if err := ValidateOutputPath(filepath.Join(tmpDir, "capture.png")); err != nil {
		t.Fatalf("ValidateOutputPath() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, writeProbe)); !os.IsNotExist(err) {
		t.Errorf("write probe left behind: %v", err)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		explicit string
		fallback string
		want     surface.Format
		wantErr  bool
	}{
		{name: "from extension", path: "out.jpg", want: surface.FormatJPEG},
		{name: "explicit without extension", path: "out", explicit: "bmp", want: surface.FormatBMP},
		{name: "explicit matching extension", path: "out.tif", explicit: "tiff", want: surface.FormatTIFF},
		{name: "explicit conflicts with extension", path: "out.png", explicit: "jpeg", wantErr: true},
		{name: "explicit with unknown extension", path: "out.capture", explicit: "png", want: surface.FormatPNG},
		{name: "fallback", path: "out", fallback: "png", want: surface.FormatPNG},
		{name: "no extension no fallback", path: "out", wantErr: true},
		{name: "unknown extension", path: "out.gif", wantErr: true},
		{name: "unknown explicit", path: "out", explicit: "webp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputFormat(tt.path, tt.explicit, tt.fallback)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("OutputFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSnapshotSource(t *testing.T) {
	tmpDir := t.TempDir()
	page := filepath.Join(tmpDir, "page.yaml")
	if err := os.WriteFile(page, []byte("url: about:blank\n"), 0644); err != nil {
		t.Fatalf("Failed to create snapshot: %v", err)
	}

	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{name: "empty", source: "", wantErr: true},
		{name: "https url", source: "https://example.test/page.yaml"},
		{name: "http url", source: "http://127.0.0.1:8080/page.json"},
		{name: "url without host", source: "https:///page.yaml", wantErr: true},
		{name: "existing file", source: page},
		{name: "directory", source: tmpDir, wantErr: true},
		{name: "missing file", source: filepath.Join(tmpDir, "missing.yaml"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotSource(tt.source)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotSource() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "capture.hcl")
	testDir := filepath.Join(tmpDir, "profiles")

	if err := os.WriteFile(testFile, []byte("scale = 1\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		mustBeDir bool
		wantErr   bool
	}{
		{name: "empty path", path: "", wantErr: true},
		{name: "valid file when file expected", path: testFile},
		{name: "valid directory when directory expected", path: testDir, mustBeDir: true},
		{name: "file when directory expected", path: testFile, mustBeDir: true, wantErr: true},
		{name: "directory when file expected", path: testDir, wantErr: true},
		{name: "non-existent path", path: "/nonexistent/path", wantErr: true},
		{name: "relative traversal", path: "../profiles/capture.hcl", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path, tt.mustBeDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath_Permissions(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}
	if os.PathSeparator == '\\' {
		t.Skip("Skipping permission test on Windows")
	}

	tmpDir := t.TempDir()
	readOnlyDir := filepath.Join(tmpDir, "readonly")
	if err := os.MkdirAll(readOnlyDir, 0555); err != nil {
		t.Fatalf("Failed to create read-only directory: %v", err)
	}
	defer os.Chmod(readOnlyDir, 0755)

	if err := ValidateOutputPath(filepath.Join(readOnlyDir, "capture.png")); err == nil {
		t.Error("ValidateOutputPath() should fail for read-only directory")
	}
}
