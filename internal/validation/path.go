// Package validation checks user supplied capture paths before any work is
// done: output targets must be writable image files and snapshot sources
// must exist or be http(s) URLs.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankek/domcapture/internal/surface"
)

// writeProbe is created and removed to check that a directory is writable
const writeProbe = ".domcapture_write_probe"

// ValidateOutputPath checks that a capture can be written to outputPath.
// The path must not escape through "..", its directory must exist and be
// writable, and it must not name an existing directory.
func ValidateOutputPath(outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	cleanPath := filepath.Clean(outputPath)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal detected in output path: %s", outputPath)
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", absPath)
	}

	dir := filepath.Dir(absPath)
	dirInfo, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("output path parent is not a directory: %s", dir)
	}

	probe := filepath.Join(dir, writeProbe)
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("output directory is not writable: %s: %w", dir, err)
	}
	f.Close()
	os.Remove(probe) // nolint:errcheck

	return nil
}

// OutputFormat picks the encoding for outputPath. An explicit format wins;
// otherwise the extension decides, falling back to fallback when the path
// has none. An explicit format that disagrees with a known extension is an
// error.
func OutputFormat(outputPath, explicit, fallback string) (surface.Format, error) {
	ext := filepath.Ext(outputPath)

	if explicit != "" {
		format, err := surface.ParseFormat(explicit)
		if err != nil {
			return "", err
		}
		if ext != "" {
			if byExt, err := surface.ParseFormat(ext); err == nil && byExt != format {
				return "", fmt.Errorf("format %s does not match output extension %s", format, ext)
			}
		}
		return format, nil
	}

	if ext != "" {
		return surface.FormatFromPath(outputPath)
	}
	if fallback == "" {
		return "", fmt.Errorf("cannot infer format from path without extension: %s", outputPath)
	}
	return surface.ParseFormat(fallback)
}

// ValidateSnapshotSource accepts an http(s) URL with a host or an existing
// snapshot file.
func ValidateSnapshotSource(source string) error {
	if source == "" {
		return fmt.Errorf("snapshot source cannot be empty")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err != nil {
			return fmt.Errorf("invalid snapshot URL: %w", err)
		}
		if u.Host == "" {
			return fmt.Errorf("snapshot URL has no host: %s", source)
		}
		return nil
	}

	return ValidateInputPath(source, false)
}

// ValidateInputPath checks that inputPath exists and is a directory when
// mustBeDir is set, or a regular file otherwise.
func ValidateInputPath(inputPath string, mustBeDir bool) error {
	if inputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	cleanPath := filepath.Clean(inputPath)
	if strings.Contains(cleanPath, "..") && !filepath.IsAbs(inputPath) {
		return fmt.Errorf("potentially unsafe path detected: %s", inputPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input path does not exist: %s", cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("input path must be a directory: %s", cleanPath)
	}
	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("input path must be a file: %s", cleanPath)
	}

	return nil
}
