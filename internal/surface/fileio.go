package surface

import (
	"fmt"
	"os"
)

// WriteFile encodes the surface and writes it to path
func (s *Surface) WriteFile(path string, format Format) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}

	if err := s.Encode(file, format); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// createFile creates a new file for writing
func createFile(path string) (*os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	return file, nil
}
