package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInfoCommand_PageSizeValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.dat")
	if err := os.WriteFile(path, make([]byte, 128), 0o644); err != nil {
		t.Fatalf("write storage file: %v", err)
	}

	tests := []struct {
		name     string
		pageSize int
		wantErr  bool
	}{
		{"default page size", 4096, false},
		{"small page size", 16, false},
		{"zero page size", 0, true},
		{"negative page size", -4096, true},
	}

	origQuiet, origPageSize := quiet, infoPageSize
	defer func() { quiet, infoPageSize = origQuiet, origPageSize }()
	quiet = true

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infoPageSize = tt.pageSize
			err := runInfo([]string{path})
			if (err != nil) != tt.wantErr {
				t.Errorf("runInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
