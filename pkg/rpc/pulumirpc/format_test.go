package pulumirpc

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"
)

func TestGeneratedFilesAreFormatted(t *testing.T) {
	files, err := filepath.Glob("*.pb.go")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 generated files, got %v", files)
	}

	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(name)
			if err != nil {
				t.Fatal(err)
			}
			formatted, err := format.Source(src)
			if err != nil {
				t.Fatalf("format.Source failed: %v", err)
			}
			if !bytes.Equal(src, formatted) {
				t.Errorf("%s is not gofmt-formatted; regenerate it with go generate", name)
			}
		})
	}
}
