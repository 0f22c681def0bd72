package opcode_test

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"
)

func TestSourcesFormatted(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		out, err := format.Source(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(src, out) {
			t.Errorf("%s is not gofmt-formatted", name)
		}
	}
}
