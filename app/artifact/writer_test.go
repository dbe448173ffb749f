package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/lysyi3m/icon-lists/app/iconset"
	"github.com/lysyi3m/icon-lists/app/layout"
)

type recordingCompressor struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (c *recordingCompressor) Compress(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(path+CompressedExt, []byte("compressed"), 0644)
}

func testBundle(includePopularity bool) *layout.Bundle {
	return layout.Layout([]iconset.Record{
		{Name: "beta", Categories: []string{"B"}, Tags: []string{"beta"}, Popularity: 1},
		{Name: "alpha", Categories: []string{"A"}, Tags: []string{"alpha", "first"}, Popularity: 9},
	}, includePopularity)
}

func TestPath(t *testing.T) {
	tests := []struct {
		view     View
		minified bool
		want     string
	}{
		{view: ViewFull, minified: false, want: "dist/lucide-icons-full.json"},
		{view: ViewFull, minified: true, want: "dist/lucide-icons-full.min.json"},
		{view: ViewPopularity, minified: true, want: "dist/lucide-icons.min.json"},
		{view: ViewAlphabetical, minified: false, want: "dist/lucide-icons-a.json"},
	}

	for _, tt := range tests {
		if got := Path("dist", "lucide-icons", tt.view, tt.minified); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestParseView(t *testing.T) {
	if v, ok := ParseView(""); !ok || v != ViewFull {
		t.Errorf("Expected empty view to be full, got %q", v)
	}
	if v, ok := ParseView("alphabetical"); !ok || v != ViewAlphabetical {
		t.Errorf("Expected alphabetical view, got %q", v)
	}
	if _, ok := ParseView("sideways"); ok {
		t.Error("Expected unknown view to be rejected")
	}
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dist")
	compressor := &recordingCompressor{}
	writer := NewWriter(dir, compressor)

	paths, err := writer.Write(context.Background(), "set", testBundle(true))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(paths) != 9 {
		t.Errorf("Expected 9 files, got %d: %v", len(paths), paths)
	}
	if len(compressor.paths) != 3 {
		t.Errorf("Expected 3 compressed files, got %v", compressor.paths)
	}

	var names []string
	data, err := os.ReadFile(filepath.Join(dir, "set.min.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
		t.Errorf("Expected popularity order, got %v", names)
	}

	data, err = os.ReadFile(filepath.Join(dir, "set-a.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("\n  \"beta\"")) {
		t.Errorf("Expected pretty printed output, got %s", data)
	}

	var full layout.Full
	data, err = os.ReadFile(filepath.Join(dir, "set-full.min.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &full); err != nil {
		t.Fatal(err)
	}
	if full.CountOfIcons != 2 || full.CountOfTags != 3 {
		t.Errorf("Unexpected full bundle: %+v", full)
	}
}

func TestWriter_SkipsPopularityView(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, &recordingCompressor{})

	paths, err := writer.Write(context.Background(), "set", testBundle(false))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(paths) != 6 {
		t.Errorf("Expected 6 files, got %d", len(paths))
	}
	if _, err := os.Stat(filepath.Join(dir, "set.json")); !os.IsNotExist(err) {
		t.Errorf("Expected no popularity artifact, got: %v", err)
	}
}

func TestWriter_CompressorFailure(t *testing.T) {
	writer := NewWriter(t.TempDir(), &recordingCompressor{err: errors.New("boom")})

	_, err := writer.Write(context.Background(), "set", testBundle(true))
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("Expected ErrPersist, got: %v", err)
	}
	var persistErr *PersistError
	if !errors.As(err, &persistErr) || filepath.Ext(persistErr.Path) != CompressedExt {
		t.Errorf("Expected PersistError for a .br path, got: %v", err)
	}
}

func TestWriter_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	writer := NewWriter(filepath.Join(file, "dist"), &recordingCompressor{})
	if _, err := writer.Write(context.Background(), "set", testBundle(true)); !errors.Is(err, ErrPersist) {
		t.Errorf("Expected ErrPersist, got: %v", err)
	}
}

func TestNativeCompressor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.min.json")
	payload := bytes.Repeat([]byte(`{"n":"icon","t":["a","b"]},`), 200)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewNativeCompressor().Compress(context.Background(), path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	compressed, err := os.ReadFile(path + CompressedExt)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) >= len(payload) {
		t.Errorf("Expected compressed output to be smaller, got %d >= %d", len(compressed), len(payload))
	}

	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Error("Expected round trip to reproduce the input")
	}
}

func TestNativeCompressor_MissingInput(t *testing.T) {
	err := NewNativeCompressor().Compress(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("Expected error for missing input")
	}
}

func TestCommandCompressor_Args(t *testing.T) {
	t.Setenv("BROTLI_QUALITY", "9")
	c := NewCommandCompressor(`brotli -q $BROTLI_QUALITY -f -k "$INPUT"`)

	args, err := c.Args("/tmp/my dir/set.min.json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"brotli", "-q", "9", "-f", "-k", "/tmp/my dir/set.min.json"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Expected %v, got %v", want, args)
	}

	if _, err := NewCommandCompressor("   ").Args("x"); err == nil {
		t.Error("Expected error for empty command")
	}
}

func TestCommandCompressor_Run(t *testing.T) {
	if _, err := exec.LookPath("cp"); err != nil {
		t.Skip("cp not available")
	}

	path := filepath.Join(t.TempDir(), "set.min.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewCommandCompressor(`cp "$INPUT" "$INPUT.br"`).Compress(context.Background(), path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := os.Stat(path + CompressedExt); err != nil {
		t.Errorf("Expected .br output, got: %v", err)
	}

	if err := NewCommandCompressor("true").Compress(context.Background(), filepath.Join(t.TempDir(), "other.json")); err == nil {
		t.Error("Expected error when the command writes no output")
	}
}
