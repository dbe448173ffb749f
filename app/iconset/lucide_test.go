package iconset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lysyi3m/icon-lists/app/fetch"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLucide_FetchAndNormalize(t *testing.T) {
	root := t.TempDir()
	iconsDir := filepath.Join(root, "icons")
	categoriesDir := filepath.Join(root, "categories")
	artifactPath := filepath.Join(root, "material-combined-full.min.json")

	writeFiles(t, iconsDir, map[string]string{
		"arrow-left.json": `{"$schema":"../icon.schema.json","tags":["Back","previous","back"],"categories":["arrows","navigation"]}`,
		"zap.json":        `{"tags":["flash"],"categories":["weather","unknown-key"]}`,
		"house.json":      `{"tags":["home"],"categories":["buildings"]}`,
	})
	writeFiles(t, categoriesDir, map[string]string{
		"arrows.json":     `{"title":"Arrows","icon":"arrow-big-up"}`,
		"navigation.json": `{"title":"Navigation, Maps & POIs"}`,
		"weather.json":    `{"title":"Weather"}`,
		"buildings.json":  `{"title":"Buildings"}`,
	})
	writeFiles(t, root, map[string]string{
		"material-combined-full.min.json": `{"icons":[{"n":"Home","p":100,"c":["Action"],"t":["home","house"]},{"n":"Arrow Back","p":50,"c":["Navigation"],"t":["back","previous"]}]}`,
	})

	lucide := NewLucide(iconsDir, categoriesDir, artifactPath, fetch.NewClient(nil, "", 0))

	payload, err := lucide.FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := lucide.Validate(payload); err != nil {
		t.Fatalf("Expected valid payload, got: %v", err)
	}

	normalized, err := lucide.Normalize(payload)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(normalized.Variants) != 1 || normalized.Variants[0].Output != OutputLucideIcons {
		t.Fatalf("Expected one lucide variant, got %+v", normalized.Variants)
	}
	records := normalized.Variants[0].Records

	names := []string{records[0].Name, records[1].Name, records[2].Name}
	if !reflect.DeepEqual(names, []string{"arrow-left", "house", "zap"}) {
		t.Errorf("Expected alphabetical key order, got %v", names)
	}

	arrow := records[0]
	if !reflect.DeepEqual(arrow.Tags, []string{"arrow left", "back", "previous"}) {
		t.Errorf("Unexpected tags: %v", arrow.Tags)
	}
	if !reflect.DeepEqual(arrow.Categories, []string{"Arrows", "Navigation, Maps & POIs"}) {
		t.Errorf("Unexpected categories: %v", arrow.Categories)
	}
	if arrow.Popularity != 50 {
		t.Errorf("Expected derived popularity 50, got %d", arrow.Popularity)
	}

	if records[1].Popularity != 100 {
		t.Errorf("Expected house popularity 100, got %d", records[1].Popularity)
	}

	zap := records[2]
	if !reflect.DeepEqual(zap.Categories, []string{"Weather", "unknown-key"}) {
		t.Errorf("Expected unmapped category to pass through, got %v", zap.Categories)
	}
	if zap.Popularity != 0 {
		t.Errorf("Expected no popularity without tag hits, got %d", zap.Popularity)
	}
}

func TestLucide_MissingMaterialArtifact(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "icons"), map[string]string{"house.json": `{"tags":["home"],"categories":[]}`})
	writeFiles(t, filepath.Join(root, "categories"), map[string]string{})

	lucide := NewLucide(filepath.Join(root, "icons"), filepath.Join(root, "categories"), filepath.Join(root, "missing.json"), fetch.NewClient(nil, "", 0))

	payload, err := lucide.FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("Expected missing artifact not to fail fetch, got: %v", err)
	}
	normalized, err := lucide.Normalize(payload)
	if err != nil {
		t.Fatal(err)
	}
	if got := normalized.Variants[0].Records[0].Popularity; got != 0 {
		t.Errorf("Expected popularity 0, got %d", got)
	}
}

func TestLucide_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "icons"), map[string]string{"bad.json": `{"tags": [`})
	writeFiles(t, filepath.Join(root, "categories"), map[string]string{})

	client := fetch.NewClient(nil, "", 0)

	lucide := NewLucide(filepath.Join(root, "icons"), filepath.Join(root, "categories"), "", client)
	if _, err := lucide.FetchRaw(context.Background()); !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for malformed icon file, got: %v", err)
	}

	missing := NewLucide(filepath.Join(root, "nope"), filepath.Join(root, "categories"), "", client)
	if _, err := missing.FetchRaw(context.Background()); !errors.Is(err, fetch.ErrFetch) {
		t.Errorf("Expected ErrFetch for missing directory, got: %v", err)
	}

	if err := lucide.Validate(&Payload{}); !errors.Is(err, ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords, got: %v", err)
	}
}
