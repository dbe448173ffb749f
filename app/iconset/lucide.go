package iconset

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/lysyi3m/icon-lists/app/popularity"
)

const OutputLucideIcons = "lucide-icons"

type lucideIcon struct {
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

type lucideCategory struct {
	Title string `json:"title"`
}

// Lucide reads the per-icon and per-category metadata directories of a
// lucide checkout.
type Lucide struct {
	iconsDir       string
	categoriesDir  string
	popularityPath string
	fetcher        Fetcher
}

func NewLucide(iconsDir, categoriesDir, popularityPath string, fetcher Fetcher) *Lucide {
	return &Lucide{
		iconsDir:       iconsDir,
		categoriesDir:  categoriesDir,
		popularityPath: popularityPath,
		fetcher:        fetcher,
	}
}

func (l *Lucide) Name() string {
	return "lucide"
}

func (l *Lucide) FetchRaw(ctx context.Context) (*Payload, error) {
	iconFiles, err := l.fetcher.ReadDir(l.iconsDir, ".json")
	if err != nil {
		return nil, err
	}

	categoryFiles, err := l.fetcher.ReadDir(l.categoriesDir, ".json")
	if err != nil {
		return nil, err
	}

	categories := make(map[string]string, len(categoryFiles))
	for _, file := range categoryFiles {
		var category lucideCategory
		if err := json.Unmarshal(file.Data, &category); err != nil {
			return nil, parseError("lucide category "+file.Key, err)
		}
		categories[file.Key] = category.Title
	}

	records := make([]RawRecord, 0, len(iconFiles))
	for _, file := range iconFiles {
		var icon lucideIcon
		if err := json.Unmarshal(file.Data, &icon); err != nil {
			return nil, parseError("lucide icon "+file.Key, err)
		}
		records = append(records, RawRecord{
			Name:       file.Key,
			Categories: icon.Categories,
			Tags:       icon.Tags,
		})
	}

	return &Payload{
		Records:    records,
		Categories: categories,
		Popularity: popularity.Load(l.popularityPath),
	}, nil
}

func (l *Lucide) Validate(payload *Payload) error {
	return RequireRecords(payload)
}

func (l *Lucide) Normalize(payload *Payload) (*Normalized, error) {
	records := make([]Record, 0, len(payload.Records))
	for _, raw := range payload.Records {
		tags := NormalizeTags(withName(friendlyName(raw.Name), raw.Tags), nil)

		categories := make([]string, 0, len(raw.Categories))
		for _, key := range raw.Categories {
			categories = append(categories, MapCategory(payload.Categories, key))
		}

		records = append(records, Record{
			Name:       raw.Name,
			Categories: categories,
			Tags:       tags,
			Popularity: payload.Popularity.Fold(tags),
		})
	}

	slog.Info("Lucide icons normalized", "total", len(records), "categories", len(payload.Categories))

	return &Normalized{
		Variants: []Variant{
			{Output: OutputLucideIcons, Records: records, IncludePopularity: true},
		},
	}, nil
}
