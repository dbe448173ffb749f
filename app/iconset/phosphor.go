package iconset

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lysyi3m/icon-lists/app/popularity"
)

const OutputPhosphorIcons = "phosphor-icons"

type Phosphor struct {
	url            string
	popularityPath string
	fetcher        Fetcher
}

func NewPhosphor(url, popularityPath string, fetcher Fetcher) *Phosphor {
	return &Phosphor{
		url:            url,
		popularityPath: popularityPath,
		fetcher:        fetcher,
	}
}

func (p *Phosphor) Name() string {
	return "phosphor"
}

func (p *Phosphor) FetchRaw(ctx context.Context) (*Payload, error) {
	data, err := p.fetcher.Get(ctx, p.url)
	if err != nil {
		return nil, err
	}

	records, err := ParsePhosphor(string(data))
	if err != nil {
		return nil, err
	}

	return &Payload{
		Records:    records,
		Popularity: popularity.Load(p.popularityPath),
	}, nil
}

// ParsePhosphor extracts raw records from Phosphor's icons.ts source. Fields
// of the wrong type are left empty so normalization can skip or drop them.
func ParsePhosphor(src string) ([]RawRecord, error) {
	entries, err := ExtractPhosphor(src)
	if err != nil {
		return nil, err
	}

	records := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		name, _ := entry["name"].(string)
		pascalName, _ := entry["pascal_name"].(string)

		records = append(records, RawRecord{
			Name:       name,
			PascalName: pascalName,
			Categories: stringValues(entry["categories"]),
			Tags:       scalarValues(entry["tags"]),
		})
	}

	return records, nil
}

func (p *Phosphor) Validate(payload *Payload) error {
	return RequireRecords(payload)
}

func (p *Phosphor) Normalize(payload *Payload) (*Normalized, error) {
	skipped := 0
	records := make([]Record, 0, len(payload.Records))

	for _, raw := range payload.Records {
		if raw.Name == "" || raw.PascalName == "" {
			skipped++
			continue
		}

		tags := NormalizeTags(withName(friendlyName(raw.Name), raw.Tags), func(tag string) bool {
			return !isWildcard(tag)
		})

		categories := make([]string, 0, len(raw.Categories))
		for _, key := range raw.Categories {
			categories = append(categories, MapCategory(phosphorCategories, key))
		}

		records = append(records, Record{
			Name:       raw.Name,
			Categories: categories,
			Tags:       tags,
			Popularity: payload.Popularity.Fold(tags),
		})
	}

	if skipped > 0 {
		slog.Warn("Phosphor icons skipped during transformation", "skipped", skipped)
	}
	slog.Info("Phosphor icons normalized", "total", len(payload.Records), "kept", len(records))

	return &Normalized{
		Variants: []Variant{
			{Output: OutputPhosphorIcons, Records: records, IncludePopularity: true},
		},
		Warnings: skipped,
	}, nil
}

// stringValues keeps only the string elements of a decoded JSON array.
func stringValues(value any) []string {
	items, _ := value.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// scalarValues renders every scalar element of a decoded JSON array as text.
func scalarValues(value any) []string {
	items, _ := value.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	return out
}
