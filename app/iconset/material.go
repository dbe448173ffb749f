package iconset

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/lysyi3m/icon-lists/app/schema"
)

const (
	OutputMaterialCombined = "material-combined"
	OutputMaterialIcons    = "material-icons"
	OutputMaterialSymbols  = "material-symbols"
)

// Upstream marks every Material entry with the font families that lack it.
// Entries from the legacy "Material Icons" font miss three families, entries
// that exist only in "Material Symbols" miss five.
const (
	MaterialIconsUnsupported   = 3
	MaterialSymbolsUnsupported = 5
)

type materialDocument struct {
	Icons []materialIcon `json:"icons"`
}

type materialIcon struct {
	Name                string   `json:"name"`
	Popularity          int      `json:"popularity"`
	Categories          []string `json:"categories"`
	Tags                []string `json:"tags"`
	UnsupportedFamilies []string `json:"unsupported_families"`
}

type Material struct {
	url       string
	fetcher   Fetcher
	validator *schema.Validator
}

// NewMaterial creates the Material source. A nil validator skips schema
// validation.
func NewMaterial(url string, fetcher Fetcher, validator *schema.Validator) *Material {
	return &Material{
		url:       url,
		fetcher:   fetcher,
		validator: validator,
	}
}

func (m *Material) Name() string {
	return "material"
}

func (m *Material) FetchRaw(ctx context.Context) (*Payload, error) {
	data, err := m.fetcher.Get(ctx, m.url)
	if err != nil {
		return nil, err
	}
	return ParseMaterial(data)
}

// ParseMaterial decodes a Material metadata response, dropping its XSSI
// guard line first.
func ParseMaterial(data []byte) (*Payload, error) {
	body := StripXSSIGuard(data)

	var doc materialDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, parseError("material", err)
	}

	generic, err := schema.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, parseError("material", err)
	}

	records := make([]RawRecord, 0, len(doc.Icons))
	for _, icon := range doc.Icons {
		records = append(records, RawRecord{
			Name:                icon.Name,
			Categories:          icon.Categories,
			Tags:                icon.Tags,
			Popularity:          icon.Popularity,
			UnsupportedFamilies: icon.UnsupportedFamilies,
		})
	}

	return &Payload{
		Records:  records,
		Document: generic,
	}, nil
}

// StripXSSIGuard removes everything up to and including the first newline.
// Data without a newline is returned unchanged.
func StripXSSIGuard(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[i+1:]
	}
	return data
}

func (m *Material) Validate(payload *Payload) error {
	if m.validator == nil {
		return RequireRecords(payload)
	}
	return m.validator.Validate(payload.Document).Err()
}

func (m *Material) Normalize(payload *Payload) (*Normalized, error) {
	var combined, icons, symbols []Record
	for _, raw := range payload.Records {
		unsupported := len(raw.UnsupportedFamilies)
		if unsupported != MaterialIconsUnsupported && unsupported != MaterialSymbolsUnsupported {
			continue
		}

		name := TitleWords(strings.ReplaceAll(raw.Name, "_", " "))

		categories := []string{}
		if len(raw.Categories) > 0 {
			categories = []string{MapCategory(materialCategories, raw.Categories[0])}
		}

		record := Record{
			Name:       name,
			Categories: categories,
			Tags:       NormalizeTags(withName(name, raw.Tags), nil),
			Popularity: raw.Popularity,
		}

		combined = append(combined, record)
		if unsupported == MaterialIconsUnsupported {
			icons = append(icons, record)
		} else {
			symbols = append(symbols, record)
		}
	}

	slog.Info("Material icons filtered",
		"total", len(payload.Records),
		"kept", len(combined),
		"icons", len(icons),
		"symbols", len(symbols),
		"filtered_out", len(payload.Records)-len(combined))

	return &Normalized{
		Variants: []Variant{
			{Output: OutputMaterialCombined, Records: combined, IncludePopularity: true},
			{Output: OutputMaterialIcons, Records: icons, IncludePopularity: true},
			{Output: OutputMaterialSymbols, Records: symbols, IncludePopularity: true},
		},
	}, nil
}
