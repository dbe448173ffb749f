// Package layout aggregates normalized icon records into the bundle shapes
// written as artifacts.
package layout

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lysyi3m/icon-lists/app/iconset"
)

type CategoryCount struct {
	Name  string `json:"n"`
	Count int    `json:"c"`
}

// Icon is a record as it appears in the full bundle. Popularity is nil when
// the set does not carry popularity.
type Icon struct {
	Name       string   `json:"n"`
	Popularity *int     `json:"p,omitempty"`
	Categories []string `json:"c"`
	Tags       []string `json:"t"`
}

type Full struct {
	CountOfIcons      int             `json:"countOfIcons"`
	CountOfCategories int             `json:"countOfCategories"`
	CountOfTags       int             `json:"countOfTags"`
	Categories        []CategoryCount `json:"categories"`
	Icons             []Icon          `json:"icons"`
}

type Bundle struct {
	Full         Full
	Alphabetical []string
	// ByPopularity is nil when popularity is not included.
	ByPopularity []string
}

func Layout(records []iconset.Record, includePopularity bool) *Bundle {
	collator := collate.New(language.English)
	counts := make(map[string]int)
	icons := make([]Icon, 0, len(records))
	names := make([]string, 0, len(records))
	tagCount := 0

	for _, record := range records {
		// Repeated categories count once per occurrence.
		for _, category := range record.Categories {
			counts[category]++
		}

		tagCount += len(record.Tags)
		names = append(names, record.Name)

		icon := Icon{
			Name:       record.Name,
			Categories: nonNil(record.Categories),
			Tags:       nonNil(record.Tags),
		}
		if includePopularity {
			popularity := record.Popularity
			icon.Popularity = &popularity
		}
		icons = append(icons, icon)
	}

	bundle := &Bundle{
		Full: Full{
			CountOfIcons:      len(records),
			CountOfCategories: len(counts),
			CountOfTags:       tagCount,
			Categories:        sortedCategories(collator, counts),
			Icons:             icons,
		},
		Alphabetical: names,
	}

	if includePopularity {
		bundle.ByPopularity = byPopularity(collator, records)
	}

	return bundle
}

func sortedCategories(collator *collate.Collator, counts map[string]int) []CategoryCount {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	collator.SortStrings(names)

	categories := make([]CategoryCount, 0, len(names))
	for _, name := range names {
		categories = append(categories, CategoryCount{Name: name, Count: counts[name]})
	}
	return categories
}

// byPopularity orders names by popularity descending. Ties use the same
// collation as the category list.
func byPopularity(collator *collate.Collator, records []iconset.Record) []string {
	ranked := make([]iconset.Record, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Popularity != ranked[j].Popularity {
			return ranked[i].Popularity > ranked[j].Popularity
		}
		return collator.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})

	names := make([]string, 0, len(ranked))
	for _, record := range ranked {
		names = append(names, record.Name)
	}
	return names
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
