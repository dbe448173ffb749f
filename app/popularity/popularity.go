// Package popularity derives popularity scores for tag-based icon sets from
// the ranked Material icon list.
package popularity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// Icon is the slice of a full Material artifact entry the lookup needs.
type Icon struct {
	Tags       []string `json:"t"`
	Popularity int      `json:"p"`
}

type artifact struct {
	Icons []Icon `json:"icons"`
}

// Lookup maps a lowercase tag to the highest popularity of any Material icon
// carrying it.
type Lookup map[string]int

// Build keeps, for every tag, the popularity of the most popular icon that
// carries it.
func Build(icons []Icon) Lookup {
	ranked := make([]Icon, len(icons))
	copy(ranked, icons)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Popularity > ranked[j].Popularity
	})

	lookup := make(Lookup)
	for _, icon := range ranked {
		for _, tag := range icon.Tags {
			if _, seen := lookup[tag]; !seen {
				lookup[tag] = icon.Popularity
			}
		}
	}
	return lookup
}

// Parse builds a lookup from the bytes of a full Material artifact.
func Parse(data []byte) (Lookup, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse material artifact: %w", err)
	}
	return Build(a.Icons), nil
}

// Load reads the Material artifact at path. A missing or unreadable artifact
// is logged and yields an empty lookup, so every derived popularity is 0.
func Load(path string) Lookup {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Material popularity unavailable", "path", path, "error", err)
		return Lookup{}
	}

	lookup, err := Parse(data)
	if err != nil {
		slog.Warn("Material popularity unavailable", "path", path, "error", err)
		return Lookup{}
	}

	slog.Debug("Material popularity loaded", "path", path, "tags", len(lookup))
	return lookup
}

// Fold derives a popularity from tags in the given order. The first hit sets
// the score, every further hit averages into it, rounding half up. The result
// depends on tag order; callers pass sorted tags.
func (l Lookup) Fold(tags []string) int {
	score := 0
	for _, tag := range tags {
		pop := l[tag]
		if pop <= 0 {
			continue
		}
		if score == 0 {
			score = pop
		} else {
			score = (score + pop + 1) / 2
		}
	}
	return score
}
