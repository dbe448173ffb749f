package iconset

import (
	"sort"
	"strings"
)

// NormalizeTags lowercases, deduplicates and sorts tag candidates. Tags
// rejected by keep (after lowercasing) are dropped.
func NormalizeTags(candidates []string, keep func(tag string) bool) []string {
	seen := make(map[string]struct{}, len(candidates))
	tags := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		tag := strings.ToLower(candidate)
		if keep != nil && !keep(tag) {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	sort.Strings(tags)
	return tags
}

// MapCategory returns the display name for key, or key itself when the
// dictionary has no entry.
func MapCategory(dictionary map[string]string, key string) string {
	if name, ok := dictionary[key]; ok && name != "" {
		return name
	}
	return key
}

func friendlyName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

func withName(name string, tags []string) []string {
	candidates := make([]string, 0, len(tags)+1)
	candidates = append(candidates, name)
	return append(candidates, tags...)
}

// isWildcard reports tags wrapped in asterisks, a placeholder marker in
// Phosphor's data.
func isWildcard(tag string) bool {
	return strings.HasPrefix(tag, "*") && strings.HasSuffix(tag, "*")
}

// TitleWords uppercases every ASCII letter that starts a word, where a word
// is a run of [A-Za-z0-9_]. Digits start words too, so "3d rotation" keeps
// its lowercase d.
func TitleWords(text string) string {
	out := []byte(text)
	prevWord := false
	for i, b := range out {
		word := isWordByte(b)
		if word && !prevWord && 'a' <= b && b <= 'z' {
			out[i] = b - ('a' - 'A')
		}
		prevWord = word
	}
	return string(out)
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
