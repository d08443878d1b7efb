// Package snippets provides the built-in practice buffers, organized
// by programming language, plus loading of user-supplied files.
package snippets

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
)

// aliases maps alternate language names onto the canonical corpus key.
var aliases = map[string]string{
	"typescript": "javascript",
	"ts":         "javascript",
	"js":         "javascript",
	"py":         "python",
	"cpp":        "c",
	"golang":     "go",
}

// Languages lists the canonical corpus languages in sorted order.
func Languages() []string {
	out := make([]string, 0, len(corpus))
	for lang := range corpus {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// ByLanguage returns every built-in snippet for the given language.
// Language names are case-insensitive and common aliases resolve to
// the canonical corpus.
func ByLanguage(lang string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	list, ok := corpus[key]
	if !ok {
		return nil, fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(Languages(), ", "))
	}
	return list, nil
}

// Random picks one built-in snippet for the given language.
func Random(lang string, rnd *rand.Rand) (string, error) {
	list, err := ByLanguage(lang)
	if err != nil {
		return "", err
	}
	return list[rnd.Intn(len(list))], nil
}

// LoadFile reads a user-supplied file to practice on as a single
// snippet. Trailing whitespace is stripped so the last line stays
// addressable.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimRight(string(data), " \t\n")
	if text == "" {
		return "", fmt.Errorf("snippet file %s is empty", path)
	}
	return text, nil
}
