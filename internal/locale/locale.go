// Package locale resolves UI strings for the supported display languages.
package locale

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Supported locales.
const (
	English = "en"
	Urdu    = "ur"
)

// Fallback is the locale used when a string is missing in the requested one.
const Fallback = English

//go:embed strings.yaml
var embedded []byte

// Dictionary maps component -> key -> locale -> text.
type Dictionary struct {
	entries map[string]map[string]map[string]string
}

// Load reads the dictionary at path, or the embedded one when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dictionary. Every entry must carry fallback text.
func Parse(data []byte) (*Dictionary, error) {
	var entries map[string]map[string]map[string]string
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode locale file: %w", err)
	}

	var errs []error
	for component, keys := range entries {
		for key, texts := range keys {
			if texts[Fallback] == "" {
				errs = append(errs, fmt.Errorf("%s.%s: missing %q text", component, key, Fallback))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid locale file: %w", err)
	}
	return &Dictionary{entries: entries}, nil
}

// Supported reports whether loc is a locale the dashboard renders.
func Supported(loc string) bool {
	return loc == English || loc == Urdu
}

// Normalize returns loc if supported, otherwise the fallback locale.
func Normalize(loc string) string {
	if Supported(loc) {
		return loc
	}
	return Fallback
}

// Lookup returns the text for component.key in loc, falling back to English
// and then to the key itself.
func (d *Dictionary) Lookup(component, key, loc string) string {
	texts := d.entries[component][key]
	if s := texts[loc]; s != "" {
		return s
	}
	if s := texts[Fallback]; s != "" {
		return s
	}
	return key
}

// Table flattens the dictionary for loc into "component.key" -> text, with
// fallback applied to every entry.
func (d *Dictionary) Table(loc string) map[string]string {
	out := make(map[string]string)
	for component, keys := range d.entries {
		for key := range keys {
			out[component+"."+key] = d.Lookup(component, key, loc)
		}
	}
	return out
}

// Components lists the component names in sorted order.
func (d *Dictionary) Components() []string {
	out := make([]string, 0, len(d.entries))
	for c := range d.entries {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
