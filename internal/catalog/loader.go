// Package catalog loads the certificate catalog from the INI configuration file.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/tyemirov/teaminstall/internal/textenc"
)

// ErrConfigurationNotFound reports a missing configuration file.
var ErrConfigurationNotFound = errors.New("configuration file not found")

// Load reads and parses the configuration file at path.
func Load(path string) (Catalog, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			return Catalog{}, fmt.Errorf("%w: %s", ErrConfigurationNotFound, path)
		}
		return Catalog{}, fmt.Errorf("read configuration %s: %w", path, readErr)
	}
	loaded, parseErr := Parse(data)
	if parseErr != nil {
		return Catalog{}, fmt.Errorf("load configuration %s: %w", path, parseErr)
	}
	loaded.Path = path
	return loaded, nil
}

// Parse decodes and parses configuration bytes.
//
// A section that appears more than once is replaced by its last occurrence,
// which keeps the position of the first one. Each duplicate adds a warning.
func Parse(data []byte) (Catalog, error) {
	text, encoding, decodeErr := textenc.Decode(data)
	if decodeErr != nil {
		return Catalog{}, fmt.Errorf("decode configuration: %w", decodeErr)
	}
	file, loadErr := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		AllowNonUniqueSections:  true,
		PreserveSurroundedQuote: true,
	}, []byte(text))
	if loadErr != nil {
		return Catalog{}, fmt.Errorf("parse configuration: %w", loadErr)
	}

	defaults := file.Section(ini.DefaultSection)
	result := Catalog{Encoding: encoding, Records: []Record{}, Warnings: []string{}}
	positions := map[string]int{}
	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		record, warnings := buildRecord(section, defaults)
		result.Warnings = append(result.Warnings, warnings...)
		if position, seen := positions[name]; seen {
			result.Records[position] = record
			result.Warnings = append(result.Warnings, fmt.Sprintf("section %q is defined more than once; the last definition is used", name))
			continue
		}
		positions[name] = len(result.Records)
		result.Records = append(result.Records, record)
	}
	return result, nil
}

func buildRecord(section *ini.Section, defaults *ini.Section) (Record, []string) {
	record := Record{Section: section.Name()}
	warnings := []string{}
	record.Identifier, record.HasIdentifier = lookupValue(section, defaults, keyIdentifier)
	record.Password, _ = lookupValue(section, defaults, keyPassword)
	record.Label, _ = lookupValue(section, defaults, keyLabel)
	hiddenValue, hasHidden := lookupValue(section, defaults, keyHidden)
	if hasHidden {
		hiddenNumber, parseErr := strconv.Atoi(strings.TrimSpace(hiddenValue))
		if parseErr != nil {
			warnings = append(warnings, fmt.Sprintf("section %q: hidden value %q is not an integer; treating as visible", record.Section, hiddenValue))
		} else {
			record.Hidden = hiddenNumber != 0
		}
	}
	return record, warnings
}

// lookupValue reads a key defined by the section itself, falling back to the
// DEFAULT section. Dotted section names do not inherit from a parent section.
func lookupValue(section *ini.Section, defaults *ini.Section, name string) (string, bool) {
	for _, candidate := range []*ini.Section{section, defaults} {
		if candidate == nil {
			continue
		}
		if value, found := candidate.KeysHash()[name]; found {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}
