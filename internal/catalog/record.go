package catalog

import "strings"

const (
	keyIdentifier = "cert_num"
	keyPassword   = "password"
	keyLabel      = "label"
	keyHidden     = "hidden"
)

// Record describes one installable certificate, taken from one configuration section.
type Record struct {
	Section       string
	Identifier    string
	HasIdentifier bool
	Password      string
	Label         string
	Hidden        bool
}

// DisplayLabel returns the label shown to operators, falling back to the section name.
func (record Record) DisplayLabel() string {
	if label := strings.TrimSpace(record.Label); label != "" {
		return label
	}
	return record.Section
}

// MissingFields lists the configuration keys that must be set before the record can be imported.
func (record Record) MissingFields() []string {
	missing := []string{}
	if strings.TrimSpace(record.Identifier) == "" {
		missing = append(missing, keyIdentifier)
	}
	if strings.TrimSpace(record.Password) == "" {
		missing = append(missing, keyPassword)
	}
	return missing
}

// Installable reports whether both the identifier and the password are present.
func (record Record) Installable() bool {
	return len(record.MissingFields()) == 0
}

// Catalog is the ordered, read-only set of records loaded from one configuration file.
type Catalog struct {
	Path     string
	Encoding string
	Records  []Record
	Warnings []string
}

// Lookup returns the record stored under the section name.
func (catalog Catalog) Lookup(section string) (Record, bool) {
	for _, record := range catalog.Records {
		if record.Section == section {
			return record, true
		}
	}
	return Record{}, false
}

// Sections returns the section names in catalog order.
func (catalog Catalog) Sections() []string {
	sections := make([]string, 0, len(catalog.Records))
	for _, record := range catalog.Records {
		sections = append(sections, record.Section)
	}
	return sections
}
