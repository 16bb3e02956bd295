// Package selection derives the displayed certificate list from the catalog.
package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tyemirov/teaminstall/internal/catalog"
)

// AllCategory disables category filtering.
const AllCategory = "ALL"

// DefaultCategoryTokens are the keywords that group sections for filtering.
var DefaultCategoryTokens = []string{"DB1", "DB2", "DB3", "DB4"}

// Criteria controls which records are displayed.
type Criteria struct {
	Category   string
	ShowHidden bool
}

func (criteria Criteria) filterToken() string {
	token := strings.TrimSpace(criteria.Category)
	if token == "" || token == AllCategory {
		return ""
	}
	return strings.ToLower(token)
}

// Row is one displayed line and the catalog position it came from.
type Row struct {
	RecordIndex int
	Section     string
	Label       string
	Hidden      bool
}

// View is an immutable display list built from a catalog and criteria.
type View struct {
	Criteria Criteria
	Rows     []Row
	records  []catalog.Record
}

// Build derives the view. Only records that define an identifier key are listed.
func Build(records []catalog.Record, criteria Criteria) View {
	token := criteria.filterToken()
	rows := []Row{}
	for index, record := range records {
		if !record.HasIdentifier {
			continue
		}
		if record.Hidden && !criteria.ShowHidden {
			continue
		}
		if token != "" && !strings.Contains(strings.ToLower(record.Section), token) {
			continue
		}
		rows = append(rows, Row{
			RecordIndex: index,
			Section:     record.Section,
			Label:       record.DisplayLabel(),
			Hidden:      record.Hidden,
		})
	}
	return View{Criteria: criteria, Rows: rows, records: records}
}

// Len returns the number of displayed rows.
func (view View) Len() int {
	return len(view.Rows)
}

// Record returns the catalog record behind a displayed row.
func (view View) Record(row int) (catalog.Record, error) {
	if row < 0 || row >= len(view.Rows) {
		return catalog.Record{}, fmt.Errorf("row %d is outside the displayed list of %d rows", row, len(view.Rows))
	}
	return view.records[view.Rows[row].RecordIndex], nil
}

// Resolve maps displayed row indexes to catalog records, preserving the given order.
func (view View) Resolve(rows []int) ([]catalog.Record, error) {
	resolved := make([]catalog.Record, 0, len(rows))
	for _, row := range rows {
		record, err := view.Record(row)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, record)
	}
	return resolved, nil
}

// Categories returns AllCategory followed by the sorted tokens that occur in
// at least one listed section name.
func Categories(records []catalog.Record, tokens []string) []string {
	found := map[string]struct{}{}
	for _, record := range records {
		if !record.HasIdentifier {
			continue
		}
		sectionName := strings.ToLower(record.Section)
		for _, token := range tokens {
			if strings.Contains(sectionName, strings.ToLower(token)) {
				found[token] = struct{}{}
			}
		}
	}
	categories := make([]string, 0, len(found))
	for token := range found {
		categories = append(categories, token)
	}
	sort.Strings(categories)
	return append([]string{AllCategory}, categories...)
}
