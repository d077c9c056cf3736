package bias

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gpellis87/intel-briefing/app/news"
)

// Record is one entry of the static media-bias/reliability dataset.
type Record struct {
	Name        string          `yaml:"name" json:"name"`
	Domain      string          `yaml:"domain" json:"domain"`
	Bias        news.BiasRating `yaml:"bias" json:"bias"`
	Reliability int             `yaml:"reliability" json:"reliability"`
	Country     string          `yaml:"country" json:"country"`
}

// Table is the read-only bias lookup table, loaded once at startup.
type Table struct {
	records  []Record
	byDomain map[string]Record
}

var _ news.BiasLookup = (*Table)(nil)

// Load reads and validates the bias dataset from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bias dataset: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse bias dataset: %w", err)
	}

	table, err := NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("invalid bias dataset %s: %w", path, err)
	}

	slog.Debug("Bias dataset loaded", "path", path, "sources", len(records))

	return table, nil
}

// NewTable builds a table from in-memory records, validating each entry.
func NewTable(records []Record) (*Table, error) {
	byDomain := make(map[string]Record, len(records))

	for i, record := range records {
		if err := validateRecord(record); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, record.Domain, err)
		}
		byDomain[record.Domain] = record
	}

	return &Table{records: records, byDomain: byDomain}, nil
}

// Lookup resolves bias data for a source. Order: exact domain match, fuzzy
// containment match (tolerates subdomain variation), then case-insensitive
// name match. First hit wins.
func (t *Table) Lookup(domain, name string) (news.BiasInfo, bool) {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")

	if domain != "" {
		if record, ok := t.byDomain[domain]; ok {
			return info(record), true
		}

		for _, record := range t.records {
			if strings.Contains(domain, record.Domain) || strings.Contains(record.Domain, domain) {
				return info(record), true
			}
		}
	}

	if name != "" {
		lowered := strings.ToLower(strings.TrimSpace(name))
		for _, record := range t.records {
			if strings.ToLower(record.Name) == lowered {
				return info(record), true
			}
		}
	}

	return news.BiasInfo{}, false
}

// All returns every record in dataset order.
func (t *Table) All() []Record {
	return t.records
}

// ByBias returns the records with a given bias rating.
func (t *Table) ByBias(rating news.BiasRating) []Record {
	var matched []Record
	for _, record := range t.records {
		if record.Bias == rating {
			matched = append(matched, record)
		}
	}
	return matched
}

func (t *Table) Count() int {
	return len(t.records)
}

func info(record Record) news.BiasInfo {
	return news.BiasInfo{Bias: record.Bias, Reliability: record.Reliability}
}

func validateRecord(record Record) error {
	requiredFields := map[string]string{
		"name":   record.Name,
		"domain": record.Domain,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if !record.Bias.IsValid() {
		return fmt.Errorf("invalid bias rating: %s", record.Bias)
	}

	if record.Reliability < 0 || record.Reliability > 100 {
		return fmt.Errorf("reliability must be 0-100, got %d", record.Reliability)
	}

	return nil
}
