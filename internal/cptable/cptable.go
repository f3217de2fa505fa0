// Package cptable loads the GS1 company-prefix auxiliary table
// (ManagerTranslation.xml) into a simple index -> company-prefix
// lookup map, consumed by the rule evaluator's tablelookup function.
package cptable

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Table maps a GS1 index string to its company-prefix string.
type Table map[string]string

type xmlManagerTranslation struct {
	Entries []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Index         string `xml:"index,attr"`
	CompanyPrefix string `xml:"companyPrefix,attr"`
}

// Load parses a ManagerTranslation.xml file into a Table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company prefix table %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes ManagerTranslation.xml content already in memory.
func Parse(data []byte) (Table, error) {
	var doc xmlManagerTranslation
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse company prefix table: %w", err)
	}
	t := make(Table, len(doc.Entries))
	for _, e := range doc.Entries {
		t[e.Index] = e.CompanyPrefix
	}
	return t, nil
}

// Lookup returns the company prefix for index, and whether it was found.
func (t Table) Lookup(index string) (string, bool) {
	v, ok := t[index]
	return v, ok
}
