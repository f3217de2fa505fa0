package cptable

import (
	"embed"
	"sync"
)

//go:embed default_manager_translation.xml
var defaultFS embed.FS

var (
	defaultOnce  sync.Once
	defaultTable Table
	defaultErr   error
)

// Default returns the small bundled company-prefix table used when the
// CLI is invoked with --use-embedded (which ignores
// --company-prefix-table). Parsing happens once no matter how many times
// Default is called.
func Default() (Table, error) {
	defaultOnce.Do(func() {
		data, err := defaultFS.ReadFile("default_manager_translation.xml")
		if err != nil {
			defaultErr = err
			return
		}
		defaultTable, defaultErr = Parse(data)
	})
	return defaultTable, defaultErr
}
