package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed default/*.xml
var defaultFS embed.FS

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default parses the small bundle of sample scheme files under
// default/ once and returns the resulting Set on every call, mirroring
// the lazy embed.FS initialization the company-prefix table uses.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = loadFS(defaultFS, "default")
	})
	return defaultSet, defaultErr
}

func loadFS(fsys fs.FS, dir string) (*Set, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded scheme directory %s: %w", dir, err)
	}

	set := &Set{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".xml") {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded scheme file %s: %w", e.Name(), err)
		}
		schemes, err := parseDoc(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded scheme file %s: %w", e.Name(), err)
		}
		for _, s := range schemes {
			set.Schemes = append(set.Schemes, s)
			for li := range s.Levels {
				for oi := range s.Levels[li].Options {
					set.Triples = append(set.Triples, Triple{
						Scheme: s,
						Level:  &s.Levels[li],
						Option: &s.Levels[li].Options[oi],
					})
				}
			}
		}
	}
	return set, nil
}
