package cli

import (
	"fmt"

	"github.com/epcglobal/tdtengine"
	"github.com/epcglobal/tdtengine/internal/cptable"
	"github.com/epcglobal/tdtengine/internal/schema"
)

// embeddedSchemeLoader and embeddedTableLoader satisfy
// tdtengine.SchemeLoader/TableLoader from the module's bundled default
// fixtures, for --use-embedded.
type embeddedSchemeLoader struct{}

func (embeddedSchemeLoader) Load() (*schema.Set, error) { return schema.Default() }

type embeddedTableLoader struct{}

func (embeddedTableLoader) Load() (cptable.Table, error) { return cptable.Default() }

func buildEngine() (*tdtengine.Engine, error) {
	if useEmbedded {
		return tdtengine.New(embeddedSchemeLoader{}, embeddedTableLoader{})
	}
	if schemesDir == "" {
		return nil, fmt.Errorf("--schemes-dir is required unless --use-embedded is set")
	}
	var tableLoader tdtengine.TableLoader
	if cpTablePath != "" {
		tableLoader = tdtengine.FileTableLoader{Path: cpTablePath}
	}
	return tdtengine.New(tdtengine.DirLoader{Dir: schemesDir}, tableLoader)
}
