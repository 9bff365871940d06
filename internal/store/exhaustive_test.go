package store

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// everyAction holds one value of each Action variant. A new variant that is
// missing here fails TestEveryActionVariantIsHandled.
var everyAction = []Action{
	SetSection{Section: SectionAlerts},
	SelectAlert{ID: "a1"},
	SelectInvestigation{ID: "v1"},
	SetAlerts{},
	SetInvestigations{},
	SetIntegrations{},
	SetTeam{},
	SetIncidents{},
	SetMetrics{},
	AddAlert{},
	AddInvestigation{},
	AddIncident{},
	UpdateAlert{ID: "a1"},
	UpdateInvestigation{ID: "v1"},
	UpdateIntegration{ID: "g1"},
	UpdateTeamMember{ID: "m1"},
	UpdateIncident{ID: "i1"},
	SetLoading{Domain: DomainAlerts, Value: true},
	SetError{Domain: DomainAlerts, Message: "x"},
}

// declaredActions returns the names of all types with an action() marker method.
func declaredActions(t *testing.T) map[string]bool {
	t.Helper()

	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, 0)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Recv == nil || fn.Name.Name != "action" {
					continue
				}
				if ident, ok := fn.Recv.List[0].Type.(*ast.Ident); ok {
					names[ident.Name] = true
				}
			}
		}
	}
	return names
}

func TestEveryActionVariantIsHandled(t *testing.T) {
	declared := declaredActions(t)
	require.NotEmpty(t, declared)

	covered := make(map[string]bool)
	types := make(map[ActionType]string)
	for _, a := range everyAction {
		name := reflect.TypeOf(a).Name()
		covered[name] = true

		_, handled := reduce(InitialState(), a)
		assert.True(t, handled, "%s has no reducer case", name)

		if prev, dup := types[a.Type()]; dup {
			t.Errorf("%s and %s share action type %s", prev, name, a.Type())
		}
		types[a.Type()] = name
	}

	for name := range declared {
		assert.True(t, covered[name], "action %s is missing from everyAction", name)
	}
	assert.Len(t, covered, len(declared))
}
