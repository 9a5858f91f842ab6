package rules

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arthur-debert/prlabel/pkg/glob"
)

// genChangedPath produces "dir/name.ext" paths with a small extension
// vocabulary, so generated path lists both hit and miss the rules below.
func genChangedPath() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.Identifier(),
		gen.OneConstOf(".go", ".md", ".txt"),
	).Map(func(vals []interface{}) string {
		return vals[0].(string) + "/" + vals[1].(string) + vals[2].(string)
	})
}

func TestEvaluateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	goRule := Rule{Labels: []string{"go"}, Patterns: []string{"**/*.go"}}
	mdRule := Rule{Labels: []string{"docs"}, Patterns: []string{"**/*.md"}}

	properties.Property("evaluation is idempotent", prop.ForAll(
		func(paths []string) bool {
			compiled, err := Compile([]Rule{goRule, mdRule}, glob.Flags{})
			if err != nil {
				return false
			}
			return reflect.DeepEqual(compiled.Evaluate(paths), compiled.Evaluate(paths))
		},
		gen.SliceOf(genChangedPath()),
	))

	properties.Property("result is the union, independent of rule order", prop.ForAll(
		func(paths []string) bool {
			forward, err := Compile([]Rule{goRule, mdRule}, glob.Flags{})
			if err != nil {
				return false
			}
			backward, err := Compile([]Rule{mdRule, goRule}, glob.Flags{})
			if err != nil {
				return false
			}

			got := forward.Evaluate(paths)
			if !reflect.DeepEqual(got, backward.Evaluate(paths)) {
				return false
			}

			wantGo := anySuffix(paths, ".go")
			wantDocs := anySuffix(paths, ".md")
			return got["go"] == wantGo && got["docs"] == wantDocs
		},
		gen.SliceOf(genChangedPath()),
	))

	properties.Property("empty path list evaluates every label false", prop.ForAll(
		func(label string) bool {
			compiled, err := Compile([]Rule{
				{Labels: []string{label}, Patterns: []string{"**"}},
			}, glob.Flags{})
			if err != nil {
				return false
			}

			res := compiled.Evaluate(nil)
			for _, apply := range res {
				if apply {
					return false
				}
			}
			return len(res) == 1
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func anySuffix(paths []string, suffix string) bool {
	for _, p := range paths {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}
