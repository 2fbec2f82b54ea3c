package gen_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/gen"
	"ctor-generator/internal/plan"
)

// signatures returns the function declaration lines of a Go source file.
func signatures(src string) []string {
	var out []string

	for line := range strings.Lines(src) {
		if strings.HasPrefix(line, "func ") {
			out = append(out, strings.TrimSpace(line))
		}
	}

	return out
}

// runExampleIntegrationTest regenerates an example in memory, checks that the
// committed output declares the same factories, then runs the example's tests
// against it.
func runExampleIntegrationTest(t *testing.T, exampleName string) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	exampleDir := filepath.Join(repoRoot, "examples", exampleName)

	analyzer := analyze.NewAnalyzer(analyze.Options{
		Output: gen.DefaultOutput,
		Tags:   true,
		Unions: true,
		Dir:    repoRoot,
	})

	results, err := analyzer.LoadPackages("./examples/" + exampleName)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Diagnostics.HasErrors(), results[0].Diagnostics.Error())

	p := plan.Build(results[0].Package)
	require.False(t, p.HasErrors(), p.Diagnostics.Error())

	file, err := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	committed, err := os.ReadFile(filepath.Join(exampleDir, gen.DefaultOutput))
	require.NoError(t, err)
	require.True(t, gen.IsGenerated(committed))

	if !assert.Equal(t, signatures(string(committed)), signatures(string(file.Content)),
		"examples/%s/%s is out of date", exampleName, gen.DefaultOutput) {
		t.Logf("generated:\n%s", file.Content)
	}

	build := exec.CommandContext(t.Context(), "go", "test", "./examples/"+exampleName, "-count=1")
	build.Dir = repoRoot

	b, err := build.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}
