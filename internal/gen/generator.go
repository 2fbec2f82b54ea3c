package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"maps"
	"path/filepath"
	"slices"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/common"
	"ctor-generator/internal/plan"
)

// Header marks generated files.
const Header = "Code generated by ctor-generator. DO NOT EDIT."

// DefaultOutput is the name of the generated file in each package.
const DefaultOutput = "ctor_gen.go"

// ErrNothingToGenerate is returned when a plan has no factories to emit.
var ErrNothingToGenerate = errors.New("nothing to generate")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the file name written into each package directory.
	Output string
	// GenerateComments enables doc comments on generated factories.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:           DefaultOutput,
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Output == "" {
		config.Output = DefaultOutput
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory.
	Dir string
	// Filename is the base name of the file.
	Filename string
	// Content is the formatted source.
	Content []byte
}

// Path returns the full path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders the valid types of p into a single file. Types with
// errors are skipped; callers decide whether a plan with errors is emitted.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	types := p.ValidTypes()

	count := 0
	for _, tp := range types {
		count += len(tp.All())
	}

	if count == 0 {
		return nil, ErrNothingToGenerate
	}

	f := jen.NewFile(p.Package.Name)
	f.HeaderComment(Header)
	f.NoFormat = true

	for _, tp := range types {
		for _, fac := range tp.All() {
			g.emitFactory(f, fac)
		}
	}

	var raw bytes.Buffer
	if err := f.Render(&raw); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.Package.Path, err)
	}

	out := &GeneratedFile{Dir: p.Package.Dir, Filename: g.config.Output}

	content, err := finish(out.Path(), raw.Bytes(), p.Imports)
	if err != nil {
		// Best effort: the sidecar only helps debugging.
		_ = writeDebugUnformatted(out.Dir, out.Filename, raw.Bytes())
		return nil, fmt.Errorf("formatting %s: %w", out.Path(), err)
	}

	out.Content = content

	return out, nil
}

// emitFactory appends one factory function to f.
func (g *Generator) emitFactory(f *jen.File, fac *plan.Factory) {
	if g.config.GenerateComments {
		if fac.Default {
			f.Comment(fmt.Sprintf("%s returns a %s with default field values.", fac.Name, fac.Built))
		} else {
			f.Comment(fmt.Sprintf("%s creates a new %s.", fac.Name, fac.Built))
		}
	}

	fn := f.Func().Id(fac.Name)

	if len(fac.TypeParams) > 0 {
		tparams := make([]jen.Code, len(fac.TypeParams))
		for i, tp := range fac.TypeParams {
			tparams[i] = jen.Id(tp.Name).Id(tp.Constraint)
		}

		fn.Types(tparams...)
	}

	params := make([]jen.Code, len(fac.Params))
	for i, p := range fac.Params {
		params[i] = jen.Id(p.Name).Id(p.Type)
	}

	fn.Params(params...).Id(fac.Result).Block(body(fac)...)
	f.Line()
}

// body builds the statements of a factory: the locals, then the value.
// Locals that shadow a parameter live in a nested block together with the
// statements that read them.
func body(fac *plan.Factory) []jen.Code {
	locals, shadowing := declareLocals(fac)

	if fac.Shape == analyze.ShapePositional {
		return positionalBody(fac, locals, shadowing)
	}

	if len(fac.Assignments) == 0 && len(locals) == 0 {
		if fac.Pointer {
			return []jen.Code{jen.Return(jen.Op("&").Id(fac.Built).Values())}
		}

		return []jen.Code{jen.Return(jen.Id(fac.Built).Values())}
	}

	decl := jen.Var().Id("out").Id(fac.Built)
	if fac.Pointer {
		decl = jen.Id("out").Op(":=").New(jen.Id(fac.Built))
	}

	assigns := make([]jen.Code, len(fac.Assignments))
	for i, a := range fac.Assignments {
		assigns[i] = jen.Id("out").Dot(a.Field).Op("=").Id(source(a))
	}

	var stmts []jen.Code
	if shadowing {
		stmts = []jen.Code{decl, jen.Block(append(locals, assigns...)...)}
	} else {
		stmts = append(append(locals, decl), assigns...)
	}

	return append(stmts, jen.Return(jen.Id("out")))
}

// declareLocals renders the locals of fac and reports whether any of them
// shadows a parameter.
func declareLocals(fac *plan.Factory) ([]jen.Code, bool) {
	params := make(map[string]bool, len(fac.Params))
	for _, p := range fac.Params {
		params[p.Name] = true
	}

	var (
		stmts     []jen.Code
		shadowing bool
	)

	for _, l := range fac.Locals {
		shadowing = shadowing || params[l.Name]

		switch {
		case l.Type == "":
			stmts = append(stmts, jen.Id(l.Name).Op(":=").Id(l.Value))
		case l.Value == "":
			stmts = append(stmts, jen.Var().Id(l.Name).Id(l.Type))
		default:
			stmts = append(stmts, jen.Var().Id(l.Name).Id(l.Type).Op("=").Id(l.Value))
		}
	}

	return stmts, shadowing
}

// source is the expression a field is assigned from.
func source(a plan.Assignment) string {
	if a.Local != "" {
		return a.Local
	}

	return a.Value
}

// positionalBody converts the single value of a non-struct case.
func positionalBody(fac *plan.Factory, locals []jen.Code, shadowing bool) []jen.Code {
	var value string
	if a, ok := common.First(fac.Assignments); ok {
		value = plan.Conversion(fac.Built, source(a))
	}

	var stmts []jen.Code

	switch {
	case fac.Pointer && value != "":
		stmts = []jen.Code{
			jen.Id("out").Op(":=").New(jen.Id(fac.Built)),
			jen.Op("*").Id("out").Op("=").Id(value),
			jen.Return(jen.Id("out")),
		}
	case fac.Pointer:
		stmts = []jen.Code{jen.Return(jen.New(jen.Id(fac.Built)))}
	case value != "":
		stmts = []jen.Code{jen.Return(jen.Id(value))}
	default:
		stmts = []jen.Code{
			jen.Var().Id("out").Id(fac.Built),
			jen.Return(jen.Id("out")),
		}
	}

	if shadowing {
		return []jen.Code{jen.Block(append(locals, stmts...)...)}
	}

	return append(locals, stmts...)
}

// finish adds the imports the rendered code refers to and formats it.
func finish(filename string, src []byte, known map[string]string) ([]byte, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	used := usedQualifiers(file)

	for _, name := range slices.Sorted(maps.Keys(known)) {
		if !used[name] {
			continue
		}

		importPath := known[name]
		alias := name

		if common.PkgAlias(importPath) == name {
			alias = ""
		}

		astutil.AddNamedImport(fset, file, alias, importPath)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, err
	}

	return imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}

// usedQualifiers returns the identifiers used as selector operands that are
// not declared in the file: candidates for package names.
func usedQualifiers(file *ast.File) map[string]bool {
	used := make(map[string]bool)

	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok && id.Obj == nil {
			used[id.Name] = true
		}

		return true
	})

	return used
}
