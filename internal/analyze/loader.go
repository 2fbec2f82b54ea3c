package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultMarkers are the type names treated as zero-sized markers.
var DefaultMarkers = []string{"HostLayout", "noCopy", "NoCopy"}

// Options configures an Analyzer.
type Options struct {
	// Directive is the directive name, "ctor" by default.
	Directive string
	// Output is the generated file name. Its declarations are ignored while
	// loading so that stale output never shadows or breaks the input.
	Output string
	// Types selects additional types by name, as if they carried a bare directive.
	Types []string
	// Markers are type names treated as zero-sized markers.
	Markers []string
	// Tags enables field directives in struct tags.
	Tags bool
	// Unions enables annotated interfaces.
	Unions bool
	// BuildTags are passed to the build system.
	BuildTags []string
	// Dir is the working directory for pattern resolution.
	Dir string
}

// Analyzer loads Go packages and collects annotated declarations.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Directive == "" {
		opts.Directive = directive.DefaultName
	}

	if opts.Markers == nil {
		opts.Markers = DefaultMarkers
	}

	return &Analyzer{opts: opts}
}

// Result is a loaded package together with the problems found while
// reading its declarations.
type Result struct {
	Package     *Package
	Diagnostics diagnostic.Diagnostics
}

// LoadPackages loads the specified packages and collects their declarations.
// Patterns are standard Go package patterns (e.g., "./...", "ctor-generator/examples/shapes").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Result, error) {
	cfg := &packages.Config{
		Mode:      LoadMode,
		Dir:       a.opts.Dir,
		ParseFile: a.parseFile,
	}

	if len(a.opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Type errors are expected while the output file is blanked out (other
	// files may call the factories it used to declare); anything else is fatal.
	var errs []error

	results := make([]*Result, 0, len(pkgs))

	for _, pkg := range pkgs {
		res := &Result{}

		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				res.Diagnostics.AddWarning(diagnostic.CodeTypeError, e.Msg, parsePos(e.Pos), "", "")
				continue
			}

			errs = append(errs, e)
		}

		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}

		res.Package = a.processPackage(pkg, &res.Diagnostics)
		results = append(results, res)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return results, nil
}

// parseFile parses every file normally except the generated output, whose
// declarations are dropped.
func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if a.opts.Output != "" && filepath.Base(filename) == a.opts.Output {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

// declInfo is a type declaration with the syntax needed to read directives.
type declInfo struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	file *ast.File
	obj  *types.TypeName
}

// processPackage extracts annotated declarations from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package, diags *diagnostic.Diagnostics) *Package {
	out := &Package{
		Path:     pkg.PkgPath,
		Name:     pkg.Name,
		Dir:      pkg.Dir,
		Fset:     pkg.Fset,
		Existing: make(map[string]token.Position),
	}

	if out.Dir == "" && len(pkg.GoFiles) > 0 {
		out.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		out.Existing[name] = pkg.Fset.Position(scope.Lookup(name).Pos())
	}

	decls := a.collectDecls(pkg)
	selected := make(map[string]bool, len(a.opts.Types))

	for _, name := range a.opts.Types {
		selected[name] = true
	}

	// Unions first: their cases are not processed as standalone types.
	caseOf := make(map[*types.TypeName]bool)

	for _, d := range decls {
		iface, ok := d.obj.Type().Underlying().(*types.Interface)
		if !ok {
			continue
		}

		dir, has := a.typeDirective(pkg.Fset, d, diags)
		if !has && !selected[d.obj.Name()] {
			continue
		}

		if !a.opts.Unions {
			diags.AddError(diagnostic.CodeUnsupportedShape, "unions are not enabled", pkg.Fset.Position(d.spec.Pos()), d.obj.Name(), "")
			continue
		}

		union := a.analyzeUnion(pkg, d, iface, decls, diags)
		if union == nil {
			continue
		}

		union.Directive = dir
		out.Unions = append(out.Unions, union)

		for _, c := range union.Cases {
			caseOf[c.Obj] = true
		}
	}

	for _, d := range decls {
		if caseOf[d.obj] {
			continue
		}

		if _, ok := d.obj.Type().Underlying().(*types.Interface); ok {
			continue
		}

		dir, has := a.typeDirective(pkg.Fset, d, diags)
		if !has && !selected[d.obj.Name()] {
			continue
		}

		pos := pkg.Fset.Position(d.spec.Pos())

		st, ok := d.obj.Type().Underlying().(*types.Struct)
		if !ok {
			diags.AddError(diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("%s is not a struct or a union case", d.obj.Name()), pos, d.obj.Name(), "")

			continue
		}

		td := a.analyzeType(pkg, d, st)
		td.Directive = dir
		td.HasDirective = has
		out.Structs = append(out.Structs, td)
	}

	return out
}

// collectDecls returns the package's type declarations in source order.
func (a *Analyzer) collectDecls(pkg *packages.Package) []declInfo {
	var decls []declInfo

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Assign.IsValid() {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				decls = append(decls, declInfo{spec: ts, doc: doc, file: file, obj: obj})
			}
		}
	}

	slices.SortStableFunc(decls, func(x, y declInfo) int {
		px, py := pkg.Fset.Position(x.spec.Pos()), pkg.Fset.Position(y.spec.Pos())
		if px.Filename != py.Filename {
			return strings.Compare(px.Filename, py.Filename)
		}

		return px.Offset - py.Offset
	})

	return decls
}

// typeDirective reads the directive of a type declaration. A declaration
// whose directive cannot be read is reported and skipped.
func (a *Analyzer) typeDirective(fset *token.FileSet, d declInfo, diags *diagnostic.Diagnostics) (directive.Directive, bool) {
	dir, ok, err := directive.FromComments(a.opts.Directive, d.doc)
	if err != nil {
		ReportDirectiveError(diags, fset, err, d.obj.Name(), "")
		return directive.Directive{}, false
	}

	return dir, ok
}

// fieldDirective reads the directive of a struct field: doc comment, then
// line comment, then struct tag. The error is left to the planner, which
// owns the diagnostics of the enclosing type.
func (a *Analyzer) fieldDirective(f *ast.Field) (directive.Directive, bool, error) {
	dir, ok, err := directive.FromComments(a.opts.Directive, f.Doc, f.Comment)
	if err != nil || ok || !a.opts.Tags {
		return dir, ok, err
	}

	dir, ok = directive.FromTag(a.opts.Directive, f.Tag)

	return dir, ok, nil
}

// ReportDirectiveError records a directive error, anchored at its source
// position when it carries one.
func ReportDirectiveError(diags *diagnostic.Diagnostics, fset *token.FileSet, err error, typeName, fieldPath string) {
	var perr *directive.PositionedError
	if errors.As(err, &perr) {
		diag := diagnostic.Diagnostic{
			Severity:  diagnostic.DiagnosticError,
			Code:      perr.Err.Kind.Code(),
			Message:   perr.Err.Message,
			TypeName:  typeName,
			FieldPath: fieldPath,
		}

		if fset != nil && perr.Pos.IsValid() {
			diag.Pos = fset.Position(perr.Pos)
		}

		if perr.Err.Suggestion != "" {
			diag.Suggestions = []string{perr.Err.Suggestion}
		}

		diags.Add(diag)

		return
	}

	diags.AddError(diagnostic.CodeSyntax, err.Error(), token.Position{}, typeName, fieldPath)
}

// parsePos parses a "file:line:col" position as reported by go/packages.
func parsePos(s string) token.Position {
	var pos token.Position

	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return pos
	}

	_, err := fmt.Sscanf(parts[len(parts)-2]+" "+parts[len(parts)-1], "%d %d", &pos.Line, &pos.Column)
	if err != nil {
		return token.Position{}
	}

	pos.Filename = strings.Join(parts[:len(parts)-2], ":")

	return pos
}
