package plan

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"slices"
	"strings"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
	"ctor-generator/internal/match"
)

// GeneratedImports are the standard library packages generated code may use.
var GeneratedImports = map[string]string{
	"iter":   "iter",
	"maps":   "maps",
	"slices": "slices",
}

// Builder turns an analyzed package into a Plan.
type Builder struct {
	pkg   *analyze.Package
	plan  *Plan
	names map[string]token.Position
}

// Build resolves every annotated declaration of pkg.
func Build(pkg *analyze.Package) *Plan {
	b := &Builder{
		pkg: pkg,
		plan: &Plan{
			Package: pkg,
			Imports: make(map[string]string),
		},
		names: make(map[string]token.Position),
	}

	type decl struct {
		pos   token.Position
		build func() *TypePlan
	}

	decls := make([]decl, 0, len(pkg.Structs)+len(pkg.Unions))

	for _, s := range pkg.Structs {
		decls = append(decls, decl{pos: s.Pos, build: func() *TypePlan { return b.buildStruct(s) }})
	}

	for _, u := range pkg.Unions {
		decls = append(decls, decl{pos: u.Pos, build: func() *TypePlan { return b.buildUnion(u) }})
	}

	slices.SortStableFunc(decls, func(x, y decl) int {
		if x.pos.Filename != y.pos.Filename {
			return strings.Compare(x.pos.Filename, y.pos.Filename)
		}

		return x.pos.Offset - y.pos.Offset
	})

	for _, d := range decls {
		b.plan.Types = append(b.plan.Types, d.build())
	}

	b.mergeImports()
	b.plan.Diagnostics.Sort()

	return b.plan
}

// typeScope collects the diagnostics of one declaration.
type typeScope struct {
	name  string
	diags diagnostic.Diagnostics
}

func (s *typeScope) errorf(code string, pos token.Position, field, format string, args ...any) {
	s.diags.AddError(code, fmt.Sprintf(format, args...), pos, s.name, field)
}

func (b *Builder) finish(tp *TypePlan, scope *typeScope) *TypePlan {
	tp.Valid = !scope.diags.HasErrors()
	b.plan.Diagnostics.Merge(scope.diags)

	return tp
}

// buildStruct plans the factories of an annotated struct.
func (b *Builder) buildStruct(td *analyze.TypeDecl) *TypePlan {
	scope := &typeScope{name: td.Name}
	tp := &TypePlan{
		Name:    td.Name,
		Pos:     td.Pos,
		Imports: td.Imports,
	}

	cfg, ok := b.typeConfig(td, directive.TypeLevel, scope)
	if !ok {
		return b.finish(tp, scope)
	}

	owner := owner{name: td.Name, exported: td.Exported, built: td.TypeArgs(), result: td.TypeArgs()}
	factories, def := b.buildFactories(td, cfg, owner, scope)
	tp.Factories = factories
	tp.Default = def

	return b.finish(tp, scope)
}

// buildUnion plans the case factories of an annotated interface.
func (b *Builder) buildUnion(ud *analyze.UnionDecl) *TypePlan {
	scope := &typeScope{name: ud.Name}
	tp := &TypePlan{
		Name:    ud.Name,
		Pos:     ud.Pos,
		Union:   true,
		Imports: make(map[string]string),
	}

	ucfg := directive.DefaultUnionConfig()

	if !ud.Directive.Bare && ud.Directive.Args != "" {
		parsed, err := directive.ParseUnionConfig(ud.Directive.Args)
		if err != nil {
			analyze.ReportDirectiveError(&scope.diags, b.pkg.Fset, ud.Directive.Locate(err), ud.Name, "")
			return b.finish(tp, scope)
		}

		ucfg = parsed
	}

	for _, c := range ud.Cases {
		for name, path := range c.Imports {
			if prev, ok := tp.Imports[name]; ok && prev != path {
				scope.errorf(diagnostic.CodeImportConflict, c.Pos, "",
					"import name %q refers to %q and %q", name, prev, path)

				continue
			}

			tp.Imports[name] = path
		}

		if c.DirectiveErr != nil {
			analyze.ReportDirectiveError(&scope.diags, b.pkg.Fset, c.DirectiveErr, scope.name, c.Name)
			continue
		}

		var cfg *directive.TypeConfig

		if c.HasDirective && !c.Directive.Bare {
			parsed, ok := b.typeConfig(c.TypeDecl, directive.CaseLevel, scope)
			if !ok {
				continue
			}

			cfg = parsed
		} else {
			cfg = &directive.TypeConfig{Requests: []directive.FactoryRequest{ucfg.CaseRequest(c.Name)}}
		}

		if cfg.None {
			continue
		}

		o := owner{
			name:     ud.Name,
			exported: ud.Exported,
			built:    c.Name,
			result:   ud.Name,
			shape:    c.Shape,
			pointer:  c.PointerReceiver,
		}

		factories, def := b.buildFactories(c.TypeDecl, cfg, o, scope)
		tp.Factories = append(tp.Factories, factories...)

		if def != nil {
			if tp.Default != nil {
				scope.errorf(diagnostic.CodeDuplicateDefault, def.Pos, "",
					"%s already has a default constructor from case %s", ud.Name, tp.Default.Built)

				continue
			}

			tp.Default = def
		}
	}

	return b.finish(tp, scope)
}

// typeConfig parses the type-level directive of td.
func (b *Builder) typeConfig(td *analyze.TypeDecl, level directive.Level, scope *typeScope) (*directive.TypeConfig, bool) {
	if !td.HasDirective || td.Directive.Bare {
		return directive.DefaultTypeConfig(), true
	}

	cfg, err := directive.ParseTypeConfig(td.Directive.Args, level)
	if err != nil {
		analyze.ReportDirectiveError(&scope.diags, b.pkg.Fset, td.Directive.Locate(err), scope.name, td.Name)
		return nil, false
	}

	return cfg, true
}

// owner describes what the factories of a declaration construct and return.
type owner struct {
	// name is the type the factory names are derived from.
	name     string
	exported bool
	built    string
	result   string
	shape    analyze.Shape
	// pointer constructs the value by address.
	pointer bool
}

// buildFactories resolves every field for every request of cfg.
func (b *Builder) buildFactories(
	td *analyze.TypeDecl,
	cfg *directive.TypeConfig,
	o owner,
	scope *typeScope,
) ([]*Factory, *Factory) {
	fields, ok := b.prepareFields(td, scope)
	if !ok {
		return nil, nil
	}

	var (
		factories []*Factory
		def       *Factory
	)

	seenDefault := false

	for i, req := range cfg.Requests {
		if req.Default {
			if seenDefault {
				scope.errorf(diagnostic.CodeDuplicateDefault, b.requestPos(td, req), "",
					"default constructor requested more than once")

				continue
			}

			seenDefault = true
		}

		f := b.buildFactory(td, fields, req, i, o, scope)
		if f == nil {
			continue
		}

		if req.Default {
			def = f
		} else {
			factories = append(factories, f)
		}
	}

	return factories, def
}

// prepareFields parses field policies and assigns parameter names.
func (b *Builder) prepareFields(td *analyze.TypeDecl, scope *typeScope) ([]Field, bool) {
	taken := make(map[string]bool)
	for name := range td.Imports {
		taken[name] = true
	}

	for name := range GeneratedImports {
		taken[name] = true
	}

	for _, tp := range td.TypeParams {
		taken[tp.Name] = true
	}

	taken["out"] = true
	isTaken := func(s string) bool {
		_, declared := b.pkg.Existing[s]
		return taken[s] || declared
	}

	fields := make([]Field, 0, len(td.Fields))
	ok := true

	for i := range td.Fields {
		fd := &td.Fields[i]

		f := Field{Decl: fd}

		if fd.DirectiveErr != nil {
			analyze.ReportDirectiveError(&scope.diags, b.pkg.Fset, fd.DirectiveErr,
				scope.name, analyze.FieldPath(td.Name, fd.Name))

			ok = false

			continue
		}

		if fd.HasDirective {
			policy, err := directive.ParseFieldPolicy(fd.Directive.Args)
			if err != nil {
				analyze.ReportDirectiveError(&scope.diags, b.pkg.Fset, fd.Directive.Locate(err),
					scope.name, analyze.FieldPath(td.Name, fd.Name))

				ok = false

				continue
			}

			f.Policy = policy
		}

		base := match.ParamName(fd.Name)
		if fd.Name == "" {
			base = "arg0"
		}

		f.Param = match.Escape(base, isTaken)
		taken[f.Param] = true

		if fd.Underlying != "" {
			f.TypeParam = match.Escape(match.ExportName(f.Param, true)+"T", isTaken)
			taken[f.TypeParam] = true
		}

		fields = append(fields, f)
	}

	return fields, ok
}

// buildFactory resolves one request. It returns nil when the request cannot
// be satisfied; the reasons are reported on scope.
func (b *Builder) buildFactory(
	td *analyze.TypeDecl,
	fields []Field,
	req directive.FactoryRequest,
	index int,
	o owner,
	scope *typeScope,
) *Factory {
	f := &Factory{
		Request: req.Name,
		Const:   req.Const,
		Default: req.Default,
		Index:   index,
		Built:   o.built,
		Result:  o.result,
		Pointer: o.pointer || req.Pointer,
		Shape:   o.shape,
		Pos:     b.requestPos(td, req),
	}

	f.Name, f.Exported = factoryName(req, o)

	if req.Pointer && o.result == o.built {
		f.Result = "*" + o.built
	}

	for _, tp := range td.TypeParams {
		f.TypeParams = append(f.TypeParams, TypeParam{Name: tp.Name, Constraint: tp.Constraint})
	}

	var (
		failed    bool
		needsArgs []FieldRef
		steps     []step
	)

	for _, field := range fields {
		path := analyze.FieldPath(td.Name, field.Decl.Name)

		res, err := ResolveField(field, req, index)
		if err != nil {
			var rerr *ResolveError
			if errors.As(err, &rerr) {
				scope.errorf(rerr.Code, field.Decl.Pos, path, "%s", rerr.Message)
			} else {
				scope.errorf(diagnostic.CodeSyntax, field.Decl.Pos, path, "%s", err.Error())
			}

			failed = true

			continue
		}

		if req.Const && !res.Constant() {
			scope.errorf(diagnostic.CodeConstFactoryConflict, field.Decl.Pos, path,
				"const factory %s cannot use %s for field %s", f.Name, res.Kind, field.Decl.Name)

			failed = true
		}

		if req.Default && res.NeedsParam() {
			needsArgs = append(needsArgs, FieldRef{Name: field.Decl.Name, Pos: field.Decl.Pos})
		}

		if res.TypeParam != nil {
			f.TypeParams = append(f.TypeParams, *res.TypeParam)
		}

		if res.Param != nil {
			f.Params = append(f.Params, *res.Param)
		}

		steps = append(steps, step{field: field, res: res})
	}

	f.bind(steps)

	if len(needsArgs) > 0 {
		names := make([]string, len(needsArgs))
		diag := diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeDefaultConstructorConflict,
			Pos:      f.Pos,
			TypeName: scope.name,
		}

		for i, ref := range needsArgs {
			names[i] = ref.Name
			diag.Related = append(diag.Related, ref.Pos)
		}

		diag.Message = fmt.Sprintf("default constructor of %s cannot take parameters, but fields %s need values; "+
			"mark them default or use default(all)", o.built, strings.Join(names, ", "))
		scope.diags.Add(diag)

		failed = true
	}

	if !b.claimName(f, scope) || failed {
		return nil
	}

	return f
}

// requestPos locates a request in its directive, or the declaration when
// the request is implicit.
func (b *Builder) requestPos(td *analyze.TypeDecl, req directive.FactoryRequest) token.Position {
	if td.HasDirective && td.Directive.Pos.IsValid() {
		return b.pkg.Fset.Position(td.Directive.PosOf(req.Span.Start))
	}

	return td.Pos
}

// FieldRef names a field in a diagnostic.
type FieldRef struct {
	Name string
	Pos  token.Position
}

// claimName reserves the factory name in the package.
func (b *Builder) claimName(f *Factory, scope *typeScope) bool {
	if pos, ok := b.pkg.Existing[f.Name]; ok {
		scope.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeNameConflict,
			Message:  fmt.Sprintf("%s is already declared in package %s", f.Name, b.pkg.Name),
			Pos:      f.Pos,
			TypeName: scope.name,
			Related:  []token.Position{pos},
		})

		return false
	}

	if pos, ok := b.names[f.Name]; ok {
		scope.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeDuplicateFactory,
			Message:  fmt.Sprintf("factory %s is generated more than once", f.Name),
			Pos:      f.Pos,
			TypeName: scope.name,
			Related:  []token.Position{pos},
		})

		return false
	}

	b.names[f.Name] = f.Pos

	return true
}

// factoryName derives the Go function name of a request. Named factories
// are the request name followed by the owner name ("new" on User is
// NewUser); the default constructor is Default followed by the owner name.
func factoryName(req directive.FactoryRequest, o owner) (string, bool) {
	var exported bool

	switch req.Visibility {
	case directive.Exported:
		exported = true
	case directive.Unexported:
		exported = false
	default:
		exported = req.Default && o.exported
	}

	ownerName := match.ExportName(o.name, true)

	if req.Default {
		return match.ExportName("Default"+ownerName, exported), exported
	}

	return match.ExportName(match.Pascal(match.SnakeCase(req.Name))+ownerName, exported), exported
}

// mergeImports collects the imports of every valid type. A name bound to two
// paths invalidates the later declaration.
func (b *Builder) mergeImports() {
	maps.Copy(b.plan.Imports, GeneratedImports)

	for _, tp := range b.plan.Types {
		if !tp.Valid {
			continue
		}

		conflict := false

		for _, name := range slices.Sorted(maps.Keys(tp.Imports)) {
			path := tp.Imports[name]
			if prev, ok := b.plan.Imports[name]; ok && prev != path {
				b.plan.Diagnostics.AddError(diagnostic.CodeImportConflict,
					fmt.Sprintf("import name %q refers to %q and %q", name, prev, path), tp.Pos, tp.Name, "")

				conflict = true
			}
		}

		if conflict {
			tp.Valid = false
			continue
		}

		maps.Copy(b.plan.Imports, tp.Imports)
	}
}
