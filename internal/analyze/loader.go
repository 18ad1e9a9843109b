package analyze

import (
	"context"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"crud-generator/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the packages matching patterns, resolved from dir, and
// builds the type graph. Packages that fail to load or type-check are skipped
// with a MODULE_LOAD warning; only a failing underlying go list is fatal.
func (a *Analyzer) LoadPackages(ctx context.Context, dir string, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var healthy []*packages.Package

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.Types == nil {
			a.graph.Diagnostics.AddWarning(diagnostic.CodeModuleLoad,
				fmt.Sprintf("skipping package %s: %s", pkg.PkgPath, joinPackageErrors(pkg.Errors)), "", "")

			continue
		}

		healthy = append(healthy, pkg)
	}

	// Register every package first so named types from any loaded package
	// resolve as internal regardless of processing order.
	for _, pkg := range healthy {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}
	}

	for _, pkg := range healthy {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

func joinPackageErrors(errs []packages.Error) string {
	if len(errs) == 0 {
		return "no type information"
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}

	return strings.Join(msgs, "; ")
}

// processPackage extracts exported named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := a.graph.Packages[pkg.PkgPath]

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		// Generic declarations are described through their instances.
		if named, ok := typeName.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}

		typeID := TypeID{PkgPath: pkg.PkgPath, Name: name}

		a.graph.Types[typeID] = a.analyzeType(typeName.Type())
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{GoType: t}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.Len = tt.Len()
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, funcs, type parameters.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type. Types from packages outside the
// load are opaque; only their identity and type arguments are kept.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	info.ID = TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	if args := named.TypeArgs(); args != nil {
		for i := range args.Len() {
			info.TypeArgs = append(info.TypeArgs, a.analyzeType(args.At(i)))
		}
	}

	if a.isExternalPackage(info.ID.PkgPath) {
		info.Kind = TypeKindExternal

		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else in our packages
		// (e.g., type OrderStatus string, type Lines []OrderLine).
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
// Predeclared named types (error, comparable) have no package.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts exported fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}
