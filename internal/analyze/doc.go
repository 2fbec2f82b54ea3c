// Package analyze loads Go packages and collects the declarations that
// request generated constructors.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// model of annotated structs, annotated interfaces (unions) and their
// cases. Field types are classified up front so later stages never touch
// go/types directly.
//
// Key types:
//   - Package: a loaded package with its annotated declarations
//   - TypeDecl: a struct (or union case) and its fields
//   - FieldDecl: field name, rendered type, directive and classification
//   - UnionDecl: an annotated interface and the types implementing it
package analyze
