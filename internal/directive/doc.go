// Package directive parses the //ctor mini-language.
//
// A struct type requests factories with a directive in its doc comment:
//
//	//ctor(pub new, from_parts, default(all))
//	type User struct {
//		//ctor(cloned)
//		Tags []string
//		Score int `ctor:"default = 1"`
//	}
//
// A bare //ctor requests a single exported "new" factory. Field directives
// may also be written as a struct tag. An annotated interface declares a
// union whose cases are the package types implementing it:
//
//	//ctor(prefix = new, vis = pub)
//	type Shape interface{ isShape() }
//
// Directive text is tokenized with go/scanner; errors carry the byte span
// of the offending token so callers can map them back to source positions.
package directive
