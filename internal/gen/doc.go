// Package gen renders plans as Go source.
//
// Factories are built with github.com/dave/jennifer, then the imports the
// emitted code refers to are added with astutil and the result is formatted
// with golang.org/x/tools/imports. Source that fails to format is written
// next to the output with an ".error" suffix for inspection.
package gen
