// Package match normalizes the names the generator reads and writes and
// ranks misspelled keywords against the known ones.
//
//   - SnakeCase, Words: split names into words
//   - Pascal, Camel, ParamName: render words as Go identifiers
//   - Escape: moves identifiers off Go keywords and predeclared names
//   - Distance, Similarity: edit distance between names
//   - Suggest: picks a "did you mean" hint
package match
