// Package diagnostic provides positioned, coded errors and warnings for
// the ctor generator.
//
// Key capabilities:
//   - Malformed directive reports anchored at the offending token
//   - Keyword suggestions ("did you mean")
//   - Per-type validation failures, e.g. a default constructor that
//     would need parameters, listing every offending field at once
package diagnostic
