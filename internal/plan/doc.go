// Package plan resolves directives into the factories code generation emits.
//
// Resolution pipeline:
//  1. Analyze packages → annotated structs and unions
//  2. Parse the type-level directive (or take the bare default)
//  3. Parse each field policy once and pick parameter names
//  4. For every (field, factory) pair, ResolveField picks the initializer
//  5. Validate: default constructor parameters, const factories, duplicate
//     and conflicting names, imports
//
// A declaration with any error produces no factories; the errors are
// collected on the Plan so every problem is reported in one run.
package plan
