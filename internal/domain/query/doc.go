// Package query contains the structured query model used to filter remote
// storefront listings.
//
// Key concepts:
//   - Field: a named attribute with a declared value type
//   - Value: a typed literal operand (string, integer, decimal, boolean, date, list)
//   - Operator: a comparison operator with a fixed arity
//   - Expression: a closed sum type of Comparison, And and Or nodes
//   - Query: an Expression plus sort/pagination metadata
//
// Expressions are built once per call and never mutated afterwards, so a tree
// may be read concurrently by any number of translators.
package query
