// Package match ranks "did you mean" candidates for names that failed to
// resolve, such as a relation whose target is not an entity.
//
// Key functions:
//   - NormalizeIdent: folds identifiers for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest known names
package match
