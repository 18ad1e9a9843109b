// Package classify assigns every entity member a semantic kind: a scalar
// (optionally nullable), a reference to another entity, or a collection of
// another entity.
//
// Classification is a pure function of the member and the set of known
// entity names. Shapes outside the rules fail with UNMAPPABLE_MEMBER,
// UNSUPPORTED_COLLECTION or DANGLING_REFERENCE; the classifier never guesses.
package classify
