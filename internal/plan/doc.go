// Package plan turns a loaded schema into a GenerationPlan: the classified
// members of every entity and the five artifact descriptions rendered from
// them.
//
// Build pipeline:
//  1. Classify every member of every entity against the known entity names
//  2. Synthesize per entity: model, create form, list, endpoint
//  3. Synthesize the global mapping (one pair per entity, both directions)
//
// The first error aborts the build; nothing is rendered from a partial plan.
package plan
