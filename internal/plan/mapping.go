package plan

import (
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/naming"
	"crud-generator/internal/schema"
)

// SynthesizeGlobalMapping registers one entity/model pair per entity, in
// discovery order.
func SynthesizeGlobalMapping(entities []*schema.EntityDescriptor, resolver *naming.Resolver) (GlobalMappingArtifact, error) {
	if len(entities) == 0 {
		return GlobalMappingArtifact{}, diagnostic.NewError(diagnostic.CodeEmptySchema, "", "",
			"no entities to register in the global mapping")
	}

	pairs := make([]MappingPair, 0, len(entities))
	for _, e := range entities {
		pairs = append(pairs, MappingPair{
			Entity:        e.Name,
			EntityPkgPath: e.PkgPath,
			ModelName:     resolver.Resolve(e.Name).ModelName,
		})
	}

	return GlobalMappingArtifact{Pairs: pairs}, nil
}
