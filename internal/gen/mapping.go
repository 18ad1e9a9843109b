package gen

import (
	"errors"
	"path"

	"crud-generator/internal/mapping"
	"crud-generator/internal/plan"
)

// renderMapping builds <mapping>/global_mapping.yaml with one type mapping per
// direction of every pair.
func (g *Generator) renderMapping(p *plan.GenerationPlan) (GeneratedFile, error) {
	if len(p.Mapping.Pairs) == 0 {
		return GeneratedFile{}, renderError("mapping", "schema", errors.New("no mapping pairs"))
	}

	byEntity := make(map[string]*plan.EntityPlan, len(p.Entities))
	for i := range p.Entities {
		byEntity[p.Entities[i].Entity.Name] = &p.Entities[i]
	}

	mf := &mapping.MappingFile{Version: mapping.FormatVersion}

	for _, d := range p.Mapping.Directions() {
		tm := mapping.TypeMapping{Source: d.Source, Target: d.Target}

		if d.ToModel {
			tm.Target = g.modelType(d.Target)
		} else {
			tm.Source = g.modelType(d.Source)
		}

		if ep, ok := byEntity[d.Entity]; ok {
			tm.OneToOne = fieldPairs(ep.Model)
			if !d.ToModel {
				tm.Ignore = unmodeledMembers(ep)
			}
		}

		mf.TypeMappings = append(mf.TypeMappings, tm)
	}

	if res := mapping.Validate(mf); res.HasErrors() {
		return GeneratedFile{}, renderError("mapping", "schema", res.Error())
	}

	data, err := mapping.Marshal(mf)
	if err != nil {
		return GeneratedFile{}, renderError("mapping", "schema", err)
	}

	return GeneratedFile{
		Filename: path.Join(g.config.MappingDir, MappingFilename),
		Content:  data,
	}, nil
}

func (g *Generator) modelType(modelName string) string {
	return g.config.ModelsImport + "." + modelName
}

// fieldPairs maps every model field to the member of the same name.
func fieldPairs(m plan.ModelArtifact) map[string]string {
	if len(m.Fields) == 0 {
		return nil
	}

	pairs := make(map[string]string, len(m.Fields))
	for _, f := range m.Fields {
		pairs[f.Name] = f.Name
	}

	return pairs
}

// unmodeledMembers lists entity members that have no model field, in
// declaration order.
func unmodeledMembers(ep *plan.EntityPlan) []string {
	modeled := make(map[string]struct{}, len(ep.Model.Fields))
	for _, f := range ep.Model.Fields {
		modeled[f.Name] = struct{}{}
	}

	var out []string

	for _, m := range ep.Entity.Members {
		if _, ok := modeled[m.Name]; !ok {
			out = append(out, m.Name)
		}
	}

	return out
}
