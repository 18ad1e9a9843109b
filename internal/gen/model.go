package gen

import (
	"bytes"
	"path"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"crud-generator/internal/classify"
	"crud-generator/internal/common"
	"crud-generator/internal/plan"
	"crud-generator/internal/schema"
)

// renderModel builds <models>/<stem>_model.go.
func (g *Generator) renderModel(ep *plan.EntityPlan) (GeneratedFile, error) {
	m := ep.Model

	f := jen.NewFilePathName(g.config.ModelsImport, common.PkgAlias(g.config.ModelsImport))
	f.HeaderComment(generatedHeader)

	fields := make([]jen.Code, 0, len(m.Fields))
	for _, mf := range m.Fields {
		fields = append(fields, jen.Id(mf.Name).Add(modelFieldType(mf)).Tag(modelFieldTags(mf)))
	}

	f.Commentf("%s is the transfer model of %s.", m.ModelName, m.Entity)
	f.Type().Id(m.ModelName).Struct(fields...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return GeneratedFile{}, renderError("model", m.Entity, err)
	}

	return GeneratedFile{
		Filename: path.Join(g.config.ModelsDir, ep.Convention.FileStem+"_model.go"),
		Content:  buf.Bytes(),
	}, nil
}

// modelFieldType renders a reference as a pointer to the related model, a
// collection as a slice of it, and a scalar as its primitive.
func modelFieldType(f plan.ModelField) *jen.Statement {
	switch f.Kind {
	case classify.KindReference:
		return jen.Op("*").Id(f.RelatedModel)
	case classify.KindCollection:
		return jen.Index().Id(f.RelatedModel)
	}

	t := goType(f.Type)
	if f.Nullable {
		return jen.Op("*").Add(t)
	}

	return t
}

// goType renders a type reference. Named types over a basic type collapse to
// that basic type, keeping models free of schema package imports.
func goType(t *schema.TypeRef) *jen.Statement {
	if t == nil {
		return jen.Interface()
	}

	switch t.Kind {
	case schema.TypeKindBasic:
		return jen.Id(t.Name)
	case schema.TypeKindPointer:
		return jen.Op("*").Add(goType(t.Elem))
	case schema.TypeKindSlice:
		return jen.Index().Add(goType(t.Elem))
	case schema.TypeKindArray:
		return jen.Index(jen.Lit(int(t.Len))).Add(goType(t.Elem))
	case schema.TypeKindMap:
		return jen.Map(goType(t.Key)).Add(goType(t.Elem))
	case schema.TypeKindAlias:
		if t.Elem != nil && t.Elem.Kind == schema.TypeKindBasic {
			return goType(t.Elem)
		}

		return qualified(t)
	case schema.TypeKindExternal:
		if basic, ok := externalBasics[t.QualifiedName()]; ok {
			return jen.Id(basic)
		}

		return qualified(t)
	case schema.TypeKindNamed:
		return qualified(t)
	default:
		return jen.Id(t.Name)
	}
}

// externalBasics are defined types of other packages that models carry as
// their underlying basic type, like aliases over basic types.
var externalBasics = map[string]string{
	"time.Duration": "int64",
}

func qualified(t *schema.TypeRef) *jen.Statement {
	q := jen.Qual(t.PkgPath, t.Name)
	if len(t.Args) == 0 {
		return q
	}

	args := make([]jen.Code, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, goType(a))
	}

	return q.Types(args...)
}

func modelFieldTags(f plan.ModelField) map[string]string {
	tags := map[string]string{
		"json": f.WireName,
		"form": f.WireName,
	}

	if f.IsRelatedModel() {
		tags["json"] += ",omitempty"
		tags["form"] = "-"

		return tags
	}

	if f.Nullable {
		tags["json"] += ",omitempty"
	}

	if f.Scalar == classify.ScalarDateTime {
		tags["time_format"] = DateTimeInputLayout
	}

	if v := validateTag(f); v != "" {
		tags["validate"] = v
	}

	return tags
}

// validateTag renders constraints in go-playground/validator syntax.
func validateTag(f plan.ModelField) string {
	var rules []string

	_, required := schema.FindConstraint(f.Constraints, schema.ConstraintRequired)
	if required {
		rules = append(rules, "required")
	}

	if ml, ok := schema.FindConstraint(f.Constraints, schema.ConstraintMaxLength); ok && f.Scalar == classify.ScalarText {
		if f.Nullable && !required {
			rules = append(rules, "omitempty")
		}

		rules = append(rules, "max="+strconv.Itoa(ml.Value))
	}

	return strings.Join(rules, ",")
}
