package gen

import (
	"bytes"
	"fmt"
	"path"

	"crud-generator/internal/plan"
	"crud-generator/internal/schema"
)

type listData struct {
	Package      string
	ModelsAlias  string
	ModelsImport string
	ModelType    string
	Route        string
	Title        string
	CreateRoute  string
	DataPath     string
	Collection   string
	Item         string
	NeedsFmt     bool
	Headers      []string
	Cells        []string
}

// renderList builds <pages>/<Name>/List.templ.
func (g *Generator) renderList(ep *plan.EntityPlan) (GeneratedFile, error) {
	list := ep.List
	pkg := pagePackage(ep)
	alias := importAlias(g.config.ModelsImport, pkg, "fmt", list.CollectionName)

	data := listData{
		Package:      pkg,
		ModelsAlias:  alias,
		ModelsImport: g.config.ModelsImport,
		ModelType:    alias + "." + list.ModelName,
		Route:        list.Route,
		Title:        list.Title,
		CreateRoute:  list.CreateRoute,
		DataPath:     "/" + list.DataPath,
		Collection:   list.CollectionName,
	}

	if len(list.Columns) > 0 {
		data.Item = safeIdent(list.ItemName, "Item")
		if data.Item == alias || data.Item == list.CollectionName {
			data.Item += "Item"
		}
	}

	fields := make(map[string]plan.ModelField, len(ep.Model.Fields))
	for _, f := range ep.Model.Fields {
		fields[f.Name] = f
	}

	for _, col := range list.Columns {
		cell, usesFmt := listCell(data.Item, col, fields[col.Field])
		data.Headers = append(data.Headers, col.Label)
		data.Cells = append(data.Cells, cell)
		data.NeedsFmt = data.NeedsFmt || usesFmt
	}

	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, renderError("list", ep.Entity.Name, err)
	}

	return GeneratedFile{
		Filename: path.Join(g.config.PagesDir, ep.Convention.RouteSegment, ListPageFile),
		Content:  buf.Bytes(),
	}, nil
}

// listCell renders the templ expression of one column. Text is printed
// as-is, other values through fmt, and nil pointers leave the cell empty.
func listCell(item string, col plan.ListColumn, field plan.ModelField) (string, bool) {
	expr := item + "." + col.Field

	if col.Nullable {
		return fmt.Sprintf("if %s != nil { { fmt.Sprint(*%s) } }", expr, expr), true
	}

	if isString(field.Type) {
		return "{ " + expr + " }", false
	}

	return "{ fmt.Sprint(" + expr + ") }", true
}

// isString reports whether t renders as the Go string type in models.
func isString(t *schema.TypeRef) bool {
	if t == nil {
		return false
	}

	if t.Kind == schema.TypeKindAlias && t.Elem != nil {
		t = t.Elem
	}

	return t.Kind == schema.TypeKindBasic && t.Name == "string"
}
