package gen

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"crud-generator/internal/common"
	"crud-generator/internal/plan"
)

// DateTimeInputLayout is the value layout of datetime-local inputs. Models
// carry it as the time_format tag read by gin form binding.
const DateTimeInputLayout = "2006-01-02T15:04"

// Page file names.
const (
	FormPageFile = "Create.templ"
	ListPageFile = "List.templ"
)

type formData struct {
	Package      string
	Route        string
	Title        string
	Action       string
	SuccessRoute string
	Fields       []formFieldData
}

type formFieldData struct {
	ID    string
	Label string
	Attrs string
}

// renderForm builds <pages>/<Name>/Create.templ.
func (g *Generator) renderForm(ep *plan.EntityPlan) (GeneratedFile, error) {
	form := ep.Form

	data := formData{
		Package:      pagePackage(ep),
		Route:        form.Route,
		Title:        form.Title,
		Action:       "/" + form.SubmitPath,
		SuccessRoute: form.SuccessRoute,
	}

	for _, f := range form.Fields {
		data.Fields = append(data.Fields, formFieldData{
			ID:    f.BindingPath,
			Label: f.Label,
			Attrs: inputAttrs(f),
		})
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, renderError("form", ep.Entity.Name, err)
	}

	return GeneratedFile{
		Filename: path.Join(g.config.PagesDir, ep.Convention.RouteSegment, FormPageFile),
		Content:  buf.Bytes(),
	}, nil
}

// inputAttrs renders the attributes of the input control of f.
func inputAttrs(f plan.FormField) string {
	attrs := []string{
		fmt.Sprintf("type=%q", inputType(f.Widget)),
		fmt.Sprintf("id=%q", f.BindingPath),
		fmt.Sprintf("name=%q", f.BindingPath),
	}

	switch f.Widget {
	case plan.WidgetCheckbox:
		attrs = append(attrs, `value="true"`)
	case plan.WidgetNumberInput:
		attrs = append(attrs, `step="any"`)
	}

	if f.Required {
		attrs = append(attrs, "required")
	}

	if f.MaxLength > 0 {
		attrs = append(attrs, fmt.Sprintf(`maxlength="%d"`, f.MaxLength))
	}

	return strings.Join(attrs, " ")
}

func inputType(w plan.WidgetKind) string {
	switch w {
	case plan.WidgetCheckbox:
		return "checkbox"
	case plan.WidgetNumberInput:
		return "number"
	case plan.WidgetDateInput:
		return "datetime-local"
	default:
		return "text"
	}
}

// pagePackage is the package of the pages of one entity, named after the
// entity directory.
func pagePackage(ep *plan.EntityPlan) string {
	return safeIdent(common.PkgAlias(ep.Convention.RouteSegment), "pages")
}
