package gen

import "text/template"

var formTemplate = template.Must(template.New("form").Parse(`// Code generated by crud-generator. DO NOT EDIT.

package {{ .Package }}

// Create renders the create form served at {{ .Route }}. The form posts to
// {{ .Action }} and opens {{ .SuccessRoute }} once the entity is added.
templ Create() {
	<section class="crud-create">
		<h1>New {{ .Title }}</h1>
		<form method="post" action="{{ .Action }}" data-success-route="{{ .SuccessRoute }}">
{{- range .Fields }}
			<div class="row">
				<label class="form-label" for="{{ .ID }}">{{ .Label }}</label>
				<input {{ .Attrs }}/>
			</div>
{{- end }}
			<button type="submit" class="btn btn-primary">Submit</button>
		</form>
		<script>
			(function (form) {
				form.addEventListener("submit", async function (event) {
					event.preventDefault();
					const response = await fetch(form.action, { method: "POST", body: new FormData(form) });
					if (response.ok) {
						window.location.assign(form.dataset.successRoute);
					}
				});
			})(document.currentScript.previousElementSibling);
		</script>
		<a href="{{ .SuccessRoute }}">Back to list</a>
	</section>
}
`))

var listTemplate = template.Must(template.New("list").Parse(`// Code generated by crud-generator. DO NOT EDIT.

package {{ .Package }}

import (
{{- if .NeedsFmt }}
	"fmt"
{{ end }}
	{{ .ModelsAlias }} "{{ .ModelsImport }}"
)

// List renders the list view served at {{ .Route }}. Its rows are loaded
// from {{ .DataPath }}.
templ List({{ .Collection }} []{{ .ModelType }}) {
	<section class="crud-list" data-source="{{ .DataPath }}">
		<h1>{{ .Title }}</h1>
		<a href="{{ .CreateRoute }}">Create new</a>
		<table class="table">
			<thead>
				<tr>
{{- range .Headers }}
					<th>{{ . }}</th>
{{- end }}
				</tr>
			</thead>
			<tbody>
				for {{ if .Item }}_, {{ .Item }} := {{ end }}range {{ .Collection }} {
					<tr>
{{- range .Cells }}
						<td>{{ . }}</td>
{{- end }}
					</tr>
				}
			</tbody>
		</table>
	</section>
}
`))

var endpointTemplate = template.Must(template.New("endpoint").Parse(`// Code generated by crud-generator. DO NOT EDIT.

package {{ .Package }}

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	{{ .ModelsAlias }} "{{ .ModelsImport }}"
)

// {{ .Store }} loads and persists {{ .Entity }} entities as transfer models.
type {{ .Store }} interface {
	{{ .List.Name }}(ctx context.Context) ([]{{ .ModelType }}, error)
	{{ .Add.Name }}(ctx context.Context, item {{ .ModelType }}) ({{ .ModelType }}, error)
}

// {{ .Controller }} serves the {{ .Entity }} endpoints under /{{ .BasePath }}.
type {{ .Controller }} struct {
	{{ .StoreField }} {{ .Store }}
}

// New{{ .Controller }} creates a controller backed by store.
func New{{ .Controller }}(store {{ .Store }}) *{{ .Controller }} {
	return &{{ .Controller }}{ {{- .StoreField }}: store}
}

// Register mounts the {{ .Entity }} routes on r.
func (c *{{ .Controller }}) Register(r gin.IRoutes) {
	r.{{ .List.Method }}("/{{ .List.Path }}", c.{{ .List.Name }})
	r.{{ .Add.Method }}("/{{ .Add.Path }}", c.{{ .Add.Name }})
}

// {{ .List.Name }} returns every {{ .Entity }} as a transfer model.
func (c *{{ .Controller }}) {{ .List.Name }}(ctx *gin.Context) {
	items, err := c.{{ .StoreField }}.{{ .List.Name }}(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// {{ .Add.Name }} persists one {{ .Entity }} and returns it with the values
// assigned by the store.
func (c *{{ .Controller }}) {{ .Add.Name }}(ctx *gin.Context) {
	var item {{ .ModelType }}
	if err := ctx.ShouldBind(&item); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := c.{{ .StoreField }}.{{ .Add.Name }}(ctx.Request.Context(), item)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}
`))
