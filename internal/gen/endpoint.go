package gen

import (
	"bytes"
	"errors"
	"go/format"
	"path"

	"crud-generator/internal/common"
	"crud-generator/internal/plan"
)

type endpointData struct {
	Package      string
	ModelsAlias  string
	ModelsImport string
	ModelType    string
	Entity       string
	Controller   string
	Store        string
	StoreField   string
	BasePath     string
	List         plan.Operation
	Add          plan.Operation
}

// Identifiers of the controller template that an import alias must not shadow.
var endpointIdents = []string{"context", "http", "gin", "c", "ctx", "r", "store", "item", "items", "created", "err"}

// renderEndpoint builds <endpoints>/<stem>_controller.go.
func (g *Generator) renderEndpoint(ep *plan.EntityPlan) (GeneratedFile, error) {
	e := ep.Endpoint

	list, okList := e.Operation(plan.OperationList)
	add, okAdd := e.Operation(plan.OperationAdd)

	if !okList || !okAdd {
		return GeneratedFile{}, renderError("endpoint", e.Entity, errors.New("endpoint needs a list and an add operation"))
	}

	pkg := safeIdent(common.PkgAlias(g.config.EndpointsDir), "endpoints")
	alias := importAlias(g.config.ModelsImport, append([]string{pkg}, endpointIdents...)...)

	data := endpointData{
		Package:      pkg,
		ModelsAlias:  alias,
		ModelsImport: g.config.ModelsImport,
		ModelType:    alias + "." + e.ModelName,
		Entity:       e.Entity,
		Controller:   e.ControllerName,
		Store:        e.Entity + "Store",
		StoreField:   e.StoreName,
		BasePath:     e.BasePath,
		List:         list,
		Add:          add,
	}

	filename := path.Join(g.config.EndpointsDir, ep.Convention.FileStem+"_controller.go")

	var buf bytes.Buffer
	if err := endpointTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, renderError("endpoint", e.Entity, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, filename, buf.Bytes())
		}

		return GeneratedFile{}, renderError("endpoint", e.Entity, err)
	}

	return GeneratedFile{Filename: filename, Content: formatted}, nil
}
