// Package gen renders the artifacts of a generation plan into source files.
//
// Each dialect has its own renderer:
//   - model: Go struct built with jennifer, tagged for json, form binding and validation
//   - form and list: templ components, text/template
//   - endpoint: gin controller, text/template + go/format
//   - mapping: caster-generator registration YAML
//
// Rendering is pure. Files are returned in plan order and written separately
// by WriteFiles, so a failed run writes nothing.
package gen
