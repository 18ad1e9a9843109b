// Package analyze loads Go packages and discovers the data-access schema
// declared in them.
//
// It uses golang.org/x/tools/go/packages with go/types to build an in-memory
// type graph, finds the root aggregate (the struct embedding the root
// marker), and turns the element types of its entity sets into schema
// descriptors.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
package analyze
