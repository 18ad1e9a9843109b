// Package mapping holds the registration file of the struct-mapper tool
// (caster-generator) that the generator emits to cross-map raw entities and
// their transfer models.
//
// One type mapping is written per direction:
//
//	version: "1"
//	mappings:
//	  - source: example.com/shop.Order
//	    target: example.com/app/generated/models.OrderModel
//	    121:
//	      ID: ID
//	      Number: Number
//	  - source: example.com/app/generated/models.OrderModel
//	    target: example.com/shop.Order
//	    121:
//	      ID: ID
//	      Number: Number
//	    ignore:
//	      - Attachments
//
// The "121" block lists field pairs copied as-is; "ignore" lists target fields
// the mapper leaves untouched.
package mapping
