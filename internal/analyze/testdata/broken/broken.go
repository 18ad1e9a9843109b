package broken

// Widget refers to a type that does not exist.
type Widget struct {
	Part MissingType
}
