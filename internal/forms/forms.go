// Package forms implements the validate-and-prepare layer: each entity gets
// one operation taking the raw user-suppliable fields and returning either a
// ready-to-persist delta or a map of field-level error messages. Nothing here
// persists anything; callers stamp the foreign keys the user may not supply
// (author, post, user) before handing the delta to a repository.
package forms

// Errors maps a field name to its human-readable error messages.
type Errors map[string][]string

// Add appends a message for the field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no field has errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}
