package schema

// Kind enumerates the value shapes a writable field accepts.
type Kind string

const (
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindReference Kind = "reference"
)

// Field describes one writable field of an entity.
type Field struct {
	Name     string `json:"name"`
	Column   string `json:"-"`
	Kind     Kind   `json:"kind"`
	Required bool   `json:"required"`
}

// Entity describes a stored resource: its name, its table and the fields a
// client may write. Touch names a column that is refreshed on every
// successful update; it is empty for entities without one.
type Entity struct {
	Name   string  `json:"name"`
	Table  string  `json:"table"`
	Fields []Field `json:"fields"`
	Touch  string  `json:"-"`
}

// ByName looks an entity up by its resource name.
func ByName(entities []Entity, name string) (Entity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}
