// Package atlas adapts Atlas Academy export documents to the skill classifier
// and builds the normalized servant and mystic code entities.
package atlas

import "fmt"

// Schema names the fields that differ between export variants.
// Everything else is shared by all exports.
type Schema struct {
	Name        string
	DetailField string
	// FuncTypeField is empty when the export folds the function type into
	// the target type field.
	FuncTypeField   string
	TargetTypeField string
}

var (
	// SchemaNice matches nice_servant.json / nice_mystic_code.json.
	SchemaNice = Schema{
		Name:            "nice",
		DetailField:     "unmodifiedDetail",
		FuncTypeField:   "funcType",
		TargetTypeField: "funcTargetType",
	}
	// SchemaBasic is the consolidated variant with a single detail field and
	// no separate function type.
	SchemaBasic = Schema{
		Name:            "basic",
		DetailField:     "detail",
		TargetTypeField: "funcTargetType",
	}
)

// LookupSchema returns the schema registered under name.
func LookupSchema(name string) (Schema, error) {
	switch name {
	case SchemaNice.Name:
		return SchemaNice, nil
	case SchemaBasic.Name:
		return SchemaBasic, nil
	default:
		return Schema{}, fmt.Errorf("unknown export schema %q", name)
	}
}

// UnmarshalText lets yaml and env decode a schema by name.
func (s *Schema) UnmarshalText(text []byte) error {
	v, err := LookupSchema(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText encodes the schema name.
func (s Schema) MarshalText() ([]byte, error) {
	return []byte(s.Name), nil
}
