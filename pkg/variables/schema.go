package variables

import (
	"sort"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// Field declares one template variable
type Field struct {
	Name     string `yaml:"name" json:"name"`
	Kind     Kind   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
	// Default may be a templated string referring to fields declared earlier
	Default     any       `yaml:"default,omitempty" json:"default,omitempty"`
	Prompt      string    `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Transform   Transform `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Label is the text shown when asking for the field
func (f Field) Label() string {
	if f.Prompt != "" {
		return f.Prompt
	}
	if f.Description != "" {
		return f.Description
	}
	return f.Name
}

// DefaultText renders the default for display, or "" when there is none
func (f Field) DefaultText() string {
	switch d := f.Default.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(d, ",")
	case []any:
		items, _ := listItems(d)
		return strings.Join(items, ",")
	}
	s, _ := scalarString(f.Default)
	return s
}

// Schema is an ordered set of fields
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates fields and returns a schema. Names must be
// identifiers and unique; kinds and transforms must be known.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if !types.IsIdentifier(f.Name) {
			return nil, errors.Newf(errors.ErrInvalidVariable, "variable name %q is not an identifier", f.Name).
				WithDetail("name", f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.Newf(errors.ErrInvalidVariable, "variable %q is declared twice", f.Name).
				WithDetail("name", f.Name)
		}
		kind, err := ParseKind(string(f.Kind))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidVariable, "variable %q", f.Name).WithDetail("name", f.Name)
		}
		f.Kind = kind
		transform, err := ParseTransform(string(f.Transform))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidVariable, "variable %q", f.Name).WithDetail("name", f.Name)
		}
		f.Transform = transform
		if err := checkDefault(f); err != nil {
			return nil, err
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// checkDefault rejects defaults that can never be coerced. Templated string
// defaults are checked at Build time.
func checkDefault(f Field) error {
	if f.Default == nil {
		return nil
	}
	if s, ok := f.Default.(string); ok {
		if !substitute.IsLiteral(s) {
			if _, err := substitute.Placeholders(s); err != nil {
				return errors.Wrapf(err, errors.ErrInvalidVariable, "default of %q", f.Name).WithDetail("name", f.Name)
			}
			return nil
		}
	}
	if _, err := Coerce(f.Kind, f.Default); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidVariable, "default of %q", f.Name).WithDetail("name", f.Name)
	}
	return nil
}

// Fields returns the fields in declared order
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return append([]Field(nil), s.fields...)
}

// Field returns the named field
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Len returns the number of fields
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Missing returns, in declared order, the required fields that have no
// provided value
func (s *Schema) Missing(provided map[string]any) []string {
	var missing []string
	for _, f := range s.Fields() {
		if _, ok := provided[f.Name]; !ok && f.Required {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Build turns provided values into a Context. Provided values win over
// defaults; values for names the schema does not declare are passed through
// with their kind inferred.
func (s *Schema) Build(provided map[string]any) (types.Context, error) {
	values := make(map[string]types.Value, len(provided)+s.Len())

	extras := make([]string, 0, len(provided))
	for name := range provided {
		if _, declared := s.Field(name); !declared {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		v, err := Infer(provided[name])
		if err != nil {
			return types.Context{}, errors.Wrapf(err, errors.ErrInvalidVariable, "variable %q", name).
				WithDetail("name", name)
		}
		values[name] = v
	}

	for _, f := range s.Fields() {
		raw, ok := provided[f.Name]
		if !ok {
			continue
		}
		v, err := Coerce(f.Kind, raw)
		if err != nil {
			return types.Context{}, errors.Wrapf(err, errors.ErrInvalidVariable, "variable %q", f.Name).
				WithDetail("name", f.Name)
		}
		values[f.Name] = v
	}

	var missing []string
	for _, f := range s.Fields() {
		if _, ok := values[f.Name]; ok {
			continue
		}
		if f.Default == nil {
			if f.Required {
				missing = append(missing, f.Name)
			}
			continue
		}
		v, err := s.resolveDefault(f, values)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnresolvedVariable) && len(missing) > 0 {
				// depends on something already reported missing
				continue
			}
			return types.Context{}, err
		}
		values[f.Name] = v
	}
	if len(missing) > 0 {
		return types.Context{}, errors.Newf(errors.ErrMissingVariable,
			"missing required variables: %s", strings.Join(missing, ", ")).
			WithDetail("names", missing)
	}

	return types.NewContext(values)
}

func (s *Schema) resolveDefault(f Field, known map[string]types.Value) (types.Value, error) {
	def := f.Default
	if str, ok := def.(string); ok {
		ctx, err := types.NewContext(known)
		if err != nil {
			return types.Value{}, err
		}
		resolved, err := substitute.ResolveWith(str, ctx, substitute.Options{ExpandSequences: true})
		if err != nil {
			return types.Value{}, errors.Wrapf(err, errors.GetErrorCode(err), "default of %q", f.Name).
				WithDetail("name", f.Name)
		}
		def = f.Transform.Apply(resolved)
	}
	v, err := Coerce(f.Kind, def)
	if err != nil {
		return types.Value{}, errors.Wrapf(err, errors.ErrInvalidVariable, "default of %q", f.Name).
			WithDetail("name", f.Name)
	}
	return v, nil
}
