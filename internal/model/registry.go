package model

import (
	"errors"
	"fmt"
	"strings"
)

// Registry is the ordered set of models known to the process. Order is the
// order models were registered and drives table creation order.
type Registry struct {
	models []*Model
	byName map[string]*Model
}

// NewRegistry validates and registers models. Models without a primary key
// get an implicit "id" AutoField primary key prepended; the passed models are
// modified in place to receive it.
//
// All validation problems are reported together via errors.Join.
func NewRegistry(models ...*Model) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Model, len(models))}
	var errs []error
	tables := map[string]string{}

	for i, m := range models {
		if m == nil {
			errs = append(errs, fmt.Errorf("model[%d]: nil model", i))
			continue
		}
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Errorf("model[%d]: name must not be empty", i))
			continue
		}
		if _, dup := r.byName[m.Name]; dup {
			errs = append(errs, fmt.Errorf("model %s: registered twice", m.Name))
			continue
		}
		if _, ok := m.PrimaryKey(); !ok {
			m.Fields = append([]Field{{Name: "id", Type: TypeAutoField, PrimaryKey: true}}, m.Fields...)
		}
		if strings.Contains(m.TableName(), ".") {
			errs = append(errs, fmt.Errorf("model %s: table %q must not be schema-qualified; set the schema on the connection", m.Name, m.TableName()))
		}
		key := strings.ToLower(m.TableName())
		if other, dup := tables[key]; dup {
			errs = append(errs, fmt.Errorf("model %s: table %q already used by model %s", m.Name, m.TableName(), other))
		}
		tables[key] = m.Name
		errs = append(errs, validateFields(m)...)

		r.models = append(r.models, m)
		r.byName[m.Name] = m
	}

	// Relations can point forward, so check them once everything is known.
	for _, m := range r.models {
		for _, f := range m.Fields {
			if !f.IsRelation() {
				continue
			}
			target, ok := r.byName[f.RelatedModel]
			if !ok {
				errs = append(errs, fmt.Errorf("model %s: field %s: unknown related model %q", m.Name, f.Name, f.RelatedModel))
				continue
			}
			if f.RelatedField != "" {
				if _, ok := target.Field(f.RelatedField); !ok {
					errs = append(errs, fmt.Errorf("model %s: field %s: related field %s.%s does not exist", m.Name, f.Name, target.Name, f.RelatedField))
				}
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

func validateFields(m *Model) []error {
	var errs []error
	names := map[string]bool{}
	columns := map[string]bool{}
	pks := 0

	for i, f := range m.Fields {
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("model %s: field[%d]: name must not be empty", m.Name, i))
			continue
		}
		if strings.TrimSpace(f.Type) == "" {
			errs = append(errs, fmt.Errorf("model %s: field %s: type must not be empty", m.Name, f.Name))
		}
		if names[f.Name] {
			errs = append(errs, fmt.Errorf("model %s: duplicate field %s", m.Name, f.Name))
		}
		names[f.Name] = true

		col := strings.ToLower(f.ColumnName())
		if columns[col] {
			errs = append(errs, fmt.Errorf("model %s: duplicate column %s", m.Name, f.ColumnName()))
		}
		columns[col] = true

		if f.PrimaryKey {
			pks++
		}
		if f.IsRelation() && strings.TrimSpace(f.RelatedModel) == "" {
			errs = append(errs, fmt.Errorf("model %s: field %s: ForeignKey requires related_model", m.Name, f.Name))
		}
	}
	if pks > 1 {
		errs = append(errs, fmt.Errorf("model %s: %d primary key fields, at most one allowed", m.Name, pks))
	}

	for gi, group := range m.UniqueTogether {
		if len(group) == 0 {
			errs = append(errs, fmt.Errorf("model %s: unique_together[%d] is empty", m.Name, gi))
		}
		for _, name := range group {
			if !names[name] {
				errs = append(errs, fmt.Errorf("model %s: unique_together[%d] names unknown field %q", m.Name, gi, name))
			}
		}
	}
	return errs
}

// Models returns the registered models in registration order. The slice is a
// copy; the models are shared.
func (r *Registry) Models() []*Model {
	return append([]*Model(nil), r.models...)
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (*Model, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Tables returns every model's table name in registration order.
func (r *Registry) Tables() []string {
	out := make([]string, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m.TableName())
	}
	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int { return len(r.models) }
