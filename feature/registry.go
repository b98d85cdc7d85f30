package feature

import (
	"errors"
	"fmt"
	"slices"

	"github.com/iw2rmb/lineguard/internal/logging"
)

var (
	ErrNameReserved = errors.New("name is reserved")
	ErrNameInUse    = errors.New("name already registered")
	ErrNameEmpty    = errors.New("name is empty")
	ErrNilFeature   = errors.New("feature is nil")
)

// ConfigurationError is returned by Registry.Add when a feature cannot be
// registered under the requested name.
type ConfigurationError struct {
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("feature %q: %v", e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Names of the registry API itself. They stay unusable as feature names so
// that hosts exposing features by name keep working.
var reservedNames = []string{"add", "remove", "list"}

// Registry holds the features of one editor instance by name.
type Registry struct {
	env      Env
	features map[string]Feature
	order    []string
}

func NewRegistry(env Env) *Registry {
	return &Registry{
		env:      env,
		features: make(map[string]Feature),
	}
}

// Add activates f and registers it under name. The entry is stored only when
// activation succeeds; an activation error is returned as is.
func (r *Registry) Add(name string, f Feature) (Feature, error) {
	switch {
	case name == "":
		return nil, &ConfigurationError{Name: name, Err: ErrNameEmpty}
	case slices.Contains(reservedNames, name):
		return nil, &ConfigurationError{Name: name, Err: ErrNameReserved}
	case f == nil:
		return nil, &ConfigurationError{Name: name, Err: ErrNilFeature}
	}
	if _, ok := r.features[name]; ok {
		return nil, &ConfigurationError{Name: name, Err: ErrNameInUse}
	}

	logger := logging.OrDefault(r.env.Logger)
	if err := Inject(f, r.env); err != nil {
		logger.Error("feature activation failed", logging.FieldFeature, name, logging.FieldError, err)
		return nil, err
	}
	r.features[name] = f
	r.order = append(r.order, name)
	logger.Debug("feature added", logging.FieldFeature, name)
	return f, nil
}

// Remove deactivates and unregisters the named feature. Unknown names are
// ignored. The entry is removed even when Deactivate fails.
func (r *Registry) Remove(name string) error {
	f, ok := r.features[name]
	if !ok {
		return nil
	}
	delete(r.features, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })

	logger := logging.OrDefault(r.env.Logger)
	if err := f.Deactivate(); err != nil {
		logger.Error("feature deactivation failed", logging.FieldFeature, name, logging.FieldError, err)
		return err
	}
	logger.Debug("feature removed", logging.FieldFeature, name)
	return nil
}

// List returns the registered names in insertion order.
func (r *Registry) List() []string {
	return slices.Clone(r.order)
}

func (r *Registry) Get(name string) (Feature, bool) {
	f, ok := r.features[name]
	return f, ok
}

// RemoveAll removes every feature, most recently added first.
func (r *Registry) RemoveAll() error {
	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		if err := r.Remove(r.order[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
