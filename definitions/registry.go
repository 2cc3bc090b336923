package definitions

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"struct-factory/factory"
	"struct-factory/record"
)

var (
	// ErrInvalidDefinition is returned when a definition cannot be registered.
	ErrInvalidDefinition = errors.New("invalid struct definition")
	// ErrUnknownStruct is returned when no constructor is registered under a name.
	ErrUnknownStruct = errors.New("unknown struct")
)

// Registry maps struct names to constructors. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]*factory.Constructor
	names  []string
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events. The default discards logs.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ctors:  map[string]*factory.Constructor{},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// LoadRegistry reads a definitions file and registers all of its structs.
func LoadRegistry(path string, opts ...Option) (*Registry, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	r := NewRegistry(opts...)
	if err := r.Load(f); err != nil {
		return nil, err
	}

	return r, nil
}

// Register parses spec and stores the constructor under name.
func (r *Registry) Register(name, spec string) (*factory.Constructor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}

	c, err := factory.MakeStruct(spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDefinition, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[name]; ok {
		return nil, fmt.Errorf("%w: duplicate struct %q", ErrInvalidDefinition, name)
	}

	r.add(name, c)

	return c, nil
}

// Load validates f and registers all of its structs. If any definition is
// invalid or already registered, nothing is registered.
func (r *Registry) Load(f *File) error {
	diags := Validate(f)
	for _, w := range diags.Warnings {
		r.logger.Warn("struct definitions", zap.String("code", w.Code), zap.String("message", w.Message))
	}

	if diags.HasErrors() {
		first, _ := diags.FirstError()
		r.logger.Error("rejected struct definitions",
			zap.Int("errors", len(diags.Errors)),
			zap.String("first", first.String()),
		)

		return fmt.Errorf("%w: %w", ErrInvalidDefinition, diags.Error())
	}

	ctors := make([]*factory.Constructor, len(f.Structs))
	for i, def := range f.Structs {
		c, err := factory.FromValue(def.Fields)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidDefinition, def.Name, err)
		}

		ctors[i] = c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range f.Structs {
		name := strings.TrimSpace(def.Name)
		if _, ok := r.ctors[name]; ok {
			return fmt.Errorf("%w: duplicate struct %q", ErrInvalidDefinition, name)
		}
	}

	for i, def := range f.Structs {
		r.add(strings.TrimSpace(def.Name), ctors[i])
	}

	return nil
}

func (r *Registry) add(name string, c *factory.Constructor) {
	r.ctors[name] = c
	r.names = append(r.names, name)
	r.logger.Debug("registered struct", zap.String("name", name), zap.Strings("fields", c.Fields()))
}

// Lookup returns the constructor registered under name. Names are stored
// trimmed, so surrounding whitespace in name is ignored.
func (r *Registry) Lookup(name string) (*factory.Constructor, bool) {
	name = strings.TrimSpace(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.ctors[name]

	return c, ok
}

// New builds a record with the constructor registered under name.
func (r *Registry) New(name string, args ...any) (*record.Record, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStruct, name)
	}

	return c.New(args...), nil
}

// Names returns the registered struct names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.names...)
}

// File exports the registry as a definitions file.
func (r *Registry) File() *File {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := &File{Version: CurrentVersion, Structs: make([]StructDef, 0, len(r.names))}
	for _, name := range r.names {
		f.Structs = append(f.Structs, StructDef{Name: name, Fields: r.ctors[name].String()})
	}

	return f
}
