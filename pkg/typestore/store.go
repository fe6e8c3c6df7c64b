// Package typestore is the registry that pkg/wire1, pkg/cdr, and
// pkg/translate consume: a name-keyed collection of typedesc.Descriptor
// values, built by parsing and normalizing MSG/IDL text. Grounded directly
// on pkg/cramberry/registry.go's Registry (RWMutex-guarded maps,
// Register/RegisterOrGet, byID/byName/byType lookup tables), keyed by
// qualified type name instead of reflect.Type/TypeID.
package typestore

import (
	"reflect"
	"sync"

	"github.com/blockberries/rosmsg/pkg/idldef"
	"github.com/blockberries/rosmsg/pkg/msgdef"
	"github.com/blockberries/rosmsg/pkg/typedesc"
)

// Format selects which front end RegisterText parses input text with.
type Format int

const (
	FormatMSG Format = iota
	FormatIDL
)

// Preset selects a starting catalog for New.
type Preset int

const (
	// PresetEmpty starts with no registered types.
	PresetEmpty Preset = iota
	// PresetROS1Defaults preregisters the ROS1 std_msgs/msg/Header (with
	// seq), used pervasively as a field reference in other messages. It
	// registers no other types.
	PresetROS1Defaults
	// PresetROS2Defaults preregisters the ROS2 std_msgs/msg/Header and
	// builtin_interfaces/msg/Time shape.
	PresetROS2Defaults
)

// Registered describes one Descriptor that a RegisterText call added (or
// found already present, byte-identical) to the store.
type Registered struct {
	Name  typedesc.QName
	IsNew bool
}

// Store is a typedesc.Descriptor registry, safe for concurrent Lookup and
// closure/hash/emit reads; Register* calls serialize on mu, the same
// single-writer discipline as Registry.mu in the teacher.
type Store struct {
	mu    sync.RWMutex
	byName map[typedesc.QName]*typedesc.Descriptor
}

// New returns a Store seeded with preset's catalog.
func New(preset Preset) *Store {
	s := &Store{byName: map[typedesc.QName]*typedesc.Descriptor{}}
	switch preset {
	case PresetROS1Defaults:
		for _, d := range ros1Defaults() {
			_ = s.RegisterDescriptor(d)
		}
	case PresetROS2Defaults:
		for _, d := range ros2Defaults() {
			_ = s.RegisterDescriptor(d)
		}
	}
	return s
}

// resolver returns a typedesc.Resolver closed over s's current contents,
// used by callers (RegisterText, MD5, RIHS01, EmitMSG) that need to walk
// NameRef dependencies while holding no lock across the walk.
func (s *Store) resolver() typedesc.Resolver {
	s.mu.RLock()
	snapshot := make(map[typedesc.QName]*typedesc.Descriptor, len(s.byName))
	for k, v := range s.byName {
		snapshot[k] = v
	}
	s.mu.RUnlock()
	return func(name typedesc.QName) (*typedesc.Descriptor, bool) {
		d, ok := snapshot[name]
		return d, ok
	}
}

// RegisterDescriptor inserts d, or — if name is already registered —
// verifies the existing Descriptor is byte-identical to d, returning
// *TypeConflictError if not. This is the byte-identical-or-conflict rule
// from spec.md §3 invariant 3, grounded on registerLocked's
// duplicate-vs-conflict branching in the teacher's Registry.
func (s *Store) RegisterDescriptor(d *typedesc.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerLocked(d)
}

func (s *Store) registerLocked(d *typedesc.Descriptor) error {
	existing, ok := s.byName[d.Name]
	if !ok {
		s.byName[d.Name] = d
		return nil
	}
	if !reflect.DeepEqual(existing, d) {
		return &TypeConflictError{Name: d.Name, Existing: existing, New: d}
	}
	return nil
}

// RegisterText parses text per format, normalizes every definition it
// contains (the primary plus any bundled dependencies), and registers all
// of them. primary names the top-level definition; it is ignored for IDL
// text, whose definitions self-name via their module nesting.
func (s *Store) RegisterText(text []byte, format Format, primary typedesc.QName) ([]Registered, error) {
	var descs map[typedesc.QName]*typedesc.Descriptor
	switch format {
	case FormatMSG:
		f, err := msgdef.Parse(string(primary), string(text))
		if err != nil {
			return nil, err
		}
		descs, err = typedesc.NormalizeMsgFile(f, primary)
		if err != nil {
			return nil, err
		}
	case FormatIDL:
		f, err := idldef.Parse(string(text))
		if err != nil {
			return nil, err
		}
		descs, err = typedesc.NormalizeIDLFile(f)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Registered
	for name, d := range descs {
		_, existed := s.byName[name]
		if err := s.registerLocked(d); err != nil {
			return nil, err
		}
		out = append(out, Registered{Name: name, IsNew: !existed})
	}
	return out, nil
}

// Lookup returns the Descriptor registered under name.
func (s *Store) Lookup(name typedesc.QName) (*typedesc.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byName[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return d, nil
}

// Closure returns name's Descriptor together with every Descriptor it
// transitively references, in postorder (dependencies before dependents).
// Cycles are rejected with a *typedesc.CycleError, the same rejection the
// teacher's Loader.loadFileInternal performs for file-import cycles.
func (s *Store) Closure(name typedesc.QName) ([]*typedesc.Descriptor, error) {
	root, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	resolve := s.resolver()

	var out []*typedesc.Descriptor
	visited := map[typedesc.QName]bool{}
	var walk func(d *typedesc.Descriptor, path []typedesc.QName) error
	walk = func(d *typedesc.Descriptor, path []typedesc.QName) error {
		for _, p := range path {
			if p == d.Name {
				return &typedesc.CycleError{Path: append(append([]typedesc.QName{}, path...), d.Name)}
			}
		}
		if visited[d.Name] {
			return nil
		}
		path = append(path, d.Name)
		for _, f := range d.Fields {
			if err := walkType(f.Type, resolve, path, visited, &out); err != nil {
				return err
			}
		}
		visited[d.Name] = true
		out = append(out, d)
		return nil
	}
	if err := walk(root, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func walkType(t typedesc.TypeSpec, resolve typedesc.Resolver, path []typedesc.QName, visited map[typedesc.QName]bool, out *[]*typedesc.Descriptor) error {
	switch v := t.(type) {
	case typedesc.NameRef:
		dep, ok := resolve(v.Name)
		if !ok {
			return &typedesc.UnknownTypeError{Ref: v.Name}
		}
		for _, p := range path {
			if p == dep.Name {
				return &typedesc.CycleError{Path: append(append([]typedesc.QName{}, path...), dep.Name)}
			}
		}
		if visited[dep.Name] {
			return nil
		}
		nextPath := append(append([]typedesc.QName{}, path...), dep.Name)
		for _, f := range dep.Fields {
			if err := walkType(f.Type, resolve, nextPath, visited, out); err != nil {
				return err
			}
		}
		visited[dep.Name] = true
		*out = append(*out, dep)
		return nil
	case typedesc.ArrayType:
		return walkType(v.Element, resolve, path, visited, out)
	case typedesc.SequenceType:
		return walkType(v.Element, resolve, path, visited, out)
	default:
		return nil
	}
}

// MD5 returns name's MD5 definition hash (hex), per typedesc.MD5Hex.
func (s *Store) MD5(name typedesc.QName) (string, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return typedesc.MD5Hex(d, s.resolver())
}

// RIHS01 returns name's RIHS01 structural hash, per typedesc.RIHS01.
func (s *Store) RIHS01(name typedesc.QName) (string, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return typedesc.RIHS01(d, s.resolver())
}

// EmitMSG renders name's canonical .msg text, per typedesc.EmitMSG.
func (s *Store) EmitMSG(name typedesc.QName) (string, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return typedesc.EmitMSG(d, s.resolver())
}

// Size returns the number of distinct Descriptors registered.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}
