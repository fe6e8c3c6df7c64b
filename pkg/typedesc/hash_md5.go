package typedesc

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Resolver looks up a dependency by its fully-qualified name. Both
// pkg/typestore.Store and ad-hoc maps built from a single msgdef.File
// satisfy it.
type Resolver func(QName) (*Descriptor, bool)

// MD5 computes the definition hash of d as wire1 tooling defines it
// (spec.md §3 invariant 4): the MD5 of d's canonical text, where every
// field whose type is a message reference is replaced by that message's
// own (recursively computed) hex digest rather than its name. Constants
// are listed first ("TYPE NAME=VALUE"), then fields; comments never enter
// the text. Cycles are rejected with ErrCycle.
func MD5(d *Descriptor, resolve Resolver) ([16]byte, error) {
	text, err := md5Text(d, resolve, nil, map[QName]string{})
	if err != nil {
		return [16]byte{}, err
	}
	return md5.Sum([]byte(text)), nil
}

// MD5Hex is MD5 rendered as a lowercase hex string, the form used in
// wire1 connection headers and .msg "MD5Sum:" banners.
func MD5Hex(d *Descriptor, resolve Resolver) (string, error) {
	sum, err := MD5(d, resolve)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}

func md5Text(d *Descriptor, resolve Resolver, path []QName, memo map[QName]string) (string, error) {
	for _, p := range path {
		if p == d.Name {
			return "", &CycleError{Path: append(append([]QName{}, path...), d.Name)}
		}
	}
	path = append(path, d.Name)

	var b strings.Builder

	// Constants first, sorted is NOT applied: declaration order is part
	// of the canonical text, matching the source .msg/.idl ordering.
	for _, c := range d.Constants {
		fmt.Fprintf(&b, "%s %s=%s\n", c.Type.String(), c.Name, c.Value.String())
	}
	for _, f := range d.Fields {
		typeText, err := md5FieldType(f.Type, resolve, path, memo)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s %s\n", typeText, f.Name)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// md5FieldType renders a field's type for the canonical text: base types
// and arrays/sequences of base types render as their .msg spelling;
// message references, including those used as an array/sequence element,
// render as the referenced message's own MD5 hex digest, computed
// recursively.
func md5FieldType(t TypeSpec, resolve Resolver, path []QName, memo map[QName]string) (string, error) {
	switch v := t.(type) {
	case BaseType:
		return v.String(), nil
	case NameRef:
		digest, err := memoizedHex(v.Name, resolve, path, memo)
		if err != nil {
			return "", err
		}
		return digest, nil
	case ArrayType:
		elemText, err := md5FieldType(v.Element, resolve, path, memo)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%d]", elemText, v.Length), nil
	case SequenceType:
		elemText, err := md5FieldType(v.Element, resolve, path, memo)
		if err != nil {
			return "", err
		}
		if v.Upper >= 0 {
			return fmt.Sprintf("%s[<=%d]", elemText, v.Upper), nil
		}
		return elemText + "[]", nil
	default:
		return "", fmt.Errorf("typedesc: unhandled TypeSpec %T", t)
	}
}

func memoizedHex(name QName, resolve Resolver, path []QName, memo map[QName]string) (string, error) {
	if h, ok := memo[name]; ok {
		return h, nil
	}
	dep, ok := resolve(name)
	if !ok {
		return "", &UnknownTypeError{Ref: name}
	}
	text, err := md5Text(dep, resolve, path, memo)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(text))
	h := hex.EncodeToString(sum[:])
	memo[name] = h
	return h, nil
}

// sortedDependencies returns d's direct NameRef dependencies, deduplicated
// and sorted, for use by callers that need a deterministic traversal order
// independent of md5Text's own recursion (e.g. the emitter's "MSG:" block
// ordering).
func sortedDependencies(d *Descriptor) []QName {
	seen := map[QName]bool{}
	var out []QName
	var walk func(t TypeSpec)
	walk = func(t TypeSpec) {
		switch v := t.(type) {
		case NameRef:
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
		case ArrayType:
			walk(v.Element)
		case SequenceType:
			walk(v.Element)
		}
	}
	for _, f := range d.Fields {
		walk(f.Type)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
