package typedesc

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
)

// RIHS01 computes the "Rihs" structural hash described in spec.md §3
// invariant 4: "RIHS01_" followed by the hex SHA-256 digest of a postorder
// canonical serialization of d's dependency graph (dependencies visited in
// sorted name order, each one's bytes folded in before the dependent that
// references it). Like MD5, it is computed from Descriptors, so source
// whitespace and comments do not affect it.
func RIHS01(d *Descriptor, resolve Resolver) (string, error) {
	h := sha256.New()
	visited := map[QName]bool{}
	if err := rihsWalk(d, resolve, visited, nil, h); err != nil {
		return "", err
	}
	return "RIHS01_" + hex.EncodeToString(h.Sum(nil)), nil
}

func rihsWalk(d *Descriptor, resolve Resolver, visited map[QName]bool, path []QName, h io.Writer) error {
	for _, p := range path {
		if p == d.Name {
			return &CycleError{Path: append(append([]QName{}, path...), d.Name)}
		}
	}
	if visited[d.Name] {
		return nil
	}
	path = append(path, d.Name)

	for _, dep := range sortedDependencies(d) {
		depDesc, ok := resolve(dep)
		if !ok {
			return &UnknownTypeError{Ref: dep}
		}
		if err := rihsWalk(depDesc, resolve, visited, path, h); err != nil {
			return err
		}
	}

	visited[d.Name] = true
	writeRihsDescriptor(d, h)
	return nil
}

func writeRihsDescriptor(d *Descriptor, h io.Writer) {
	writeRihsString(h, string(d.Name))
	writeRihsU32(h, uint32(d.Kind))
	writeRihsU32(h, uint32(len(d.Constants)))
	for _, c := range d.Constants {
		writeRihsString(h, c.Name)
		writeRihsString(h, c.Type.String())
		writeRihsString(h, c.Value.String())
	}
	writeRihsU32(h, uint32(len(d.Fields)))
	for _, f := range d.Fields {
		writeRihsString(h, f.Name)
		writeRihsString(h, f.Type.String())
		if f.Default != nil {
			writeRihsU32(h, 1)
			writeRihsString(h, f.Default.String())
		} else {
			writeRihsU32(h, 0)
		}
	}
}

func writeRihsString(h io.Writer, s string) {
	writeRihsU32(h, uint32(len(s)))
	h.Write([]byte(s))
}

func writeRihsU32(h io.Writer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	h.Write(tmp[:])
}
