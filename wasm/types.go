package wasm

import "fmt"

// ImportKind is the tag of an import descriptor.
type ImportKind byte

const (
	ImportFunc   = ImportKind(KindFunc)
	ImportTable  = ImportKind(KindTable)
	ImportMemory = ImportKind(KindMemory)
	ImportGlobal = ImportKind(KindGlobal)
)

func (k ImportKind) String() string {
	switch k {
	case ImportFunc:
		return "func"
	case ImportTable:
		return "table"
	case ImportMemory:
		return "memory"
	case ImportGlobal:
		return "global"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Import is one entry of the import section, in file order.
// Kind-specific payloads are consumed while decoding but not retained.
type Import struct {
	Module string
	Name   string
	Kind   ImportKind
}

// Key returns the "module#name" identifier of the import.
func (i Import) Key() string {
	return i.Module + "#" + i.Name
}
