package wasm

import (
	"github.com/wippyai/wasm-caps/wasm/internal/binary"
)

// Limits is the shared min/max structure of tables and memories.
type Limits struct {
	Max *uint32
	Min uint32
}

// TableType describes an imported table.
type TableType struct {
	Limits   Limits
	ElemType byte
}

// MemoryType describes an imported memory.
type MemoryType struct {
	Limits Limits
}

// GlobalType describes an imported global.
type GlobalType struct {
	ValType byte
	Mutable bool
}

// FuncType is a function signature using single-byte value types.
type FuncType struct {
	Params  []byte
	Results []byte
}

// ImportDesc is the kind-specific payload of an import entry.
// Kind uses KindFunc, KindTable, KindMemory or KindGlobal.
type ImportDesc struct {
	Table   *TableType
	Memory  *MemoryType
	Global  *GlobalType
	TypeIdx uint32
	Kind    byte
}

// ImportEntry is a fully described import used when encoding a module.
type ImportEntry struct {
	Module string
	Name   string
	Desc   ImportDesc
}

// RawSection is a section emitted verbatim after the import section.
type RawSection struct {
	Data []byte
	ID   byte
}

// Module describes the parts of a module the encoder can emit. It exists to
// build binaries for inspection; nothing beyond imports is interpreted.
type Module struct {
	Types    []FuncType
	Imports  []ImportEntry
	Sections []RawSection
}

// Encode encodes the module to WebAssembly binary format
func (m *Module) Encode() []byte {
	w := binary.NewWriter()

	// Magic number and version
	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	if len(m.Types) > 0 {
		sec := binary.NewWriter()
		sec.WriteU32(uint32(len(m.Types)))
		for _, ft := range m.Types {
			sec.Byte(FuncTypeByte)
			writeValTypes(sec, ft.Params)
			writeValTypes(sec, ft.Results)
		}
		w.WriteSection(SectionType, sec.Bytes())
	}

	if len(m.Imports) > 0 {
		w.WriteSection(SectionImport, EncodeImportSection(m.Imports))
	}

	for _, s := range m.Sections {
		w.WriteSection(s.ID, s.Data)
	}

	return w.Bytes()
}

// EncodeImportSection encodes the body of an import section.
func EncodeImportSection(imports []ImportEntry) []byte {
	sec := binary.NewWriter()
	sec.WriteU32(uint32(len(imports)))
	for _, imp := range imports {
		sec.WriteName(imp.Module)
		sec.WriteName(imp.Name)
		sec.Byte(imp.Desc.Kind)
		switch imp.Desc.Kind {
		case KindFunc:
			sec.WriteU32(imp.Desc.TypeIdx)
		case KindTable:
			t := TableType{ElemType: ValFuncRef}
			if imp.Desc.Table != nil {
				t = *imp.Desc.Table
			}
			sec.Byte(t.ElemType)
			writeLimits(sec, t.Limits)
		case KindMemory:
			var mem MemoryType
			if imp.Desc.Memory != nil {
				mem = *imp.Desc.Memory
			}
			writeLimits(sec, mem.Limits)
		case KindGlobal:
			g := GlobalType{ValType: ValI32}
			if imp.Desc.Global != nil {
				g = *imp.Desc.Global
			}
			sec.Byte(g.ValType)
			if g.Mutable {
				sec.Byte(1)
			} else {
				sec.Byte(0)
			}
		}
	}
	return sec.Bytes()
}

// FuncImport is shorthand for a function import entry.
func FuncImport(module, name string, typeIdx uint32) ImportEntry {
	return ImportEntry{Module: module, Name: name, Desc: ImportDesc{Kind: KindFunc, TypeIdx: typeIdx}}
}

func writeValTypes(w *binary.Writer, types []byte) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(t)
	}
}

func writeLimits(w *binary.Writer, l Limits) {
	if l.Max != nil {
		w.Byte(LimitsHasMax)
		w.WriteU32(l.Min)
		w.WriteU32(*l.Max)
		return
	}
	w.Byte(0x00)
	w.WriteU32(l.Min)
}
