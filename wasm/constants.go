package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01

	// ComponentVersion is the version/layer word of a component model binary.
	ComponentVersion uint32 = 0x0001000D

	// HeaderSize is the length of the magic number plus version.
	HeaderSize = 8
)

// Section IDs define the binary identifiers for each module section.
// Only SectionImport is interpreted; every other section is skipped by length.
const (
	SectionCustom    byte = 0  // Custom section (can appear anywhere)
	SectionType      byte = 1  // Type section (function signatures)
	SectionImport    byte = 2  // Import section
	SectionFunction  byte = 3  // Function section (type indices)
	SectionTable     byte = 4  // Table section
	SectionMemory    byte = 5  // Memory section
	SectionGlobal    byte = 6  // Global section
	SectionExport    byte = 7  // Export section
	SectionStart     byte = 8  // Start section
	SectionElement   byte = 9  // Element section
	SectionCode      byte = 10 // Code section (function bodies)
	SectionData      byte = 11 // Data section
	SectionDataCount byte = 12 // Data count section (bulk memory)
	SectionTag       byte = 13 // Tag section (exception handling)
)

// Import descriptor kinds identify the type of imported item.
const (
	KindFunc   byte = 0 // Function import
	KindTable  byte = 1 // Table import
	KindMemory byte = 2 // Memory import
	KindGlobal byte = 3 // Global import
)

// LimitsHasMax is the flag bit signalling that a limits structure carries a maximum.
const LimitsHasMax byte = 0x01

// Value and reference type encodings used when building fixtures.
const (
	ValI32     byte = 0x7F
	ValI64     byte = 0x7E
	ValF32     byte = 0x7D
	ValF64     byte = 0x7C
	ValFuncRef byte = 0x70
	ValExtern  byte = 0x6F

	FuncTypeByte byte = 0x60
)

// SectionName returns a human readable name for a section id.
func SectionName(id byte) string {
	switch id {
	case SectionCustom:
		return "custom"
	case SectionType:
		return "type"
	case SectionImport:
		return "import"
	case SectionFunction:
		return "function"
	case SectionTable:
		return "table"
	case SectionMemory:
		return "memory"
	case SectionGlobal:
		return "global"
	case SectionExport:
		return "export"
	case SectionStart:
		return "start"
	case SectionElement:
		return "element"
	case SectionCode:
		return "code"
	case SectionData:
		return "data"
	case SectionDataCount:
		return "datacount"
	case SectionTag:
		return "tag"
	default:
		return "unknown"
	}
}
