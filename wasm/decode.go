package wasm

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/wasm/internal/binary"
)

// Decoding errors returned by DecodeImports. Match them with errors.Is; the
// concrete error carries the section, byte offset and low-level cause.
var (
	ErrBadHeader             = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindBadHeader}
	ErrTruncatedSection      = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTruncatedSection}
	ErrUnexpectedEOF         = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnexpectedEOF}
	ErrSectionLengthMismatch = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindSectionLengthMismatch}
	ErrInvalidText           = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidUTF8}
	ErrUnknownImportKind     = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnknownImportKind}
	ErrLEBOverflow           = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOverflow}
)

// DecodeImports validates the module header, walks the top-level sections
// and returns the import section entries in file order. All other sections
// are skipped by their declared length without being interpreted. A module
// without an import section yields an empty, non-nil slice.
func DecodeImports(data []byte) ([]Import, error) {
	r := binary.NewReader(data)
	if err := readHeader(r); err != nil {
		return nil, err
	}

	imports := []Import{}
	log := Logger()

	for !r.EOF() {
		id, err := r.ReadByte()
		if err != nil {
			return nil, decodeError(err, "section header")
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, decodeError(err, "section header")
		}
		start := r.Position()

		if uint64(size) > uint64(r.Len()) {
			return nil, errors.New(errors.PhaseDecode, errors.KindTruncatedSection).
				Section(SectionName(id)).
				Offset(start).
				Detail("declared %d bytes, %d remaining", size, r.Len()).
				Value(size).
				Build()
		}

		if id != SectionImport {
			log.Debug("skip section",
				zap.String("section", SectionName(id)),
				zap.Int("offset", start),
				zap.Uint32("size", size))
			if err := r.Skip(int(size)); err != nil {
				return nil, decodeError(err, SectionName(id))
			}
			continue
		}

		entries, err := readImportSection(r)
		if err != nil {
			return nil, decodeError(err, "import")
		}
		end := start + int(size)
		if r.Position() != end {
			return nil, errors.New(errors.PhaseDecode, errors.KindSectionLengthMismatch).
				Section("import").
				Offset(start).
				Detail("declared %d bytes, consumed %d", size, r.Position()-start).
				Build()
		}
		log.Debug("decoded import section",
			zap.Int("offset", start),
			zap.Uint32("size", size),
			zap.Int("entries", len(entries)))
		imports = append(imports, entries...)
	}

	return imports, nil
}

func readHeader(r *binary.Reader) error {
	magic, err := r.ReadU32LE()
	if err != nil {
		return errors.New(errors.PhaseDecode, errors.KindBadHeader).
			Detail("module shorter than %d byte header", HeaderSize).
			Cause(err).
			Build()
	}
	if magic != Magic {
		return errors.New(errors.PhaseDecode, errors.KindBadHeader).
			Detail("invalid magic number 0x%08x", magic).
			Value(magic).
			Build()
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return errors.New(errors.PhaseDecode, errors.KindBadHeader).
			Detail("module shorter than %d byte header", HeaderSize).
			Cause(err).
			Build()
	}
	switch version {
	case Version:
		return nil
	case ComponentVersion:
		return errors.New(errors.PhaseDecode, errors.KindBadHeader).
			Detail("component binaries are not supported, expected a core module").
			Value(version).
			Build()
	default:
		return errors.New(errors.PhaseDecode, errors.KindBadHeader).
			Detail("unsupported version 0x%08x", version).
			Value(version).
			Build()
	}
}

// readImportSection reads the import vector. The count is not used to
// preallocate since it is attacker controlled; entries are appended as read.
func readImportSection(r *binary.Reader) ([]Import, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	var imports []Import
	for i := uint32(0); i < count; i++ {
		module, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		name, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		switch kind {
		case KindFunc:
			_, err = r.ReadU32()
		case KindTable:
			// element type followed by limits
			if _, err = r.ReadByte(); err == nil {
				err = skipLimits(r)
			}
		case KindMemory:
			err = skipLimits(r)
		case KindGlobal:
			// value type and mutability
			err = r.Skip(2)
		default:
			return nil, errors.New(errors.PhaseDecode, errors.KindUnknownImportKind).
				Section("import").
				Path(module, name).
				Offset(r.Position() - 1).
				Detail("unknown import kind 0x%02x", kind).
				Value(kind).
				Build()
		}
		if err != nil {
			return nil, err
		}

		imports = append(imports, Import{Module: module, Name: name, Kind: ImportKind(kind)})
	}
	return imports, nil
}

func skipLimits(r *binary.Reader) error {
	flags, err := r.ReadByte()
	if err != nil {
		return err
	}
	if _, err := r.ReadU32(); err != nil {
		return err
	}
	if flags&LimitsHasMax != 0 {
		if _, err := r.ReadU32(); err != nil {
			return err
		}
	}
	return nil
}

// decodeError maps low-level reader failures onto the decode error kinds.
// Errors that are already structured pass through unchanged.
func decodeError(err error, section string) error {
	var se *errors.Error
	if errors.As(err, &se) {
		return err
	}

	kind := errors.KindInvalidData
	switch {
	case errors.Is(err, binary.ErrUnexpectedEOF):
		kind = errors.KindUnexpectedEOF
	case errors.Is(err, binary.ErrInvalidUTF8):
		kind = errors.KindInvalidUTF8
	case errors.Is(err, binary.ErrOverflow):
		kind = errors.KindOverflow
	}

	b := errors.New(errors.PhaseDecode, kind).Section(section).Cause(err)
	var pe *binary.ParseError
	if errors.As(err, &pe) {
		b.Offset(pe.Position)
	}
	return b.Build()
}
