package capability

import (
	"slices"

	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/wasm"
)

// Entry is one import assigned to a bucket.
type Entry struct {
	Namespace string
	Symbol    string
	Kind      wasm.ImportKind
}

// ID identifies the entry in reports: the bare symbol for wasi_unstable
// imports, "namespace#symbol" for everything else.
func (e Entry) ID() string {
	if e.Namespace == WASINamespace {
		return e.Symbol
	}
	return e.Key().String()
}

// Key returns the namespace and symbol pair.
func (e Entry) Key() errors.ImportKey {
	return errors.ImportKey{Namespace: e.Namespace, Symbol: e.Symbol}
}

// Summary is the classification result. Each bucket keeps its entries in
// file order. A Summary is immutable once returned by Classify.
type Summary struct {
	buckets [numBuckets][]Entry
	total   int
}

// Classify assigns every import record to exactly one bucket. Only the
// namespace and symbol are consulted; the import kind is carried along
// but never changes the outcome.
func Classify(imports []wasm.Import) *Summary {
	s := &Summary{}
	for _, imp := range imports {
		s.add(classifyOne(imp), Entry{Namespace: imp.Module, Symbol: imp.Name, Kind: imp.Kind})
	}
	return s
}

func classifyOne(imp wasm.Import) Bucket {
	if imp.Module != WASINamespace {
		return UnknownNamespace
	}
	if b, ok := Lookup(imp.Name); ok {
		return b
	}
	return UnknownWasiSymbol
}

func (s *Summary) add(b Bucket, e Entry) {
	s.buckets[b] = append(s.buckets[b], e)
	s.total++
}

// Entries returns a copy of the entries assigned to b.
func (s *Summary) Entries(b Bucket) []Entry {
	if b >= numBuckets {
		return nil
	}
	return slices.Clone(s.buckets[b])
}

// IDs returns the entry identifiers of b in file order.
func (s *Summary) IDs(b Bucket) []string {
	if b >= numBuckets {
		return nil
	}
	ids := make([]string, 0, len(s.buckets[b]))
	for _, e := range s.buckets[b] {
		ids = append(ids, e.ID())
	}
	return ids
}

// Count returns the number of entries in b.
func (s *Summary) Count(b Bucket) int {
	if b >= numBuckets {
		return 0
	}
	return len(s.buckets[b])
}

// Total returns the number of classified imports across all buckets.
func (s *Summary) Total() int {
	return s.total
}

// WASICount returns the number of imports under the wasi_unstable namespace,
// known or not.
func (s *Summary) WASICount() int {
	return s.total - len(s.buckets[UnknownNamespace])
}

// ResourceTypes returns the non-empty resource buckets in report order.
func (s *Summary) ResourceTypes() []Bucket {
	var out []Bucket
	for _, b := range Buckets {
		if b.IsResource() && len(s.buckets[b]) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Uses reports whether any import landed in b.
func (s *Summary) Uses(b Bucket) bool {
	return s.Count(b) > 0
}
