// Package capability buckets decoded imports into a fixed capability taxonomy.
//
// Imports under the wasi_unstable namespace are looked up in a static symbol
// table and land in FileSystem, Environment, Process or Network; WASI symbols
// missing from the table go to UnknownWasiSymbol. Imports from any other
// namespace go to UnknownNamespace regardless of their symbol.
//
// Classification is total: every record lands in exactly one bucket, so
//
//	summary := capability.Classify(imports)
//	summary.Total() == len(imports)
//
// always holds.
package capability
