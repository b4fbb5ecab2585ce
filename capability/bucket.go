package capability

import (
	"fmt"
	"strings"
)

// Bucket is one category of the capability taxonomy.
type Bucket uint8

const (
	FileSystem Bucket = iota
	Environment
	Process
	Network
	UnknownWasiSymbol
	UnknownNamespace

	numBuckets
)

// Buckets lists every bucket in report order.
var Buckets = []Bucket{FileSystem, Environment, Process, Network, UnknownWasiSymbol, UnknownNamespace}

var bucketNames = [numBuckets]string{
	FileSystem:        "file_system",
	Environment:       "environment",
	Process:           "process",
	Network:           "network",
	UnknownWasiSymbol: "unknown_wasi_symbol",
	UnknownNamespace:  "unknown_namespace",
}

var bucketLabels = [numBuckets]string{
	FileSystem:        "file system",
	Environment:       "environment",
	Process:           "process",
	Network:           "network",
	UnknownWasiSymbol: "unknown WASI symbol",
	UnknownNamespace:  "unknown namespace",
}

// String returns the snake_case identifier used in config and structured output.
func (b Bucket) String() string {
	if b < numBuckets {
		return bucketNames[b]
	}
	return fmt.Sprintf("bucket(%d)", uint8(b))
}

// Label returns the human readable name used in text reports.
func (b Bucket) Label() string {
	if b < numBuckets {
		return bucketLabels[b]
	}
	return b.String()
}

// IsResource reports whether the bucket names a system resource type,
// as opposed to one of the two unknown catch-alls.
func (b Bucket) IsResource() bool {
	return b <= Network
}

func (b Bucket) MarshalText() ([]byte, error) {
	if b >= numBuckets {
		return nil, fmt.Errorf("invalid bucket %d", uint8(b))
	}
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBucket accepts a bucket identifier, case-insensitively, with either
// underscores, dashes or spaces between words ("file_system", "file-system",
// "File System").
func ParseBucket(name string) (Bucket, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, n := range bucketNames {
		if n == norm {
			return Bucket(i), nil
		}
	}
	// short forms
	if norm == "filesystem" || norm == "fs" {
		return FileSystem, nil
	}
	return 0, fmt.Errorf("unknown capability bucket %q", name)
}
