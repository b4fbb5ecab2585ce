package capability

import "maps"

// WASINamespace is the only import namespace whose symbols are classified
// against the table below.
const WASINamespace = "wasi_unstable"

var wasiUnstable = map[string]Bucket{
	"args_get":          Environment,
	"args_sizes_get":    Environment,
	"clock_res_get":     Environment,
	"clock_time_get":    Environment,
	"random_get":        Environment,
	"environ_get":       Environment,
	"environ_sizes_get": Environment,

	"fd_advise":               FileSystem,
	"fd_close":                FileSystem,
	"fd_datasync":             FileSystem,
	"fd_fdstat_get":           FileSystem,
	"fd_fdstat_set_flags":     FileSystem,
	"fd_fdstat_set_rights":    FileSystem,
	"fd_filestat_get":         FileSystem,
	"fd_filestat_set_size":    FileSystem,
	"fd_filestat_set_times":   FileSystem,
	"fd_pread":                FileSystem,
	"fd_prestat_get":          FileSystem,
	"fd_prestat_dir_name":     FileSystem,
	"fd_pwrite":               FileSystem,
	"fd_read":                 FileSystem,
	"fd_readdir":              FileSystem,
	"fd_renumber":             FileSystem,
	"fd_seek":                 FileSystem,
	"fd_sync":                 FileSystem,
	"fd_tell":                 FileSystem,
	"fd_write":                FileSystem,
	"path_create_directory":   FileSystem,
	"path_filestat_get":       FileSystem,
	"path_filestat_set_times": FileSystem,
	"path_link":               FileSystem,
	"path_open":               FileSystem,
	"path_readlink":           FileSystem,
	"path_remove_directory":   FileSystem,
	"path_rename":             FileSystem,
	"path_symlink":            FileSystem,
	"path_unlink_file":        FileSystem,
	"poll_oneoff":             FileSystem,

	"proc_exit":   Process,
	"proc_raise":  Process,
	"sched_yield": Process,

	"sock_recv":     Network,
	"sock_send":     Network,
	"sock_shutdown": Network,
}

// Lookup returns the bucket of a wasi_unstable symbol. Symbols absent from
// the table report false.
func Lookup(symbol string) (Bucket, bool) {
	b, ok := wasiUnstable[symbol]
	return b, ok
}

// Table returns a copy of the wasi_unstable symbol table.
func Table() map[string]Bucket {
	return maps.Clone(wasiUnstable)
}
