package ports

// Watcher reports changes to a single file. Editors often replace files on
// save (write to temp + rename), so adapters watch the parent directory and
// filter events down to the target path.
type Watcher interface {
	// Watch starts monitoring filePath. onChange is called with the absolute
	// path each time the file is written or recreated. The callback may be
	// invoked from any goroutine.
	Watch(filePath string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
