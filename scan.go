package boxscan

import "os"

// ScanFile opens the file at path, reports its box tree to rep and returns
// the number of top-level boxes. The file is closed before ScanFile returns.
//
// If the file cannot be opened the error is a *FileOpenError and nothing is
// reported.
func ScanFile(path string, rep Reporter, opts ...Option) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, &FileOpenError{Path: path, Err: err}
	}
	return NewSession(f, fi.Size(), rep, opts...).Scan()
}
