package tools

import "os"

// removeAll deletes path, tolerating its absence — spec.md §4.6's clean
// dispatch: "delete the source directory (tolerating absence)".
func removeAll(path string) error {
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
