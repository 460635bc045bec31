//go:build !unix && !windows

package lockfile

import "os"

// File locking is unavailable here (js/wasm, wasip1, plan9); a single
// process is assumed.
func flockExclusiveNonBlock(f *os.File) error {
	return nil
}

func flockUnlock(f *os.File) error {
	return nil
}
