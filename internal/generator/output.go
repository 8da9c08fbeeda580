package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zeebo/xxh3"
)

// writeOutput writes src to the configured output and reports whether
// anything was written. With SkipUnchanged set, an existing file whose
// content hashes equal to src is left alone.
func writeOutput(cfg Config, src []byte) (bool, error) {
	if cfg.Output == "-" {
		if cfg.Stdout == nil {
			return false, fmt.Errorf("no stdout available")
		}
		if _, err := cfg.Stdout.Write(src); err != nil {
			return false, err
		}
		return true, nil
	}

	if cfg.SkipUnchanged {
		same, err := sameContent(cfg.Output, src)
		if err != nil {
			return false, err
		}
		if same {
			return false, nil
		}
	}

	if err := os.WriteFile(cfg.Output, src, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// sameContent reports whether the file at path holds exactly src. A missing
// file is never the same.
func sameContent(path string, src []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(existing) == len(src) && xxh3.Hash128(existing) == xxh3.Hash128(src), nil
}
