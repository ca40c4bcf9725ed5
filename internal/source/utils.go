package source

import (
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// normalizeCRLF rewrites \r\n to \n, leaving lone \r bytes alone.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// No newlines at all means the whole file is one line.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search for the largest lineIdx[i] <= off.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		// Before the first newline: still on line one.
		return LineCol{Line: 1, Col: off + 1}
	}

	// The newline byte itself belongs to the line it terminates.
	if off == lineIdx[hi] {
		var startOff uint32
		if hi > 0 {
			startOff = lineIdx[hi-1] + 1
		}
		return LineCol{Line: uint32(hi + 1), Col: off - startOff + 1}
	}

	// Past newline hi: the offset sits on the following line.
	startOff := lineIdx[hi] + 1
	return LineCol{Line: uint32(hi + 2), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// CanonicalPath resolves a path to the absolute, cleaned, slash-normalized
// form used as the identity key for a definition file. Two imports naming
// the same file through different relative spellings canonicalize to the
// same key.
func CanonicalPath(fs afero.Fs, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// Follow symlinks when the filesystem supports them so linked and
	// direct spellings of a file share one identity.
	if lr, ok := fs.(afero.LinkReader); ok {
		if resolved, err := lr.ReadlinkIfPossible(abs); err == nil && resolved != "" {
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(filepath.Dir(abs), resolved)
			}
			abs = resolved
		}
	}
	return normalizePath(abs), nil
}

// BaseName returns the final path element without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
