package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// checkCacheSchema versions the payload; bump on any layout change.
const checkCacheSchema uint16 = 1

// Digest is a SHA-256 value.
type Digest [sha256.Size]byte

// CheckPayload records the outcome of one check run. Files lists the
// whole import closure so a hit can be revalidated against current
// content.
type CheckPayload struct {
	Schema      uint16
	ContentHash Digest
	DepHash     Digest
	Files       []string
	Broken      bool
}

// CheckCache stores check outcomes on disk, keyed by the root file's
// content hash. Safe for concurrent use.
type CheckCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCheckCache creates the cache directory under the user cache dir.
func OpenCheckCache(app string) (*CheckCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(base, app, "check")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CheckCache{dir: dir}, nil
}

// OpenCheckCacheAt uses an explicit directory, for tests.
func OpenCheckCacheAt(dir string) (*CheckCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CheckCache{dir: dir}, nil
}

func (c *CheckCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically: temp file then rename.
func (c *CheckCache) Put(key Digest, payload *CheckPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload; a missing entry is not an error.
func (c *CheckCache) Get(key Digest, out *CheckPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != checkCacheSchema {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *CheckCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// hashFile digests one file's content.
func hashFile(fs afero.Fs, path string) (Digest, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(content), nil
}

// hashClosure digests a sorted file list: each path and its content.
func hashClosure(fs afero.Fs, paths []string) (Digest, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	h := sha256.New()
	for _, p := range sorted {
		content, err := afero.ReadFile(fs, p)
		if err != nil {
			return Digest{}, err
		}
		h.Write([]byte(p))
		h.Write([]byte{0})
		h.Write(content)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Check compiles rootPath for diagnostics only, consulting the cache
// first. A valid clean cache entry skips compilation entirely; broken
// entries recompile so diagnostics get reprinted. Returns the bag and
// whether the unit is error free.
func Check(ctx context.Context, fs afero.Fs, rootPath string, opts Options, cache *CheckCache) (*diag.Bag, bool, error) {
	cc := NewContext(fs, opts)
	ok, err := cc.Check(ctx, rootPath, opts, cache)
	return cc.Bag, ok, err
}

// Check is the context-bound form used by the CLI.
func (cc *Context) Check(ctx context.Context, rootPath string, opts Options, cache *CheckCache) (bool, error) {
	fs := cc.FileSet.Fs()

	rootCanon, err := source.CanonicalPath(fs, rootPath)
	if err != nil {
		return false, err
	}
	var key Digest
	if cache != nil {
		key, err = hashFile(fs, rootCanon)
		if err == nil {
			var payload CheckPayload
			if hit, _ := cache.Get(key, &payload); hit && !payload.Broken {
				depHash, hashErr := hashClosure(fs, payload.Files)
				if hashErr == nil && depHash == payload.DepHash {
					cc.log.WithField("file", rootPath).Debug("check cache hit")
					return true, nil
				}
			}
		}
	}

	if _, err := cc.compile(ctx, rootPath, opts); err != nil {
		return false, err
	}
	cc.Bag.Sort()
	ok := !cc.Bag.HasErrors()

	if cache != nil {
		files := make([]string, 0, len(cc.Early))
		for p := range cc.Early {
			files = append(files, p)
		}
		sort.Strings(files)
		if key == (Digest{}) {
			if key, err = hashFile(fs, rootCanon); err != nil {
				return ok, nil
			}
		}
		depHash, err := hashClosure(fs, files)
		if err == nil {
			_ = cache.Put(key, &CheckPayload{
				Schema:      checkCacheSchema,
				ContentHash: key,
				DepHash:     depHash,
				Files:       files,
				Broken:      !ok,
			})
		}
	}
	return ok, nil
}
