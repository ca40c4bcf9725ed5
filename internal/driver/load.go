package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
	"github.com/DeanoC/MessageWrangler-sub001/internal/parser"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/transform"
)

// parseResult is one file's parse output, produced in parallel and
// merged back sequentially.
type parseResult struct {
	path string
	file *ast.File
	ok   bool
	bag  *diag.Bag
}

// loadClosure parses the root file and, wave by wave, everything it
// transitively imports. Files in one wave are independent and parse in
// parallel; loading and diagnostic merging stay sequential so the
// FileSet and Bag never race. Returns the canonical root path.
func (cc *Context) loadClosure(ctx context.Context, rootPath string, opts Options) (string, error) {
	rootCanon, err := source.CanonicalPath(cc.FileSet.Fs(), rootPath)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", rootPath, err)
	}
	if exists, _ := afero.Exists(cc.FileSet.Fs(), rootCanon); !exists {
		diag.ReportError(cc.rep, diag.IOLoadFileError, source.Span{},
			fmt.Sprintf("cannot open %s", rootPath)).Emit()
		return rootCanon, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	seen := map[string]bool{rootCanon: true}
	wave := []string{rootCanon}
	for len(wave) > 0 {
		results, err := cc.parseWave(ctx, wave, jobs)
		if err != nil {
			return rootCanon, err
		}

		var next []string
		for _, res := range results {
			cc.Bag.Merge(res.bag)
			if !res.ok {
				cc.log.WithField("file", res.path).Debug("parse failed, file skipped")
				continue
			}
			em := early.Build(res.file, res.path)
			if err := transform.Run(em, cc.rep, transform.SingleFilePasses()); err != nil {
				return rootCanon, err
			}
			cc.Early[res.path] = em
			next = append(next, cc.resolveImports(em, seen)...)
		}
		wave = next
	}
	return rootCanon, nil
}

// parseWave loads each file sequentially, then parses the wave in
// parallel with a bounded group.
func (cc *Context) parseWave(ctx context.Context, wave []string, jobs int) ([]parseResult, error) {
	results := make([]parseResult, len(wave))
	type loaded struct {
		src *source.File
		ok  bool
	}
	files := make([]loaded, len(wave))
	for i, path := range wave {
		id, err := cc.FileSet.Load(path)
		if err != nil {
			diag.ReportError(cc.rep, diag.IOLoadFileError, source.Span{},
				fmt.Sprintf("cannot read %s: %v", path, err)).Emit()
			results[i] = parseResult{path: path, bag: diag.NewBag(1)}
			continue
		}
		files[i] = loaded{src: cc.FileSet.Get(id), ok: true}
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range wave {
		if !files[i].ok {
			continue
		}
		i := i
		g.Go(func() error {
			bag := diag.NewBag(int(cc.Bag.Cap()))
			file, ok := parser.ParseFile(files[i].src, parser.Options{
				MaxErrors: uint(cc.Bag.Cap()),
				Reporter:  diag.BagReporter{Bag: bag},
			})
			results[i] = parseResult{path: wave[i], file: file, ok: ok, bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].bag == nil {
			results[i] = parseResult{path: wave[i], bag: diag.NewBag(1)}
		}
	}
	return results, nil
}

// resolveImports canonicalizes every import of em against its own
// directory, reports unusable ones and returns paths not seen before.
func (cc *Context) resolveImports(em *early.Model, seen map[string]bool) []string {
	var fresh []string
	dir := filepath.Dir(em.File)
	for i := range em.Imports {
		imp := &em.Imports[i]
		if imp.Path == "" {
			diag.ReportError(cc.rep, diag.ProjInvalidImportPath, imp.Span,
				"import path is empty").Emit()
			continue
		}
		target := imp.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		canon, err := source.CanonicalPath(cc.FileSet.Fs(), target)
		if err != nil {
			diag.ReportError(cc.rep, diag.ProjInvalidImportPath, imp.Span,
				fmt.Sprintf("cannot resolve import %q: %v", imp.Path, err)).Emit()
			continue
		}
		if canon == em.File {
			diag.ReportError(cc.rep, diag.ProjSelfImport, imp.Span,
				"file imports itself").Emit()
			continue
		}
		if exists, _ := afero.Exists(cc.FileSet.Fs(), canon); !exists {
			diag.ReportError(cc.rep, diag.ProjMissingImport, imp.Span,
				fmt.Sprintf("imported file %q not found", imp.Path)).Emit()
			continue
		}
		imp.Resolved = canon
		if !seen[canon] {
			seen[canon] = true
			fresh = append(fresh, canon)
		}
	}
	return fresh
}
