// Package driver orchestrates compilation: it collects the import
// closure of a root definition file, runs the transform pipeline in
// dependency order and hands finished models to generators. All state
// lives in an explicit Context so concurrent compilations never share
// anything.
package driver

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/transform"
)

// Options tune one compilation run.
type Options struct {
	// MaxDiagnostics caps the bag; 0 uses a default of 256.
	MaxDiagnostics int
	// Jobs bounds parallel file parsing; 0 means GOMAXPROCS.
	Jobs int
	// Logger receives phase progress at debug level. Nil discards.
	Logger *logrus.Logger
}

func (o Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Context is the state of one compilation: every loaded file, every
// early model and every finished model, keyed by canonical path.
type Context struct {
	FileSet *source.FileSet
	Bag     *diag.Bag

	// Early holds transformed early models; Models the resolved ones.
	Early  map[string]*early.Model
	Models map[string]*model.Model

	rep diag.Reporter
	log *logrus.Logger
}

// NewContext prepares an empty compilation context over fs.
func NewContext(fs afero.Fs, opts Options) *Context {
	capDiags := opts.MaxDiagnostics
	if capDiags <= 0 {
		capDiags = 256
	}
	bag := diag.NewBag(capDiags)
	return &Context{
		FileSet: source.NewFileSet(fs),
		Bag:     bag,
		Early:   make(map[string]*early.Model),
		Models:  make(map[string]*model.Model),
		rep:     diag.BagReporter{Bag: bag},
		log:     opts.logger(),
	}
}

// Compile builds the fully resolved model of rootPath and everything it
// imports. The bag is always returned; the model is nil whenever any
// error diagnostic was reported. The error return covers infrastructure
// failures only.
func Compile(ctx context.Context, fs afero.Fs, rootPath string, opts Options) (*model.Model, *diag.Bag, error) {
	cc := NewContext(fs, opts)
	root, err := cc.Compile(ctx, rootPath, opts)
	return root, cc.Bag, err
}

// Compile is the context-bound form: callers keep the FileSet and Bag
// for diagnostic rendering. The model is nil whenever any error
// diagnostic was reported.
func (cc *Context) Compile(ctx context.Context, rootPath string, opts Options) (*model.Model, error) {
	rootCanon, err := cc.compile(ctx, rootPath, opts)
	if err != nil {
		return nil, err
	}

	if cc.Bag.HasErrors() {
		cc.Bag.Sort()
		return nil, nil
	}
	root := cc.Models[rootCanon]
	if root == nil {
		return nil, fmt.Errorf("no model built for %s", rootPath)
	}
	cc.Bag.Sort()
	return root, nil
}

// compile runs the full pipeline, leaving results in the context.
func (cc *Context) compile(ctx context.Context, rootPath string, opts Options) (string, error) {
	rootCanon, err := cc.loadClosure(ctx, rootPath, opts)
	if err != nil {
		return rootCanon, err
	}

	order, _ := transform.SortByDependencies(cc.Early, cc.rep)
	transform.AttachImports(cc.Early, cc.rep)

	for _, em := range order {
		if err := transform.Run(em, cc.rep, transform.ResolutionPasses()); err != nil {
			return rootCanon, err
		}
		deps := make(map[string]*model.Model, len(em.Imports))
		for _, imp := range em.Imports {
			if imp.Resolved == "" {
				continue
			}
			if dep := cc.Models[imp.Resolved]; dep != nil {
				deps[imp.Key()] = dep
			}
		}
		cc.log.WithField("file", em.File).Debug("building model")
		cc.Models[em.File] = model.Build(em, deps, cc.rep)
	}
	return rootCanon, nil
}

// Graph compiles only far enough to report the dependency order of the
// closure: canonical paths, dependencies first.
func Graph(ctx context.Context, fs afero.Fs, rootPath string, opts Options) ([]string, *diag.Bag, error) {
	cc := NewContext(fs, opts)
	paths, err := cc.Graph(ctx, rootPath, opts)
	return paths, cc.Bag, err
}

// Graph is the context-bound form used by the CLI.
func (cc *Context) Graph(ctx context.Context, rootPath string, opts Options) ([]string, error) {
	if _, err := cc.loadClosure(ctx, rootPath, opts); err != nil {
		return nil, err
	}
	order, _ := transform.SortByDependencies(cc.Early, cc.rep)
	paths := make([]string, len(order))
	for i, em := range order {
		paths[i] = em.File
	}
	cc.Bag.Sort()
	return paths, nil
}
