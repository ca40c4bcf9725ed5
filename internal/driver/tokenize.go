package driver

import (
	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/lexer"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

// Tokenize lexes one file to EOF, for the debug token dump command.
func Tokenize(fs afero.Fs, path string, opts Options) (*source.FileSet, []token.Token, *diag.Bag, error) {
	capDiags := opts.MaxDiagnostics
	if capDiags <= 0 {
		capDiags = 256
	}
	bag := diag.NewBag(capDiags)
	fileSet := source.NewFileSet(fs)
	id, err := fileSet.Load(path)
	if err != nil {
		return fileSet, nil, bag, err
	}

	lx := lexer.New(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return fileSet, toks, bag, nil
}
