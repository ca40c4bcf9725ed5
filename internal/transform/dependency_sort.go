package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// SortByDependencies orders models so every file comes after everything
// it imports. The registry is keyed by canonical path and edges follow
// Import.Resolved; unresolved imports are skipped here since loading
// already reported them. Returns false when a cycle was reported.
func SortByDependencies(models map[string]*early.Model, rep diag.Reporter) ([]*early.Model, bool) {
	paths := make([]string, 0, len(models))
	for p := range models {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(models))
	order := make([]*early.Model, 0, len(models))
	ok := true

	var visit func(path string, stack []string)
	visit = func(path string, stack []string) {
		switch state[path] {
		case done:
			return
		case visiting:
			reportCycle(models[path], stack, path, rep)
			ok = false
			return
		}
		state[path] = visiting
		stack = append(stack, path)
		m := models[path]
		for _, imp := range m.Imports {
			if imp.Resolved == "" {
				continue
			}
			if _, known := models[imp.Resolved]; !known {
				continue
			}
			visit(imp.Resolved, stack)
		}
		state[path] = done
		order = append(order, m)
	}

	for _, p := range paths {
		visit(p, nil)
	}
	return order, ok
}

func reportCycle(m *early.Model, stack []string, repeated string, rep diag.Reporter) {
	start := 0
	for i, p := range stack {
		if p == repeated {
			start = i
			break
		}
	}
	names := make([]string, 0, len(stack)-start+1)
	for _, p := range stack[start:] {
		names = append(names, source.BaseName(p))
	}
	names = append(names, source.BaseName(repeated))

	span := source.Span{File: m.FileID}
	for _, imp := range m.Imports {
		if imp.Resolved == stack[len(stack)-1] || imp.Resolved == repeated {
			span = imp.Span
			break
		}
	}
	rep.Report(diag.ProjImportCycle, diag.SevError, span,
		fmt.Sprintf("import cycle: %s", strings.Join(names, " -> ")), nil)
}
