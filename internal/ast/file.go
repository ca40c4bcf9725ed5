package ast

import "github.com/DeanoC/MessageWrangler-sub001/internal/source"

// File is the parse tree of one definition file: its arenas plus the
// ordered list of top-level items.
type File struct {
	Source *source.File
	Items  *Items
	Order  []ItemID
}

func NewFile(src *source.File, capHint uint) *File {
	return &File{
		Source: src,
		Items:  NewItems(capHint),
	}
}

// ImportsOf returns the import payloads in declaration order.
func (f *File) ImportsOf() []*ImportItem {
	var out []*ImportItem
	for _, id := range f.Order {
		if imp, ok := f.Items.Import(id); ok {
			out = append(out, imp)
		}
	}
	return out
}
