package generator

import (
	"encoding/json"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
)

// JSONSchema emits a draft-07 schema with one definition per declared
// entity, underscore-flattened QFNs as keys. Imported files contribute
// their definitions too so every $ref resolves inside one document.
type JSONSchema struct{}

func (JSONSchema) Name() string { return "jsonschema" }

func (JSONSchema) FileName(m *model.Model) string { return stem(m) + "_schema.json" }

func (JSONSchema) Generate(m *model.Model) ([]byte, error) {
	defs := make(map[string]any)
	seen := make(map[string]bool)
	collectDefinitions(m, defs, seen)

	schema := map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       stem(m),
		"description": "JSON schema for message definitions",
		"definitions": defs,
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func collectDefinitions(m *model.Model, defs map[string]any, seen map[string]bool) {
	if seen[m.File] {
		return
	}
	seen[m.File] = true
	for _, dep := range sortedImports(m) {
		collectDefinitions(dep, defs, seen)
	}
	m.EachNamespace(func(ns *model.Namespace) {
		for _, e := range ns.Enums {
			defs[flatName(e.QFN)] = enumSchema(e.Doc, e.Name, enumPairs(e.Values))
		}
		for _, o := range ns.Options {
			defs[flatName(o.QFN)] = enumSchema(o.Doc, o.Name, enumPairs(o.Values))
		}
		for _, c := range ns.Compounds {
			defs[flatName(c.QFN)] = compoundSchema(c)
		}
		for _, msg := range ns.Messages {
			defs[flatName(msg.QFN)] = messageSchema(msg)
		}
	})
}

func flatName(qfn string) string {
	return strings.Join(qfnParts(qfn), "_")
}

func describe(doc []string, fallback string) string {
	if len(doc) > 0 {
		return strings.Join(doc, " ")
	}
	return fallback
}

type valuePair struct {
	names  []string
	values []int64
}

func enumPairs(values []model.EnumValue) valuePair {
	p := valuePair{
		names:  make([]string, len(values)),
		values: make([]int64, len(values)),
	}
	for i, v := range values {
		p.names[i] = v.Name
		p.values[i] = v.Value
	}
	return p
}

func enumSchema(doc []string, name string, p valuePair) map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": describe(doc, name),
		"enum":        p.values,
		"enumNames":   p.names,
	}
}

func compoundSchema(c *model.Compound) map[string]any {
	props := make(map[string]any, len(c.Members))
	for _, member := range c.Members {
		props[member] = map[string]any{"type": jsonPrimName(c.Base)}
	}
	return map[string]any{
		"type":        "object",
		"description": describe(c.Doc, c.Name),
		"properties":  props,
		"required":    c.Members,
	}
}

func messageSchema(msg *model.Message) map[string]any {
	props := make(map[string]any, len(msg.Fields))
	required := make([]string, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		props[f.Name] = typeSchema(&f.Type)
		if !isOptional(f) {
			required = append(required, f.Name)
		}
	}
	def := map[string]any{
		"type":        "object",
		"description": describe(msg.Doc, msg.Name),
		"properties":  props,
	}
	if msg.Parent != "" {
		def["allOf"] = []any{map[string]any{"$ref": "#/definitions/" + flatName(msg.Parent)}}
	}
	if len(required) > 0 {
		def["required"] = required
	}
	return def
}

func typeSchema(t *model.Type) map[string]any {
	switch t.Tag {
	case model.TagString:
		return map[string]any{"type": "string"}
	case model.TagInt:
		return map[string]any{"type": "integer"}
	case model.TagFloat:
		return map[string]any{"type": "number"}
	case model.TagBool:
		return map[string]any{"type": "boolean"}
	case model.TagByte:
		return map[string]any{"type": "integer", "minimum": 0, "maximum": 255}
	case model.TagArray:
		return map[string]any{"type": "array", "items": typeSchema(t.Elem)}
	case model.TagMap:
		return map[string]any{"type": "object", "additionalProperties": typeSchema(t.Elem)}
	default:
		return map[string]any{"$ref": "#/definitions/" + flatName(t.Ref)}
	}
}

func jsonPrimName(base string) string {
	switch base {
	case "string":
		return "string"
	case "int", "byte":
		return "integer"
	case "bool":
		return "boolean"
	default:
		return "number"
	}
}
