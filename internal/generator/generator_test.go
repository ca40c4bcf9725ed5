package generator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
)

func compileFiles(t *testing.T, root string, files map[string]string) *model.Model {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	m, bag, err := driver.Compile(context.Background(), fs, root, driver.Options{})
	require.NoError(t, err)
	require.NotNil(t, m, "diags: %v", bag.Items())
	return m
}

const gameSource = `
namespace Game {
	/// Run state of an entity.
	enum State { Idle, Running, Dead = 10 }
	options Flags { Visible, Solid, Frozen }
	message Entity {
		id: int
		pos: float { x, y, z }
	}
	message Player : Entity {
		name: string = "hero"
		state: enum State
		optional nick: string
		inventory: string[]
		scores: Map<string, int>
	}
}
`

func compileGame(t *testing.T) *model.Model {
	t.Helper()
	return compileFiles(t, "/defs/game.def", map[string]string{"/defs/game.def": gameSource})
}

func TestCppGenerate(t *testing.T) {
	out, err := Cpp{}.Generate(compileGame(t))
	require.NoError(t, err)
	code := string(out)

	require.Contains(t, code, "#pragma once")
	require.Contains(t, code, "namespace Game {")
	require.Contains(t, code, "enum class State : uint8_t {")
	require.Contains(t, code, "Dead = 10,")
	require.Contains(t, code, "enum class Flags : uint32_t {")
	require.Contains(t, code, "Solid = 2,")
	require.Contains(t, code, "struct Player : Game::Entity {")
	require.Contains(t, code, `std::string name = "hero";`)
	require.Contains(t, code, "Game::State state;")
	require.Contains(t, code, "std::optional<std::string> nick;")
	require.Contains(t, code, "std::vector<std::string> inventory;")
	require.Contains(t, code, "std::map<std::string, int32_t> scores;")
	require.Contains(t, code, "struct Entity_pos {")
	require.Contains(t, code, "float x;")
}

func TestCppDefaultSplicing(t *testing.T) {
	m := compileFiles(t, "/defs/d.def", map[string]string{"/defs/d.def": `
namespace Cfg {
	message Limits {
		retries: int = 3
		ratio: float = 0.5
		label: string = "a \"quoted\" name"
		optional timeout: int = 30
		tags: string[] = []
	}
}
`})
	out, err := Cpp{}.Generate(m)
	require.NoError(t, err)
	code := string(out)

	// Raw default text is spliced verbatim for plain scalars only.
	require.Contains(t, code, "int32_t retries = 3;")
	require.Contains(t, code, "float ratio = 0.5;")
	require.Contains(t, code, `std::string label = "a \"quoted\" name";`)
	// Optionals and non-scalars never splice: one declaration per line.
	require.Contains(t, code, "std::optional<int32_t> timeout;")
	require.Contains(t, code, "std::vector<std::string> tags;")
	require.NotContains(t, code, "timeout = ")
	require.NotContains(t, code, "tags = ")
	// A raw default can never carry a statement break.
	for _, f := range m.Messages["Cfg::Limits"].Fields {
		require.NotContains(t, f.DefaultRaw, ";")
		require.NotContains(t, f.DefaultRaw, "\n")
	}
}

func TestTypeScriptGenerate(t *testing.T) {
	out, err := TypeScript{}.Generate(compileGame(t))
	require.NoError(t, err)
	code := string(out)

	require.Contains(t, code, "export namespace Game {")
	require.Contains(t, code, "export enum State {")
	require.Contains(t, code, "// Run state of an entity.")
	require.Contains(t, code, "export interface Player extends Game.Entity {")
	require.Contains(t, code, "nick?: string;")
	require.Contains(t, code, "state: Game.State;")
	require.Contains(t, code, "inventory: string[];")
	require.Contains(t, code, "scores: Record<string, number>;")
	require.Contains(t, code, "export interface Entity_pos {")
}

func TestPythonGenerate(t *testing.T) {
	out, err := Python{}.Generate(compileGame(t))
	require.NoError(t, err)
	code := string(out)

	require.Contains(t, code, "class State(IntEnum):")
	require.Contains(t, code, "class Flags(IntFlag):")
	require.Contains(t, code, "    Frozen = 4")
	require.Contains(t, code, "@dataclass\nclass Player(Entity):")
	require.Contains(t, code, `    name: str = "hero"`)
	require.Contains(t, code, "    state: State = None")
	require.Contains(t, code, "    nick: str | None = None")
	require.Contains(t, code, "    inventory: list[str] = field(default_factory=list)")
	require.Contains(t, code, "    scores: dict[str, int] = field(default_factory=dict)")
}

func TestJSONSchemaGenerate(t *testing.T) {
	out, err := JSONSchema{}.Generate(compileGame(t))
	require.NoError(t, err)

	var schema struct {
		Schema      string                     `json:"$schema"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(out, &schema))
	require.Equal(t, "http://json-schema.org/draft-07/schema#", schema.Schema)
	require.Contains(t, schema.Definitions, "Game_State")
	require.Contains(t, schema.Definitions, "Game_Player")
	require.Contains(t, schema.Definitions, "Game_Entity_pos")

	var player struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
		AllOf      []map[string]string        `json:"allOf"`
	}
	require.NoError(t, json.Unmarshal(schema.Definitions["Game_Player"], &player))
	require.Contains(t, player.Required, "name")
	require.NotContains(t, player.Required, "nick")
	require.Equal(t, "#/definitions/Game_Entity", player.AllOf[0]["$ref"])
	require.Contains(t, string(player.Properties["state"]), "#/definitions/Game_State")
}

func TestByteSchemaBounds(t *testing.T) {
	m := compileFiles(t, "/defs/b.def", map[string]string{
		"/defs/b.def": "message Blob { data: byte[] }",
	})
	out, err := JSONSchema{}.Generate(m)
	require.NoError(t, err)
	require.Contains(t, string(out), `"maximum": 255`)
	require.Contains(t, string(out), `"minimum": 0`)
}

func TestCrossImportOutputs(t *testing.T) {
	m := compileFiles(t, "/defs/main.def", map[string]string{
		"/defs/base.def": `
namespace Base {
	message Entity { id: int }
}
`,
		"/defs/main.def": `
import "./base.def" as B
namespace Main {
	message Scene { root: B::Entity }
}
`,
	})

	cpp, err := Cpp{}.Generate(m)
	require.NoError(t, err)
	require.Contains(t, string(cpp), `#include "base.h"`)
	require.Contains(t, string(cpp), "Base::Entity root;")

	ts, err := TypeScript{}.Generate(m)
	require.NoError(t, err)
	require.Contains(t, string(ts), `import { Base } from "./base";`)
	require.Contains(t, string(ts), "root: Base.Entity;")

	py, err := Python{}.Generate(m)
	require.NoError(t, err)
	require.Contains(t, string(py), "import base")
	require.Contains(t, string(py), "root: base.Entity = None")

	js, err := JSONSchema{}.Generate(m)
	require.NoError(t, err)
	require.Contains(t, string(js), "#/definitions/Base_Entity")
	require.Contains(t, string(js), `"Base_Entity"`)
}

func TestWriteAll(t *testing.T) {
	m := compileGame(t)
	fs := afero.NewMemMapFs()
	written, err := WriteAll(fs, "/out", m, All(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/out/game.h",
		"/out/game.ts",
		"/out/game.py",
		"/out/game_schema.json",
	}, written)
	for _, path := range written {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		require.True(t, exists, path)
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{
		"cpp":        "cpp",
		"typescript": "typescript",
		"ts":         "typescript",
		"python":     "python",
		"json":       "jsonschema",
	} {
		g, ok := ByName(name)
		require.True(t, ok, name)
		require.Equal(t, want, g.Name())
	}
	_, ok := ByName("cobol")
	require.False(t, ok)
}
