package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	toml "github.com/pelletier/go-toml/v2"
)

// Format identifies the serialization format for shortcut configs.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Source describes where the bindings config was loaded from.
type Source struct {
	Path   string
	Format Format
}

// ActionID uniquely identifies a prompt action.
type ActionID string

const (
	ActionClear       ActionID = "clear"
	ActionToggleStyle ActionID = "toggle_style"
	ActionToggleMask  ActionID = "toggle_mask"
	ActionPaste       ActionID = "paste"
	ActionQuit        ActionID = "quit"
)

type definition struct {
	id       ActionID
	help     string
	defaults []string
}

// enter is not listed: the field owns it as its done action
var definitions = []definition{
	{id: ActionClear, help: "clear", defaults: []string{"ctrl+u"}},
	{id: ActionToggleStyle, help: "style", defaults: []string{"ctrl+s"}},
	{id: ActionToggleMask, help: "mask", defaults: []string{"ctrl+t"}},
	{id: ActionPaste, help: "paste", defaults: []string{"ctrl+v"}},
	{id: ActionQuit, help: "cancel", defaults: []string{"esc", "ctrl+c"}},
}

var definitionLookup = func() map[ActionID]definition {
	out := make(map[ActionID]definition, len(definitions))
	for _, def := range definitions {
		out[def.id] = def
	}
	return out
}()

// Map stores runtime shortcut bindings and lookup helpers.
type Map struct {
	keys    map[string]ActionID
	actions map[ActionID][]string
}

// Load attempts to read bindings from bindings.toml/json in dir. Missing files fall back to defaults.
func Load(dir string) (*Map, Source, error) {
	candidates := []Source{
		{Path: filepath.Join(dir, "bindings.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "bindings.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read bindings %q: %w", candidate.Path, err),
			)
			continue
		}

		overrides, err := parseConfig(data, candidate.Format)
		if err != nil {
			return nil, Source{}, fmt.Errorf("parse bindings %q: %w", candidate.Path, err)
		}
		built, err := buildMap(overrides)
		if err != nil {
			return nil, Source{}, fmt.Errorf("apply bindings %q: %w", candidate.Path, err)
		}
		return built, candidate, nil
	}

	if accumulated != nil {
		return nil, Source{}, accumulated
	}

	built, err := buildMap(nil)
	if err != nil {
		return nil, Source{}, err
	}
	return built, Source{Path: candidates[0].Path, Format: FormatTOML}, nil
}

// DefaultMap builds the built-in bindings without consulting disk.
func DefaultMap() *Map {
	m, err := buildMap(nil)
	if err != nil {
		panic(err)
	}
	return m
}

// Match returns the action bound to a key string as produced by tea.KeyMsg.String.
func (m *Map) Match(raw string) (ActionID, bool) {
	if m == nil {
		return "", false
	}
	action, ok := m.keys[NormalizeKeyString(raw)]
	return action, ok
}

// Keys returns the keys bound to action.
func (m *Map) Keys(action ActionID) []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.actions[action]...)
}

// KeyBinding adapts an action for bubbles/help.
func (m *Map) KeyBinding(action ActionID) key.Binding {
	keys := m.Keys(action)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), definitionLookup[action].help),
	)
}

type configFile struct {
	Bindings map[string][]string `json:"bindings" toml:"bindings"`
}

func parseConfig(data []byte, format Format) (map[ActionID][]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var payload configFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if len(payload.Bindings) == 0 {
		return nil, nil
	}

	overrides := make(map[ActionID][]string, len(payload.Bindings))
	for raw, specs := range payload.Bindings {
		id := ActionID(raw)
		if _, ok := definitionLookup[id]; !ok {
			return nil, fmt.Errorf("unknown action %q", raw)
		}
		steps := make([]string, 0, len(specs))
		for _, spec := range specs {
			step, err := normalizeStep(spec)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", raw, err)
			}
			steps = append(steps, step)
		}
		overrides[id] = steps
	}
	return overrides, nil
}

func buildMap(overrides map[ActionID][]string) (*Map, error) {
	byAction := make(map[ActionID][]string, len(definitions))
	for _, def := range definitions {
		byAction[def.id] = append([]string(nil), def.defaults...)
	}
	for id, steps := range overrides {
		byAction[id] = append([]string(nil), steps...)
	}

	keys := make(map[string]ActionID)
	for _, id := range actionIDs() {
		seen := make(map[string]struct{})
		for _, step := range byAction[id] {
			if _, ok := seen[step]; ok {
				return nil, fmt.Errorf("action %s: duplicate binding %q", id, step)
			}
			seen[step] = struct{}{}
			if existing, ok := keys[step]; ok {
				return nil, fmt.Errorf(
					"binding %q assigned to both %s and %s",
					step,
					existing,
					id,
				)
			}
			if step == "enter" || isDigitKey(step) {
				return nil, fmt.Errorf("action %s: %q is reserved for the field", id, step)
			}
			keys[step] = id
		}
	}
	return &Map{keys: keys, actions: byAction}, nil
}

func isDigitKey(step string) bool {
	return len(step) == 1 && step[0] >= '0' && step[0] <= '9'
}

func normalizeStep(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty key step")
	}
	if strings.ContainsAny(raw, " \t") {
		return "", fmt.Errorf("binding %q: multi-step bindings are not supported", raw)
	}

	runes := []rune(raw)
	if len(runes) == 1 {
		r := runes[0]
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return "shift+" + strings.ToLower(raw), nil
		}
		return strings.ToLower(raw), nil
	}

	if !strings.Contains(raw, "+") {
		return strings.ToLower(raw), nil
	}

	parts := strings.Split(raw, "+")
	var keyParts []string
	modSet := make(map[string]struct{})
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		switch lower {
		case "ctrl", "control":
			modSet["ctrl"] = struct{}{}
		case "alt", "option":
			modSet["alt"] = struct{}{}
		case "shift":
			modSet["shift"] = struct{}{}
		default:
			keyParts = append(keyParts, lower)
		}
	}
	if len(keyParts) == 0 {
		return "", fmt.Errorf("binding %q missing key", raw)
	}
	name := strings.Join(keyParts, "+")
	mods := orderedModifiers(modSet)
	if len(mods) == 0 {
		return name, nil
	}
	return strings.Join(append(mods, name), "+"), nil
}

func orderedModifiers(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	order := []string{"ctrl", "alt", "shift"}
	out := make([]string, 0, len(set))
	for _, mod := range order {
		if _, ok := set[mod]; ok {
			out = append(out, mod)
		}
	}
	return out
}

// NormalizeKeyString converts runtime key strings into canonical form for lookup.
func NormalizeKeyString(raw string) string {
	normalized, err := normalizeStep(raw)
	if err != nil {
		return ""
	}
	return normalized
}

func actionIDs() []ActionID {
	ids := make([]ActionID, 0, len(definitions))
	for _, def := range definitions {
		ids = append(ids, def.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// KnownActions returns the sorted list of action identifiers.
func KnownActions() []ActionID {
	return actionIDs()
}
