package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/notation"
)

// QuickDice are always available as presets, named after their notation.
var QuickDice = []string{"d4", "d6", "d8", "d10", "d12", "d20", "d100"}

// Preset is a named, already parsed roll.
type Preset struct {
	Name string    `yaml:"name"`
	Dice string    `yaml:"dice"`
	List dice.List `yaml:"-"`
}

// presetFile is the YAML layout of a preset file.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Presets is an ordered, case-insensitive collection of Preset.
type Presets struct {
	items  []Preset
	byName map[string]int
}

// NewPresets returns a collection holding only the quick dice.
func NewPresets() *Presets {
	p := &Presets{byName: make(map[string]int)}
	for _, d := range QuickDice {
		p.add(Preset{Name: d, Dice: d, List: notation.MustParse(d)})
	}
	return p
}

// add inserts or replaces a preset by name.
func (p *Presets) add(preset Preset) {
	key := strings.ToLower(preset.Name)
	if i, ok := p.byName[key]; ok {
		p.items[i] = preset
		return
	}
	p.byName[key] = len(p.items)
	p.items = append(p.items, preset)
}

// Get finds a preset by name, ignoring case.
func (p *Presets) Get(name string) (Preset, bool) {
	i, ok := p.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, false
	}
	return p.items[i], true
}

// All returns the presets in load order.
func (p *Presets) All() []Preset {
	out := make([]Preset, len(p.items))
	copy(out, p.items)
	return out
}

// Names returns the preset names in load order.
func (p *Presets) Names() []string {
	names := make([]string, len(p.items))
	for i, preset := range p.items {
		names[i] = preset.Name
	}
	return names
}

// SplitNamed separates "name=notation". Everything before the last '=' is the
// name; a line without '=' has no name.
func SplitNamed(line string) (name, roll string) {
	i := strings.LastIndex(line, "=")
	if i < 0 {
		return "", strings.TrimSpace(line)
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

// Loader handles reading preset files on top of the quick dice
type Loader struct {
	paths []string
}

// NewLoader initializes a new Loader for the given preset files
func NewLoader(paths []string) *Loader {
	return &Loader{
		paths: paths,
	}
}

// Load reads every preset file in order. Later files override earlier presets
// with the same name.
func (l *Loader) Load() (*Presets, error) {
	presets := NewPresets()
	for _, path := range l.paths {
		found, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		for _, preset := range found {
			presets.add(preset)
		}
	}
	return presets, nil
}

func (l *Loader) loadFile(path string) ([]Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open preset file %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(path, f)
	default:
		return ReadLines(path, f)
	}
}

func decodeYAML(path string, r io.Reader) ([]Preset, error) {
	var pf presetFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode yaml preset file %s: %w", path, err)
	}

	out := make([]Preset, 0, len(pf.Presets))
	for i, preset := range pf.Presets {
		list, err := notation.Parse(preset.Dice)
		if err != nil {
			return nil, fmt.Errorf("%s: preset %d (%s): %w", path, i+1, preset.Name, err)
		}
		if preset.Name == "" {
			preset.Name = preset.Dice
		}
		preset.List = list
		out = append(out, preset)
	}
	return out, nil
}

// ReadLines reads one candidate roll per line, "name=notation" or bare
// notation. Blank lines and lines starting with '#' are skipped.
func ReadLines(path string, r io.Reader) ([]Preset, error) {
	var out []Preset
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, d := SplitNamed(line)
		list, err := notation.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if name == "" {
			name = d
		}
		out = append(out, Preset{Name: name, Dice: d, List: list})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return out, nil
}
