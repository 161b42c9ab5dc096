package parser

import (
	"strings"
)

// Command represents a top-level line typed into an interactive session
type Command struct {
	Roll    *RollCmd    `parser:"( @@"`
	Presets *PresetsCmd `parser:"| @@"`
	Preset  *PresetCmd  `parser:"| @@"`
	Total   *TotalCmd   `parser:"| @@"`
	Clear   *ClearCmd   `parser:"| @@"`
	Help    *HelpCmd    `parser:"| @@"`
	Bare    *DiceExpr   `parser:"| @@ )"`
}

// RollCmd rolls a notation string, optionally named and checked
type RollCmd struct {
	Keyword string     `parser:"@\"roll\""`
	Name    *NameExpr  `parser:"@@?"`
	Dice    *DiceExpr  `parser:"@@"`
	Check   *CheckExpr `parser:"@@?"`
}

// NameExpr maps parsing the optional "as: Name" block
type NameExpr struct {
	Keyword string `parser:"\"as\" \":\""`
	Name    string `parser:"@(Ident|String)"`
}

// DiceExpr holds a raw dice notation run such as "4d6+3 ; 2x3d8"
type DiceExpr struct {
	Raw string `parser:"@Dice"`
}

// Notation returns the raw notation without surrounding whitespace.
func (d *DiceExpr) Notation() string {
	return strings.TrimSpace(d.Raw)
}

// CheckExpr maps the optional `check: "total >= 15"` block
type CheckExpr struct {
	Keyword    string `parser:"\"check\" \":\""`
	Expression string `parser:"@String"`
}

// PresetCmd rolls a loaded preset by name
type PresetCmd struct {
	Keyword string     `parser:"@\"preset\""`
	Name    string     `parser:"@(Ident|String|Dice)"`
	Check   *CheckExpr `parser:"@@?"`
}

// PresetName returns the preset name without surrounding whitespace.
func (p *PresetCmd) PresetName() string {
	return strings.TrimSpace(p.Name)
}

// PresetsCmd lists loaded presets
type PresetsCmd struct {
	Keyword string `parser:"@\"presets\""`
}

// TotalCmd shows the cumulative total
type TotalCmd struct {
	Keyword string `parser:"@\"total\""`
}

// ClearCmd resets the cumulative total
type ClearCmd struct {
	Keyword string `parser:"@\"clear\""`
}

// HelpCmd provides context-aware guidance
type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
	Topic   string `parser:"(@Ident|@Keyword)?"`
}
