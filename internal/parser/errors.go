package parser

import (
	"fmt"
	"strings"
)

// Usage lines per command, shared by MapError and help output.
var Usage = map[string]string{
	"roll":    `roll [as: Name] <dice> [check: "total >= 15"]`,
	"preset":  `preset <name> [check: "total >= 15"]`,
	"presets": "presets",
	"total":   "total",
	"clear":   "clear",
	"help":    "help [command]",
}

// UsageOrder lists Usage keys in display order.
var UsageOrder = []string{"roll", "preset", "presets", "total", "clear", "help"}

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	parts := strings.Fields(strings.ToLower(input))
	if usage, ok := Usage[parts[0]]; ok {
		return fmt.Errorf("The command %s must be: %s", parts[0], usage)
	}

	return fmt.Errorf("I wasn't able to understand your command")
}
