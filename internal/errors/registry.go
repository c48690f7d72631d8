package errors

import (
	"slices"

	"github.com/samber/lo"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Tree errors (E100-E199)

	"E101": {
		Category:   CategoryTree,
		Message:    "Duplicate sibling key",
		Suggestion: "Give every keyed child of an element a distinct key.",
	},
	"E102": {
		Category: CategoryTree,
		Message:  "Malformed node",
	},
	"E103": {
		Category:   CategoryTree,
		Message:    "Tree file could not be parsed",
		Suggestion: "Tree files are YAML or JSON documents with tag/text/props/children fields.",
	},
	"E104": {
		Category:   CategoryTree,
		Message:    "Unsupported prop value",
		Suggestion: "Prop values must be strings, numbers, booleans, or a style mapping.",
	},

	// Host errors (E200-E299)

	"E201": {
		Category: CategoryHost,
		Message:  "Node does not belong to this host",
	},
	"E202": {
		Category: CategoryHost,
		Message:  "Node has no parent",
	},
	"E203": {
		Category:   CategoryHost,
		Message:    "Unknown node ID",
		Suggestion: "Replay batches in sequence order and bind the container before the first batch.",
	},

	// Protocol errors (E300-E399)

	"E301": {
		Category: CategoryProtocol,
		Message:  "Malformed mutation batch",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Unknown mutation opcode",
	},

	// Config errors (E400-E499)

	"E401": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check vdom.json (or vdom.toml) for syntax errors.",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// Archive errors (E500-E599)

	"E501": {
		Category: CategoryArchive,
		Message:  "Journal archive write failed",
	},

	// CLI errors (E600-E699)

	"E601": {
		Category: CategoryCLI,
		Message:  "Missing tree file",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := lo.Keys(registry)
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
