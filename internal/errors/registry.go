package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/measure/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Setup (M001-M009)
	"M001": {
		Category: CategorySetup,
		Message:  "ResizeObserver is not available",
		Detail:   "The host is interactive but provides no native ResizeObserver, and no polyfill was configured. Every measurement depends on it.",
		DocURL:   docBase + "m001",
	},
	"M002": {
		Category: CategorySetup,
		Message:  "Debounce window needs a scheduler",
		Detail:   "A debounce window is set but no scheduler was given. Debounced detections must run on the host's event loop, and the real-time fallback calls back on timer goroutines.",
		DocURL:   docBase + "m002",
	},

	// Scenario (M010-M019)
	"M010": {
		Category: CategoryScenario,
		Message:  "Scenario parse error",
		Detail:   "The scenario file is not valid YAML or does not match the scenario schema.",
		DocURL:   docBase + "m010",
	},
	"M011": {
		Category: CategoryScenario,
		Message:  "Unknown scenario step",
		Detail:   "Each step must set exactly one action: resize, move, scroll, window-resize, window-scroll, advance, flush, refresh, ref, remove, mount or unmount.",
		DocURL:   docBase + "m011",
	},
	"M012": {
		Category: CategoryScenario,
		Message:  "Unknown element id",
		Detail:   "A step or the target refers to an element id that is not declared in the scenario tree.",
		DocURL:   docBase + "m012",
	},

	// Config (M020-M029)
	"M020": {
		Category: CategoryConfig,
		Message:  "Config load error",
		Detail:   "measure.json could not be read or decoded.",
		DocURL:   docBase + "m020",
	},
	"M021": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "measure.json contains an out-of-range value.",
		DocURL:   docBase + "m021",
	},

	// CLI (M030-M039)
	"M030": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live geometry server stopped with an error.",
		DocURL:   docBase + "m030",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
