package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Fatal    bool
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Logic Errors (VC001-VC009): abort the pass
	// ============================================

	"VC001": {
		Category: CategoryPath,
		Message:  "Unbalanced view path scope",
		Detail:   "A view pushed a path segment and returned without popping it, or popped a segment it did not push.",
		Fatal:    true,
	},
	"VC002": {
		Category: CategoryHandle,
		Message:  "Mutation handle used outside its call",
		Detail:   "A mutation handle was retained past the build, rebuild or teardown call that issued it.",
		Fatal:    true,
	},
	"VC003": {
		Category: CategoryShape,
		Message:  "View type mismatch on rebuild",
		Detail:   "Rebuild was called with a previous view of a different concrete type. Identity must be decided before rebuild.",
		Fatal:    true,
	},
	"VC004": {
		Category: CategoryShape,
		Message:  "Element downcast failed",
		Detail:   "The parent element slot does not hold the child element representation expected by the bridge.",
		Fatal:    true,
	},
	"VC005": {
		Category: CategorySequence,
		Message:  "Duplicate sequence key",
		Detail:   "Two entries of the same sequence carry the same explicit key in one frame.",
		Fatal:    true,
	},
	"VC006": {
		Category: CategoryHandle,
		Message:  "Element generation mismatch",
		Detail:   "The element was re-borrowed or replaced without going through the issued handle.",
		Fatal:    true,
	},
	"VC007": {
		Category: CategoryShape,
		Message:  "Invalid view state",
		Detail:   "A view received a view state it did not produce.",
		Fatal:    true,
	},
	"VC008": {
		Category: CategoryShape,
		Message:  "Context lacks a required capability",
		Detail:   "The view needs a context the host did not provide, such as one that can hand out message proxies.",
		Fatal:    true,
	},

	// ============================================
	// Driver Errors (VC010-VC019)
	// ============================================

	"VC010": {
		Category: CategoryDriver,
		Message:  "Driver finished",
		Detail:   "The driver has been closed and no longer accepts messages.",
	},
	"VC011": {
		Category: CategoryDriver,
		Message:  "Message queue full",
		Detail:   "The driver message queue is at capacity.",
	},
	"VC012": {
		Category: CategoryDriver,
		Message:  "View expired",
		Detail:   "The view the message was addressed to is no longer in the tree.",
	},
	"VC013": {
		Category: CategoryDriver,
		Message:  "Driver not started",
		Detail:   "Start must build the tree before rebuild or message passes run.",
		Fatal:    true,
	},

	// ============================================
	// Config Errors (VC020-VC029)
	// ============================================

	"VC020": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"VC021": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range.",
	},
	"VC022": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No viewcore.json or viewcore.yaml was found.",
	},

	// ============================================
	// Inspector Errors (VC030-VC039)
	// ============================================

	"VC030": {
		Category: CategoryInspect,
		Message:  "Snapshot store failure",
		Detail:   "The snapshot could not be written to or read from the store.",
	},
	"VC031": {
		Category: CategoryInspect,
		Message:  "Malformed event frame",
		Detail:   "The inspector received an event frame it could not decode.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
