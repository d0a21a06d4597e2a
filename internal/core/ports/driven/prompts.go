package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptRouter is the classification rubric for the intent router.
	// The rubric is a replaceable policy table, not a hard invariant.
	// It is sent as the system message; the question follows as the user
	// message, so the template has no format placeholders.
	PromptRouter = "router"

	// PromptDetailSystem is the system prompt for detail (needle) answers.
	// This prompt has no format placeholders.
	PromptDetailSystem = "detail_system"

	// PromptOverviewSystem is the system prompt for overview answers.
	// This prompt has no format placeholders.
	PromptOverviewSystem = "overview_system"

	// PromptSummariseOverview generates the synopsis of an Overview page.
	// The prompt template expects %s (header), %s (date), %s (parties)
	// and %s (content) placeholders, in that order; indexed verbs may
	// reuse a value.
	PromptSummariseOverview = "summarise_overview"

	// PromptSummariseDetails generates the synopsis of a Details page.
	// The prompt template expects %s (header), %s (date), %s (parties)
	// and %s (content) placeholders, in that order.
	PromptSummariseDetails = "summarise_details"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
