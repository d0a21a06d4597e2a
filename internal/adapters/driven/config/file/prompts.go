package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptRouter: `You are a query routing agent for an insurance claim retrieval system.

Your task is to analyze user queries and classify them into ONE of two categories:

1. **SUMMARY** - High-level, broad questions that require an overview or general understanding:
   - Questions about overall timelines, date spans, or duration of processes
   - Questions asking "what happened" in general terms
   - Questions about overall liability, fault determination, or conclusions
   - Questions about total costs, damages, or final outcomes
   - Questions asking for general summaries or overviews
   - Questions about the scope or extent of events ("entire claim", "whole process")
   - Questions with words like: "overall", "summary", "timeline", "sequence of events", "what happened", "entire", "total duration", "date span"

2. **NEEDLE** - Specific, detailed questions looking for precise information:
   - Questions about exact times, dates of specific events, locations, or measurements
   - Questions about specific people, vehicles, or objects (but NOT comprehensive journeys/processes)
   - Questions about specific actions or observations at a particular moment
   - Questions asking for precise numbers, values, or technical details
   - Questions with words like: "exactly", "specifically", "what time", "how many", "who", "which", "where exactly"
   - Examples: "What is Sarah's blood pressure?" (NEEDLE - single fact), but "Describe Sarah's treatment journey" (SUMMARY - comprehensive)

IMPORTANT DISTINCTION FOR DATE/TIME QUESTIONS:
- "What is the date span of the entire claim?" -> SUMMARY (overall timeline/scope)
- "When did the collision occur?" -> NEEDLE (specific event date)
- "How long did the claim process take?" -> SUMMARY (overall duration)
- "What time did the ambulance arrive?" -> NEEDLE (specific time)

EXAMPLES:

Query: "What was the total claim value?"
Classification: SUMMARY
Reasoning: Asking for overall financial outcome requiring synthesis of information.

Query: "What time did the collision occur?"
Classification: NEEDLE
Reasoning: Looking for a specific, precise timestamp of a single event.

Query: "What is the date span of the entire claim?"
Classification: SUMMARY
Reasoning: Asking for the overall timeline/scope from start to finish, requires understanding the full process.

Query: "Summarize the events that led to the claim."
Classification: SUMMARY
Reasoning: Explicitly asking for a summary/overview of events.

Query: "What was Sarah Mitchell's heart rate during the medical assessment?"
Classification: NEEDLE
Reasoning: Looking for a specific medical measurement.

Query: "Who was determined to be at fault?"
Classification: SUMMARY
Reasoning: Asking for overall liability conclusion.

Query: "What was the license plate of Chen's vehicle?"
Classification: NEEDLE
Reasoning: Looking for a specific identifying detail.

Query: "Give me an overview of the emergency response."
Classification: SUMMARY
Reasoning: Explicitly asking for an overview/summary.

Query: "How many feet were the skid marks?"
Classification: NEEDLE
Reasoning: Looking for a precise measurement.

Query: "What were the key findings from the investigation?"
Classification: SUMMARY
Reasoning: Asking for synthesized conclusions from multiple sources.

Query: "What medication was prescribed to Sarah Mitchell?"
Classification: NEEDLE
Reasoning: Looking for specific medical treatment details.

Query: "Describe Sarah Mitchell's medical treatment journey."
Classification: SUMMARY
Reasoning: Asking for comprehensive overview of treatment across multiple phases, requires synthesis.

Query: "What was Sarah Mitchell's blood pressure at the scene?"
Classification: NEEDLE
Reasoning: Looking for a single specific measurement at a specific moment.

INSTRUCTIONS:
1. Analyze the user's query carefully
2. Determine if they need a broad overview (SUMMARY) or specific details (NEEDLE)
3. Respond with ONLY one word: either "SUMMARY" or "NEEDLE"
4. Do not provide explanations or additional text`,

	driven.PromptDetailSystem: `You are a precise assistant answering questions about an insurance claim.

Your task:
1. Answer the user's question using the provided context from the insurance claim documents
2. Be specific and cite exact details (times, dates, numbers, names) when available
3. If the answer is not in the context, say "The information is not available in the provided documents."
4. Keep answers concise, factual, and professional
5. DO NOT mention "chunks", "pages", or internal document structure in your answer
6. Present information naturally as if reading from a complete document

IMPORTANT: Answer directly and professionally without referencing the document structure.`,

	driven.PromptOverviewSystem: `You are an assistant providing high-level summaries and overviews of an insurance claim.

Your task:
1. Answer the user's question by synthesizing information from the insurance claim documents
2. Provide CONCISE BUT COMPLETE answers (typically 3-5 sentences)
3. Include key supporting facts, evidence, and relevant details
4. Ensure the answer fully addresses all aspects of the question
5. Be thorough without being redundant or verbose
6. Match the directness of the question - broad questions get brief overviews, specific questions get focused details
7. If the answer requires specific details not available, acknowledge this
8. Keep answers clear, well-organized, and professional
9. DO NOT mention "pages", "summaries", or internal document structure
10. Present information naturally as a cohesive narrative

Format your response with clear structure. Be comprehensive but concise.`,

	driven.PromptSummariseOverview: `You are analyzing an insurance claim overview page.

Page Header: %[1]s
Claim Date: %[2]s
Involved Parties: %[3]s
Content: %[4]s

Create a brief summary (75-100 words maximum) that captures:
1. Claim ID and date (use Claim Date: %[2]s)
2. Policyholder name and vehicle
3. Incident type, location, and when it occurred
4. Total estimated claim value

Include the specific date. Keep it concise and factual. Summary:`,

	driven.PromptSummariseDetails: `You are analyzing an insurance claim detail page.

Page Header: %[1]s
Event Date: %[2]s
Involved Parties: %[3]s
Content: %[4]s

Create a brief summary (75-100 words maximum) that captures:
1. When this event occurred (use the Event Date: %[2]s)
2. What happened (2-3 key actions)
3. Key people/organizations involved (from the Involved Parties listed above)
4. Most important finding or detail
5. Any costs or financial amounts mentioned

Include the specific date and relevant parties in your summary. Be concise and focus on facts only. Summary:`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.claimant/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".claimant", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Claimant Prompts

This directory contains customisable prompts used by Claimant's LLM features.

## Files

- ` + "`router.txt`" + ` - Classification rubric deciding between detail and overview retrieval
- ` + "`detail_system.txt`" + ` - System prompt for precise, fact-level answers
- ` + "`overview_system.txt`" + ` - System prompt for synthesis answers
- ` + "`summarise_overview.txt`" + ` - Generates the synopsis of the claim overview page
- ` + "`summarise_details.txt`" + ` - Generates the synopsis of a detail page

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command or after restarting the TUI.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` / ` + "`%[1]s`" + ` - String (e.g., the page header or content)
- ` + "`%d`" + ` - Integer (e.g., max length)

The summarise prompts receive header, date, parties and content in that
order; indexed placeholders may repeat a value. The router and system
prompts take no placeholders.

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
