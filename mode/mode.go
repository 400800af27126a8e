// Package mode maps feature modes to the system instructions sent with every
// provider request. The registry is a static lookup: unknown modes resolve to
// the chat instruction so callers never have to handle a miss.
package mode

import "github.com/hupe1980/chatmesh/core"

// Registry resolves a feature mode to its system instruction text.
type Registry struct {
	instructions map[core.Mode]string
}

// Options configure a Registry.
type Options struct {
	// Overrides replaces or extends the default instruction per mode.
	Overrides map[core.Mode]string
}

// NewRegistry creates a registry preloaded with the default instruction set.
func NewRegistry(optFns ...func(o *Options)) *Registry {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	instructions := make(map[core.Mode]string, len(defaultInstructions))
	for m, text := range defaultInstructions {
		instructions[m] = text
	}
	for m, text := range opts.Overrides {
		instructions[m] = text
	}

	return &Registry{instructions: instructions}
}

// Lookup returns the instruction for the given mode, falling back to the
// chat instruction for unrecognized modes. It never fails.
func (r *Registry) Lookup(m core.Mode) string {
	if text, ok := r.instructions[m]; ok {
		return text
	}
	return r.instructions[core.ModeChat]
}

var defaultInstructions = map[core.Mode]string{
	core.ModeChat: `You are ChatMesh, a helpful AI assistant. Be concise, accurate, and helpful.`,

	core.ModeCode: `You are ChatMesh Code, an expert programming assistant. You can:
- Write, explain, and debug code in any language
- Create full-stack applications
- Set up databases, APIs, and authentication
- Write tests and documentation

When writing code:
- Use modern best practices
- Include comments for complex logic
- Handle errors appropriately
- Consider security and performance

Format code blocks with the appropriate language tag.`,

	core.ModePPT: `You are ChatMesh PPT, a presentation creation assistant. You can:
- Create professional presentations
- Design slide layouts
- Write compelling content
- Suggest visual elements

When creating presentations:
- Keep slides concise (max 6 bullet points)
- Use clear, impactful titles
- Suggest appropriate images or charts
- Maintain consistent styling`,

	core.ModeResearch: `You are ChatMesh Research, a deep research assistant. You can:
- Search and analyze information from multiple sources
- Synthesize complex topics
- Create comprehensive reports
- Generate citations and references

When researching:
- Verify information from multiple sources
- Present balanced perspectives
- Cite sources when possible
- Highlight key findings`,

	core.ModeMultimodal: `You are ChatMesh Multimodal, an AI that can process and generate multiple types of content. You can:
- Analyze images, audio, and video
- Process documents and files
- Create multimedia content

Describe any visual or audio content clearly and accurately.`,
}
