// Package prompts builds the prompts sent to the generation model.
package prompts

import (
	"strings"
)

// SiteGenerationSystemMessage instructs the model to return a bare JSON
// document in the recognized site shape. The component vocabulary, required
// props, and output constraints are all spelled out because smaller models
// drift badly without them.
const SiteGenerationSystemMessage = `You are a website content generator for small businesses. Given a business description, you produce the full content for a one-page marketing site.

Respond with a single JSON object and nothing else: no markdown fences, no commentary, no trailing text.

The JSON object must have exactly these top-level fields:
- "name": the business name (string)
- "subdomain": a short lowercase slug for the business, letters/digits/hyphens only (string)
- "description": a one-sentence summary of the business, max 160 characters (string)
- "industry": the business's industry, lowercase (string)
- "primaryColor": a hex color fitting the brand, e.g. "#4F46E5" (string)
- "components": an array of 4 to 8 section objects

Each component object has a "type" field and a "props" object. The first component must always have type "hero". Available types and their props:

- "hero": props {"title", "subtitle", "ctaText", "ctaLink"}
- "features": props {"title", "subtitle", "features": [{"title", "description", "icon"}]}
- "pricing": props {"title", "plans": [{"name", "price", "features": [string], "highlighted": bool}]} with price as a monthly number
- "testimonials": props {"title", "testimonials": [{"name", "quote", "role", "rating"}]} with rating 1-5
- "faq": props {"title", "questions": [{"question", "answer"}]}
- "contact": props {"title", "description", "email", "phone"}
- "text": props {"title", "content"}
- "gallery": props {"title", "images": [{"src", "alt"}]}

Write concrete, specific copy grounded in the business description. Invent plausible details (prices, names in testimonials) when the description does not provide them, but never invent contact details the description does not contain; omit "email" and "phone" instead.`

// BuildSiteGenerationPrompt creates the user prompt for one generation call.
func BuildSiteGenerationPrompt(businessDescription string) string {
	var prompt strings.Builder

	prompt.WriteString("Generate the site content JSON for the following business.\n\n")
	prompt.WriteString("## Business Description\n\n")
	prompt.WriteString(strings.TrimSpace(businessDescription))
	prompt.WriteString("\n\n")
	prompt.WriteString("Choose the component types that fit this business best. ")
	prompt.WriteString("Always start with a hero and include a contact section unless the description argues against one.\n")
	prompt.WriteString("Return only the JSON object, with all six required top-level fields.\n")

	return prompt.String()
}
