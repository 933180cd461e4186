// File path: internal/generator/pipeline.go
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/llm"
	"github.com/specdraft/specdraft/internal/section"
	"github.com/specdraft/specdraft/internal/templates"
)

const systemPrompt = `You are a senior documentation specialist.
You generate precise, client-ready text for a Unified Design Document (UDD) based on:
1) a Functional Specification (FSD) excerpt,
2) a UDD section definition.

Rules:
- Produce polished, formal, professional language fit for client deliverables.
- Follow the section's 'type' and 'fields' instructions strictly (table vs. text).
- Do not hallucinate. If something is missing, write [To Be Filled].
- Keep each answer self-contained to be pasted directly into the UDD.
- Use concise, well-structured prose. Avoid filler.
- Do NOT repeat or rewrite the section title in the output. Only generate the body content.`

// Section is one generated UDD section. The title is the template name
// verbatim; the body is whatever the provider returned, trimmed.
type Section struct {
	Title string
	Body  string
}

// Options carries the rolling-context tuning. Window is how many prior
// sections are replayed into the next prompt; SnippetLimit caps the
// characters kept per replayed section so prompts stay bounded on long
// documents.
type Options struct {
	Window       int
	SnippetLimit int
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = 3
	}
	if o.SnippetLimit <= 0 {
		o.SnippetLimit = 1200
	}
	return o
}

// Generate drafts every UDD section in template order. Generation is
// strictly sequential: each prompt includes the most recent prior outputs,
// so a provider failure aborts the whole batch rather than leaving a gap
// that would silently skew later sections.
func Generate(ctx context.Context, fsdText string, tpls []templates.Template, m section.Map, provider llm.Provider, opts Options) ([]Section, error) {
	logger := common.Logger()
	opts = opts.withDefaults()
	logger.Info("generator: starting udd generation", "sections", len(tpls), "provider", provider.Name())

	results := make([]Section, 0, len(tpls))
	var snippets []string

	for i, tpl := range tpls {
		logger.Info("generator: processing section", "index", i+1, "total", len(tpls), "section", tpl.Name)

		slice := section.ResolveSlice(fsdText, tpl.Name, m)
		prompt := buildUserPrompt(tpl, slice)
		if len(snippets) > 0 {
			start := len(snippets) - opts.Window
			if start < 0 {
				start = 0
			}
			prior := strings.Join(snippets[start:], "\n\n")
			prompt = fmt.Sprintf("Context (previous sections):\n%s\n\n%s", prior, prompt)
		}

		out, err := provider.Chat(ctx, []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		})
		if err != nil {
			logger.Error("generator: provider failed", "section", tpl.Name, "error", err)
			return nil, fmt.Errorf("generate section %q: %w", tpl.Name, err)
		}

		body := strings.TrimSpace(out)
		results = append(results, Section{Title: tpl.Name, Body: body})
		snippets = append(snippets, fmt.Sprintf("[%s] %s", tpl.Name, truncate(body, opts.SnippetLimit)))
		logger.Debug("generator: section drafted", "section", tpl.Name, "chars", len(body))
	}

	logger.Info("generator: completed udd generation", "sections", len(results))
	return results, nil
}

func buildUserPrompt(tpl templates.Template, slice string) string {
	fieldsHint := ""
	if len(tpl.Fields) > 0 {
		fieldsHint = fmt.Sprintf("\nFields (if table): [%s]", strings.Join(tpl.Fields, ", "))
	}
	return fmt.Sprintf(
		"Target UDD Section: %s\n"+
			"Type: %s\n"+
			"Description: %s%s\n\n"+
			"Authoring Instructions:\n%s\n\n"+
			"Functional Spec Excerpt (FSD):\n\"\"\"%s\"\"\"\n\n"+
			"Now produce only the content for the UDD section above. "+
			"If type is 'table', return a clean markdown table with exactly the columns requested. "+
			"If a field's value is unknown, use [To Be Filled].",
		tpl.Name, tpl.Type, tpl.Description, fieldsHint, tpl.Prompt, slice,
	)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
