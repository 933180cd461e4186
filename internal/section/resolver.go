// File path: internal/section/resolver.go
package section

import (
	"strings"

	"github.com/specdraft/specdraft/internal/common"
)

// ResolveSlice assembles the FSD excerpt feeding one UDD section: the bodies
// of the mapped FSD sections, in map order, joined by blank lines. Mapped
// identifiers absent from the FSD are skipped with a warning.
//
// When nothing accumulates, either because the UDD section has no mapping or
// because none of its identifiers exist in this FSD, the whole FSD is
// returned instead. Every section must reach the generator with context;
// an over-broad excerpt drafts worse, an empty one drafts nothing.
func ResolveSlice(fsdText, uddSection string, m Map) string {
	logger := common.Logger()
	sections := Parse(fsdText)
	ids := m.IdentifiersFor(uddSection)
	logger.Debug("section: resolving slice", "section", uddSection, "mapped_ids", len(ids))

	var parts []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		body, ok := sections[id]
		if !ok {
			logger.Warn("section: mapped fsd section missing", "section", uddSection, "id", id)
			continue
		}
		parts = append(parts, body)
	}
	if len(parts) > 0 {
		joined := strings.Join(parts, "\n\n")
		logger.Debug("section: slice assembled", "section", uddSection, "chars", len(joined))
		return joined
	}
	logger.Warn("section: no mapped sections found, using full fsd", "section", uddSection)
	return fsdText
}
