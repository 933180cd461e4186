// File path: internal/templates/store.go
package templates

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/specdraft/specdraft/internal/common"
)

var (
	ErrStoreNotFound = errors.New("template resource not found")

	keyRe     = regexp.MustCompile(`^[A-Za-z_]+:\s*`)
	bracketRe = regexp.MustCompile(`^\[(.*)\]$`)
)

// Template defines one UDD output section: what it is called, whether it
// renders as prose or a table, and the authoring instructions handed to the
// generator. The order of templates in the resource is the order and
// numbering of the finished document.
type Template struct {
	Name        string
	Type        string // "text" or "table"
	Description string
	Prompt      string
	Fields      []string // column names, meaningful only for tables
}

// Load parses the template resource at path. Blocks start at lines whose
// first character is '#'; a malformed block is skipped with a warning so a
// single bad edit does not take down every other section.
func Load(path string) ([]Template, error) {
	logger := common.Logger()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Error("templates: resource missing", "path", path)
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
		}
		return nil, fmt.Errorf("read template resource %s: %w", path, err)
	}

	blocks := splitBlocks(string(data))
	logger.Info("templates: resource loaded", "path", path, "blocks", len(blocks))

	out := make([]Template, 0, len(blocks))
	for i, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		tpl, err := parseBlock(block)
		if err != nil {
			logger.Warn("templates: skipping malformed block", "index", i+1, "error", err)
			continue
		}
		out = append(out, tpl)
	}
	logger.Info("templates: parsed", "sections", len(out))
	return out, nil
}

// splitBlocks cuts the resource at every line beginning with '#'. Content
// before the first '#' becomes a leading block that fails parsing and is
// skipped like any other malformed block.
func splitBlocks(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func parseBlock(block string) (Template, error) {
	var lines []string
	for _, raw := range strings.Split(strings.TrimSpace(block), "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "#") {
		return Template{}, errors.New("block must start with '#<section name>'")
	}
	name := strings.TrimSpace(strings.TrimPrefix(lines[0], "#"))
	if name == "" {
		return Template{}, errors.New("block has empty section name")
	}

	keyvals := make(map[string]string)
	currentKey := ""
	var currentVal []string
	flush := func() {
		if currentKey != "" {
			keyvals[currentKey] = strings.TrimSpace(strings.Join(currentVal, " "))
			currentKey = ""
			currentVal = currentVal[:0]
		}
	}
	for _, line := range lines[1:] {
		if keyRe.MatchString(line) {
			flush()
			key, val, _ := strings.Cut(line, ":")
			currentKey = strings.TrimSpace(key)
			currentVal = append(currentVal, strings.TrimSpace(val))
			continue
		}
		// Not a key line: the value of the previous key wraps onto this one.
		currentVal = append(currentVal, line)
	}
	flush()

	tpl := Template{
		Name:        name,
		Type:        keyvals["type"],
		Description: keyvals["description"],
		Prompt:      keyvals["prompt"],
	}
	if tpl.Type == "" {
		tpl.Type = "text"
	}
	if raw, ok := keyvals["fields"]; ok {
		tpl.Fields = parseFields(raw)
	}
	return tpl, nil
}

// parseFields accepts either a bracketed list "[A, B, C]" or a bare comma
// list "A, B"; blank entries are dropped.
func parseFields(raw string) []string {
	if m := bracketRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	var fields []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
