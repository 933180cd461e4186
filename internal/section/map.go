// File path: internal/section/map.go
package section

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/specdraft/specdraft/internal/common"
)

var (
	ErrMapNotFound = errors.New("section map not found")
	ErrMapInvalid  = errors.New("section map invalid")
)

// Map relates a UDD section name to the ordered FSD section identifiers it
// draws from. Lookup is exact and case-sensitive.
type Map map[string][]string

// LoadMap reads the JSON mapping resource at path. The resource is small and
// operator-maintained, so each document request loads it fresh rather than
// caching across requests.
func LoadMap(path string) (Map, error) {
	logger := common.Logger()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Error("section: mapping file missing", "path", path)
			return nil, fmt.Errorf("%w: %s", ErrMapNotFound, path)
		}
		return nil, fmt.Errorf("read section map %s: %w", path, err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Error("section: mapping file unparseable", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrMapInvalid, path, err)
	}
	logger.Info("section: mapping loaded", "path", path, "udd_sections", len(m))
	return m, nil
}

// IdentifiersFor returns the FSD identifiers mapped to the UDD section, or an
// empty list when the section has no entry. A missing entry is not an error;
// the resolver falls back to the whole FSD.
func (m Map) IdentifiersFor(uddSection string) []string {
	ids := m[uddSection]
	if len(ids) == 0 {
		common.Logger().Warn("section: no mapping for udd section", "section", uddSection)
	}
	return ids
}
