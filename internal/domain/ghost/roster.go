package ghost

import (
	"strings"

	"github.com/okian/ghostboard/internal/domain/names"
	"github.com/okian/ghostboard/internal/domain/types"
)

// Hydrate puts real roster names on a generated cohort, position by
// position. Skill and pace stay seeded, so scores are unchanged. Blank
// roster names and ghosts past the end of the roster keep their generated
// names; roster names past the end of the cohort are ignored. The input is
// not modified.
func Hydrate(cohort []types.Ghost, roster []string) []types.Ghost {
	out := make([]types.Ghost, len(cohort))
	copy(out, cohort)
	for i := range out {
		if i >= len(roster) {
			break
		}
		name := strings.TrimSpace(roster[i])
		if name == "" {
			continue
		}
		out[i].Name = name
		out[i].Initials = names.Initials(name)
	}
	return out
}
