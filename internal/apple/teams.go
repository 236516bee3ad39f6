package apple

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/agiangrant/mobl/internal/util"
)

// Team is an Apple development team derived from an installed signing
// certificate.
type Team struct {
	Name string
	ID   string
}

var identityRe = regexp.MustCompile(`"(?:iPhone Developer|iPhone Distribution|Apple Development|Apple Distribution|Developer ID Application): (.+?) \(([0-9A-Z]+)\)"`)

// FindTeams lists the development teams with codesigning certificates in the
// keychain, deduplicated by team ID.
func FindTeams(ctx context.Context) ([]Team, error) {
	out, err := util.Output(ctx, "security", "find-identity", "-p", "codesigning", "-v")
	if err != nil {
		return nil, fmt.Errorf("failed to query signing identities: %w", err)
	}
	return parseTeams(out), nil
}

func parseTeams(out string) []Team {
	seen := make(map[string]bool)
	var teams []Team
	for _, match := range identityRe.FindAllStringSubmatch(out, -1) {
		name, id := match[1], match[2]
		if seen[id] {
			continue
		}
		seen[id] = true
		teams = append(teams, Team{Name: name, ID: id})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}
