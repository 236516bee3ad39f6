package apple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTeams(t *testing.T) {
	out := `  1) 0123456789ABCDEF0123456789ABCDEF01234567 "Apple Development: Jane Doe (ABCDE12345)"
  2) 89ABCDEF0123456789ABCDEF0123456789ABCDEF "Apple Distribution: Example Corp (ZYXWV98765)"
  3) 4567012389ABCDEF0123456789ABCDEF89ABCDEF "Apple Development: Jane Doe (ABCDE12345)"
     3 valid identities found
`
	teams := parseTeams(out)
	assert.Equal(t, []Team{
		{Name: "Example Corp", ID: "ZYXWV98765"},
		{Name: "Jane Doe", ID: "ABCDE12345"},
	}, teams)
}

func TestParseTeamsNoIdentities(t *testing.T) {
	assert.Empty(t, parseTeams("     0 valid identities found\n"))
}
