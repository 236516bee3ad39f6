package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionWorst(t *testing.T) {
	s := Section{Title: "test", Items: []Item{
		good("fine"),
		warning("meh"),
		good("also fine"),
	}}
	assert.Equal(t, StatusWarning, s.Worst())

	s.Items = append(s.Items, failure("broken"))
	assert.Equal(t, StatusError, s.Worst())

	assert.Equal(t, StatusGood, Section{}.Worst())
}

func TestStatusSymbols(t *testing.T) {
	assert.Equal(t, "[✔]", StatusGood.symbol())
	assert.Equal(t, "[!]", StatusWarning.symbol())
	assert.Equal(t, "[✗]", StatusError.symbol())
}

func TestItemFormatting(t *testing.T) {
	item := good("rustc v%s", "1.79.0")
	assert.Equal(t, "rustc v1.79.0", item.Text)
	assert.Equal(t, StatusGood, item.Status)
}
