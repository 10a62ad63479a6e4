package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]string{
		"Gabe Newell":       "gabenewell",
		"Gábé Nêwëll":       "gabenewell",
		"  spaced   out  ":  "spacedout",
		"UPPER123lower":     "upper123lower",
		"semi;colon:name!?": "semicolonname",
		"!!! ???":           "",
		"\tplayer_12345\n":  "player12345",
		"ＡＢＣ":               "abc",
		"ｐｌａｙｅｒ　１２３４５":      "player12345",
	}

	for input, want := range cases {
		assert.Equal(want, normalize(input), "input %q", input)
	}
}

func TestFirstDigitRun(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("12345", firstDigitRun("player12345maybe6789"))
	assert.Equal("42", firstDigitRun("42"))
	assert.Equal("7", firstDigitRun("abc7"))
	assert.Equal("", firstDigitRun("nodigits"))
	assert.Equal("", firstDigitRun(""))
}
