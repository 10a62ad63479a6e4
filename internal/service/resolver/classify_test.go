package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		input    string
		class    inputClass
		captures []string
	}{
		{"STEAM_0:1:12345", classLegacy, []string{"1", "12345"}},
		{"STEAM_1:0:4491990", classLegacy, []string{"0", "4491990"}},
		{"[U:1:12345]", classBracketed, []string{"12345"}},
		{"76561197960290458", classSteamID64, []string{"76561197960290458"}},
		{"https://steamcommunity.com/id/gabelogannewell/", classVanityURL, []string{"gabelogannewell"}},
		{"steamcommunity.com/id/robin", classVanityURL, []string{"robin"}},
		{"STEAM_6:1:1", classUnknown, nil},
		{"[U:2:12345]", classUnknown, nil},
		{"86561197960290458", classUnknown, nil}, // 17 digits, wrong leading digit
		{"7656119796029045", classUnknown, nil},  // 16 digits
		{"gabelogannewell", classUnknown, nil},
		{"", classUnknown, nil},
	}

	for _, tc := range cases {
		class, captures := classify(tc.input)
		assert.Equal(tc.class, class, "input %q", tc.input)
		assert.Equal(tc.captures, captures, "input %q", tc.input)
	}
}
