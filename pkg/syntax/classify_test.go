package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		token    string
		expected Category
	}{
		// Whitespace runs come first.
		{"   ", Whitespace},
		{"\t", Whitespace},
		{"", Whitespace},

		// Literal patterns beat keyword sets.
		{"192.168.1.1", IPAddress},
		{"10.0.0.0/8", IPAddress},
		{"00:1a:2b:3c:4d:5e", MACAddress},
		{"001A.2B3C.4D5E", MACAddress},
		{"42", Number},
		{"65535", Number},
		{`"backbone link"`, QuotedString},

		// Keyword sets in priority order.
		{"show", Command},
		{"configure", Command},
		{"interface", Command},
		{"no", Negation},
		{"shutdown", Negation},
		{"deny", Negation},
		{"ospf", Protocol},
		{"isis", Protocol},
		{"ip", Protocol},
		{"brief", Parameter},
		{"running-config", Parameter},
		{"neighbors", Parameter},
		{"permit", Action},
		{"redistribute", Action},

		// Case-insensitive keyword lookup.
		{"SHOW", Command},
		{"No", Negation},
		{"OSPF", Protocol},

		// Fallback.
		{"gigabitethernet0/1", None},
		{"somename", None},
		{"1.2.3", None},
		{"999999999999999999999", Number},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Classify(tc.token), "token %q", tc.token)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "command", Command.String())
	assert.Equal(t, "ip", IPAddress.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "none", Category(99).String())
}

func TestKeywordSetsDisjoint(t *testing.T) {
	seen := make(map[string]Category)
	for _, set := range keywordSets {
		for word := range set.words {
			prev, dup := seen[word]
			assert.False(t, dup, "keyword %q in both %v and %v", word, prev, set.category)
			seen[word] = set.category
		}
	}
}
