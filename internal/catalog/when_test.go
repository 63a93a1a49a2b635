package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestExtractWhen(t *testing.T) {
	tests := []struct {
		name string
		blob *string
		want string
	}{
		{"absent", nil, ""},
		{"json literal", strPtr(`Jan 5 {"when": "Fri, Jan 5, 7 PM"}`), "Fri, Jan 5, 7 PM"},
		{"python literal", strPtr(`{'start_date': 'Jan 5', 'when': 'Fri, Jan 5, 7 PM'}`), "Fri, Jan 5, 7 PM"},
		{"python literal with apostrophe", strPtr(`{'when': "Sat, New Year's Eve"}`), "Sat, New Year's Eve"},
		{"no braces", strPtr("no braces here"), ""},
		{"invalid literal", strPtr("{not valid}"), ""},
		{"missing when key", strPtr(`{"start_date": "Jan 5"}`), ""},
		{"non-string when", strPtr(`{"when": 7}`), ""},
		{"two literals", strPtr(`{"when": "a"} and {"when": "b"}`), ""},
		{"unterminated quote", strPtr(`{'when: 'x'}`), ""},
		{"python keywords", strPtr(`{'when': 'Tonight', 'free': True, 'venue': None}`), "Tonight"},
		{"python trailing comma", strPtr(`{'when': 'Fri, 7 PM',}`), "Fri, 7 PM"},
		{"python trailing comma in list", strPtr(`{'tags': ['a', 'b', ], 'when': 'Sun',  }`), "Sun"},
		{"comma inside string kept", strPtr(`{'when': 'Fri,}'}`), "Fri,}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractWhen(tt.blob))
		})
	}
}

func TestExtractWhen_ReportsFallback(t *testing.T) {
	_, fallback := ExtractWhenChecked(strPtr(`{"when": "Now"}`))
	assert.False(t, fallback)

	_, fallback = ExtractWhenChecked(strPtr("{broken"))
	assert.True(t, fallback)
}
