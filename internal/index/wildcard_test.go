package index

import "testing"

func TestExpandWildcards(t *testing.T) {
	ix := New(DefaultOptions(), nil)
	ix.EntryAt("kittens", []string{"Animals", "Cats"}, true)

	tests := []struct {
		name     string
		label    string
		text     string
		expected string
	}{
		{
			name:     "star is the visible label",
			label:    "puppies",
			text:     "Dogs>*",
			expected: "Dogs>puppies",
		},
		{
			name:     "double star lowercases",
			label:    "Puppies",
			text:     "Dogs>**",
			expected: "Dogs>puppies",
		},
		{
			name:     "star strips emphasis",
			label:    "_puppies_",
			text:     "Dogs>*",
			expected: "Dogs>puppies",
		},
		{
			name:     "prefix search expands to full path",
			label:    "kitten",
			text:     "*^",
			expected: `"Animals">"Cats">"kittens"`,
		},
		{
			name:     "label-only prefix search",
			label:    "kitten",
			text:     "*^->toys",
			expected: `"kittens">toys`,
		},
		{
			name:     "no prefix match falls back to label",
			label:    "zebras",
			text:     "*^",
			expected: "zebras",
		},
		{
			name:     "empty label leaves text alone",
			label:    "",
			text:     "Dogs>*",
			expected: "Dogs>*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.expandWildcards(tt.label, tt.text); got != tt.expected {
				t.Errorf("expandWildcards(%q, %q) = %q, expected %q",
					tt.label, tt.text, got, tt.expected)
			}
		})
	}
}
