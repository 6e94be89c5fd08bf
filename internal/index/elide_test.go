package index

import "testing"

func TestElideEnd(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		expected int
	}{
		{name: "shared hundreds", start: 123, end: 125, expected: 5},
		{name: "teens keep leading one", start: 112, end: 113, expected: 13},
		{name: "single digits untouched", start: 9, end: 11, expected: 11},
		{name: "unequal digit counts", start: 42, end: 420, expected: 420},
		{name: "equal endpoints", start: 77, end: 77, expected: 77},
		{name: "only last digit differs", start: 100, end: 102, expected: 2},
		{name: "teens in last position", start: 210, end: 215, expected: 15},
		{name: "thousands", start: 1536, end: 1538, expected: 8},
		{name: "nothing shared", start: 1234, end: 5678, expected: 5678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElideEnd(tt.start, tt.end); got != tt.expected {
				t.Errorf("ElideEnd(%d, %d) = %d, expected %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}
