package index

import "strconv"

// ElideEnd shortens the displayed end of a numeric range by dropping the
// leading digits it shares with start, a pragmatic approximation of the
// Chicago Manual of Style convention. Teens keep their leading 1 so the
// elided value stays unambiguous, and ranges with unequal digit counts (or
// equal endpoints) are returned whole.
func ElideEnd(start, end int) int {
	startStr := strconv.Itoa(start)
	endStr := strconv.Itoa(end)
	if len(startStr) != len(endStr) || len(startStr) <= 1 || start == end {
		return end
	}

	cut := 0
	for startStr[cut] == endStr[cut] {
		cut++
	}
	if cut == len(endStr)-1 && endStr[len(endStr)-2] == '1' {
		cut--
	}
	result, _ := strconv.Atoi(endStr[cut:])
	return result
}
