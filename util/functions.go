package util

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

// CeilDiv is ceiling integer division, used to partition work into
// contiguous chunks without losing the remainder.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
