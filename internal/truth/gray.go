package truth

// GrayCode returns the n-bit reflected gray code: 2^n rows where adjacent
// rows differ in exactly one bit. This is an inspection aid for eyeballing
// tables and covers; the minimizer itself never consumes it.
func GrayCode(n int) [][]bool {
	if n <= 0 {
		return nil
	}
	cur := [][]bool{{false}, {true}}
	for i := 1; i < n; i++ {
		cur = reflect(cur)
	}
	return cur
}

// reflect builds the (n+1)-bit code from the n-bit code: the original list
// prefixed with 0, then the reversed list prefixed with 1.
func reflect(gray [][]bool) [][]bool {
	out := make([][]bool, 0, 2*len(gray))
	for _, row := range gray {
		out = append(out, append([]bool{false}, row...))
	}
	for i := len(gray) - 1; i >= 0; i-- {
		out = append(out, append([]bool{true}, gray[i]...))
	}
	return out
}
