package antenna

// ring indexes a circular array of n samples
type ring struct {
	n int
}

// at wraps any (possibly negative) index into [0, n)
func (r ring) at(i int) int {
	return ((i % r.n) + r.n) % r.n
}

// scan walks from i in direction dir (+1 forward, -1 backward) for at most n-1
// steps and returns the first index accepted by ok. It returns i itself when
// no sample qualifies, it never wraps past a full revolution.
func (r ring) scan(i, dir int, ok func(int) bool) int {
	for k := 1; k < r.n; k++ {
		j := r.at(i + dir*k)
		if ok(j) {
			return j
		}
	}
	return i
}
