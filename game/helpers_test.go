package game

import "time"

// seqSource rejoue une séquence fixe, en boucle.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine construit un moteur dont toutes les cases tirées valent +1.
func newTestEngine(mode Mode) (*Engine, *fakeClock) {
	clk := &fakeClock{t: epoch}
	rules := DefaultRules()
	rules.Mode = mode
	e := NewEngine(rules, NewGeneratorFrom(&seqSource{vals: []int{1}}), clk)
	return e, clk
}

func column(vals ...CellValue) [BoardSize]CellValue {
	var out [BoardSize]CellValue
	copy(out[:], vals)
	return out
}
