package session

import (
	"math/rand"
	"strings"
	"sync"
)

const (
	codeLen        = 6
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	decimalDigits  = "0123456789"
)

// CodeSource generates the decorative coupon and auth codes printed on a
// receipt. All randomness flows through the one injected source so tests
// can pin it. The codes carry no invariant beyond length and alphabet;
// math/rand is deliberate.
type CodeSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCodeSource wraps rng as the controller's only randomness source.
func NewCodeSource(rng *rand.Rand) *CodeSource {
	return &CodeSource{rng: rng}
}

// Coupon returns six base-36 characters, upper-cased.
func (s *CodeSource) Coupon() string {
	return strings.ToUpper(s.pick(base36Alphabet))
}

// Auth returns six decimal digits.
func (s *CodeSource) Auth() string {
	return s.pick(decimalDigits)
}

func (s *CodeSource) pick(alphabet string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for i := 0; i < codeLen; i++ {
		b.WriteByte(alphabet[s.rng.Intn(len(alphabet))])
	}
	return b.String()
}
