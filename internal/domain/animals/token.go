package animals

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// TokenGenerator produce el código que el tutor presenta en la clínica.
type TokenGenerator interface {
	Generate() string
}

// RandomTokens genera 6 dígitos uniformes en 000000-999999.
// Es un código de conveniencia de baja entropía: no sirve como credencial.
type RandomTokens struct {
	mu sync.Mutex
	r  *rand.Rand // nil = fuente global
}

func NewRandomTokens() *RandomTokens { return &RandomTokens{} }

// NewSeededTokens es reproducible; para tests.
func NewSeededTokens(seed1, seed2 uint64) *RandomTokens {
	return &RandomTokens{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (g *RandomTokens) Generate() string {
	var n int
	if g.r == nil {
		n = rand.IntN(1_000_000)
	} else {
		g.mu.Lock()
		n = g.r.IntN(1_000_000)
		g.mu.Unlock()
	}
	return fmt.Sprintf("%06d", n)
}
