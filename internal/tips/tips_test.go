package tips

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	got := All()
	assert.Len(t, got, 21)
	assert.Equal(t, Len(), len(got))
	for i, tip := range got {
		assert.NotEmpty(t, tip, "tip %d", i)
	}

	got[0] = "mutated"
	assert.NotEqual(t, "mutated", At(0), "All must return a copy")
}

func TestAt_Wraps(t *testing.T) {
	assert.Equal(t, At(0), At(Len()))
	assert.Equal(t, At(Len()-1), At(-1))
	assert.Equal(t, At(3), At(3+2*Len()))
}

func TestPick(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 100 {
		tip, i := Pick(rng)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, Len())
		assert.Equal(t, At(i), tip)
	}

	tip, i := Pick(nil)
	assert.Equal(t, At(i), tip)
}
