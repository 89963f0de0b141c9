package wish

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoPickerRange(t *testing.T) {
	p := NewCryptoPicker()
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := p.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, 0, p.Intn(0))
	assert.Equal(t, 0, p.Intn(1))
}

func TestCryptoPickerFallback(t *testing.T) {
	p := &CryptoPicker{read: func(b []byte) (int, error) {
		return 0, errors.New("entropy unavailable")
	}}
	for i := 0; i < 50; i++ {
		v := p.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}

func TestCryptoPickerRejectsBiasedDraws(t *testing.T) {
	draws := [][]byte{
		{0xff, 0xff, 0xff, 0xff},
		{0x07, 0x00, 0x00, 0x00},
	}
	p := &CryptoPicker{read: func(b []byte) (int, error) {
		copy(b, draws[0])
		draws = draws[1:]
		return len(b), nil
	}}
	assert.Equal(t, 1, p.Intn(3))
	assert.Empty(t, draws)
}

func TestFixedPicker(t *testing.T) {
	p := NewFixedPicker(1, 9, -1)
	assert.Equal(t, 1, p.Intn(3))
	assert.Equal(t, 2, p.Intn(3))
	assert.Equal(t, 0, p.Intn(3))
	assert.Equal(t, 0, p.Intn(3))
	assert.Equal(t, 0, NewFixedPicker().Intn(3))
}
