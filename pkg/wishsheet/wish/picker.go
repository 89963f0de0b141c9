package wish

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math"
	mrand "math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Picker draws uniform indexes in [0, n).
type Picker interface {
	Intn(n int) int
}

// CryptoPicker draws from the operating system's secure random source. When
// that source fails it falls back to a generator seeded from a fresh UUID and
// the current time.
type CryptoPicker struct {
	read func(b []byte) (int, error)
}

// NewCryptoPicker returns a picker backed by crypto/rand.
func NewCryptoPicker() *CryptoPicker {
	return &CryptoPicker{read: rand.Read}
}

// Intn returns a uniform index in [0, n); it returns 0 when n <= 0.
func (p *CryptoPicker) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := p.cryptoIntn(n)
	if err != nil {
		log.Warn().Err(err).Msg("secure random source failed, falling back to seeded generator")
		return seededIntn(n)
	}
	return v
}

// cryptoIntn rejects draws above the largest multiple of n to avoid modulo bias.
func (p *CryptoPicker) cryptoIntn(n int) (int, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, errors.New("range too large")
	}
	limit := (math.MaxUint32 / uint32(n)) * uint32(n)
	var buf [4]byte
	for {
		if _, err := p.read(buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint32(buf[:])
		if v < limit {
			return int(v % uint32(n)), nil
		}
	}
}

func seededIntn(n int) int {
	id := uuid.New()
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:]) ^ uint64(time.Now().UnixNano())
	return mrand.New(mrand.NewPCG(hi, lo)).IntN(n)
}

// FixedPicker returns preset indexes in order, clamped to the requested range.
// It repeats the last index once exhausted and is meant for tests and replays.
type FixedPicker struct {
	indexes []int
	next    int
}

// NewFixedPicker returns a picker yielding indexes in order.
func NewFixedPicker(indexes ...int) *FixedPicker {
	return &FixedPicker{indexes: indexes}
}

// Intn returns the next preset index.
func (p *FixedPicker) Intn(n int) int {
	if n <= 0 || len(p.indexes) == 0 {
		return 0
	}
	i := p.next
	if i >= len(p.indexes) {
		i = len(p.indexes) - 1
	} else {
		p.next++
	}
	v := p.indexes[i]
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
