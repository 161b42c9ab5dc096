package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand"
	"sync"
)

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// lockedSource is a seeded generator safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a deterministic Source for seed that may be shared
// between goroutines.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// CryptoSource draws every value from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return int(v.Int64())
}

// QueueSource replays predetermined die faces. Once the queue is drained it
// falls back to CryptoSource.
type QueueSource struct {
	mu    sync.Mutex
	faces []int
}

// NewQueueSource prepares a sequence of deterministic die faces.
func NewQueueSource(faces ...int) *QueueSource {
	return &QueueSource{faces: faces}
}

// Push appends faces to the queue.
func (q *QueueSource) Push(faces ...int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.faces = append(q.faces, faces...)
}

// Len reports how many faces are still queued.
func (q *QueueSource) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.faces)
}

func (q *QueueSource) Intn(n int) int {
	q.mu.Lock()
	if len(q.faces) == 0 {
		q.mu.Unlock()
		return CryptoSource{}.Intn(n)
	}
	face := q.faces[0]
	q.faces = q.faces[1:]
	q.mu.Unlock()
	return face - 1
}
