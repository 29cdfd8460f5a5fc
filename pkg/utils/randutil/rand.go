package randutil

import (
	"math/rand"
	"sync"
	"time"
)

const versionBound = 3294967296

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var mu sync.Mutex
var r = rand.New(rand.NewSource(time.Now().UnixNano()))

// Int63n returns a non-negative pseudo random number suitable as an
// initial resource version.
func Int63n() int64 {
	mu.Lock()
	defer mu.Unlock()
	return r.Int63n(versionBound)
}

func Uint64n() uint64 {
	return uint64(Int63n())
}

// StringN returns a random alphanumeric string of length n.
func StringN(n int) string {
	mu.Lock()
	defer mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
