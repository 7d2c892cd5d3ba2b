package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит ключ кеша: H( content || extra1 || extra2 ... ).
// Порядок extras должен быть детерминированным.
func Combine(content Digest, extras ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extras {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestOf хеширует произвольные байты (опции компиляции и т.п.).
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}
