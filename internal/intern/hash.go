package intern

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// fnv1a is 64-bit FNV-1a, inlined so hashing a lexeme does not allocate a
// hash.Hash64. A result of 0 is remapped to 1 because 0 marks empty slots.
func fnv1a(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	if h == emptyHash {
		h = 1
	}
	return h
}
