package aescrypt

// zero overwrites b with zero bytes. Go offers no guarantee the
// compiler won't elide a dead store before a buffer is garbage
// collected, so this is a best-effort mitigation, not a proof of
// erasure — the same limitation the package's doc.go "Not Protected
// Against" section calls out for memory dumps generally.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
