package common

// WipeByteArray overwrites b with zeros. It is used for passwords read from
// the terminal once they are no longer needed. Nil slices are ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
