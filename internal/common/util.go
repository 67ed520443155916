package common

// WipeByteArray zeroes the buffer in place. Used to clear password bytes
// once they have been sent to the server.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
