package datum

// Datum is a byte sequence used as a key or value. It is immutable by
// convention: methods never mutate the underlying slice, and callers should
// treat the slice returned by Bytes as read-only.
type Datum struct {
	b []byte
}

// NewDatum wraps the given bytes in a Datum. The slice is not copied; the
// caller must not mutate it after constructing the Datum.
func NewDatum(b []byte) Datum {
	return Datum{b: b}
}

// NewDatumFromString wraps the bytes of s in a Datum.
func NewDatumFromString(s string) Datum {
	return Datum{b: []byte(s)}
}

// Bytes returns the underlying byte slice.
func (d Datum) Bytes() []byte {
	return d.b
}

// String returns the datum's bytes interpreted as a string.
func (d Datum) String() string {
	return string(d.b)
}

// Len returns the number of bytes in the datum.
func (d Datum) Len() int {
	return len(d.b)
}

// Equal reports whether d and other hold the same bytes.
func (d Datum) Equal(other Datum) bool {
	if len(d.b) != len(other.b) {
		return false
	}
	for i := range d.b {
		if d.b[i] != other.b[i] {
			return false
		}
	}
	return true
}
