package decimal

// Unsigned is the set of unsigned integer types accepted by PutUint.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Signed is the set of signed integer types accepted by PutInt.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Maximum rendered lengths, in bytes, per integer type. Signed lengths
// include one byte for the minus sign.
const (
	Uint8Len   = 3
	Uint16Len  = 5
	Uint32Len  = 10
	Uint64Len  = 20
	UintLen    = Uint32Len + (Uint64Len-Uint32Len)*int(^uint(0)>>63)
	UintptrLen = Uint32Len + (Uint64Len-Uint32Len)*int(^uintptr(0)>>63)

	Int8Len  = 4
	Int16Len = 6
	Int32Len = 11
	Int64Len = 20
	IntLen   = Int32Len + (Int64Len-Int32Len)*int(^uint(0)>>63)
)

// Digits returns the number of decimal digits needed to render v.
func Digits(v uint64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// Put writes the minimal decimal form of v at the start of dst and returns
// the index one past the last byte written. dst must have room for
// Digits(v) bytes; a Uint64Len buffer always does.
func Put(dst []byte, v uint64) int {
	n := Digits(v)
	_ = dst[n-1]
	for i := n - 1; i >= 0; i-- {
		dst[i] = byte('0' + v%10)
		v /= 10
	}
	return n
}

// PutUint is Put for any unsigned integer type.
func PutUint[T Unsigned](dst []byte, v T) int {
	return Put(dst, uint64(v))
}

// PutInt writes v in decimal, with a leading '-' when negative.
func PutInt[T Signed](dst []byte, v T) int {
	if v >= 0 {
		return Put(dst, uint64(v))
	}
	dst[0] = '-'
	// -(v+1) cannot overflow, including for the minimum value of T.
	return 1 + Put(dst[1:], uint64(-(v+1))+1)
}

// Append appends the decimal form of v to dst.
func Append(dst []byte, v uint64) []byte {
	var buf [Uint64Len]byte
	n := Put(buf[:], v)
	return append(dst, buf[:n]...)
}
