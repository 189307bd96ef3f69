package sat

// Buffer is a borrowed, read-only view over a flattened clause buffer. The declared capacity
// is the only bound the decoder trusts; every access is checked against it.
type Buffer struct {
	data     []int32
	capacity int32
}

// NewBuffer wraps data with a declared capacity. The capacity may be smaller than len(data)
// but never larger.
func NewBuffer(data []int32, capacity int32) (Buffer, error) {
	if data == nil {
		return Buffer{}, invalidParameterf("buffer is nil")
	}
	if capacity <= 0 {
		return Buffer{}, invalidParameterf("buffer capacity is <= 0: %d", capacity)
	}
	if int64(capacity) > int64(len(data)) {
		return Buffer{}, invalidParameterf("buffer capacity %d exceeds backing length %d", capacity, len(data))
	}
	return Buffer{data: data, capacity: capacity}, nil
}

func (b Buffer) Capacity() int32 {
	return b.capacity
}

// At returns the element at index or an OutOfBounds error.
func (b Buffer) At(index int32) (int32, error) {
	if index < 0 || index >= b.capacity {
		return 0, outOfBoundsf("buffer index %d out of bounds for capacity %d", index, b.capacity)
	}
	return b.data[index], nil
}
