package util

// Tern is a ternary operator, ie. in C: x = cond ? a : b
func Tern[T any](cond bool, a T, b T) T {
	if cond {
		return a
	}
	return b
}

type Optional[T any] struct {
	present bool
	value   T
}

func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{true, v}
}

func (o *Optional[T]) Present() bool {
	return o.present
}

func (o *Optional[T]) Set(v T) {
	o.present = true
	o.value = v
}

func (o *Optional[T]) MustGet() T {
	if !o.present {
		panic("Optional.MustGet: value not present")
	}
	return o.value
}

// GetOr returns the value if present, otherwise def.
func (o *Optional[T]) GetOr(def T) T {
	if !o.present {
		return def
	}
	return o.value
}
