package shadow

// Double - пара буферов "текущий / предыдущий". Swap меняет их ролями
// без копирования. Указатели из Front()/Back() после Swap устаревают:
// их нужно запрашивать заново.
type Double[T any] struct {
	items [2]T
	front int
}

// NewDouble создает пару. front станет текущим буфером.
func NewDouble[T any](front, back T) Double[T] {
	return Double[T]{items: [2]T{front, back}}
}

// Front - текущий буфер.
func (d *Double[T]) Front() *T {
	return &d.items[d.front]
}

// Back - предыдущий буфер.
func (d *Double[T]) Back() *T {
	return &d.items[1-d.front]
}

// Swap меняет буферы местами.
func (d *Double[T]) Swap() {
	d.front = 1 - d.front
}
