// Package event - события хода, дерево каскадов и диспетчер.
package event

import (
	"fmt"
	"slices"
	"strings"
)

// Event - любое событие хода. Конкретные события объявляются вне пакета
// (обычные структуры-значения), хабу нужен только их тип.
type Event interface {
	EventName() string
}

// TurnConsumer - событие, которое тратит ход актора.
type TurnConsumer interface {
	ConsumesTurn() bool
}

// ConsumesTurn сообщает, тратит ли событие ход.
func ConsumesTurn(ev Event) bool {
	tc, ok := ev.(TurnConsumer)
	return ok && tc.ConsumesTurn()
}

// Elem - элемент дерева: Token или Node.
type Elem interface {
	elem()
}

// Token - одно событие.
type Token struct {
	Event Event
}

// Node - каскад: событие-триггер и всё, что оно вызвало.
type Node struct {
	Children []Elem
}

func (Token) elem() {}
func (Node) elem()  {}

// CheckPoint - длина текущего кадра билдера на момент вызова Checkpoint.
type CheckPoint int

// Builder копит дерево событий одного тика.
type Builder struct {
	elems []Elem
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Push добавляет событие в конец текущего кадра.
func (b *Builder) Push(ev Event) {
	b.elems = append(b.elems, Token{Event: ev})
}

// Checkpoint запоминает текущую длину кадра.
func (b *Builder) Checkpoint() CheckPoint {
	return CheckPoint(len(b.elems))
}

// Nest сворачивает всё, что добавлено после cp, в один Node.
// Если после cp ничего не добавлено, дерево не меняется.
func (b *Builder) Nest(cp CheckPoint) {
	at := int(cp)
	if at < 0 || at > len(b.elems) {
		panic(fmt.Sprintf("event: checkpoint %d out of range [0, %d]", at, len(b.elems)))
	}
	if at == len(b.elems) {
		return
	}
	children := slices.Clone(b.elems[at:])
	b.elems = append(b.elems[:at], Node{Children: children})
}

// Since - сколько элементов добавлено в кадр после cp.
func (b *Builder) Since(cp CheckPoint) int {
	return len(b.elems) - int(cp)
}

func (b *Builder) IsEmpty() bool {
	return len(b.elems) == 0
}

func (b *Builder) Len() int {
	return len(b.elems)
}

// Build отдает накопленное дерево. Билдер после этого пуст.
func (b *Builder) Build() *Tree {
	t := &Tree{elems: b.elems}
	b.elems = nil
	return t
}

// Tree - записанные события тика. Это запись для проигрывания
// анимаций, а не журнал для отката.
type Tree struct {
	elems []Elem
}

// Elems - элементы верхнего уровня.
func (t *Tree) Elems() []Elem {
	if t == nil {
		return nil
	}
	return t.elems
}

// Len - количество элементов верхнего уровня.
func (t *Tree) Len() int {
	return len(t.Elems())
}

// Walk обходит дерево в глубину. depth - число Node вокруг события:
// у события, отданного в Dispatch на верхнем уровне, depth = 1.
// fn возвращает false, чтобы прервать обход.
func (t *Tree) Walk(fn func(depth int, ev Event) bool) {
	walk(t.Elems(), 0, fn)
}

func walk(elems []Elem, depth int, fn func(int, Event) bool) bool {
	for _, e := range elems {
		switch v := e.(type) {
		case Token:
			if !fn(depth, v.Event) {
				return false
			}
		case Node:
			if !walk(v.Children, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// Events - все события в порядке обхода в глубину.
func (t *Tree) Events() []Event {
	var out []Event
	t.Walk(func(_ int, ev Event) bool {
		out = append(out, ev)
		return true
	})
	return out
}

// String - отладочная печать с отступами по вложенности.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(depth int, ev Event) bool {
		sb.WriteString(strings.Repeat("  ", max(depth-1, 0)))
		fmt.Fprintf(&sb, "%s %+v\n", ev.EventName(), ev)
		return true
	})
	return sb.String()
}
