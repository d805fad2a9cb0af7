package domain

import (
	"fmt"
	"strconv"
)

// ActorID - упакованный идентификатор актора в арене мира.
//
// Формат битов (от старших к младшим):
//
//	[ reserved (16) | Generation (16) | Index (32) ]
//
// Index - номер слота в арене, Generation - версия слота. После Despawn
// поколение слота растет, поэтому старые ID перестают резолвиться
// (защита от висячих ссылок вместо сырых указателей на мир).
type ActorID uint64

// NilActorID - отсутствие актора. Поколения начинаются с 1, поэтому
// ни один живой слот не дает нулевой ID.
const NilActorID ActorID = 0

const (
	bitsIndex = 32
	bitsGen   = 16

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackActorID собирает ActorID из поколения и индекса.
func PackActorID(gen uint16, index uint32) ActorID {
	return ActorID((uint64(gen) << shiftGen) | uint64(index))
}

// Index возвращает индекс слота в арене.
func (id ActorID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id ActorID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id ActorID) IsNil() bool {
	return id == NilActorID
}

// String предназначен для логов и отладки.
func (id ActorID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[gen=%d idx=%d]", id.Generation(), id.Index())
}

// MarshalText сериализует ActorID строкой (безопасно для JSON и логов).
func (id ActorID) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(id), 10)), nil
}

// UnmarshalText парсит ActorID из строки. Пустая строка дает NilActorID.
func (id *ActorID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = NilActorID
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = ActorID(v)
	return nil
}
