package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionWalk
	ActionWait
	ActionDrink
	ActionAttack
)

// Маппинг для конвертации ввода -> Domain
var actionStringToCmd = map[string]ActionType{
	"WALK":   ActionWalk,
	"WAIT":   ActionWait,
	"DRINK":  ActionDrink,
	"ATTACK": ActionAttack,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionWalk:   "WALK",
	ActionWait:   "WAIT",
	ActionDrink:  "DRINK",
	ActionAttack: "ATTACK",
}

// ParseAction конвертирует строку в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Command - команда игрока в очереди ввода.
type Command struct {
	Action ActionType
	Dir    Direction // только для WALK
}
