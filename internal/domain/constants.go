package domain

// Стоимость действий в тиках (Time Units)
const (
	TimeCostMove        = 100
	TimeCostAttackLight = 80
	TimeCostWait        = 50
	TimeCostTurn        = 20 // поворот на месте (уперлись в стену)
	TimeCostUse         = 60
)

// HealingDraughtPower - сколько HP восстанавливает одно зелье.
const HealingDraughtPower = 25

// Параметры восприятия
const (
	VisionRadius = 8
	AggroRadius  = 10
	MeleeRange   = 1.5
)

// Типы акторов
const (
	ActorTypePlayer = "PLAYER"
	ActorTypeEnemy  = "ENEMY"
	ActorTypeNPC    = "NPC"
)

// Типы сообщений журнала
const (
	MsgInfo   = "INFO"
	MsgCombat = "COMBAT"
	MsgError  = "ERROR"
)
