package domain

// Wait добавляет задержку к следующему действию
func (a *AIComponent) Wait(ticks int) {
	a.NextActionTick += ticks
}

// BecomeHostile переводит моба в режим атаки
func (a *AIComponent) BecomeHostile() {
	a.IsHostile = true
	a.State = AIStateCombat
}

// CalmDown успокаивает моба
func (a *AIComponent) CalmDown() {
	a.IsHostile = false
	a.State = AIStateIdle
}

