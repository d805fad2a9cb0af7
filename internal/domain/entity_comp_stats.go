package domain

// TakeDamage наносит урон. Возвращает true, если цель погибла именно сейчас.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность. Возвращает фактически восстановленное HP.
func (s *StatsComponent) Heal(amount int) int {
	if s.IsDead || amount <= 0 {
		return 0 // Не лечим трупы! Нет некромантии!
	}
	before := s.HP
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP - before
}

// SpendDraught тратит зелье. Возвращает false, если зелий нет.
func (s *StatsComponent) SpendDraught() bool {
	if s.Draughts <= 0 {
		return false
	}
	s.Draughts--
	return true
}
