package domain

// Actor - всё, что может ходить по карте и получать ход.
// Компоненты: если nil - свойство отсутствует.
type Actor struct {
	ID   ActorID `json:"id"`
	Type string  `json:"type"`
	Name string  `json:"name"`

	Pos Position  `json:"pos"`
	Dir Direction `json:"dir"`

	Render *RenderComponent `json:"render,omitempty"`
	Stats  *StatsComponent  `json:"stats,omitempty"`
	AI     *AIComponent     `json:"ai,omitempty"`
	Vision *VisionComponent `json:"vision,omitempty"`
}

// IsAlive - есть тело и оно живо.
func (a *Actor) IsAlive() bool {
	return a.Stats != nil && !a.Stats.IsDead
}

// IsPlayer - управляется ли актор человеком.
func (a *Actor) IsPlayer() bool {
	return a.Type == ActorTypePlayer
}

// IsHostileTo - стоят ли актеры по разные стороны.
func (a *Actor) IsHostileTo(other *Actor) bool {
	mine := a.AI != nil && a.AI.IsHostile
	theirs := other.AI != nil && other.AI.IsHostile
	return mine != theirs
}

// VisionRadius возвращает радиус обзора или значение по умолчанию.
func (a *Actor) VisionRadius() int {
	if a.Vision == nil {
		return VisionRadius
	}
	return a.Vision.Radius
}
