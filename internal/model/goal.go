package model

// SavingsGoal tracks money put aside toward a named target. The current
// amount may exceed the target; progress is clamped for display only.
type SavingsGoal struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      Date    `json:"deadline"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// Progress returns the completion ratio in [0, 1].
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}
