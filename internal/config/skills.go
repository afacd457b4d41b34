package config

// Action keys used in Settings.Actions.
const (
	ActionMove        = "move"
	ActionHeroAttack  = "hero_attack"
	ActionTowerAttack = "tower_attack"
	ActionCreepAttack = "creep_attack"
	ActionHeal        = "heal"
	ActionFireball    = "fireball"
	ActionStun        = "stun"
)

type ActionsConfig struct {
	Move        ActionSettings `yaml:"move"`
	HeroAttack  ActionSettings `yaml:"hero_attack"`
	TowerAttack ActionSettings `yaml:"tower_attack"`
	CreepAttack ActionSettings `yaml:"creep_attack"`
	Heal        ActionSettings `yaml:"heal"`
	Fireball    ActionSettings `yaml:"fireball"`
	Stun        ActionSettings `yaml:"stun"`
}

// ActionSettings holds the tunables of one action. Fields an action does not
// use are left at zero.
type ActionSettings struct {
	Distance        float64 `yaml:"distance"`
	Damage          [2]int  `yaml:"damage"`
	LevelMultiplier float64 `yaml:"level_multiplier"`
	Cooldown        int     `yaml:"cooldown"`
	CooldownKey     string  `yaml:"cooldown_key"`
	Radius          float64 `yaml:"radius"`
	Duration        int     `yaml:"duration"`
}

func (a ActionSettings) MinDamage() int { return a.Damage[0] }
func (a ActionSettings) MaxDamage() int { return a.Damage[1] }

func (ac *ActionsConfig) byKey() map[string]*ActionSettings {
	return map[string]*ActionSettings{
		ActionMove:        &ac.Move,
		ActionHeroAttack:  &ac.HeroAttack,
		ActionTowerAttack: &ac.TowerAttack,
		ActionCreepAttack: &ac.CreepAttack,
		ActionHeal:        &ac.Heal,
		ActionFireball:    &ac.Fireball,
		ActionStun:        &ac.Stun,
	}
}
