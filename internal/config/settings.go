package config

import (
	"errors"
	"fmt"
)

type Settings struct {
	Teams   TeamsConfig   `yaml:"teams"`
	World   WorldConfig   `yaml:"world"`
	Life    LifeConfig    `yaml:"life"`
	Heroes  HeroesConfig  `yaml:"heroes"`
	XP      XPConfig      `yaml:"xp"`
	Creeps  CreepsConfig  `yaml:"creeps"`
	Actions ActionsConfig `yaml:"actions"`
	Game    GameConfig    `yaml:"game"`
	Lineup  Lineup        `yaml:"lineup"`
}

type TeamsConfig struct {
	Radiant string `yaml:"radiant"`
	Dire    string `yaml:"dire"`
	Neutral string `yaml:"neutral"`
	// Enemies maps a team to the team its units fight. Neutral has none.
	Enemies map[string]string `yaml:"enemies"`
	// Colors names the terminal color each team is drawn in.
	Colors map[string]string `yaml:"colors"`
}

// Valid reports whether team is one of the three configured teams.
func (tc TeamsConfig) Valid(team string) bool {
	return team != "" && (team == tc.Radiant || team == tc.Dire || team == tc.Neutral)
}

func (tc TeamsConfig) Enemy(team string) (string, bool) {
	e, ok := tc.Enemies[team]
	return e, ok
}

// Playing returns the two competing teams in a fixed order.
func (tc TeamsConfig) Playing() []string { return []string{tc.Radiant, tc.Dire} }

// WorldConfig sizes the grid. Zero values mean "take it from the map".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LifeConfig struct {
	Tree    float64 `yaml:"tree"`
	Creep   float64 `yaml:"creep"`
	Tower   float64 `yaml:"tower"`
	Ancient float64 `yaml:"ancient"`
}

type XPConfig struct {
	ToLevel   int     `yaml:"to_level"`
	Distance  float64 `yaml:"distance"`
	CreepDead int     `yaml:"creep_dead"`
	HeroDead  int     `yaml:"hero_dead"`
	TowerDead int     `yaml:"tower_dead"`
}

type CreepsConfig struct {
	WaveSize      int     `yaml:"wave_size"`
	WaveCooldown  int     `yaml:"wave_cooldown"`
	AggroDistance float64 `yaml:"aggro_distance"`
}

type GameConfig struct {
	// MaxTicks ends the game as a draw once reached. Zero means no limit.
	MaxTicks int `yaml:"max_ticks"`
}

// Default returns the reference tunables.
func Default() *Settings {
	return &Settings{
		Teams: TeamsConfig{
			Radiant: "radiant",
			Dire:    "dire",
			Neutral: "neutral",
			Enemies: map[string]string{"radiant": "dire", "dire": "radiant"},
			Colors:  map[string]string{"radiant": "green", "dire": "red", "neutral": "white"},
		},
		Life: LifeConfig{Tree: 1000, Creep: 50, Tower: 500, Ancient: 500},
		Heroes: HeroesConfig{
			Life:            100,
			LevelMultiplier: 0.2,
		},
		XP: XPConfig{
			ToLevel:   100,
			Distance:  10,
			CreepDead: 10,
			HeroDead:  50,
			TowerDead: 30,
		},
		Creeps: CreepsConfig{WaveSize: 5, WaveCooldown: 30, AggroDistance: 3},
		Actions: ActionsConfig{
			Move:        ActionSettings{Distance: 1.5},
			HeroAttack:  ActionSettings{Distance: 1.5, Damage: [2]int{5, 10}, LevelMultiplier: 0.1},
			TowerAttack: ActionSettings{Distance: 3, Damage: [2]int{20, 30}},
			CreepAttack: ActionSettings{Distance: 1.5, Damage: [2]int{3, 6}},
			Heal: ActionSettings{
				Distance: 5, Damage: [2]int{10, 15}, LevelMultiplier: 0.2,
				Cooldown: 30, CooldownKey: ActionHeal, Radius: 2,
			},
			Fireball: ActionSettings{
				Distance: 5, Damage: [2]int{10, 15}, LevelMultiplier: 0.2,
				Cooldown: 30, CooldownKey: ActionFireball, Radius: 1.5,
			},
			// stun shares the fireball cooldown bookkeeping; set cooldown_key
			// to "stun" to give it its own.
			Stun: ActionSettings{
				Distance: 5, Cooldown: 30, CooldownKey: ActionFireball, Duration: 5,
			},
		},
		Lineup: Lineup{Radiant: []string{"hunter"}, Dire: []string{"hunter"}},
	}
}

func (s *Settings) Validate() error {
	var errs []error
	t := s.Teams
	if t.Radiant == "" || t.Dire == "" || t.Neutral == "" {
		errs = append(errs, errors.New("teams: radiant, dire and neutral must be named"))
	} else if t.Radiant == t.Dire || t.Radiant == t.Neutral || t.Dire == t.Neutral {
		errs = append(errs, errors.New("teams: names must be distinct"))
	}
	for _, team := range t.Playing() {
		enemy, ok := t.Enemy(team)
		if !ok || !t.Valid(enemy) || enemy == team {
			errs = append(errs, fmt.Errorf("teams: %q has no valid enemy", team))
		}
	}
	if s.World.Width < 0 || s.World.Height < 0 {
		errs = append(errs, errors.New("world: negative size"))
	}
	if s.XP.ToLevel <= 0 {
		errs = append(errs, errors.New("xp: to_level must be positive"))
	}
	if s.Creeps.WaveCooldown <= 0 {
		errs = append(errs, errors.New("creeps: wave_cooldown must be positive"))
	}
	if s.Creeps.WaveSize < 0 {
		errs = append(errs, errors.New("creeps: wave_size must not be negative"))
	}
	if s.Heroes.Life <= 0 {
		errs = append(errs, errors.New("heroes: life must be positive"))
	}
	for key, a := range s.Actions.byKey() {
		if a.Distance < 0 || a.Radius < 0 {
			errs = append(errs, fmt.Errorf("actions.%s: negative distance", key))
		}
		if a.Cooldown < 0 || a.Duration < 0 {
			errs = append(errs, fmt.Errorf("actions.%s: negative cooldown or duration", key))
		}
		if a.Damage[0] > a.Damage[1] {
			errs = append(errs, fmt.Errorf("actions.%s: damage min %d > max %d", key, a.Damage[0], a.Damage[1]))
		}
		if a.Cooldown > 0 && a.CooldownKey == "" {
			errs = append(errs, fmt.Errorf("actions.%s: cooldown without cooldown_key", key))
		}
	}
	return errors.Join(errs...)
}
