package config

// Lineup lists the hero scripts playing for each team, by name.
type Lineup struct {
	Radiant []string `yaml:"radiant"`
	Dire    []string `yaml:"dire"`
}

func (l Lineup) Empty() bool { return len(l.Radiant) == 0 && len(l.Dire) == 0 }

type HeroesConfig struct {
	Life            float64 `yaml:"life"`
	LevelMultiplier float64 `yaml:"health_level_multiplier"`
	// RespawnTicks is the delay before a dead hero comes back near its
	// ancient. Zero disables respawning.
	RespawnTicks int `yaml:"respawn_ticks"`
}
