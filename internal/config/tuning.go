package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned by Load and Validate when a tuning value is out of range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every tunable parameter of the playground.
type Tuning struct {
	Arcade Arcade `yaml:"arcade"`
	Pet    Pet    `yaml:"pet"`
	Loop   Loop   `yaml:"loop"`
}

// Arcade configures the obstacle-dodging game.
type Arcade struct {
	Width  float64 `yaml:"width"`  // Logical surface width
	Height float64 `yaml:"height"` // Logical surface height

	PlayerSize   float64 `yaml:"player_size"`
	PlayerSpeed  float64 `yaml:"player_speed"`  // Units per tick
	PlayerMargin float64 `yaml:"player_margin"` // Distance from the bottom edge to the player's top

	ObstacleHeight   float64 `yaml:"obstacle_height"`
	ObstacleMinWidth float64 `yaml:"obstacle_min_width"`
	ObstacleMaxWidth float64 `yaml:"obstacle_max_width"` // Exclusive
	SpawnChance      float64 `yaml:"spawn_chance"`       // Per-tick spawn probability
	MaxObstacles     int     `yaml:"max_obstacles"`

	InitialSpeed  float64 `yaml:"initial_speed"`
	SpeedStep     float64 `yaml:"speed_step"`
	ScorePerDodge int     `yaml:"score_per_dodge"`
	LevelEvery    int     `yaml:"level_every"` // Speed increases whenever score is a multiple of this

	ReplayDelay time.Duration `yaml:"replay_delay"`
}

// Pet configures the virtual pet.
type Pet struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Size            float64 `yaml:"size"`
	Speed           float64 `yaml:"speed"`
	ArriveDistance  float64 `yaml:"arrive_distance"`
	PlaySpeedFactor float64 `yaml:"play_speed_factor"`
	PlayMargin      float64 `yaml:"play_margin"` // Random play targets keep this distance from the edges

	JumpStep    float64 `yaml:"jump_step"`
	JumpCeiling float64 `yaml:"jump_ceiling"`

	BurstSize     int     `yaml:"burst_size"`
	MaxParticles  int     `yaml:"max_particles"`
	ParticleDecay float64 `yaml:"particle_decay"`
	Gravity       float64 `yaml:"gravity"`

	PlayDuration   time.Duration `yaml:"play_duration"`
	WiggleInterval time.Duration `yaml:"wiggle_interval"`
	WiggleSteps    int           `yaml:"wiggle_steps"`
	WiggleAmount   float64       `yaml:"wiggle_amount"`
}

// Loop configures the host event loop and the terminal front end.
type Loop struct {
	FPS           int           `yaml:"fps"`
	KeyHold       time.Duration `yaml:"key_hold"`       // How long a key counts as held after its last press
	MaxTermWidth  int           `yaml:"max_term_width"` // Render area is clamped to this many columns
	MaxTermHeight int           `yaml:"max_term_height"`
	SplitMinWidth int           `yaml:"split_min_width"` // Narrower terminals show one pane at a time
}

// FrameTime returns the duration of a single display refresh.
func (l Loop) FrameTime() time.Duration {
	return time.Second / time.Duration(l.FPS)
}

// Default returns the tuning used when no file is given.
func Default() Tuning {
	return Tuning{
		Arcade: Arcade{
			Width:            400,
			Height:           300,
			PlayerSize:       30,
			PlayerSpeed:      5,
			PlayerMargin:     40,
			ObstacleHeight:   30,
			ObstacleMinWidth: 20,
			ObstacleMaxWidth: 60,
			SpawnChance:      0.02,
			MaxObstacles:     64,
			InitialSpeed:     2,
			SpeedStep:        0.5,
			ScorePerDodge:    10,
			LevelEvery:       100,
			ReplayDelay:      2 * time.Second,
		},
		Pet: Pet{
			Width:           300,
			Height:          200,
			Size:            30,
			Speed:           1.5,
			ArriveDistance:  5,
			PlaySpeedFactor: 3,
			PlayMargin:      30,
			JumpStep:        5,
			JumpCeiling:     20,
			BurstSize:       10,
			MaxParticles:    200,
			ParticleDecay:   0.02,
			Gravity:         0.2,
			PlayDuration:    3 * time.Second,
			WiggleInterval:  50 * time.Millisecond,
			WiggleSteps:     20,
			WiggleAmount:    5,
		},
		Loop: Loop{
			FPS:           60,
			KeyHold:       80 * time.Millisecond,
			MaxTermWidth:  200,
			MaxTermHeight: 50,
			SplitMinWidth: 100,
		},
	}
}

// Load reads a YAML tuning file. Missing keys keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}

	// Decoding over the defaults leaves keys that are absent from the file untouched.
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// LoadOrDefault loads path when it is non-empty and returns Default otherwise.
func LoadOrDefault(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports the first out-of-range value.
func (t Tuning) Validate() error {
	a, p, l := t.Arcade, t.Pet, t.Loop
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("%w: arcade surface must be positive, got %vx%v", ErrInvalidTuning, a.Width, a.Height)
	case a.PlayerSpeed <= 0:
		return fmt.Errorf("%w: arcade player_speed %v", ErrInvalidTuning, a.PlayerSpeed)
	case a.ObstacleHeight <= 0:
		return fmt.Errorf("%w: arcade obstacle_height %v", ErrInvalidTuning, a.ObstacleHeight)
	case a.ReplayDelay <= 0:
		return fmt.Errorf("%w: arcade replay_delay %v", ErrInvalidTuning, a.ReplayDelay)
	case a.PlayerSize <= 0 || a.PlayerSize > a.Width:
		return fmt.Errorf("%w: arcade player_size %v does not fit width %v", ErrInvalidTuning, a.PlayerSize, a.Width)
	case a.ObstacleMinWidth <= 0 || a.ObstacleMaxWidth < a.ObstacleMinWidth || a.ObstacleMaxWidth > a.Width:
		return fmt.Errorf("%w: arcade obstacle widths [%v,%v)", ErrInvalidTuning, a.ObstacleMinWidth, a.ObstacleMaxWidth)
	case a.SpawnChance < 0 || a.SpawnChance > 1:
		return fmt.Errorf("%w: arcade spawn_chance %v", ErrInvalidTuning, a.SpawnChance)
	case a.MaxObstacles <= 0:
		return fmt.Errorf("%w: arcade max_obstacles %d", ErrInvalidTuning, a.MaxObstacles)
	case a.ScorePerDodge <= 0 || a.LevelEvery <= 0:
		return fmt.Errorf("%w: arcade scoring %d/%d", ErrInvalidTuning, a.ScorePerDodge, a.LevelEvery)
	case a.SpeedStep < 0:
		return fmt.Errorf("%w: arcade speed_step %v must not decrease speed", ErrInvalidTuning, a.SpeedStep)
	case p.Width <= 2*p.PlayMargin || p.Height <= 2*p.PlayMargin:
		return fmt.Errorf("%w: pet surface %vx%v too small for play_margin %v", ErrInvalidTuning, p.Width, p.Height, p.PlayMargin)
	case p.Speed <= 0 || p.PlaySpeedFactor <= 0:
		return fmt.Errorf("%w: pet speed %v x%v", ErrInvalidTuning, p.Speed, p.PlaySpeedFactor)
	case p.ArriveDistance <= 0:
		return fmt.Errorf("%w: pet arrive_distance %v", ErrInvalidTuning, p.ArriveDistance)
	case p.PlayDuration <= 0:
		return fmt.Errorf("%w: pet play_duration %v", ErrInvalidTuning, p.PlayDuration)
	case p.JumpStep <= 0 || p.JumpCeiling < p.JumpStep:
		return fmt.Errorf("%w: pet jump step %v ceiling %v", ErrInvalidTuning, p.JumpStep, p.JumpCeiling)
	case p.BurstSize <= 0 || p.MaxParticles < p.BurstSize:
		return fmt.Errorf("%w: pet burst %d max %d", ErrInvalidTuning, p.BurstSize, p.MaxParticles)
	case p.ParticleDecay <= 0:
		return fmt.Errorf("%w: pet particle_decay %v", ErrInvalidTuning, p.ParticleDecay)
	case p.WiggleSteps <= 0 || p.WiggleInterval <= 0:
		return fmt.Errorf("%w: pet wiggle %d x %v", ErrInvalidTuning, p.WiggleSteps, p.WiggleInterval)
	case l.FPS <= 0:
		return fmt.Errorf("%w: loop fps %d", ErrInvalidTuning, l.FPS)
	case l.KeyHold <= 0:
		return fmt.Errorf("%w: loop key_hold %v", ErrInvalidTuning, l.KeyHold)
	case l.MaxTermWidth <= 0 || l.MaxTermHeight <= 0:
		return fmt.Errorf("%w: loop max terminal %dx%d", ErrInvalidTuning, l.MaxTermWidth, l.MaxTermHeight)
	}
	return nil
}
