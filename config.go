package u235

import (
	"io"
	"log"
	"math"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/calebcase/u235/decay"
	"github.com/calebcase/u235/memory"
	"github.com/calebcase/u235/radiation"
)

// Defaults
const (
	DefaultSettleDelay = 2 * time.Second
	DefaultVicinity    = 64
)

// Config controls how a Value decays and whether it is radiated.
//
// The zero Config is usable: it disables radiation and uses the default
// half-life, reach and vicinity.
type Config struct {
	// RadiationEnabled starts a supervisor against every Value created
	// with New.
	RadiationEnabled bool

	// Reach scales radiation offsets. Ignored when Engine is set.
	Reach int

	// HalfLife is the decay half-life.
	HalfLife time.Duration

	// SettleDelay is how long New blocks after starting radiation.
	SettleDelay time.Duration

	// Vicinity is the number of bytes of unrelated memory on either side
	// of a Value's private storage.
	Vicinity int

	// Unsynchronized places Values in regions without locking. Radiating
	// such a Value while it is in use is a data race.
	Unsynchronized bool

	// RadiationRate throttles supervisors to this many events per second.
	// Zero leaves them spinning.
	RadiationRate float64

	// Engine is shared by all supervisors started with this config. A
	// fresh engine is created per Value when nil.
	Engine *radiation.Engine

	Clock   Clock
	Metrics *radiation.Metrics
	Logger  *log.Logger
}

// DefaultConfig returns the default configuration: radiation disabled, a
// 703.8ms half-life, reach 16 and a 2s settle delay.
func DefaultConfig() Config {
	return Config{
		Reach:       radiation.DefaultReach,
		HalfLife:    decay.HalfLife,
		SettleDelay: DefaultSettleDelay,
		Vicinity:    DefaultVicinity,
		Clock:       SystemClock,
	}
}

func (c Config) withDefaults() Config {
	if c.Reach <= 0 {
		c.Reach = radiation.DefaultReach
	}
	if c.HalfLife <= 0 {
		c.HalfLife = decay.HalfLife
	}
	if c.Vicinity < 0 {
		c.Vicinity = 0
	}
	if c.Clock == nil {
		c.Clock = SystemClock
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}

	return c
}

func (c Config) regionOptions() (opts []memory.Option) {
	if c.Unsynchronized {
		opts = append(opts, memory.Unsynchronized())
	}

	return opts
}

func (c Config) engine() *radiation.Engine {
	if c.Engine != nil {
		return c.Engine
	}

	return radiation.NewEngine(c.Reach, nil)
}

// maxBurst caps the limiter burst derived from RadiationRate.
const maxBurst = 1 << 20

// burst allows one second worth of radiate calls at once, within [1,
// maxBurst].
func burst(r float64) int {
	switch {
	case math.IsNaN(r) || r < 1:
		return 1
	case r > maxBurst:
		return maxBurst
	}

	return int(r)
}

func (c Config) supervisorOptions() []radiation.Option {
	opts := []radiation.Option{
		radiation.WithLogger(c.Logger),
		radiation.WithMetrics(c.Metrics),
	}

	if c.RadiationRate > 0 {
		opts = append(opts, radiation.WithLimit(rate.Limit(c.RadiationRate), burst(c.RadiationRate)))
	}

	return opts
}

// fileConfig is the YAML representation of a Config.
type fileConfig struct {
	RadiationEnabled *bool   `yaml:"radiation_enabled"`
	Reach            int     `yaml:"reach"`
	HalfLife         string  `yaml:"half_life"`    // e.g. "703.8ms"
	SettleDelay      string  `yaml:"settle_delay"` // e.g. "2s", "0s"
	Vicinity         *int    `yaml:"vicinity"`
	Unsynchronized   bool    `yaml:"unsynchronized"`
	RadiationRate    float64 `yaml:"radiation_rate"`
	Seed             *uint64 `yaml:"seed"`
}

// ParseConfig reads a YAML configuration. Fields that are not present keep
// their DefaultConfig values.
func ParseConfig(data []byte) (cfg Config, err error) {
	defer Error.WrapP(&err)

	var fc fileConfig
	err = yaml.Unmarshal(data, &fc)
	if err != nil {
		return cfg, err
	}

	cfg = DefaultConfig()

	if fc.RadiationEnabled != nil {
		cfg.RadiationEnabled = *fc.RadiationEnabled
	}

	if fc.Reach < 0 {
		return cfg, Error.New("invalid reach: %d", fc.Reach)
	}
	if fc.Reach > 0 {
		cfg.Reach = fc.Reach
	}

	if fc.HalfLife != "" {
		cfg.HalfLife, err = time.ParseDuration(fc.HalfLife)
		if err != nil {
			return cfg, err
		}
		if cfg.HalfLife <= 0 {
			return cfg, Error.New("invalid half_life: %s", fc.HalfLife)
		}
	}

	if fc.SettleDelay != "" {
		cfg.SettleDelay, err = time.ParseDuration(fc.SettleDelay)
		if err != nil {
			return cfg, err
		}
		if cfg.SettleDelay < 0 {
			return cfg, Error.New("invalid settle_delay: %s", fc.SettleDelay)
		}
	}

	if fc.Vicinity != nil {
		if *fc.Vicinity < 0 {
			return cfg, Error.New("invalid vicinity: %d", *fc.Vicinity)
		}

		cfg.Vicinity = *fc.Vicinity
	}

	if fc.RadiationRate < 0 {
		return cfg, Error.New("invalid radiation_rate: %v", fc.RadiationRate)
	}

	cfg.Unsynchronized = fc.Unsynchronized
	cfg.RadiationRate = fc.RadiationRate

	if fc.Seed != nil {
		cfg.Engine = radiation.NewEngine(cfg.Reach, radiation.NewSource(*fc.Seed))
	}

	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (cfg Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, Error.Wrap(err)
	}

	return ParseConfig(data)
}
