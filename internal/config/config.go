package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/fleshka4/liquidity-pool/internal/logging"
	"github.com/fleshka4/liquidity-pool/internal/lppool"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Scenario operations.
const (
	OpAddLiquidity    = "add_liquidity"
	OpRemoveLiquidity = "remove_liquidity"
	OpSwap            = "swap"
)

const (
	defaultListenAddr = ":1337"
	defaultTimeout    = 5 * time.Second
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Config holds application configuration loaded from file.
type Config struct {
	Server   Server `yaml:"server"`
	Log      Log    `yaml:"log"`
	Pools    []Pool `yaml:"pools"`
	Scenario []Step `yaml:"scenario"`
}

// Server configures the HTTP transport.
type Server struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// Log configures the zap logger.
type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Pool describes a pool created at startup. Quantities are decimal strings
// ("1.5"); fees are percents ("0.1" is 0.1%).
type Pool struct {
	Name            string `yaml:"name"`
	Price           string `yaml:"price"`
	MinFee          string `yaml:"min_fee"`
	MaxFee          string `yaml:"max_fee"`
	LiquidityTarget string `yaml:"liquidity_target"`
}

// Step is one scenario operation against a configured pool.
type Step struct {
	Op     string `yaml:"op"`
	Pool   string `yaml:"pool"`
	Amount string `yaml:"amount"`
}

// Load reads the config from a YAML file path, fills defaults and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "os.Open")
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoder.Decode")
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "cfg.Validate")
	}
	return &cfg, nil
}

// Default returns the built-in configuration: one pool and the reference
// scenario run against it.
func Default() *Config {
	cfg := Config{
		Pools: []Pool{{
			Name:            "reference",
			Price:           "1.5",
			MinFee:          "0.1",
			MaxFee:          "9",
			LiquidityTarget: "90",
		}},
		Scenario: []Step{
			{Op: OpAddLiquidity, Pool: "reference", Amount: "100"},
			{Op: OpSwap, Pool: "reference", Amount: "6"},
			{Op: OpAddLiquidity, Pool: "reference", Amount: "10"},
			{Op: OpSwap, Pool: "reference", Amount: "30"},
			{Op: OpRemoveLiquidity, Pool: "reference", Amount: "109.9991"},
		},
	}
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}
	if c.Server.GraceTimeout == 0 {
		c.Server.GraceTimeout = defaultTimeout
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultTimeout
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = defaultTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = defaultLogFormat
	}
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var err error

	if c.Server.GraceTimeout < 0 || c.Server.RequestTimeout < 0 || c.Server.ReadHeaderTimeout < 0 {
		err = multierr.Append(err, errors.New("server timeouts must not be negative"))
	}
	if _, lerr := logging.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, errors.Wrap(lerr, "log.level"))
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		err = multierr.Append(err, errors.Errorf("log.encoding %q: want json or console", c.Log.Encoding))
	}

	names := make(map[string]struct{}, len(c.Pools))
	for i, p := range c.Pools {
		if p.Name == "" {
			err = multierr.Append(err, errors.Errorf("pools[%d]: name is required", i))
		} else if _, dup := names[p.Name]; dup {
			err = multierr.Append(err, errors.Errorf("pools[%d]: duplicate name %q", i, p.Name))
		}
		names[p.Name] = struct{}{}

		if _, perr := p.Params(); perr != nil {
			err = multierr.Append(err, errors.Wrapf(perr, "pools[%d]", i))
		}
	}

	for i, s := range c.Scenario {
		switch s.Op {
		case OpAddLiquidity, OpRemoveLiquidity, OpSwap:
		default:
			err = multierr.Append(err, errors.Errorf("scenario[%d]: unknown op %q", i, s.Op))
		}
		if _, ok := names[s.Pool]; !ok {
			err = multierr.Append(err, errors.Errorf("scenario[%d]: unknown pool %q", i, s.Pool))
		}
		if _, aerr := s.Value(); aerr != nil {
			err = multierr.Append(err, errors.Wrapf(aerr, "scenario[%d]", i))
		}
	}

	return err
}

// Params parses the pool description into scaled pool parameters.
func (p Pool) Params() (lppool.Params, error) {
	price, err := units.Parse(p.Price)
	if err != nil {
		return lppool.Params{}, errors.Wrap(err, "price")
	}
	minFee, err := units.ParsePercent(p.MinFee)
	if err != nil {
		return lppool.Params{}, errors.Wrap(err, "min_fee")
	}
	maxFee, err := units.ParsePercent(p.MaxFee)
	if err != nil {
		return lppool.Params{}, errors.Wrap(err, "max_fee")
	}
	target, err := units.Parse(p.LiquidityTarget)
	if err != nil {
		return lppool.Params{}, errors.Wrap(err, "liquidity_target")
	}

	params := lppool.Params{
		Price:           units.Price(price),
		MinFee:          minFee,
		MaxFee:          maxFee,
		LiquidityTarget: units.TokenAmount(target),
	}
	if err := params.Validate(); err != nil {
		return lppool.Params{}, err
	}
	return params, nil
}

// Value parses the step amount into its scaled form.
func (s Step) Value() (uint64, error) {
	v, err := units.Parse(s.Amount)
	if err != nil {
		return 0, errors.Wrap(err, "amount")
	}
	return v, nil
}
