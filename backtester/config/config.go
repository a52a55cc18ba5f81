package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/exchange"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/exchange/slippage"
	"github.com/thrasher-corp/execsim/common/file"
	"github.com/thrasher-corp/execsim/database"
	"github.com/thrasher-corp/execsim/exchanges/fee"
	"github.com/thrasher-corp/execsim/internal/order/limits"
	"github.com/thrasher-corp/execsim/log"
)

// LoadConfig reads the config at path, applies defaults for anything unset
// and EXECSIM_ prefixed environment overrides, then validates the result.
// An empty path loads defaults and environment overrides only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !file.Exists(path) {
			return nil, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.Squash = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	logDefaults := log.GenDefaultSettings()
	v.SetDefault("nickname", "execsim")
	v.SetDefault("execution.profile", DefaultProfile)
	v.SetDefault("execution.latencyMs", DefaultExecutionLatencyMs)
	v.SetDefault("slippage.baseBps", DefaultBaseSlippageBps.String())
	v.SetDefault("slippage.volatilityMultiplier", DefaultVolatilityMultiplier.String())
	v.SetDefault("fees.makerBps", DefaultMakerFeeBps.String())
	v.SetDefault("fees.takerBps", DefaultTakerFeeBps.String())
	v.SetDefault("limits.minNotional", DefaultMinNotional.String())
	v.SetDefault("limits.lotSize", DefaultLotSize.String())
	v.SetDefault("limits.pricePrecision", DefaultPricePrecision)
	v.SetDefault("funding.initialCash", DefaultInitialCash.String())
	v.SetDefault("persistence.store", "")
	v.SetDefault("persistence.loadOnStart", false)
	v.SetDefault("persistence.saveAfterFill", false)
	v.SetDefault("output.jsonPath", "")
	v.SetDefault("output.csvPath", "")
	v.SetDefault("replay.ordersPerSecond", DefaultOrdersPerSecond)
	v.SetDefault("replay.burst", DefaultReplayBurst)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", database.DBSQLite3)
	v.SetDefault("database.database", "execsim.db")
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.level", logDefaults.Level)
	v.SetDefault("logging.output", logDefaults.Output)
}

// decimalHook decodes strings and numbers into decimal.Decimal. Numbers read
// from a file arrive as float64 and are converted by their shortest
// representation.
func decimalHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch d := data.(type) {
	case string:
		if d == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(d)
	case float64:
		return decimal.NewFromFloat(d), nil
	case float32:
		return decimal.NewFromFloat32(d), nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case json.Number:
		return decimal.NewFromString(d.String())
	default:
		return data, nil
	}
}

// Validate checks all config settings
func (c *Config) Validate() error {
	if c == nil {
		return errNilConfig
	}
	if _, err := exchange.ParseProfile(c.Execution.Profile); err != nil {
		return err
	}
	if c.Execution.LatencyMs < 0 {
		return fmt.Errorf("execution latency %w: %d", errNegativeValue, c.Execution.LatencyMs)
	}
	if err := c.SlippageModel().Validate(); err != nil {
		return err
	}
	if err := c.Commission().Validate(); err != nil {
		return err
	}
	lvl := c.DefaultLevel()
	if err := lvl.Validate(); err != nil {
		return err
	}
	for x := range c.Limits.Symbols {
		lvl := c.Limits.Symbols[x].level()
		if lvl.Symbol == "" {
			return limits.ErrSymbolIsEmpty
		}
		if err := lvl.Validate(); err != nil {
			return fmt.Errorf("limits for %s: %w", lvl.Symbol, err)
		}
	}
	if c.Funding.InitialCash.IsNegative() {
		return fmt.Errorf("initial cash %w: %s", errNegativeValue, c.Funding.InitialCash)
	}
	if c.Replay.OrdersPerSecond < 0 {
		return fmt.Errorf("replay orders per second %w: %v", errNegativeValue, c.Replay.OrdersPerSecond)
	}
	if c.Replay.Burst < 1 {
		return fmt.Errorf("%w: %d", errReplayBurstInvalid, c.Replay.Burst)
	}
	return nil
}

// Profile returns the parsed execution profile
func (c *Config) Profile() exchange.Profile {
	p, err := exchange.ParseProfile(c.Execution.Profile)
	if err != nil {
		return exchange.UnknownProfile
	}
	return p
}

// Latency returns the simulated execution latency
func (c *Config) Latency() time.Duration {
	return time.Duration(c.Execution.LatencyMs) * time.Millisecond
}

// SlippageModel returns the configured slippage model
func (c *Config) SlippageModel() slippage.Model {
	return slippage.Model{
		BaseBps:              c.Slippage.BaseBps,
		VolatilityMultiplier: c.Slippage.VolatilityMultiplier,
	}
}

// Commission returns the configured fee schedule
func (c *Config) Commission() fee.Commission {
	return fee.Commission{
		MakerBps: c.Fees.MakerBps,
		TakerBps: c.Fees.TakerBps,
	}
}

// DefaultLevel returns the limits applied to symbols without an override
func (c *Config) DefaultLevel() limits.Level {
	return limits.Level{
		MinNotional:             c.Limits.MinNotional,
		AmountStepIncrementSize: c.Limits.LotSize,
		PricePrecision:          c.Limits.PricePrecision,
	}
}

// LimitsManager builds a limits manager from the default and symbol levels
func (c *Config) LimitsManager() (*limits.Manager, error) {
	m, err := limits.NewManager(c.DefaultLevel())
	if err != nil {
		return nil, err
	}
	if len(c.Limits.Symbols) == 0 {
		return m, nil
	}
	levels := make([]limits.Level, len(c.Limits.Symbols))
	for x := range c.Limits.Symbols {
		levels[x] = c.Limits.Symbols[x].level()
	}
	if err := m.LoadLimits(levels); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SymbolLimit) level() limits.Level {
	return limits.Level{
		Symbol:                  s.Symbol,
		MinNotional:             s.MinNotional,
		AmountStepIncrementSize: s.LotSize,
		PricePrecision:          s.PricePrecision,
	}
}

// GenerateDefault returns a config populated with every default value
func GenerateDefault() *Config {
	logCfg := log.GenDefaultSettings()
	logCfg.LoggerFileConfig = nil
	return &Config{
		Nickname: "execsim",
		Execution: ExecutionSettings{
			Profile:   DefaultProfile,
			LatencyMs: DefaultExecutionLatencyMs,
		},
		Slippage: SlippageSettings{
			BaseBps:              DefaultBaseSlippageBps,
			VolatilityMultiplier: DefaultVolatilityMultiplier,
		},
		Fees: FeeSettings{
			MakerBps: DefaultMakerFeeBps,
			TakerBps: DefaultTakerFeeBps,
		},
		Limits: LimitSettings{
			MinNotional:    DefaultMinNotional,
			LotSize:        DefaultLotSize,
			PricePrecision: DefaultPricePrecision,
		},
		Funding: FundingSettings{
			InitialCash: DefaultInitialCash,
		},
		Replay: ReplaySettings{
			OrdersPerSecond: DefaultOrdersPerSecond,
			Burst:           DefaultReplayBurst,
		},
		Database: database.Config{
			Driver:   database.DBSQLite3,
			Database: "execsim.db",
		},
		Logging: logCfg,
	}
}

// WriteConfig writes the config as indented JSON to path
func (c *Config) WriteConfig(path string) error {
	if c == nil {
		return errNilConfig
	}
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}
	return file.Write(path, data)
}

// PrintSetting logs the config settings that affect execution
func (c *Config) PrintSetting() {
	log.Infof(log.ConfigMgr, "-------------------------------------------------------------")
	log.Infof(log.ConfigMgr, "Nickname: %s", c.Nickname)
	log.Infof(log.ConfigMgr, "Execution profile: %s, latency %v", c.Profile(), c.Latency())
	log.Infof(log.ConfigMgr, "Slippage base: %s bps, volatility multiplier: %s", c.Slippage.BaseBps, c.Slippage.VolatilityMultiplier)
	log.Infof(log.ConfigMgr, "Fees maker: %s bps, taker: %s bps", c.Fees.MakerBps, c.Fees.TakerBps)
	log.Infof(log.ConfigMgr, "Limits min notional: %s, lot size: %s, %d symbol overrides", c.Limits.MinNotional, c.Limits.LotSize, len(c.Limits.Symbols))
	log.Infof(log.ConfigMgr, "Initial cash: %s", c.Funding.InitialCash)
	if c.Persistence.Store != "" {
		log.Infof(log.ConfigMgr, "State store: %s", c.Persistence.Store)
	}
	log.Infof(log.ConfigMgr, "-------------------------------------------------------------")
}
