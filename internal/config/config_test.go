package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
		Dice: DiceConfig{
			Source: "clock",
		},
		Scripting: ScriptingConfig{
			InstructionLimit: 100_000,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "clock", cfg.Dice.Source)
	assert.Empty(t, cfg.Presets.Dir)
	assert.Equal(t, 100_000, cfg.Scripting.InstructionLimit)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
dice:
  source: seeded
  seed: 1234
presets:
  dir: content/presets
scripting:
  instruction_limit: 500
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "seeded", cfg.Dice.Source)
	assert.Equal(t, int64(1234), cfg.Dice.Seed)
	assert.Equal(t, "content/presets", cfg.Presets.Dir)
	assert.Equal(t, 500, cfg.Scripting.InstructionLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DND_DICE_SOURCE", "crypto")
	t.Setenv("DND_LOGGING_LEVEL", "error")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "crypto", cfg.Dice.Source)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Invalid(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("dice.source", "lava-lamp")
	_, err := LoadFromViper(v)
	assert.ErrorContains(t, err, "dice.source")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateDiceSource(t *testing.T) {
	for _, src := range []string{"clock", "seeded", "crypto"} {
		cfg := validConfig()
		cfg.Dice.Source = src
		assert.NoError(t, cfg.Validate(), "source %q should be valid", src)
	}
	cfg := validConfig()
	cfg.Dice.Source = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Dice.Source = "tarot"
	cfg.Scripting.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "dice.source")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

// Property-based tests

func TestPropertyInstructionLimitNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(0, 10_000_000).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid instruction limit %d rejected: %v", limit, err)
		}
	})
}

func TestPropertyNegativeInstructionLimitRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(-1_000_000, -1).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		if err := cfg.Validate(); err == nil {
			t.Fatalf("negative instruction limit %d accepted", limit)
		}
	})
}

func TestPropertyAnySeedAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Dice.Source = "seeded"
		cfg.Dice.Seed = rapid.Int64().Draw(t, "seed")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("seed %d rejected: %v", cfg.Dice.Seed, err)
		}
	})
}
