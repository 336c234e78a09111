package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/jobmate/internal/career"
)

const (
	app       = "jobmate"
	envPrefix = "JOBMATE"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      *ServerConfig   `mapstructure:"server"`
	Security    *SecurityConfig `mapstructure:"security"`
	CORS        *CORSConfig     `mapstructure:"cors"`
	Model       *ModelConfig    `mapstructure:"model"`
	Matcher     *MatcherConfig  `mapstructure:"matcher"`
	AI          *AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	MaxUploadBytes  int64         `mapstructure:"max-upload-bytes"`
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SecurityConfig struct {
	SharedSecret     string `mapstructure:"shared-secret"`
	SharedSecretFile string `mapstructure:"shared-secret-file"`
	RequireSignature bool   `mapstructure:"require-signature"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed-origins"`
}

type ModelConfig struct {
	career.ModelConfig `mapstructure:",squash"`
	TopK               int `mapstructure:"top-k"`
}

type MatcherConfig struct {
	Strategy string `mapstructure:"strategy"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmate scores resumes against jobs and predicts career paths",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmate.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	model := career.DefaultModelConfig()

	v.SetDefault("environment", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 30*time.Second)
	v.SetDefault("server.idle-timeout", 60*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)
	v.SetDefault("server.max-upload-bytes", 5<<20)

	v.SetDefault("security.shared-secret", "")
	v.SetDefault("security.shared-secret-file", "")
	v.SetDefault("security.require-signature", false)

	v.SetDefault("cors.allowed-origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("model.seed", model.Seed)
	v.SetDefault("model.samples", model.Samples)
	v.SetDefault("model.trees", model.Trees)
	v.SetDefault("model.max-depth", model.MaxDepth)
	v.SetDefault("model.top-k", 5)

	v.SetDefault("matcher.strategy", "exact")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	return config, nil
}
