package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Storage  `mapstructure:"storage"`
	Postgres `mapstructure:"postgres"`
	LLM      `mapstructure:"llm"`
	Cache    `mapstructure:"cache"`
	Sandbox  `mapstructure:"sandbox"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Storage struct - selects the session store and question bank backends
type Storage struct {
	Driver           string `mapstructure:"driver"`
	QuestionBankFile string `mapstructure:"question_bank_file"`
}

// Postgres struct
type Postgres struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DbName       string `mapstructure:"database"`
	SSLMode      bool   `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// LLM struct - text generation provider
// Provider is "openai" for the official SDK or "compatible" for any
// OpenAI-compatible server (LM Studio, vLLM, Ollama).
type LLM struct {
	Provider    string  `mapstructure:"provider"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"` // seconds
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Cache struct - lifetime of generated questions and feedback
type Cache struct {
	TTLMinutes     int `mapstructure:"ttl_minutes"`
	CleanupMinutes int `mapstructure:"cleanup_minutes"`
}

// Sandbox struct
type Sandbox struct {
	TimeoutMs    int `mapstructure:"timeout_ms"`
	MaxCallStack int `mapstructure:"max_call_stack"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	// .env is optional; real environment variables still win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	viper.SetConfigName("config")
	if env != "" {
		viper.SetConfigName("config." + env)
	}
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil && env != "" {
		// fall back to the shared config.yaml when no per-env file exists
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
