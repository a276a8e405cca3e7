package utils

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

// DefaultAWSRegion is used whenever AWS_REGION is not supplied.
const DefaultAWSRegion = "us-east-2"

type Config struct {
	Env           string `mapstructure:"ENV"`
	AWSSecretName string `mapstructure:"AWS_SECRET_NAME"`
	AWSRegion     string `mapstructure:"AWS_REGION"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	SyslogAddress string `mapstructure:"SYSLOG_ADDRESS"`
	SyslogAppName string `mapstructure:"SYSLOG_APP_NAME"`
}

// configKeys lists every key the Config struct carries. Viper's AutomaticEnv
// does not surface unbound keys to Unmarshal, so each one is bound explicitly
// to keep a .env-less crontab environment working.
var configKeys = []string{
	"ENV",
	"AWS_SECRET_NAME",
	"AWS_REGION",
	"LOG_LEVEL",
	"SYSLOG_ADDRESS",
	"SYSLOG_APP_NAME",
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	v.SetDefault("AWS_REGION", DefaultAWSRegion)

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	// Create config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate critical configurations
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.AWSSecretName == "" {
		return fmt.Errorf("missing AWS_SECRET_NAME environment variable")
	}

	if config.AWSRegion == "" {
		config.AWSRegion = DefaultAWSRegion
	}

	return nil
}

func LoadCustomConfig(path string, val interface{}) error {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Allow overriding config via environment variables
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	for _, key := range structEnvKeys(val) {
		_ = v.BindEnv(key)
	}

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	if err := v.Unmarshal(&val); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	return nil
}

// structEnvKeys lists the mapstructure keys carried by val's struct type.
// LoadCustomConfig takes arbitrary structs, so the keys are read off the tags
// and bound the same way LoadConfig binds configKeys.
func structEnvKeys(val interface{}) []string {
	t := reflect.TypeOf(val)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("mapstructure"), ",")[0]
		if tag != "" && tag != "-" {
			keys = append(keys, tag)
		}
	}
	return keys
}
