package config

import (
	"log"

	"github.com/spf13/viper"
)

const DefaultThumbnailURL = "https://images.unsplash.com/photo-1611162616475-46b635cb6868?w=400&q=80"

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBPath     string `mapstructure:"DB_PATH"`

	YouTubeAPIKey       string `mapstructure:"YOUTUBE_API_KEY"`
	AMQPURL             string `mapstructure:"AMQP_URL"`
	APIURL              string `mapstructure:"API_URL"`
	StateDir            string `mapstructure:"STATE_DIR"`
	DefaultThumbnailURL string `mapstructure:"DEFAULT_THUMBNAIL_URL"`
	ProbeMedia          bool   `mapstructure:"PROBE_MEDIA"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "videoshare")
	v.SetDefault("DB_PATH", "videoshare.db")
	v.SetDefault("YOUTUBE_API_KEY", "")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("API_URL", "")
	v.SetDefault("STATE_DIR", ".state")
	v.SetDefault("DEFAULT_THUMBNAIL_URL", DefaultThumbnailURL)
	v.SetDefault("PROBE_MEDIA", false)
}

// LoadConfig reads app.env from path (or the working directory when path is
// empty) and overlays environment variables on top of it.
func LoadConfig(paths ...string) (config Config, err error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("app") // Name of our config file (without extension)
	v.SetConfigType("env") // Look for .env extension

	setDefaults(v)
	v.AutomaticEnv() // Read environment variables that match

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using environment variables or defaults.")
		} else {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
