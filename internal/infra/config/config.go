package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Threshold        float64 `env:"THRESHOLD"         envDefault:"27.0"`
	MinSceneLen      string  `env:"MIN_SCENE_LEN"     envDefault:"15"`
	WeightHue        float64 `env:"WEIGHT_HUE"        envDefault:"1.0"`
	WeightSaturation float64 `env:"WEIGHT_SATURATION" envDefault:"1.0"`
	WeightValue      float64 `env:"WEIGHT_VALUE"      envDefault:"1.0"`
	EffectiveWidth   int     `env:"EFFECTIVE_WIDTH"   envDefault:"256"`

	SourceBackend string `env:"SOURCE_BACKEND" envDefault:"ffmpeg"`
	FFmpegPath    string `env:"FFMPEG_PATH"    envDefault:"ffmpeg"`
	FFprobePath   string `env:"FFPROBE_PATH"   envDefault:"ffprobe"`

	OutputFormat string `env:"OUTPUT_FORMAT" envDefault:"console"`
	WorkerCount  int    `env:"WORKER_COUNT"  envDefault:"2"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"false"`
	MetricsPort    int    `env:"METRICS_PORT"    envDefault:"8083"`
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
