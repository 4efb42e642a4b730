package config

import (
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Property struct {
	URL     string `yaml:"url" json:"url"`
	Caption string `yaml:"caption" json:"caption"`
}

type Config struct {
	App struct {
		Host string `yaml:"host" json:"host"`
		Port int    `yaml:"port" json:"port"`
		// AllowedOrigins may read the JSON API cross-origin. Empty means
		// same-origin only.
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	Data struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"data" json:"data"`

	Dashboard struct {
		Title         string     `yaml:"title" json:"title"`
		Subtitle      string     `yaml:"subtitle" json:"subtitle"`
		HistogramBins int        `yaml:"histogram_bins" json:"histogram_bins"`
		Featured      []Property `yaml:"featured" json:"featured"`
	} `yaml:"dashboard" json:"dashboard"`

	Export struct {
		RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst      int     `yaml:"burst" json:"burst"`
		// The histogram image is fetched on every page load, so it gets its
		// own, looser budget.
		ChartRatePerSec float64 `yaml:"chart_rate_per_sec" json:"chart_rate_per_sec"`
		ChartBurst      int     `yaml:"chart_burst" json:"chart_burst"`
	} `yaml:"export" json:"export"`

	Logging struct {
		Level       string `yaml:"level" json:"level"`
		Development bool   `yaml:"development" json:"development"`
	} `yaml:"logging" json:"logging"`
}

func Default() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38472
	cfg.Data.Path = "data/leads.csv"
	cfg.Dashboard.Title = "Vie L’Ven AI-Powered Lead Dashboard"
	cfg.Dashboard.Subtitle = "Explore and personalize communication with high-value leads using AI-enriched data"
	cfg.Dashboard.HistogramBins = 10
	cfg.Dashboard.Featured = []Property{
		{URL: "https://tse2.mm.bing.net/th/id/OIP.EpNXeDwoyexJvCDm0pSkpAHaE8?pid=Api", Caption: "Oceanfront Villa"},
		{URL: "https://tse2.mm.bing.net/th/id/OIP.5nkOUnsT5UJPJMjQi92qQQHaEK?pid=Api", Caption: "Resort Pool Deck"},
		{URL: "https://tse1.mm.bing.net/th/id/OIP.sF4-xT2lJFe8WTmEOXWBkAHaJ1?pid=Api", Caption: "Panoramic Lounge View"},
	}
	cfg.Export.RatePerSec = 2
	cfg.Export.Burst = 5
	cfg.Export.ChartRatePerSec = 10
	cfg.Export.ChartBurst = 30
	cfg.Logging.Level = "info"
	return cfg
}

// Load reads path over the defaults, so a partial file only overrides the
// keys it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Addr is the listen address for the HTTP engine.
func (c Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}
