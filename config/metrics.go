package config

import "fmt"

// MetricsConfig selects the metrics backends.
type MetricsConfig struct {
	Prometheus PrometheusConfig `json:"prometheus"`
	Influx     InfluxConfig     `json:"influx"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	c.Prometheus.SetDefaults()
}

// Validate checks every backend section.
func (c MetricsConfig) Validate() error {
	if err := c.Prometheus.Validate(); err != nil {
		return err
	}
	return c.Influx.Validate()
}

// PrometheusConfig configures the Prometheus exposition server.
type PrometheusConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *PrometheusConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":9090"
	}
}

// Validate checks mandatory fields.
func (c PrometheusConfig) Validate() error {
	if c.Enabled && c.Address == "" {
		return fmt.Errorf("prometheus address is required")
	}
	return nil
}

// InfluxConfig configures the InfluxDB sink.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// Validate checks mandatory fields.
func (c InfluxConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" {
		return fmt.Errorf("influx url is required")
	}
	if c.Org == "" {
		return fmt.Errorf("influx org is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("influx bucket is required")
	}
	return nil
}
