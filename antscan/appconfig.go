package main

import (
	"github.com/spf13/viper"
	"github.com/wiless/antmodel"
	"github.com/wiless/antmodel/pafx"

	log "github.com/sirupsen/logrus"
)

// AppConfig  Struct for the app parameters, read from antscan.{yaml,json,toml} in indir
type AppConfig struct {
	antmodel.Analyzer `mapstructure:",squash"`
	// Selector rules file (yaml), relative to indir
	Rules    string `mapstructure:"rules"`
	DumpJSON bool   `mapstructure:"dump_json"`
	LogLevel string `mapstructure:"log_level"`
	// Antenna model packaged with the patterns, see pafx.Model
	Pafx pafx.Model `mapstructure:"pafx"`
}

func (c *AppConfig) SetDefault() {
	c.Analyzer.SetDefault()
	c.Rules = ""
	c.DumpJSON = false
	c.LogLevel = "info"
	c.Pafx.SetDefault()
}

// ReadAppConfig reads all the configuration for the app
func ReadAppConfig(dir string) AppConfig {
	var config AppConfig
	config.SetDefault()

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("antscan")

	// Set all the default values
	{
		th := config.Analyzer.Thresholds
		v.SetDefault("workers", config.Analyzer.Workers)
		v.SetDefault("thresholds.max_gain_tolerance_db", th.MaxGainToleranceDb)
		v.SetDefault("thresholds.lobe_gain_fall_db", th.LobeGainFallDb)
		v.SetDefault("thresholds.beamwidth_gain_fall_db", th.BeamwidthGainFallDb)
		v.SetDefault("thresholds.half_plane_epsilon", th.HalfPlaneEpsilon)
		v.SetDefault("rules", config.Rules)
		v.SetDefault("dump_json", config.DumpJSON)
		v.SetDefault("log_level", config.LogLevel)

		m := config.Pafx
		v.SetDefault("pafx.filename", m.Filename)
		v.SetDefault("pafx.version", m.Version)
		v.SetDefault("pafx.name", m.Name)
		v.SetDefault("pafx.type", m.Type)
		v.SetDefault("pafx.cost_unit", m.CostUnit)
		v.SetDefault("pafx.supp_elec_tilt", m.SupportsElectricalTilt)
		v.SetDefault("pafx.controller_name", m.ControllerName)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Info("ReadInConfig ", err)
	}

	// Load from the external configuration files
	if err := v.Unmarshal(&config); err != nil {
		log.Errorf("Decoding config, using defaults: %v", err)
		config.SetDefault()
	}
	if err := config.Analyzer.Thresholds.Validate(); err != nil {
		log.Errorf("Invalid thresholds, using defaults: %v", err)
		config.Analyzer.Thresholds.SetDefault()
	}
	log.Debugf("AppConfig %+v", config)
	return config
}
