package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Transport TransportConfig `yaml:"transport"`
	Markup    Markup          `yaml:"markup"`
}

type ServerConfig struct {
	Port string `yaml:"port"`

	// Base URL the headless session loads the page from
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	StagingDir string `yaml:"staging_dir"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

type AlertsConfig struct {
	ClearAfter time.Duration `yaml:"clear_after"`
}

type TransportConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Markup names the elements the staging view expects the server to render.
type Markup struct {
	StagingList        string `yaml:"staging_list"`
	SelectAll          string `yaml:"select_all"`
	ApproveAll         string `yaml:"approve_all"`
	ApproveSelected    string `yaml:"approve_selected"`
	BulkEditForm       string `yaml:"bulk_edit_form"`
	BulkEditSubmit     string `yaml:"bulk_edit_submit"`
	Alerts             string `yaml:"alerts"`
	ArtworkLookup      string `yaml:"artwork_lookup"`
	ArtworkSearch      string `yaml:"artwork_search"`
	ArtworkLookupTitle string `yaml:"artwork_lookup_title"`
	RowCheckbox        string `yaml:"row_checkbox"`
	ArtworkClass       string `yaml:"artwork_class"`
}

const (
	DefaultPort       = "8080"
	DefaultBaseURL    = "http://localhost:8080"
	DefaultStagingDir = "data/staging"
	DefaultClearAfter = 4 * time.Second
	DefaultTimeout    = 30 * time.Second
	DefaultUserAgent  = "songripper-session/1.0"
)

// DefaultMarkup returns the element ids and names rendered by internal/render.
func DefaultMarkup() Markup {
	return Markup{
		StagingList:        "staging-list",
		SelectAll:          "select-all",
		ApproveAll:         "approve-btn",
		ApproveSelected:    "approve-selected-btn",
		BulkEditForm:       "bulk-edit-form",
		BulkEditSubmit:     "bulk-edit-submit",
		Alerts:             "alerts",
		ArtworkLookup:      "artwork-lookup",
		ArtworkSearch:      "artwork-search-btn",
		ArtworkLookupTitle: "artwork-lookup-title",
		RowCheckbox:        "track",
		ArtworkClass:       "artwork",
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = DefaultBaseURL
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.StagingDir == "" {
		c.Storage.StagingDir = DefaultStagingDir
	}

	if c.Alerts.ClearAfter <= 0 {
		c.Alerts.ClearAfter = DefaultClearAfter
	}

	if c.Transport.Timeout <= 0 {
		c.Transport.Timeout = DefaultTimeout
	}
	if c.Transport.UserAgent == "" {
		c.Transport.UserAgent = DefaultUserAgent
	}

	c.Markup = c.Markup.withDefaults()
}

// withDefaults fills every unset name from DefaultMarkup.
func (m Markup) withDefaults() Markup {
	d := DefaultMarkup()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.StagingList, d.StagingList)
	fill(&m.SelectAll, d.SelectAll)
	fill(&m.ApproveAll, d.ApproveAll)
	fill(&m.ApproveSelected, d.ApproveSelected)
	fill(&m.BulkEditForm, d.BulkEditForm)
	fill(&m.BulkEditSubmit, d.BulkEditSubmit)
	fill(&m.Alerts, d.Alerts)
	fill(&m.ArtworkLookup, d.ArtworkLookup)
	fill(&m.ArtworkSearch, d.ArtworkSearch)
	fill(&m.ArtworkLookupTitle, d.ArtworkLookupTitle)
	fill(&m.RowCheckbox, d.RowCheckbox)
	fill(&m.ArtworkClass, d.ArtworkClass)
	return m
}
