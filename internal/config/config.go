package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultJournalName names the journal used when no config file exists yet
	DefaultJournalName = "default"

	// DefaultJournalFile is the backing file of the default journal, next to the config
	DefaultJournalFile = "journal.json"

	configDirName  = ".daybook"
	configFileName = "config.yaml"
)

// Config represents the global daybook configuration
type Config struct {
	DefaultJournal string              `yaml:"default_journal"`
	LogLevel       slog.Level          `yaml:"log_level"`
	Journals       map[string]*Journal `yaml:"journals"`
}

// Journal points a name at a JSON backing file
type Journal struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Validate validates the journal configuration
func (j *Journal) Validate() error {
	if j == nil {
		return fmt.Errorf("journal settings are empty")
	}
	return validation.ValidateStruct(j,
		validation.Field(&j.Name, validation.Required),
		validation.Field(&j.Path, validation.Required),
	)
}

// GetConfigPathFunc is the function used to get the config path.
// Tests override it to point at a temporary directory.
var GetConfigPathFunc = getConfigPathDefault

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	return GetConfigPathFunc()
}

func getConfigPathDefault() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName, configFileName), nil
}

// NewConfig returns an empty configuration with defaults applied
func NewConfig() *Config {
	return &Config{
		LogLevel: slog.LevelWarn,
		Journals: make(map[string]*Journal),
	}
}

// LoadConfig loads the configuration file. Without a config file the
// result holds a single default journal stored next to where the config
// would live, so the tool works before anything has been set up.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile is LoadConfig for an explicit config path
func LoadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := NewConfig()
		if err := cfg.AddJournal(&Journal{
			Name: DefaultJournalName,
			Path: filepath.Join(filepath.Dir(configPath), DefaultJournalFile),
		}); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("config file is empty (possibly corrupted)")
	}

	config := &Config{LogLevel: slog.LevelWarn}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Journals == nil {
		return nil, fmt.Errorf("config file is corrupted: 'journals' field is null")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks every journal and that the default, if set, exists
func (c *Config) Validate() error {
	names := make([]interface{}, 0, len(c.Journals))
	for _, name := range c.ListJournals() {
		if err := c.Journals[name].Validate(); err != nil {
			return fmt.Errorf("journal %s: %w", name, err)
		}
		names = append(names, name)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultJournal,
			validation.When(c.DefaultJournal != "", validation.In(names...).Error("must name a configured journal")),
		),
	)
}

// Save saves the configuration file
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile is Save for an explicit config path
func (c *Config) SaveFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// AddJournal adds a new journal to the configuration
func (c *Config) AddJournal(journal *Journal) error {
	if journal.Name == "" {
		return fmt.Errorf("journal name is required")
	}
	if journal.Path == "" {
		return fmt.Errorf("journal path is required")
	}
	if _, exists := c.Journals[journal.Name]; exists {
		return fmt.Errorf("journal %s already exists", journal.Name)
	}

	if c.Journals == nil {
		c.Journals = make(map[string]*Journal)
	}
	c.Journals[journal.Name] = journal
	if len(c.Journals) == 1 {
		c.DefaultJournal = journal.Name
	}

	return nil
}

// GetJournal returns a journal by name
func (c *Config) GetJournal(name string) (*Journal, error) {
	if len(c.Journals) == 0 {
		return nil, fmt.Errorf("no journals configured")
	}
	journal, exists := c.Journals[name]
	if !exists {
		return nil, fmt.Errorf("journal %s not found", name)
	}
	return journal, nil
}

// GetDefaultJournal returns the default journal
func (c *Config) GetDefaultJournal() (*Journal, error) {
	if len(c.Journals) == 0 {
		return nil, fmt.Errorf("no journals configured")
	}
	if c.DefaultJournal == "" {
		return nil, fmt.Errorf("no default journal set")
	}

	return c.GetJournal(c.DefaultJournal)
}

// SetDefaultJournal sets the default journal
func (c *Config) SetDefaultJournal(name string) error {
	if len(c.Journals) == 0 {
		return fmt.Errorf("no journals configured")
	}
	if _, exists := c.Journals[name]; !exists {
		return fmt.Errorf("journal %s not found", name)
	}
	c.DefaultJournal = name
	return nil
}

// RemoveJournal removes a journal from the configuration.
// The backing file is left on disk.
func (c *Config) RemoveJournal(name string) error {
	if len(c.Journals) == 0 {
		return fmt.Errorf("no journals configured")
	}
	if _, exists := c.Journals[name]; !exists {
		return fmt.Errorf("journal %s not found", name)
	}

	delete(c.Journals, name)

	if c.DefaultJournal == name {
		c.DefaultJournal = ""
	}

	return nil
}

// ListJournals returns all journal names, sorted
func (c *Config) ListJournals() []string {
	names := make([]string, 0, len(c.Journals))
	for name := range c.Journals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}
