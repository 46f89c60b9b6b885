package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed example-config.yaml
var ExampleConfig string

type Config struct {
	BaseURL             string             `yaml:"base_url" env:"HOBBY_BASE_URL"`
	Cookies             string             `yaml:"cookies" env:"HOBBY_COOKIES"`
	Proxy               string             `yaml:"proxy" env:"HOBBY_PROXY"`
	LogLevel            string             `yaml:"log_level" env:"HOBBY_LOG_LEVEL"`
	DisplaynameTemplate string             `yaml:"displayname_template" env:"HOBBY_DISPLAYNAME_TEMPLATE"`
	LogoutNext          string             `yaml:"logout_next" env:"HOBBY_LOGOUT_NEXT"`
	displaynameTemplate *template.Template `yaml:"-"`
}

type umConfig Config

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	err := node.Decode((*umConfig)(c))
	if err != nil {
		return err
	}
	return c.compile()
}

func (c *Config) compile() error {
	var err error
	c.displaynameTemplate, err = template.New("displayname").Parse(c.DisplaynameTemplate)
	if err != nil {
		return fmt.Errorf("invalid displayname_template: %w", err)
	}
	return nil
}

// DefaultConfig returns the embedded example config.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(ExampleConfig), cfg); err != nil {
		panic(fmt.Errorf("embedded example config is invalid: %w", err))
	}
	return cfg
}

// LoadConfig layers the file at path (if it exists) and then HOBBY_*
// environment variables over the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		} else if err == nil {
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.compile()
}

type DisplaynameParams struct {
	FirstName string
	LastName  string
}

func (c *Config) FormatDisplayname(firstName, lastName string) string {
	if c.displaynameTemplate == nil {
		return strings.TrimSpace(firstName + " " + lastName)
	}
	var nameBuf strings.Builder
	err := c.displaynameTemplate.Execute(&nameBuf, &DisplaynameParams{
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return strings.TrimSpace(firstName + " " + lastName)
	}
	return strings.TrimSpace(nameBuf.String())
}
