package modules

import (
	"io/ioutil"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

// Defaults is the optional yaml file seeding the panel before the operator
// touches anything. Flags still win over file values.
type Defaults struct {
	Endpoint             string `yaml:"endpoint"`
	models.Configuration `yaml:",inline"`
}

func LoadDefaults(path string) (*Defaults, error) {
	filename, _ := filepath.Abs(path)
	file, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	defaults := &Defaults{}
	if err := yaml.Unmarshal(file, defaults); err != nil {
		return nil, err
	}

	if defaults.Symbol == "" {
		defaults.Symbol = models.DefaultSymbol
	}
	if defaults.MaxPriceDeviation == 0 {
		defaults.MaxPriceDeviation = models.DefaultMaxPriceDeviation
	}
	if defaults.Endpoint == "" {
		defaults.Endpoint = EndpointFromEnv()
	}

	return defaults, nil
}
