// config loads the analyzer's run configuration from a yaml file, an
// alternative to passing every path on the command line.
package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// Config is a full run description: the dataset to read, how to parse it,
// where to write the rendered tree, and how chatty the logger is.
type Config struct {
	// Loglevel is the logging verbosity, one of error, warn, info, debug.
	Loglevel Loglevel `yaml:"loglevel,omitempty"`

	// Data describes the input dataset.
	Data Data `yaml:"data"`

	// Output names the files to produce; empty entries are skipped.
	Output Output `yaml:"output,omitempty"`
}

// Data describes the input dataset and how to tokenize it.
type Data struct {
	// Path is the delimited data file, attribute columns first and the
	// class label last.
	Path string `yaml:"path"`

	// Delimiter separates fields, a single character. Defaults to a comma.
	Delimiter string `yaml:"delimiter,omitempty"`

	// Header marks the first row as attribute names.
	Header bool `yaml:"header,omitempty"`

	// Attributes optionally names the attribute columns of a headerless
	// file, replacing the generated a1..aN names.
	Attributes []string `yaml:"attributes,omitempty"`
}

// Output lists the files a run may write.
type Output struct {
	Text  string `yaml:"text,omitempty"`
	Dot   string `yaml:"dot,omitempty"`
	SVG   string `yaml:"svg,omitempty"`
	Model string `yaml:"model,omitempty"`
}

// Loglevel is a logging level name validated while unmarshaling.
type Loglevel string

// UnmarshalYAML lowercases the level and rejects names logrus would not
// accept.
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	s = strings.ToLower(s)
	switch s {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s, must be one of [error, warn, info, debug]", s)
	}

	*loglevel = Loglevel(s)
	return nil
}

// Parse reads a yaml configuration from rd, validates it, and fills in the
// delimiter and loglevel defaults.
func Parse(rd io.Reader) (*Config, error) {
	in, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	config := new(Config)
	if err := yaml.Unmarshal(in, config); err != nil {
		return nil, err
	}

	if config.Data.Path == "" {
		return nil, fmt.Errorf("no data path in configuration")
	}
	if config.Data.Header && len(config.Data.Attributes) > 0 {
		return nil, fmt.Errorf("attributes and header are mutually exclusive, the header already names the attributes")
	}

	if config.Data.Delimiter == "" {
		config.Data.Delimiter = ","
	}
	if utf8.RuneCountInString(config.Data.Delimiter) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, have %q", config.Data.Delimiter)
	}

	if config.Loglevel == "" {
		config.Loglevel = "info"
	}

	return config, nil
}
