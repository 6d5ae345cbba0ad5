package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Medium is one entry of the medium dropdown together with the sources that
// may be picked for it. A Custom medium has no fixed sources; its source is
// always typed in by the user.
type Medium struct {
	Name    string   `mapstructure:"name"    json:"name"`
	Sources []string `mapstructure:"sources" json:"sources"`
	Custom  bool     `mapstructure:"custom"  json:"custom,omitempty"`
}

type PropertyType struct {
	Code  string `mapstructure:"code"  json:"code"`
	Label string `mapstructure:"label" json:"label"`
}

// Options holds the static option sets shown by the tools. It is built once
// at start-up and never mutated; accessors hand out copies.
type Options struct {
	mediums       []Medium
	propertyTypes []PropertyType
	regions       []string
	labels        map[string]string
}

var (
	defaultMediums = []Medium{
		{Name: "email", Sources: []string{"hs-email", "newsletter"}},
		{Name: "social", Sources: []string{"linkedin", "X"}},
		{Name: "community", Sources: []string{"slack", "chapter"}},
		{Name: "events", Sources: []string{"accelevents", "zoom"}},
		{Name: "blog", Sources: []string{"blog"}},
		{Name: "podcast", Sources: []string{"opscast"}},
		{Name: "website", Sources: []string{"website"}},
		{Name: "partner", Custom: true},
	}
	defaultPropertyTypes = []PropertyType{
		{Code: "LP", Label: "Landing Page"},
		{Code: "EM", Label: "Email"},
		{Code: "FR", Label: "Form"},
		{Code: "LIS", Label: "List"},
		{Code: "NL", Label: "Newsletter"},
		{Code: "TD", Label: "Tradeshow"},
		{Code: "WB", Label: "Webinar"},
		{Code: "WF", Label: "Workflow"},
	}
	defaultRegions = []string{"NA", "EMEA", "APAC", "LATAM"}
)

func DefaultOptions() *Options {
	opts, err := NewOptions(defaultMediums, defaultPropertyTypes, defaultRegions)
	if err != nil {
		panic(err)
	}
	return opts
}

func NewOptions(mediums []Medium, propertyTypes []PropertyType, regions []string) (*Options, error) {
	if len(mediums) == 0 {
		return nil, errors.New("at least one medium is required")
	}
	if len(propertyTypes) == 0 {
		return nil, errors.New("at least one property type is required")
	}

	o := &Options{
		labels: make(map[string]string, len(propertyTypes)),
	}
	seen := make(map[string]struct{}, len(mediums))
	for _, m := range mediums {
		if m.Name == "" {
			return nil, errors.New("medium name must not be empty")
		}
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("duplicate medium %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		o.mediums = append(o.mediums, Medium{Name: m.Name, Sources: append([]string(nil), m.Sources...), Custom: m.Custom})
	}
	for _, pt := range propertyTypes {
		if pt.Code == "" {
			return nil, errors.New("property type code must not be empty")
		}
		if _, dup := o.labels[pt.Code]; dup {
			return nil, fmt.Errorf("duplicate property type %q", pt.Code)
		}
		o.labels[pt.Code] = pt.Label
		o.propertyTypes = append(o.propertyTypes, pt)
	}
	o.regions = append(o.regions, regions...)
	return o, nil
}

type optionsFile struct {
	Mediums       []Medium       `mapstructure:"mediums"`
	PropertyTypes []PropertyType `mapstructure:"property_types"`
	Regions       []string       `mapstructure:"regions"`
}

// LoadOptions returns the defaults when path is empty. Otherwise it reads a
// YAML, JSON or TOML file; sections missing from the file keep their defaults.
func LoadOptions(path string) (*Options, error) {
	if path == "" {
		return DefaultOptions(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}

	var f optionsFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode options file: %w", err)
	}
	if len(f.Mediums) == 0 {
		f.Mediums = defaultMediums
	}
	if len(f.PropertyTypes) == 0 {
		f.PropertyTypes = defaultPropertyTypes
	}
	if f.Regions == nil {
		f.Regions = defaultRegions
	}
	return NewOptions(f.Mediums, f.PropertyTypes, f.Regions)
}

func (o *Options) Mediums() []Medium {
	out := make([]Medium, 0, len(o.mediums))
	for _, m := range o.mediums {
		out = append(out, Medium{Name: m.Name, Sources: append([]string(nil), m.Sources...), Custom: m.Custom})
	}
	return out
}

func (o *Options) PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), o.propertyTypes...)
}

func (o *Options) Regions() []string {
	return append([]string(nil), o.regions...)
}

// PropertyLabel returns the label of a known property type code.
func (o *Options) PropertyLabel(code string) (string, bool) {
	label, ok := o.labels[code]
	return label, ok
}
