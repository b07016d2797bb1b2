package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kalbasit/hexdump"
)

// Profile is the line layout of a dump, as stored in a config file or a --profile file.
type Profile struct {
	Base        hexdump.Base       `yaml:"base"`
	Endian      hexdump.Endianness `yaml:"endian"`
	GroupSize   int                `yaml:"group_size"`
	Groups      int                `yaml:"groups"`
	OffsetWidth int                `yaml:"offset_width"`
	Squeeze     bool               `yaml:"squeeze"`
	Template    string             `yaml:"template"`
}

// NewProfile describes cfg.
func NewProfile(cfg *hexdump.Config) Profile {
	return Profile{
		Base:        cfg.Base(),
		Endian:      cfg.Endianness(),
		GroupSize:   cfg.GroupSize(),
		Groups:      cfg.GroupsPerLine(),
		OffsetWidth: cfg.OffsetWidth(),
		Squeeze:     !cfg.DisplayDuplicates(),
		Template:    cfg.Template(),
	}
}

// Config builds the formatting configuration the profile describes.
func (p Profile) Config() (*hexdump.Config, error) {
	opts := []hexdump.Option{
		hexdump.WithBase(p.Base),
		hexdump.WithEndianness(p.Endian),
		hexdump.WithGroupSize(p.GroupSize),
		hexdump.WithGroupsPerLine(p.Groups),
		hexdump.WithDisplayDuplicates(!p.Squeeze),
		hexdump.WithTemplate(p.Template),
	}

	if p.OffsetWidth != hexdump.OffsetWidthAuto {
		opts = append(opts, hexdump.WithOffsetWidth(p.OffsetWidth))
	}

	return hexdump.NewConfig(opts...)
}

// Marshal renders the profile as YAML.
func (p Profile) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(p); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// profileFromViper reads the layout settings from the flags, environment and config files.
func profileFromViper(v *viper.Viper) (Profile, error) {
	base, err := hexdump.ParseBase(v.GetString("base"))
	if err != nil {
		return Profile{}, err
	}

	endian, err := hexdump.ParseEndianness(v.GetString("endian"))
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Base:        base,
		Endian:      endian,
		GroupSize:   v.GetInt("group_size"),
		Groups:      v.GetInt("groups"),
		OffsetWidth: v.GetInt("offset_width"),
		Squeeze:     v.GetBool("squeeze"),
		Template:    v.GetString("template"),
	}, nil
}

// loadProfile reads a profile file and returns the settings it sets. Unknown keys and invalid
// values are rejected; keys left out keep their configured values.
func loadProfile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	settings := map[string]any{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	return settings, nil
}
