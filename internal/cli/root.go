// Package cli implements the hexdump command.
package cli

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kalbasit/hexdump"
)

// Version of the hexdump command.
const Version = "0.1.0"

const envPrefix = "HEXDUMP"

// Execute runs the hexdump command and exits with status 1 on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Every call has its own settings.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Version: Version,
		Use:     "hexdump [flags] [FILE...]",
		Short:   "display file contents in hexadecimal, octal, binary or decimal",
		Long: `
Display file contents in hexadecimal, octal, binary or decimal.

Each FILE is dumped in turn; with no FILE, or when FILE is -, standard input is read.
zstd and gzip inputs are decompressed unless --decompress=none.
`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, v, args)
		},
	}

	OptionString(rootCmd, v, "config", "c", "", "config file")
	OptionSwitch(rootCmd, v, "debug", "d", "produce debug output")
	OptionSwitch(rootCmd, v, "verbose", "v", "produce diagnostic output")

	OptionString(rootCmd, v, "base", "b", hexdump.BaseHex.String(), "numeral base: hex, oct, bin or dec")
	OptionString(rootCmd, v, "endian", "e", hexdump.LittleEndian.String(), "byte order inside a group: little or big")
	OptionInt(rootCmd, v, "group-size", "g", hexdump.DefaultGroupSize, "bytes per group (1-8)")
	OptionInt(rootCmd, v, "groups", "n", hexdump.DefaultGroupsPerLine, "groups per line")
	OptionInt(rootCmd, v, "offset-width", "w", hexdump.OffsetWidthAuto, "offset digits (0 = auto)")
	OptionSwitch(rootCmd, v, "squeeze", "s", "replace runs of identical lines with a single *")
	OptionString(rootCmd, v, "template", "t", hexdump.DefaultTemplate, "line template using #[OFFSET], #[RAW] and #[ASCII]")
	OptionString(rootCmd, v, "profile", "", "", "YAML layout profile")

	OptionString(rootCmd, v, "skip", "j", "0", "skip this many bytes of each input")
	OptionString(rootCmd, v, "offset", "o", "0", "add this to the displayed offsets")
	OptionString(rootCmd, v, "length", "l", "", "dump at most this many bytes of each input")
	OptionString(rootCmd, v, "decompress", "", "auto", "input decoding: auto, none, zstd or gzip")

	rootCmd.AddCommand(newConfigCmd(v))

	return rootCmd
}

func viperKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// OptionString adds a persistent string flag bound to the setting of the same name.
func OptionString(cmd *cobra.Command, v *viper.Viper, name, flag, defaultValue, description string) {
	cmd.PersistentFlags().StringP(name, flag, defaultValue, description)
	bindFlag(cmd, v, name)
}

// OptionInt adds a persistent int flag bound to the setting of the same name.
func OptionInt(cmd *cobra.Command, v *viper.Viper, name, flag string, defaultValue int, description string) {
	cmd.PersistentFlags().IntP(name, flag, defaultValue, description)
	bindFlag(cmd, v, name)
}

// OptionSwitch adds a persistent boolean flag bound to the setting of the same name.
func OptionSwitch(cmd *cobra.Command, v *viper.Viper, name, flag, description string) {
	cmd.PersistentFlags().BoolP(name, flag, false, description)
	bindFlag(cmd, v, name)
}

func bindFlag(cmd *cobra.Command, v *viper.Viper, name string) {
	err := v.BindPFlag(viperKey(name), cmd.PersistentFlags().Lookup(name))
	cobra.CheckErr(err)
}

// defaultConfigFiles lists the config files read when --config is not given, in order.
func defaultConfigFiles() []string {
	var files []string

	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "hexdump", "config.yaml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".hexdump.yaml"))
	}

	return files
}

// initConfig loads the config file and profile. Flags override the environment, which overrides
// the profile, which overrides the config file.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	cfgFile := v.GetString("config")
	if cfgFile == "" {
		for _, file := range defaultConfigFiles() {
			if _, err := os.Stat(file); err == nil {
				cfgFile = file

				break
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	if profile := v.GetString("profile"); profile != "" {
		settings, err := loadProfile(profile)
		if err != nil {
			return err
		}

		if err := v.MergeConfigMap(settings); err != nil {
			return fmt.Errorf("profile %s: %w", profile, err)
		}
	}

	if v.GetBool("debug") {
		var buf bytes.Buffer

		if err := v.WriteConfigTo(&buf); err != nil {
			return err
		}

		log.Printf("config file: %s\n### START ###\n%s\n### END ###\n", v.ConfigFileUsed(), buf.String())
	}

	return nil
}
