package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "output the effective layout as YAML",
		Long: `
Output the effective layout, from flags, environment, profile and config file, as YAML.
The output can be used as a config file or passed to --profile.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileFromViper(v)
			if err != nil {
				return err
			}

			cfg, err := profile.Config()
			if err != nil {
				return err
			}

			data, err := NewProfile(cfg).Marshal()
			if err != nil {
				return err
			}

			path, err := cmd.Flags().GetString("write")
			if err != nil {
				return err
			}

			if path == "" {
				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			if v.GetBool("verbose") {
				log.Printf("writing %s\n", path)
			}

			return os.WriteFile(path, data, 0o644)
		},
	}

	configCmd.Flags().String("write", "", "write to this file instead of standard output")

	return configCmd
}
