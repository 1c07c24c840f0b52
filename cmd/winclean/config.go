package main

import (
	"fmt"
	"os"

	"github.com/fenilsonani/winclean/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows where the config file lives and the effective configuration after environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			if cfgPath, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
			fmt.Fprintln(out, "Run 'winclean config init' to create one.")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			if cfgPath, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("config file already exists: %s", cfgPath)
		}

		if err := config.Save(config.GetDefault(), cfgPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
