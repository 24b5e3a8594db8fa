package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pocket-tanks/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after file lookup and flag overrides, and
where it was loaded from.

Search order: --config, ~/.pockettanks/configs/tank.yaml,
./configs/tank.yaml, then the built-in defaults.

Examples:
  pockettanks config
  pockettanks config --defaults > ~/.pockettanks/configs/tank.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the commented default file instead")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	data, err := yaml.Marshal(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# source: %s\n", appSource)
	fmt.Print(string(data))
}
