package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrissnell/wxastro/internal/log"
	"github.com/chrissnell/wxastro/pkg/config"
	"github.com/chrissnell/wxastro/pkg/site"
)

var (
	cfgFile       string
	configBackend string
	debug         bool
	jsonOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "wxastro",
	Short: "Weather-station derived quantities and Sun/Moon astronomy",
	Long: `wxastro computes the derived readings a weather console shows (wind chill,
heat index, dew point, wet bulb, evapotranspiration, THW and THSW) together
with solar position, Sun and Moon rise/set times and the moon phase for a
configured site. It can also serve the same calculations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to the YAML config file, or the .env file for the env backend")
	rootCmd.PersistentFlags().StringVar(&configBackend, "config-backend", config.BackendYAML, "configuration backend: yaml or env")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// loadProvider builds the configured provider. For the env backend the
// --config default is ignored unless it was set explicitly.
func loadProvider(cmd *cobra.Command) (config.ConfigProvider, error) {
	path := cfgFile
	if configBackend == config.BackendEnv && !cmd.Flags().Changed("config") {
		path = ""
	}
	return config.NewProvider(configBackend, path)
}

func loadSite(cmd *cobra.Command) (site.Site, error) {
	p, err := loadProvider(cmd)
	if err != nil {
		return site.Site{}, err
	}
	defer p.Close()

	s, err := p.GetSite()
	if err != nil {
		return site.Site{}, fmt.Errorf("loading site: %w", err)
	}
	return *s, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
