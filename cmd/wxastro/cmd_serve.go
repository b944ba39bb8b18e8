package main

import (
	"github.com/spf13/cobra"

	"github.com/chrissnell/wxastro/internal/app"
	"github.com/chrissnell/wxastro/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculations over HTTP",
	Long:  `Start the HTTP API and run until interrupted.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := loadProvider(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	if _, err := p.LoadConfig(); err != nil {
		return err
	}

	log.Infow("configuration loaded", "backend", configBackend)
	return app.New(p, log.GetSugaredLogger()).Run(cmd.Context())
}
