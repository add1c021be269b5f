package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/server"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection API over HTTP",
	Long: `Serve a small JSON API: catalog lookup, cash projections, and share-link
encode/decode. Binds to loopback by default.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	srv := server.New(addr)
	fmt.Printf("  Serving on http://%s\n", srv.Addr())
	return srv.ListenAndServe()
}
