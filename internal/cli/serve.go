package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/server"
)

// serveCommand creates the serve command for running the gallery server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Long: `Serve the gallery over HTTP.

The page measures its container and re-requests the two-column fragment
whenever the window is resized, so the columns stay balanced at every width.
Rendered responses are cached in memory by layout fingerprint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, cacheSize)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, else :8080)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "rendered response cache entries (negative disables)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, cacheSize int) error {
	cfg, items, err := c.loadSite(cmd)
	if err != nil {
		return err
	}

	if addr != "" {
		cfg.Server.Addr = addr
	}
	if cmd.Flags().Changed("cache-size") {
		cfg.Server.CacheSize = cacheSize
	}
	if err := cfg.Revalidate(); err != nil {
		return err
	}

	srv, err := server.New(cfg, items, server.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	defer srv.Close()

	printInfo("Serving %s", StyleHighlight.Render(cfg.Site.Title))
	printDetail("%d work items", len(items))
	printFile(StyleLink.Render(displayURL(cfg.Server.Addr)))
	printNewline()

	return srv.ListenAndServe(cmd.Context())
}

// displayURL turns a listen address into a clickable local URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
