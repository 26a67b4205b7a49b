package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/adapters/driving/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deletion event webhook",
	Long: `Start an HTTP server that receives Firestore document deletion events.

Routes:
  POST /events/content-deleted   run the cleanup for one event
  GET  /healthz                  liveness probe
  GET  /metrics                  Prometheus metrics

The response status tells the event source whether to redeliver: 500 when
dependent records could not be discovered or removed, 200 otherwise.

Examples:
  cascade serve
  cascade serve --port 9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use server.port setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if cleanupService == nil {
		return notConfigured("cleanup service")
	}

	if port == 0 && settingsService != nil {
		if settings, serr := settingsService.Get(); serr == nil {
			port = settings.Server.Port
		}
	}
	if port == 0 {
		port = 8080
	}

	server, err := webhook.NewServer(&webhook.Ports{
		Cleanup: cleanupService,
		Metrics: metricsHandler,
		Log:     log,
	})
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Webhook listening on http://localhost%s%s\n", addr, webhook.EventPath)
	return server.RunHTTP(cmd.Context(), addr)
}
