package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/pkg/journal"
	"github.com/vango-dev/vdom/pkg/server"
)

func serveCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		addr    string
		initial string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live tree server",
		Long: `Start a server that owns one live tree and streams every patch to
WebSocket clients as binary mutation frames.

POST a tree document to /render to patch the tree. New clients on /ws
receive a snapshot frame first, then every following batch.

Examples:
  vdom serve
  vdom serve --addr=0.0.0.0:8080 --initial=testdata/old.yaml
  vdom serve --config=vdom.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if initial != "" {
				cfg.Server.Initial = initial
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			srv, err := newServer(cfg)
			if err != nil {
				return err
			}

			printBanner()
			fmt.Println("  serve")
			fmt.Println()
			info("Listening on http://%s", cfg.Server.Addr)
			if cfg.Archive.Enabled() {
				info("Archiving batches to s3://%s/%s", cfg.Archive.Bucket, cfg.Archive.Prefix)
			}
			fmt.Println()

			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&initial, "initial", "i", "", "Tree file rendered at startup")

	return cmd
}

// newServer builds a server from cfg and renders the initial tree, if any.
func newServer(cfg *config.Config) (*server.Server, error) {
	logger := cfg.Logger(os.Stderr)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	scfg := server.DefaultConfig()
	scfg.Addr = cfg.Server.Addr
	scfg.Container = cfg.Server.Container
	scfg.Namespace = cfg.Metrics.Namespace
	scfg.Registry = registry
	scfg.Tracer = otel.Tracer(cfg.Tracing.TracerName)
	scfg.Logger = logger
	if !cfg.Metrics.Enabled {
		scfg.MetricsPath = ""
	} else {
		scfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.Archive.Enabled() {
		client := journal.NewS3Client(cfg.Archive.Region, cfg.Archive.Endpoint)
		scfg.Sink = journal.NewS3Sink(client, cfg.Archive.Bucket, cfg.Archive.Prefix)
	}

	srv := server.New(scfg)

	if cfg.Server.Initial != "" {
		tree, err := loadTree(cfg.Server.Initial)
		if err != nil {
			return nil, err
		}
		if _, _, err := srv.Update(context.Background(), tree); err != nil {
			return nil, err
		}
		logger.Info("initial tree rendered", "file", cfg.Server.Initial)
	}
	return srv, nil
}
