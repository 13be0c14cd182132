package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proxycast/claude-provider/config"
	"github.com/proxycast/claude-provider/logger"
	"github.com/proxycast/claude-provider/oauth"
	"github.com/proxycast/claude-provider/observability"
	"github.com/proxycast/claude-provider/provider"
	"github.com/proxycast/claude-provider/version"
)

// engine bundles the constructed dependencies behind the commands.
type engine struct {
	cfg     *config.Config
	log     *logger.Logger
	flow    *oauth.Flow
	manager *provider.Manager
}

// newEngine loads configuration and wires the engine together.
func newEngine(configFile string) (*engine, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	log := logger.New(&cfg.Logger, cfg.Base.Name)
	logger.SetGlobalLogger(log)

	if cfg.Observability.Enabled {
		ctx := context.Background()
		if _, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Base.Name,
			ServiceVersion: version.Version,
			Environment:    cfg.Base.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Base.Environment != "production",
			SampleRate:     cfg.Observability.SampleRate,
		}); err != nil {
			return nil, err
		}
		if _, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Base.Name,
			ServiceVersion: version.Version,
			Environment:    cfg.Base.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Base.Environment != "production",
		}); err != nil {
			return nil, err
		}
	}

	flow := oauth.NewFlow(log, &oauth.FlowConfig{
		ConnectTimeout: cfg.HTTP.FlowConnectTimeout,
		Timeout:        cfg.HTTP.FlowTimeout,
	})
	manager := provider.NewManager(provider.NewStore(), flow, log, provider.ManagerConfig{
		RefreshMaxAttempts: cfg.Refresh.MaxAttempts,
		DefaultRegion:      cfg.Bedrock.DefaultRegion,
		HTTPConnectTimeout: cfg.HTTP.ConnectTimeout,
		HTTPTimeout:        cfg.HTTP.Timeout,
	})

	return &engine{cfg: cfg, log: log, flow: flow, manager: manager}, nil
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "claude-provider",
		Short:         "Claude credential engine with OAuth, Bedrock, and relay auth",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation prints plugin info, same as the info command.
			return printJSON(pluginInfo())
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")

	root.AddCommand(
		newInfoCommand(),
		newModelsCommand(),
		newOAuthURLCommand(),
		newValidateCommand(&configFile),
		newRefreshCommand(&configFile),
		newServeCommand(&configFile),
	)
	return root
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print plugin info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(pluginInfo())
		},
	}
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(provider.Catalog())
		},
	}
}

func newOAuthURLCommand() *cobra.Command {
	var setup bool
	cmd := &cobra.Command{
		Use:   "oauth-url",
		Short: "Generate an OAuth authorization URL with fresh PKCE material",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := oauth.GenerateParams(setup)
			if err != nil {
				return err
			}
			return printJSON(params)
		},
	}
	cmd.Flags().BoolVar(&setup, "setup", false, "request the minimal setup-token scope")
	return cmd
}

func newValidateCommand(configFile *string) *cobra.Command {
	var credentialID string
	var live bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configFile)
			if err != nil {
				return err
			}
			if live {
				result, err := eng.manager.ValidateLive(cmd.Context(), credentialID)
				if err != nil {
					return err
				}
				return printJSON(result)
			}
			return printJSON(eng.manager.Validate(credentialID))
		},
	}
	cmd.Flags().StringVar(&credentialID, "credential-id", "", "credential identifier")
	cmd.Flags().BoolVar(&live, "live", false, "probe the upstream service instead of checking structure only")
	_ = cmd.MarkFlagRequired("credential-id")
	return cmd
}

func newRefreshCommand(configFile *string) *cobra.Command {
	var credentialID string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh a credential's tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configFile)
			if err != nil {
				return err
			}
			result, err := eng.manager.Refresh(cmd.Context(), credentialID)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&credentialID, "credential-id", "", "credential identifier")
	_ = cmd.MarkFlagRequired("credential-id")
	return cmd
}

func newServeCommand(configFile *string) *cobra.Command {
	var httpMode bool
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve JSON-RPC over stdio, or over HTTP with --http",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configFile)
			if err != nil {
				return err
			}
			srv := newRPCServer(eng)
			if httpMode || httpAddr != "" {
				addr := httpAddr
				if addr == "" {
					addr = eng.cfg.Server.Addr
				}
				return srv.serveHTTP(addr)
			}
			return srv.serveStdio(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&httpMode, "http", false, "serve over HTTP instead of stdio")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (defaults to server.addr from config)")
	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
