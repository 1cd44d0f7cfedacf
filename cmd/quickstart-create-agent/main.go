// quickstart-create-agent creates a prompt agent in an Azure AI Foundry
// project and prints the new version's id, name, and version.
//
// Settings come from AZURE_AI_PROJECT_ENDPOINT,
// AZURE_AI_FOUNDRY_MODEL_DEPLOYMENT_NAME and AZURE_AI_FOUNDRY_AGENT_NAME
// (a .env file in the working directory is read first). Flags override the
// environment. Authentication uses the default Azure credential chain.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/melionel/foundry-samples/quickstart"
)

func main() {
	if err := run(); err != nil {
		slog.Error("create agent failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var overrides quickstart.Settings
	var definitionPath string
	var envFile string
	var debug bool

	flagSet := pflag.NewFlagSet("quickstart-create-agent", pflag.ContinueOnError)
	flagSet.StringVar(&overrides.ProjectEndpoint, "endpoint", "", "project endpoint (overrides "+quickstart.EnvProjectEndpoint+")")
	flagSet.StringVar(&overrides.ModelDeploymentName, "model", "", "model deployment name (overrides "+quickstart.EnvModelDeploymentName+")")
	flagSet.StringVar(&overrides.AgentName, "agent", "", "agent name (overrides "+quickstart.EnvAgentName+")")
	flagSet.StringVar(&definitionPath, "definition", "", "YAML agent definition file")
	flagSet.StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env when present)")
	flagSet.BoolVar(&debug, "debug", false, "log HTTP requests and responses")
	flagSet.SetOutput(os.Stderr)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if err := quickstart.LoadEnvFile(envFile, envFile != ""); err != nil {
		return err
	}
	settings := quickstart.LoadSettings().Override(overrides)

	var def *quickstart.DefinitionFile
	if definitionPath != "" {
		var err error
		if def, err = quickstart.LoadDefinitionFile(definitionPath); err != nil {
			return err
		}
	}

	var debugOverride *bool
	if flagSet.Changed("debug") {
		debugOverride = &debug
	}
	// The SDK only emits debug records when debug mode is on.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := quickstart.NewClient(settings, debugOverride, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name, params := quickstart.AgentRequest(settings, def)
	_, err = quickstart.CreateAgent(ctx, client.Agents, name, params, os.Stdout)
	return err
}
