package quickstart

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	foundry "github.com/melionel/foundry-samples"
)

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

// LoadEnvFile loads variables from path without overriding ones already
// set. A missing file is only an error when required is true.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// NewClient builds a project client for s. debug, when non-nil, overrides
// AZURE_AI_PROJECT_DEBUG; SDK debug output goes to logger at debug level.
func NewClient(s Settings, debug *bool, logger *slog.Logger) (*foundry.ProjectClient, error) {
	params := foundry.ConfigParams{
		Endpoint: s.ProjectEndpoint,
		Debug:    debug,
	}
	if logger != nil {
		params.Logger = slog.NewLogLogger(logger.Handler(), slog.LevelDebug)
	}
	return foundry.NewClientWithParams(params)
}
