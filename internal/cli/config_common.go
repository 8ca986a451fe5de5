package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/qcsv/internal/config"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Environment variables consulted between flags and qcsv.yaml.
const (
	envOutfile   = "QCSV_OUTFILE"
	envDelimiter = "QCSV_DELIMITER"
	envEncoding  = "QCSV_ENCODING"
	envPgAuth    = "QCSV_PG_AUTH"

	// Cloud SDK standard names.
	envAWSRegion         = "AWS_REGION"
	envAzureTenantID     = "AZURE_TENANT_ID"
	envAzureClientID     = "AZURE_CLIENT_ID"
	envAzureClientSecret = "AZURE_CLIENT_SECRET"
)

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if ./qcsv.yaml does not exist (not an error); a
// missing file named by --config is an error.
func loadProjectConfig(path string, explicit bool) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var (
		projectCfg *config.ProjectConfig
		err        error
	)
	if explicit {
		projectCfg, err = config.LoadFile(path)
	} else {
		projectCfg, err = config.Load(".")
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !explicit {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load project config: %w: %w", qcsv.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// projectFileValues returns cfg, or an empty config when there is none.
func projectFileValues(cfg *config.ProjectConfig) config.ProjectConfig {
	if cfg == nil {
		return config.ProjectConfig{}
	}
	return *cfg
}

// resolveSetting applies flag > environment > project file > flag default.
func resolveSetting(cmd *cobra.Command, flagName, flagValue, envKey, fileValue string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return flagValue
}

// resolveBool applies flag > project file > flag default.
func resolveBool(cmd *cobra.Command, flagName string, flagValue, fileValue bool) bool {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	return flagValue || fileValue
}

// resolveTimeout applies --timeout > project file > no limit.
func resolveTimeout(cmd *cobra.Command, flagTimeout time.Duration, fileTimeout string) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") || fileTimeout == "" {
		return flagTimeout, nil
	}
	parsed, err := time.ParseDuration(fileTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, qcsv.ErrInvalidConfig, err)
	}
	return parsed, nil
}

// parseCharSetting parses a single-character setting. Empty means unset;
// `\t` and "tab" both select the tab character.
func parseCharSetting(name, value string) (rune, error) {
	switch strings.ToLower(value) {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(value)
	if size != len(value) || r == utf8.RuneError {
		return 0, fmt.Errorf("%s must be a single character, got %q: %w", name, value, qcsv.ErrInvalidConfig)
	}
	return r, nil
}

// resolveCloudAuth builds PostgreSQL cloud authentication settings.
// The Azure client secret is read only from the environment.
func resolveCloudAuth(cmd *cobra.Command, f *convertFlagValues, fileCfg config.ProjectConfig) (qcsv.CloudAuth, error) {
	method, err := qcsv.ParseAuthMethod(resolveSetting(cmd, "pg-auth", f.pgAuth, envPgAuth, fileCfg.PgAuth))
	if err != nil {
		return qcsv.CloudAuth{}, err
	}

	auth := qcsv.CloudAuth{Method: method}
	switch method {
	case qcsv.AuthMethodAWSIAM:
		auth.AWSRegion = resolveSetting(cmd, "aws-region", f.awsRegion, envAWSRegion, fileCfg.AWSRegion)
	case qcsv.AuthMethodAzureEntraID:
		auth.AzureTenantID = resolveSetting(cmd, "azure-tenant-id", f.azureTenantID, envAzureTenantID, fileCfg.AzureTenantID)
		auth.AzureClientID = resolveSetting(cmd, "azure-client-id", f.azureClientID, envAzureClientID, fileCfg.AzureClientID)
		auth.AzureClientSecret = os.Getenv(envAzureClientSecret)
	case qcsv.AuthMethodGoogleIAM:
		auth.GCPInstance = resolveSetting(cmd, "gcp-instance", f.gcpInstance, "", fileCfg.GCPInstance)
	}
	return auth, nil
}
