package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/qcsv/internal/db"
	"github.com/vvka-141/qcsv/internal/files/loader"
	"github.com/vvka-141/qcsv/internal/files/scanner"
	"github.com/vvka-141/qcsv/internal/logging"
	"github.com/vvka-141/qcsv/internal/services"
	"github.com/vvka-141/qcsv/internal/tui"
	"github.com/vvka-141/qcsv/internal/ui"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

type convertFlagValues struct {
	infiles                      []string
	outfile, configPath          string
	delimiter, comment, encoding string
	lazyQuotes, trimLeadingSpace bool
	quoteIdentifiers             bool
	overwrite, force, strict     bool
	summary                      bool
	timeout                      time.Duration

	pgAuth, awsRegion            string
	azureTenantID, azureClientID string
	gcpInstance                  string
}

func registerConvertFlags(cmd *cobra.Command, f *convertFlagValues) {
	cmd.Flags().StringArrayVarP(&f.infiles, "infile", "i", nil,
		"Input file or directory (repeatable; alternative to positional inputs)")
	cmd.Flags().StringVarP(&f.outfile, "outfile", "o", "",
		"Destination: - for stdout, a SQLite path, postgres://... or mysql://...\n"+
			"Precedence: --outfile > $QCSV_OUTFILE > qcsv.yaml > stdout\n"+
			"In qcsv.yaml the dash must be quoted: outfile: \"-\"")
	cmd.Flags().StringVar(&f.configPath, "config", "",
		"Project file to read instead of ./qcsv.yaml")

	cmd.Flags().StringVar(&f.delimiter, "delimiter", "",
		"Field delimiter, one character or \\t (default: , or tab for .tsv/.tab)\n"+
			"Precedence: --delimiter > $QCSV_DELIMITER > qcsv.yaml")
	cmd.Flags().StringVar(&f.comment, "comment", "",
		"Skip lines starting with this character")
	cmd.Flags().BoolVar(&f.lazyQuotes, "lazy-quotes", false,
		"Accept quotes inside unquoted fields")
	cmd.Flags().BoolVar(&f.trimLeadingSpace, "trim-leading-space", false,
		"Ignore leading white space in fields")
	cmd.Flags().StringVar(&f.encoding, "encoding", "",
		"Input text encoding, e.g. latin1, windows-1252, shift_jis (default utf-8)\n"+
			"Precedence: --encoding > $QCSV_ENCODING > qcsv.yaml")

	cmd.Flags().BoolVar(&f.quoteIdentifiers, "quote-identifiers", false,
		"Quote table names and escape double quotes in table and column names")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false,
		"Drop each target table before creating it (requires confirmation)")
	cmd.Flags().BoolVar(&f.force, "force", false,
		"Skip the interactive confirmation for --overwrite (5 second countdown)")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"Exit with status 13 if any table could not be written")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0,
		"Abort the run after this long, e.g. 30s or 5m (default: no limit)")
	cmd.Flags().BoolVar(&f.summary, "summary", false,
		"Print a summary table of the run to stderr")

	cmd.Flags().StringVar(&f.pgAuth, "pg-auth", "",
		"PostgreSQL authentication: standard, aws, azure or gcp (default standard)\n"+
			"Precedence: --pg-auth > $QCSV_PG_AUTH > qcsv.yaml")
	cmd.Flags().StringVar(&f.awsRegion, "aws-region", "",
		"AWS region for --pg-auth aws (or $AWS_REGION)")
	cmd.Flags().StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant for --pg-auth azure (or $AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD client for --pg-auth azure (or $AZURE_CLIENT_ID); secret from $AZURE_CLIENT_SECRET")
	cmd.Flags().StringVar(&f.gcpInstance, "gcp-instance", "",
		"Cloud SQL instance connection name project:region:instance for --pg-auth gcp")

	_ = cmd.RegisterFlagCompletionFunc("encoding", completeEncodings)
	_ = cmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)
	_ = cmd.RegisterFlagCompletionFunc("pg-auth", completeAuthMethods)
	_ = cmd.MarkFlagFilename("infile", inputExtensions...)
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")
}

// buildConvertConfig resolves flags, environment and project file into a
// ConvertConfig.
func buildConvertConfig(cmd *cobra.Command, f *convertFlagValues, args []string, verbose bool) (qcsv.ConvertConfig, error) {
	projectCfg, err := loadProjectConfig(f.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}
	if verbose && projectCfg != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] Loaded project configuration\n")
	}

	fileCfg := projectFileValues(projectCfg)

	outfile := resolveSetting(cmd, "outfile", f.outfile, envOutfile, fileCfg.Outfile)
	dest, err := db.ParseDestination(outfile)
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}
	dest.Auth, err = resolveCloudAuth(cmd, f, fileCfg)
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}

	delimiter, err := parseCharSetting("delimiter", resolveSetting(cmd, "delimiter", f.delimiter, envDelimiter, fileCfg.Delimiter))
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}
	comment, err := parseCharSetting("comment", resolveSetting(cmd, "comment", f.comment, "", fileCfg.Comment))
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}

	timeout, err := resolveTimeout(cmd, f.timeout, fileCfg.Timeout)
	if err != nil {
		return qcsv.ConvertConfig{}, err
	}

	inputs := append(append([]string{}, f.infiles...), args...)

	cfg := qcsv.ConvertConfig{
		Inputs:      inputs,
		Destination: dest,
		Reader: qcsv.ReaderOptions{
			Delimiter:        delimiter,
			Comment:          comment,
			LazyQuotes:       resolveBool(cmd, "lazy-quotes", f.lazyQuotes, fileCfg.LazyQuotes),
			TrimLeadingSpace: resolveBool(cmd, "trim-leading-space", f.trimLeadingSpace, fileCfg.TrimLeadingSpace),
			Encoding:         resolveSetting(cmd, "encoding", f.encoding, envEncoding, fileCfg.Encoding),
		},
		QuoteIdentifiers: resolveBool(cmd, "quote-identifiers", f.quoteIdentifiers, fileCfg.QuoteIdentifiers),
		Overwrite:        resolveBool(cmd, "overwrite", f.overwrite, fileCfg.Overwrite),
		Force:            f.force,
		Strict:           resolveBool(cmd, "strict", f.strict, fileCfg.Strict),
		Timeout:          timeout,
		Verbose:          verbose,
	}

	if err := cfg.Validate(); err != nil {
		return qcsv.ConvertConfig{}, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, f *convertFlagValues, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildConvertConfig(cmd, f, args, verbose)
	if err != nil {
		return err
	}

	// Select approver implementation based on --force flag
	var approver qcsv.Approver
	if cfg.Force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		if cfg.Overwrite && !tui.IsInteractive() {
			return fmt.Errorf("--overwrite needs --force when not running in a terminal: %w", qcsv.ErrApprovalDenied)
		}
		approver = ui.NewInteractiveApprover(verbose)
	}

	logger := logging.NewConsoleLogger(verbose)
	loaderFactory := func(opts qcsv.ReaderOptions) (qcsv.TableLoader, error) {
		return loader.NewLoader(opts)
	}

	converter := services.NewConversionService(
		loaderFactory,
		scanner.NewScanner(),
		db.NewConnector,
		approver,
		logger,
		cmd.OutOrStdout(),
	)

	// Setup context with optional timeout and signal handling for graceful shutdown
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling conversion...")
			cancel()
		case <-ctx.Done():
		}
	}()

	rep, err := converter.Convert(ctx, cfg)
	if rep != nil && (f.summary || verbose) {
		rep.Render(cmd.ErrOrStderr())
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return nil
}
