package cli

import (
	"context"
	"path/filepath"

	"github.com/diillson/aws-reservations-report/pkg/version"

	"github.com/diillson/aws-reservations-report/internal/application/usecase"
	"github.com/diillson/aws-reservations-report/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "aws-reservations",
		Short:   "AWS Reservations Report CLI",
		Long:    "Scans every visible AWS region for EC2 Reserved Instances, RDS Reserved Instances and Savings Plans, then prints a consolidated report and writes a JSON dump.",
		Version: formattedVersion, // Use a versão formatada
		RunE:    app.runCommand,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "AWS Reservations Report version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "Specific AWS profile to use (default: environment credentials)")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "AWS regions to scan for reservations (comma-separated, default: all visible regions)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Path of the JSON dump file (default: aws_reservations_report.json)")
	rootCmd.PersistentFlags().String("verbosity", "", "Scan diagnostics level: quiet, normal or debug (default: normal)")
	rootCmd.PersistentFlags().BoolP("utilization", "u", false, "Also display RI and Savings Plans utilization for the last 30 days")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf (default: csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	profile, _ := app.rootCmd.Flags().GetString("profile")
	regions, _ := app.rootCmd.Flags().GetStringSlice("regions")
	output, _ := app.rootCmd.Flags().GetString("output")
	verbosity, _ := app.rootCmd.Flags().GetString("verbosity")
	utilization, _ := app.rootCmd.Flags().GetBool("utilization")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")

	// Convert to absolute path; an empty dir stays empty so a config file
	// can still fill it, and the export layer falls back to the cwd.
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Profile:     profile,
		Regions:     regions,
		Output:      output,
		Verbosity:   verbosity,
		Utilization: utilization,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Executa o relatório (a mescla do arquivo de configuração acontece lá)
	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
