package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/diillson/aws-reservations-report/internal/adapter/driven/aws"
	"github.com/diillson/aws-reservations-report/internal/adapter/driven/config"
	"github.com/diillson/aws-reservations-report/internal/adapter/driven/export"
	"github.com/diillson/aws-reservations-report/internal/adapter/driving/cli"
	"github.com/diillson/aws-reservations-report/internal/application/usecase"
	"github.com/diillson/aws-reservations-report/pkg/console"
	"github.com/diillson/aws-reservations-report/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	awsRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
		os.Exit(1)
	}
}
