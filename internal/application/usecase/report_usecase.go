package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/samber/lo"

	"github.com/diillson/aws-reservations-report/internal/domain/entity"
	"github.com/diillson/aws-reservations-report/internal/domain/repository"
	"github.com/diillson/aws-reservations-report/internal/shared/types"
)

// ReportUseCase handles the reservations report pipeline.
type ReportUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// RunReport executa o pipeline completo do relatório: sessão -> identidade ->
// regiões -> varredura sequencial -> agregação -> console + dump JSON.
// Ausência de credenciais encerra com a mensagem de remediação e sem arquivo;
// falhas de coleta nunca abortam a varredura.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	// Mescla o arquivo de configuração, se informado
	if args.ConfigFile != "" {
		if err := uc.applyConfigFile(args); err != nil {
			return err
		}
	}

	verbosity, err := types.ParseVerbosity(args.Verbosity)
	if err != nil {
		return err
	}

	// Resolve a sessão a partir das credenciais do ambiente
	if err := uc.awsRepo.ResolveSession(ctx, args.Profile); err != nil {
		if errors.Is(err, types.ErrNoCredentials) {
			uc.reportMissingCredentials()
			return nil
		}
		return err
	}

	accountID, err := uc.awsRepo.GetAccountID(ctx)
	if err != nil {
		return err
	}

	uc.printHeader(accountID)

	// Enumera as regiões visíveis para a conta
	uc.console.Println("\nGetting list of AWS regions...")
	regions, fromFallback := uc.resolveRegions(ctx, args.Regions)
	if fromFallback && verbosity >= types.VerbosityNormal {
		uc.console.LogWarning("Could not list regions from the API; falling back to %d common regions", len(regions))
	}
	uc.console.Printf("Checking %d regions for reservations...\n", len(regions))

	// Varre cada região nas três categorias, em ordem fixa
	report := uc.scanRegions(ctx, regions, verbosity)
	report.AccountID = accountID

	// Exibe índice por região, sumário e listagem detalhada
	uc.printRegionIndex(report)
	uc.printSummary(report)
	uc.printDetailedReport(report)

	// Utilização de compromissos (opcional)
	if args.Utilization {
		uc.printCommitmentUtilization(ctx)
	}

	if verbosity >= types.VerbosityDebug && len(report.Issues) > 0 {
		uc.printScanIssues(report.Issues)
	}

	// Grava o dump JSON (sempre, mesmo sem registros)
	uc.writeDump(report.Records, args.Output)

	// Exports opcionais do relatório
	uc.exportReports(report, args)

	return nil
}

// applyConfigFile mescla o arquivo de configuração nos argumentos: valores do
// arquivo preenchem apenas o que não veio na linha de comando.
func (uc *ReportUseCase) applyConfigFile(args *types.CLIArgs) error {
	config, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if args.Profile == "" {
		args.Profile = config.Profile
	}
	if len(args.Regions) == 0 {
		args.Regions = config.Regions
	}
	if args.Output == "" {
		args.Output = config.Output
	}
	if args.Verbosity == "" {
		args.Verbosity = config.Verbosity
	}
	if !args.Utilization {
		args.Utilization = config.Utilization
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = config.ReportType
	}
	if args.Dir == "" {
		args.Dir = config.Dir
	}
	return nil
}

// reportMissingCredentials imprime a remediação quando nenhuma credencial é
// descobrível. O run termina sem produzir arquivo de relatório.
func (uc *ReportUseCase) reportMissingCredentials() {
	uc.console.LogError("AWS credentials not found. Please configure your AWS credentials.")
	uc.console.Println("You can use: aws configure, environment variables, or IAM roles.")

	if profiles := uc.awsRepo.GetAWSProfiles(); len(profiles) > 0 {
		uc.console.LogInfo("Profiles found in your AWS config: %s (pass one with --profile)", strings.Join(profiles, ", "))
	}
}

func (uc *ReportUseCase) printHeader(accountID string) {
	uc.console.Println("AWS Reserved Instances and Savings Plans Report")
	uc.console.Println(strings.Repeat("=", 50))
	uc.console.Printf("Account ID: %s\n", pterm.FgLightCyan.Sprint(accountID))
	uc.console.Printf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
}

// resolveRegions usa as regiões do usuário quando fornecidas; caso contrário
// enumera as regiões habilitadas da conta (com fallback estático).
func (uc *ReportUseCase) resolveRegions(ctx context.Context, userRegions []string) ([]string, bool) {
	if len(userRegions) > 0 {
		return userRegions, false
	}
	return uc.awsRepo.GetAccessibleRegions(ctx)
}

// scanRegions percorre as regiões em ordem e, dentro de cada região, as
// categorias na ordem fixa compute -> database -> subscription-plan.
func (uc *ReportUseCase) scanRegions(ctx context.Context, regions []string, verbosity types.Verbosity) entity.ReservationReport {
	var allRecords []entity.Record
	var issues []entity.ScanIssue
	var regionsWithData []string

	for _, region := range regions {
		uc.console.Printf("\nChecking region: %s\n", region)

		var regionRecords []entity.Record
		for _, category := range entity.Categories() {
			records, issue := uc.awsRepo.CollectReservations(ctx, region, category)
			if issue != nil {
				issues = append(issues, *issue)
				uc.logScanIssue(*issue, verbosity)
				continue
			}
			regionRecords = append(regionRecords, records...)
		}

		if len(regionRecords) > 0 {
			regionsWithData = append(regionsWithData, region)
			uc.console.Printf("  Found %d reservations in %s\n", len(regionRecords), region)
			allRecords = append(allRecords, regionRecords...)
		} else {
			uc.console.Printf("  No reservations found in %s\n", region)
		}
	}

	return uc.buildReport(allRecords, regionsWithData, issues)
}

// logScanIssue aplica a política de verbosidade: negado por autorização fica
// silencioso no nível normal; qualquer outro erro gera uma linha não fatal.
func (uc *ReportUseCase) logScanIssue(issue entity.ScanIssue, verbosity types.Verbosity) {
	switch issue.Class {
	case entity.IssueAccessDenied:
		if verbosity >= types.VerbosityDebug {
			uc.console.LogWarning("Access denied for %s in %s: %s", issue.Category.PluralLabel(), issue.Region, issue.Message)
		}
	default:
		if verbosity >= types.VerbosityNormal {
			uc.console.Printf("Error retrieving %s in %s: %s\n", issue.Category.PluralLabel(), issue.Region, issue.Message)
		}
	}
}

// buildReport agrega os registros coletados: índice por região em ordem
// alfabética (apenas regiões com dados) e contagens por categoria.
func (uc *ReportUseCase) buildReport(records []entity.Record, regionsWithData []string, issues []entity.ScanIssue) entity.ReservationReport {
	sortedRegions := append([]string(nil), regionsWithData...)
	sort.Strings(sortedRegions)

	regionIndex := make([]entity.RegionCount, 0, len(sortedRegions))
	for _, region := range sortedRegions {
		count := lo.CountBy(records, func(r entity.Record) bool { return r.Region() == region })
		if count > 0 {
			regionIndex = append(regionIndex, entity.RegionCount{Region: region, Count: count})
		}
	}

	categories := make([]entity.CategoryCount, 0, len(entity.Categories()))
	for _, category := range entity.Categories() {
		count := lo.CountBy(records, func(r entity.Record) bool { return r.Category() == category })
		categories = append(categories, entity.CategoryCount{Category: category, Count: count})
	}

	return entity.ReservationReport{
		GeneratedAt: time.Now().UTC(),
		Records:     records,
		RegionIndex: regionIndex,
		Categories:  categories,
		Total:       len(records),
		Issues:      issues,
	}
}

func (uc *ReportUseCase) printRegionIndex(report entity.ReservationReport) {
	uc.console.Printf("\n%s\n", strings.Repeat("=", 80))
	uc.console.Println("REGIONS WITH RESERVATIONS")
	uc.console.Println(strings.Repeat("=", 80))

	if len(report.RegionIndex) == 0 {
		uc.console.Println("No regions found with reservations")
		return
	}
	for _, regionCount := range report.RegionIndex {
		uc.console.Printf("  %s: %d reservations\n", regionCount.Region, regionCount.Count)
	}
}

func (uc *ReportUseCase) printSummary(report entity.ReservationReport) {
	uc.console.Printf("\n%s\n", strings.Repeat("=", 80))
	uc.console.Println("SUMMARY")
	uc.console.Println(strings.Repeat("=", 80))

	for _, categoryCount := range report.Categories {
		uc.console.Printf("%s: %d\n", categoryCount.Category.PluralLabel(), categoryCount.Count)
	}
	uc.console.Printf("Total Reservations: %d\n", report.Total)
}

func (uc *ReportUseCase) printDetailedReport(report entity.ReservationReport) {
	if len(report.Records) == 0 {
		uc.console.Println("No Reserved Instances or Savings Plans found in this account.")
		return
	}

	uc.console.Printf("\n%s\n", strings.Repeat("=", 80))
	uc.console.Println("DETAILED REPORT")
	uc.console.Println(strings.Repeat("=", 80))

	for _, record := range report.Records {
		uc.console.Printf("\n%s:\n", pterm.FgLightCyan.Sprint(record.Category().Label()))
		uc.console.Println(strings.Repeat("-", 40))
		for _, field := range record.Fields() {
			if field.Name == "Type" {
				continue
			}
			uc.console.Printf("  %s: %s\n", field.Name, entity.FormatValue(field.Value))
		}
	}
}

// printCommitmentUtilization busca e exibe a utilização de RI/SP dos últimos
// 30 dias. Falhas aqui são avisos não fatais e nunca abortam o relatório.
func (uc *ReportUseCase) printCommitmentUtilization(ctx context.Context) {
	status := uc.console.Status("Fetching commitment utilization from Cost Explorer...")
	util, err := uc.awsRepo.GetCommitmentUtilization(ctx)
	status.Stop()

	if err != nil {
		uc.console.LogWarning("Could not fetch commitment utilization: %s", err)
		return
	}

	uc.console.Printf("\n%s\n", strings.Repeat("=", 80))
	uc.console.Println("COMMITMENT UTILIZATION (LAST 30 DAYS)")
	uc.console.Println(strings.Repeat("=", 80))

	table := uc.console.CreateTable()
	table.AddColumn("Commitment")
	table.AddColumn("Utilization")
	table.AddColumn("Details")

	if util.RI != nil {
		table.AddRow("Reserved Instances",
			fmt.Sprintf("%.2f%%", util.RI.UtilizationPercent),
			fmt.Sprintf("%.0f of %.0f hours used", util.RI.UsedHours, util.RI.PurchasedHours))
	}
	if util.SP != nil {
		table.AddRow("Savings Plans",
			fmt.Sprintf("%.2f%%", util.SP.UtilizationPercent),
			fmt.Sprintf("$%.2f of $%.2f commitment used", util.SP.UsedCommitment, util.SP.TotalCommitment))
	}
	uc.console.Print(table.Render())

	if len(util.Budgets) == 0 {
		return
	}

	budgetTable := uc.console.CreateTable()
	budgetTable.AddColumn("Budget")
	budgetTable.AddColumn("Type")
	budgetTable.AddColumn("Actual")
	budgetTable.AddColumn("Limit")
	for _, budget := range util.Budgets {
		budgetTable.AddRow(budget.Name, budget.Type,
			fmt.Sprintf("%.2f %s", budget.Actual, budget.Unit),
			fmt.Sprintf("%.2f %s", budget.Limit, budget.Unit))
	}
	uc.console.Print(budgetTable.Render())
}

// printScanIssues exibe a tabela de diagnósticos da varredura (nível debug).
func (uc *ReportUseCase) printScanIssues(issues []entity.ScanIssue) {
	uc.console.Printf("\n%s\n", strings.Repeat("=", 80))
	uc.console.Println("SCAN DIAGNOSTICS")
	uc.console.Println(strings.Repeat("=", 80))

	table := uc.console.CreateTable()
	table.AddColumn("Region")
	table.AddColumn("Category")
	table.AddColumn("Class")
	table.AddColumn("Message")
	for _, issue := range issues {
		table.AddRow(issue.Region, issue.Category.Label(), string(issue.Class), issue.Message)
	}
	uc.console.Print(table.Render())
}

// writeDump grava o dump JSON. Falha de escrita é reportada e não aborta.
func (uc *ReportUseCase) writeDump(records []entity.Record, output string) {
	if output == "" {
		output = types.DefaultOutputFile
	}

	path, err := uc.exportRepo.WriteRecordsDump(records, output)
	if err != nil {
		uc.console.LogError("Error saving to JSON: %s", err)
		return
	}
	uc.console.Println()
	uc.console.LogSuccess("Report saved to: %s", path)
}

// exportReports grava os exports opcionais quando --report-name é informado.
func (uc *ReportUseCase) exportReports(report entity.ReservationReport, args *types.CLIArgs) {
	if args.ReportName == "" {
		return
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}

	for _, reportType := range reportTypes {
		switch strings.ToLower(reportType) {
		case "csv":
			csvPath, err := uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
