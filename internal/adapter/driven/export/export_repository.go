package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-reservations-report/internal/domain/entity"
	"github.com/diillson/aws-reservations-report/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// WriteRecordsDump grava o dump JSON no caminho exato informado: um array de
// registros na ordem de descoberta, indentado com dois espaços. O dump é
// gravado mesmo sem registros (array vazio) e nunca carrega metadados do
// relatório.
func (r *ExportRepositoryImpl) WriteRecordsDump(records []entity.Record, path string) (string, error) {
	if records == nil {
		records = []entity.Record{}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return "", fmt.Errorf("error encoding report data: %w", err)
	}

	return path, nil
}

// --- Exports opcionais do relatório (nomes com timestamp) ---

func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.ReservationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Type", "Region", "State", "Details"}
	writer.Write(headers)

	for _, record := range report.Records {
		state := ""
		if v, ok := record.Get("State"); ok {
			state = entity.FormatValue(v)
		}

		details := ""
		for _, field := range record.Fields() {
			switch field.Name {
			case "Type", "Region", "State":
				continue
			}
			details += fmt.Sprintf("%s: %s\n", field.Name, entity.FormatValue(field.Value))
		}

		writer.Write([]string{
			record.Category().Label(),
			record.Region(),
			state,
			strings.TrimSpace(details),
		})
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.ReservationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.ReservationReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS Reservations Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s | Generated: %s",
		report.AccountID, report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	summary := ""
	for _, categoryCount := range report.Categories {
		summary += fmt.Sprintf("%s: %d\n", categoryCount.Category.PluralLabel(), categoryCount.Count)
	}
	summary += fmt.Sprintf("Total Reservations: %d", report.Total)
	drawSection("Summary", summary)

	regions := ""
	for _, regionCount := range report.RegionIndex {
		regions += fmt.Sprintf("%s: %d reservations\n", regionCount.Region, regionCount.Count)
	}
	drawSection("Regions With Reservations", strings.TrimSpace(regions))

	for _, record := range report.Records {
		content := ""
		for _, field := range record.Fields() {
			if field.Name == "Type" {
				continue
			}
			content += fmt.Sprintf("%s: %s\n", field.Name, entity.FormatValue(field.Value))
		}
		drawSection(record.Category().Label(), strings.TrimSpace(content))
	}

	if len(report.Issues) > 0 {
		issues := ""
		for _, issue := range report.Issues {
			issues += fmt.Sprintf("[%s] %s / %s: %s\n", issue.Class, issue.Region, issue.Category.Label(), issue.Message)
		}
		drawSection("Scan Diagnostics", strings.TrimSpace(issues))
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS Reservations Report | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
