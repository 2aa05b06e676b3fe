package repository

import (
	"github.com/diillson/aws-reservations-report/internal/domain/entity"
)

type ExportRepository interface {
	// WriteRecordsDump grava o dump JSON dos registros no caminho exato
	// informado (sempre produzido, mesmo vazio).
	WriteRecordsDump(records []entity.Record, path string) (string, error)

	// Optional report exports (timestamped filenames)
	ExportReportToCSV(report entity.ReservationReport, filename string, outputDir string) (string, error)
	ExportReportToJSON(report entity.ReservationReport, filename string, outputDir string) (string, error)
	ExportReportToPDF(report entity.ReservationReport, filename string, outputDir string) (string, error)
}
