package repository

import (
	"context"

	"github.com/diillson/aws-reservations-report/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Session Operations
	ResolveSession(ctx context.Context, profile string) error
	GetAccountID(ctx context.Context) (string, error)
	GetAWSProfiles() []string

	// Region Operations
	GetAccessibleRegions(ctx context.Context) (regions []string, fromFallback bool)

	// Reservation Operations
	CollectReservations(ctx context.Context, region string, category entity.Category) ([]entity.Record, *entity.ScanIssue)

	// Utilization Operations
	GetCommitmentUtilization(ctx context.Context) (*entity.CommitmentUtilization, error)
}
