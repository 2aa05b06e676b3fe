package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Interfaces mínimas dos clientes AWS usadas pelo repositório. Os clientes
// gerados pelo SDK as satisfazem; testes injetam fakes via ClientFactory.

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type EC2Client interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeReservedInstances(ctx context.Context, params *ec2.DescribeReservedInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeReservedInstancesOutput, error)
}

type RDSClient interface {
	DescribeReservedDBInstances(ctx context.Context, params *rds.DescribeReservedDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeReservedDBInstancesOutput, error)
}

type SavingsPlansClient interface {
	DescribeSavingsPlans(ctx context.Context, params *savingsplans.DescribeSavingsPlansInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOutput, error)
}

type CostExplorerClient interface {
	GetReservationUtilization(ctx context.Context, params *costexplorer.GetReservationUtilizationInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetReservationUtilizationOutput, error)
	GetSavingsPlansUtilization(ctx context.Context, params *costexplorer.GetSavingsPlansUtilizationInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetSavingsPlansUtilizationOutput, error)
}

type BudgetsClient interface {
	DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
}

// ClientFactory cria clientes por serviço a partir da sessão resolvida.
type ClientFactory interface {
	STS() STSClient
	EC2(region string) EC2Client
	RDS(region string) RDSClient
	SavingsPlans(region string) SavingsPlansClient
	CostExplorer() CostExplorerClient
	Budgets() BudgetsClient
}

// sdkClientFactory cria um cliente novo do SDK a cada chamada; nenhum pool
// além da própria sessão.
type sdkClientFactory struct {
	cfg aws.Config
}

// NewClientFactory returns the SDK-backed factory for a resolved config.
func NewClientFactory(cfg aws.Config) ClientFactory {
	return &sdkClientFactory{cfg: cfg}
}

func (f *sdkClientFactory) regional(region string) aws.Config {
	cfg := f.cfg.Copy()
	if region != "" {
		cfg.Region = region
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg
}

func (f *sdkClientFactory) STS() STSClient {
	return sts.NewFromConfig(f.regional(""))
}

func (f *sdkClientFactory) EC2(region string) EC2Client {
	return ec2.NewFromConfig(f.regional(region))
}

func (f *sdkClientFactory) RDS(region string) RDSClient {
	return rds.NewFromConfig(f.regional(region))
}

func (f *sdkClientFactory) SavingsPlans(region string) SavingsPlansClient {
	return savingsplans.NewFromConfig(f.regional(region))
}

func (f *sdkClientFactory) CostExplorer() CostExplorerClient {
	// Cost Explorer é global e atendido em us-east-1.
	return costexplorer.NewFromConfig(f.regional("us-east-1"))
}

func (f *sdkClientFactory) Budgets() BudgetsClient {
	// Budgets é global e atendido em us-east-1.
	return budgets.NewFromConfig(f.regional("us-east-1"))
}
