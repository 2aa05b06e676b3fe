package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-reservations-report/internal/domain/entity"
	"github.com/diillson/aws-reservations-report/internal/shared/types"
)

// --- fakes ---

type fakeSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, f.err
}

type fakeEC2 struct {
	regionsOut *ec2.DescribeRegionsOutput
	regionsErr error
	riOut      *ec2.DescribeReservedInstancesOutput
	riErr      error
}

func (f *fakeEC2) DescribeRegions(context.Context, *ec2.DescribeRegionsInput, ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	return f.regionsOut, f.regionsErr
}

func (f *fakeEC2) DescribeReservedInstances(context.Context, *ec2.DescribeReservedInstancesInput, ...func(*ec2.Options)) (*ec2.DescribeReservedInstancesOutput, error) {
	return f.riOut, f.riErr
}

type fakeRDS struct {
	out *rds.DescribeReservedDBInstancesOutput
	err error
}

func (f *fakeRDS) DescribeReservedDBInstances(context.Context, *rds.DescribeReservedDBInstancesInput, ...func(*rds.Options)) (*rds.DescribeReservedDBInstancesOutput, error) {
	return f.out, f.err
}

type fakeSavingsPlans struct {
	out *savingsplans.DescribeSavingsPlansOutput
	err error
}

func (f *fakeSavingsPlans) DescribeSavingsPlans(context.Context, *savingsplans.DescribeSavingsPlansInput, ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOutput, error) {
	return f.out, f.err
}

type fakeCostExplorer struct {
	riOut *costexplorer.GetReservationUtilizationOutput
	riErr error
	spOut *costexplorer.GetSavingsPlansUtilizationOutput
	spErr error
}

func (f *fakeCostExplorer) GetReservationUtilization(context.Context, *costexplorer.GetReservationUtilizationInput, ...func(*costexplorer.Options)) (*costexplorer.GetReservationUtilizationOutput, error) {
	return f.riOut, f.riErr
}

func (f *fakeCostExplorer) GetSavingsPlansUtilization(context.Context, *costexplorer.GetSavingsPlansUtilizationInput, ...func(*costexplorer.Options)) (*costexplorer.GetSavingsPlansUtilizationOutput, error) {
	return f.spOut, f.spErr
}

type fakeBudgets struct {
	out *budgets.DescribeBudgetsOutput
	err error
}

func (f *fakeBudgets) DescribeBudgets(context.Context, *budgets.DescribeBudgetsInput, ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error) {
	return f.out, f.err
}

// fakeClientFactory injeta fakes no lugar dos clientes do SDK.
type fakeClientFactory struct {
	sts          *fakeSTS
	ec2          *fakeEC2
	rds          *fakeRDS
	savingsPlans *fakeSavingsPlans
	costExplorer *fakeCostExplorer
	budgets      *fakeBudgets
}

func newFakeFactory() *fakeClientFactory {
	return &fakeClientFactory{
		sts:          &fakeSTS{out: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}},
		ec2:          &fakeEC2{riOut: &ec2.DescribeReservedInstancesOutput{}},
		rds:          &fakeRDS{out: &rds.DescribeReservedDBInstancesOutput{}},
		savingsPlans: &fakeSavingsPlans{out: &savingsplans.DescribeSavingsPlansOutput{}},
		costExplorer: &fakeCostExplorer{},
		budgets:      &fakeBudgets{out: &budgets.DescribeBudgetsOutput{}},
	}
}

func (f *fakeClientFactory) STS() STSClient                         { return f.sts }
func (f *fakeClientFactory) EC2(region string) EC2Client            { return f.ec2 }
func (f *fakeClientFactory) RDS(region string) RDSClient            { return f.rds }
func (f *fakeClientFactory) SavingsPlans(string) SavingsPlansClient { return f.savingsPlans }
func (f *fakeClientFactory) CostExplorer() CostExplorerClient       { return f.costExplorer }
func (f *fakeClientFactory) Budgets() BudgetsClient                 { return f.budgets }

// --- tests ---

// TestResolveSessionWithFactory verifies an injected factory short-circuits
// credential discovery.
func TestResolveSessionWithFactory(t *testing.T) {
	repo := NewAWSRepositoryWithFactory(newFakeFactory())
	require.NoError(t, repo.ResolveSession(context.Background(), ""))
}

// TestGetAccountID verifies the account ID comes from STS.
func TestGetAccountID(t *testing.T) {
	repo := NewAWSRepositoryWithFactory(newFakeFactory())

	accountID, err := repo.GetAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456789012", accountID)
}

// TestGetAccountIDWithoutSession verifies calls before ResolveSession fail
// with the sentinel error.
func TestGetAccountIDWithoutSession(t *testing.T) {
	repo := NewAWSRepository()

	_, err := repo.GetAccountID(context.Background())
	assert.ErrorIs(t, err, types.ErrSessionNotResolved)
}

// TestGetAccountIDError verifies STS failures propagate as errors.
func TestGetAccountIDError(t *testing.T) {
	factory := newFakeFactory()
	factory.sts.out = nil
	factory.sts.err = errors.New("sts unavailable")
	repo := NewAWSRepositoryWithFactory(factory)

	_, err := repo.GetAccountID(context.Background())
	assert.Error(t, err)
}

// TestGetAccessibleRegions verifies the enumerated region names are returned
// in API order when DescribeRegions succeeds.
func TestGetAccessibleRegions(t *testing.T) {
	factory := newFakeFactory()
	factory.ec2.regionsOut = &ec2.DescribeRegionsOutput{
		Regions: []ec2Types.Region{
			{RegionName: aws.String("us-east-1")},
			{RegionName: aws.String("eu-west-1")},
			{RegionName: aws.String("sa-east-1")},
		},
	}
	repo := NewAWSRepositoryWithFactory(factory)

	regions, fromFallback := repo.GetAccessibleRegions(context.Background())
	assert.False(t, fromFallback)
	assert.Equal(t, []string{"us-east-1", "eu-west-1", "sa-east-1"}, regions)
}

// TestGetAccessibleRegionsFallback verifies any DescribeRegions failure
// degrades to the static list of common regions, never an error.
func TestGetAccessibleRegionsFallback(t *testing.T) {
	factory := newFakeFactory()
	factory.ec2.regionsErr = errors.New("describe regions failed")
	repo := NewAWSRepositoryWithFactory(factory)

	regions, fromFallback := repo.GetAccessibleRegions(context.Background())
	assert.True(t, fromFallback)
	assert.Equal(t, defaultRegions, regions)
	assert.GreaterOrEqual(t, len(regions), 15)
}

// TestGetAccessibleRegionsEmptyResult verifies an empty listing also falls
// back to the static list.
func TestGetAccessibleRegionsEmptyResult(t *testing.T) {
	factory := newFakeFactory()
	factory.ec2.regionsOut = &ec2.DescribeRegionsOutput{}
	repo := NewAWSRepositoryWithFactory(factory)

	regions, fromFallback := repo.GetAccessibleRegions(context.Background())
	assert.True(t, fromFallback)
	assert.Equal(t, defaultRegions, regions)
}

// TestCollectReservationsUnsupportedCategory verifies unknown categories
// become a scan issue instead of a panic or error return.
func TestCollectReservationsUnsupportedCategory(t *testing.T) {
	repo := NewAWSRepositoryWithFactory(newFakeFactory())

	records, issue := repo.CollectReservations(context.Background(), "us-east-1", entity.Category("unknown"))
	assert.Empty(t, records)
	require.NotNil(t, issue)
	assert.Equal(t, entity.IssueError, issue.Class)
}

// TestCollectReservationsWithoutSession verifies collection before
// ResolveSession yields an issue, not a panic.
func TestCollectReservationsWithoutSession(t *testing.T) {
	repo := NewAWSRepository()

	records, issue := repo.CollectReservations(context.Background(), "us-east-1", entity.CategoryComputeReservation)
	assert.Empty(t, records)
	require.NotNil(t, issue)
	assert.Equal(t, entity.IssueError, issue.Class)
}

// TestGetCommitmentUtilization verifies Cost Explorer aggregates and the
// RI/SP budget filter.
func TestGetCommitmentUtilization(t *testing.T) {
	factory := newFakeFactory()
	factory.costExplorer.riOut = &costexplorer.GetReservationUtilizationOutput{
		Total: &ceTypes.ReservationAggregates{
			UtilizationPercentage: aws.String("87.5"),
			PurchasedHours:        aws.String("1000"),
			TotalActualHours:      aws.String("875"),
			UnusedHours:           aws.String("125"),
		},
	}
	factory.costExplorer.spOut = &costexplorer.GetSavingsPlansUtilizationOutput{
		Total: &ceTypes.SavingsPlansUtilizationAggregates{
			Utilization: &ceTypes.SavingsPlansUtilization{
				UtilizationPercentage: aws.String("92.25"),
				TotalCommitment:       aws.String("500"),
				UsedCommitment:        aws.String("461.25"),
				UnusedCommitment:      aws.String("38.75"),
			},
		},
	}
	factory.budgets.out = &budgets.DescribeBudgetsOutput{
		Budgets: []budgetTypes.Budget{
			{
				BudgetName: aws.String("ri-utilization"),
				BudgetType: budgetTypes.BudgetTypeRIUtilization,
				BudgetLimit: &budgetTypes.Spend{
					Amount: aws.String("100"),
					Unit:   aws.String("PERCENTAGE"),
				},
				CalculatedSpend: &budgetTypes.CalculatedSpend{
					ActualSpend: &budgetTypes.Spend{Amount: aws.String("87.5"), Unit: aws.String("PERCENTAGE")},
				},
			},
			{
				// Cost budgets are not commitment budgets and must be filtered out.
				BudgetName: aws.String("monthly-cost"),
				BudgetType: budgetTypes.BudgetTypeCost,
			},
		},
	}
	repo := NewAWSRepositoryWithFactory(factory)

	util, err := repo.GetCommitmentUtilization(context.Background())
	require.NoError(t, err)

	require.NotNil(t, util.RI)
	assert.Equal(t, 87.5, util.RI.UtilizationPercent)
	assert.Equal(t, 1000.0, util.RI.PurchasedHours)
	assert.Equal(t, 875.0, util.RI.UsedHours)

	require.NotNil(t, util.SP)
	assert.Equal(t, 92.25, util.SP.UtilizationPercent)
	assert.Equal(t, 461.25, util.SP.UsedCommitment)

	require.Len(t, util.Budgets, 1)
	assert.Equal(t, "ri-utilization", util.Budgets[0].Name)
	assert.Equal(t, 100.0, util.Budgets[0].Limit)
	assert.Equal(t, 87.5, util.Budgets[0].Actual)
}

// TestGetCommitmentUtilizationBothFail verifies the error path when neither
// Cost Explorer call succeeds.
func TestGetCommitmentUtilizationBothFail(t *testing.T) {
	factory := newFakeFactory()
	factory.costExplorer.riErr = errors.New("ce disabled")
	factory.costExplorer.spErr = errors.New("ce disabled")
	repo := NewAWSRepositoryWithFactory(factory)

	_, err := repo.GetCommitmentUtilization(context.Background())
	assert.Error(t, err)
}

// TestNewClientFactory verifies the SDK-backed factory builds a client per
// call from a resolved config with static credentials.
func TestNewClientFactory(t *testing.T) {
	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider("AKIAEXAMPLE", "secret", ""),
	}
	factory := NewClientFactory(cfg)

	assert.NotNil(t, factory.STS())
	assert.NotNil(t, factory.EC2("eu-west-2"))
	assert.NotNil(t, factory.RDS("eu-west-2"))
	assert.NotNil(t, factory.SavingsPlans("eu-west-2"))
	assert.NotNil(t, factory.CostExplorer())
	assert.NotNil(t, factory.Budgets())
}

// TestParseAmount verifies the Cost Explorer decimal-string helper.
func TestParseAmount(t *testing.T) {
	assert.Equal(t, 0.0, parseAmount(nil))
	assert.Equal(t, 0.0, parseAmount(aws.String("not a number")))
	assert.Equal(t, 12.34, parseAmount(aws.String("12.34")))
}
