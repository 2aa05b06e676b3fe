package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-reservations-report/internal/domain/entity"
	"github.com/diillson/aws-reservations-report/internal/domain/repository"
	"github.com/diillson/aws-reservations-report/internal/shared/types"
)

// defaultRegions é a lista estática usada quando DescribeRegions falha.
var defaultRegions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
	"ap-southeast-1", "ap-southeast-2", "ap-northeast-1", "ap-northeast-2",
	"ap-south-1", "ca-central-1", "sa-east-1",
}

// AWSRepositoryImpl implementa o AWSRepository sobre o SDK v2. A varredura é
// estritamente sequencial, então não há estado compartilhado entre goroutines.
type AWSRepositoryImpl struct {
	clients    ClientFactory
	collectors map[entity.Category]resourceCollector
}

// NewAWSRepository cria uma nova implementação do AWSRepository. A sessão é
// resolvida depois, via ResolveSession.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{}
}

// NewAWSRepositoryWithFactory cria o repositório sobre uma fábrica de
// clientes já resolvida. É o ponto de injeção para testes com fakes.
func NewAWSRepositoryWithFactory(factory ClientFactory) repository.AWSRepository {
	r := &AWSRepositoryImpl{}
	r.setFactory(factory)
	return r
}

func (r *AWSRepositoryImpl) setFactory(factory ClientFactory) {
	r.clients = factory
	r.collectors = map[entity.Category]resourceCollector{
		entity.CategoryComputeReservation:  &computeReservationCollector{clients: factory},
		entity.CategoryDatabaseReservation: &databaseReservationCollector{clients: factory},
		entity.CategorySubscriptionPlan:    &subscriptionPlanCollector{clients: factory},
	}
}

// ResolveSession resolve a cadeia padrão de credenciais do host (honrando um
// profile opcional) e verifica que alguma credencial é de fato descobrível.
// Retorna types.ErrNoCredentials quando nada pode ser resolvido.
func (r *AWSRepositoryImpl) ResolveSession(ctx context.Context, profile string) error {
	if r.clients != nil {
		return nil
	}

	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNoCredentials, err)
	}

	if cfg.Credentials == nil {
		return types.ErrNoCredentials
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNoCredentials, err)
	}
	if !creds.HasKeys() {
		return types.ErrNoCredentials
	}

	r.setFactory(NewClientFactory(cfg))
	return nil
}

// GetAccountID busca o ID da conta do chamador via STS.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	if r.clients == nil {
		return "", types.ErrSessionNotResolved
	}

	result, err := r.clients.STS().GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	return aws.ToString(result.Account), nil
}

// GetAWSProfiles lista os profiles declarados nos arquivos compartilhados
// (~/.aws/credentials e ~/.aws/config). Usado apenas como dica de remediação.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	credentialsPath := filepath.Join(homeDir, ".aws", "credentials")
	configPath := filepath.Join(homeDir, ".aws", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

// GetAccessibleRegions lista as regiões habilitadas da conta. Qualquer falha
// devolve a lista estática de regiões comuns (fromFallback true); nunca erro.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context) ([]string, bool) {
	if r.clients == nil {
		return defaultRegions, true
	}

	result, err := r.clients.EC2("").DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil || len(result.Regions) == 0 {
		return defaultRegions, true
	}

	regions := make([]string, 0, len(result.Regions))
	for _, region := range result.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, false
}

// CollectReservations busca os registros de uma categoria em uma região.
// Falhas nunca propagam: viram um ScanIssue classificado e lista vazia.
func (r *AWSRepositoryImpl) CollectReservations(ctx context.Context, region string, category entity.Category) ([]entity.Record, *entity.ScanIssue) {
	if r.clients == nil {
		return nil, &entity.ScanIssue{
			Region:   region,
			Category: category,
			Class:    entity.IssueError,
			Message:  types.ErrSessionNotResolved.Error(),
		}
	}

	collector, ok := r.collectors[category]
	if !ok {
		return nil, &entity.ScanIssue{
			Region:   region,
			Category: category,
			Class:    entity.IssueError,
			Message:  fmt.Sprintf("unsupported category: %s", category),
		}
	}

	records, err := collector.collect(ctx, region)
	if err != nil {
		return nil, classifyIssue(region, category, err)
	}
	return records, nil
}

// GetCommitmentUtilization busca no Cost Explorer a utilização de Reserved
// Instances e Savings Plans dos últimos 30 dias, mais os budgets de
// compromisso da conta.
func (r *AWSRepositoryImpl) GetCommitmentUtilization(ctx context.Context) (*entity.CommitmentUtilization, error) {
	if r.clients == nil {
		return nil, types.ErrSessionNotResolved
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	period := &ceTypes.DateInterval{
		Start: aws.String(start.Format("2006-01-02")),
		End:   aws.String(end.Format("2006-01-02")),
	}

	util := &entity.CommitmentUtilization{PeriodStart: start, PeriodEnd: end}
	ceClient := r.clients.CostExplorer()

	riOut, riErr := ceClient.GetReservationUtilization(ctx, &costexplorer.GetReservationUtilizationInput{
		TimePeriod: period,
	})
	if riErr == nil && riOut.Total != nil {
		util.RI = &entity.RIUtilization{
			UtilizationPercent: parseAmount(riOut.Total.UtilizationPercentage),
			PurchasedHours:     parseAmount(riOut.Total.PurchasedHours),
			UsedHours:          parseAmount(riOut.Total.TotalActualHours),
			UnusedHours:        parseAmount(riOut.Total.UnusedHours),
		}
	}

	spOut, spErr := ceClient.GetSavingsPlansUtilization(ctx, &costexplorer.GetSavingsPlansUtilizationInput{
		TimePeriod: period,
	})
	if spErr == nil && spOut.Total != nil && spOut.Total.Utilization != nil {
		util.SP = &entity.SPUtilization{
			UtilizationPercent: parseAmount(spOut.Total.Utilization.UtilizationPercentage),
			TotalCommitment:    parseAmount(spOut.Total.Utilization.TotalCommitment),
			UsedCommitment:     parseAmount(spOut.Total.Utilization.UsedCommitment),
			UnusedCommitment:   parseAmount(spOut.Total.Utilization.UnusedCommitment),
		}
	}

	if riErr != nil && spErr != nil {
		return nil, fmt.Errorf("error getting commitment utilization: %w", riErr)
	}

	util.Budgets = r.getCommitmentBudgets(ctx)
	return util, nil
}

// getCommitmentBudgets filtra os budgets de utilização/cobertura de RI e SP.
func (r *AWSRepositoryImpl) getCommitmentBudgets(ctx context.Context) []entity.CommitmentBudget {
	accountID, err := r.GetAccountID(ctx)
	if err != nil {
		return nil
	}

	result, err := r.clients.Budgets().DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil // Not a fatal error
	}

	commitmentTypes := map[budgetTypes.BudgetType]bool{
		budgetTypes.BudgetTypeRIUtilization: true,
		budgetTypes.BudgetTypeRICoverage:    true,
		budgetTypes.BudgetTypeSPUtilization: true,
		budgetTypes.BudgetTypeSPCoverage:    true,
	}

	var out []entity.CommitmentBudget
	for _, budget := range result.Budgets {
		if !commitmentTypes[budget.BudgetType] {
			continue
		}
		b := entity.CommitmentBudget{
			Name: aws.ToString(budget.BudgetName),
			Type: string(budget.BudgetType),
		}
		if budget.BudgetLimit != nil {
			b.Limit = parseAmount(budget.BudgetLimit.Amount)
			b.Unit = aws.ToString(budget.BudgetLimit.Unit)
		}
		if budget.CalculatedSpend != nil {
			if budget.CalculatedSpend.ActualSpend != nil {
				b.Actual = parseAmount(budget.CalculatedSpend.ActualSpend.Amount)
			}
			if budget.CalculatedSpend.ForecastedSpend != nil {
				b.Forecast = parseAmount(budget.CalculatedSpend.ForecastedSpend.Amount)
			}
		}
		out = append(out, b)
	}
	return out
}

func parseAmount(s *string) float64 {
	if s == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(*s, 64)
	return v
}
