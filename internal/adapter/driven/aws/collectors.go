package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-reservations-report/internal/domain/entity"
)

// resourceCollector busca os registros de uma categoria em uma região. As
// três categorias compartilham a travessia e a classificação de erros; cada
// coletor implementa apenas a chamada de API e o mapeamento de campos.
type resourceCollector interface {
	category() entity.Category
	collect(ctx context.Context, region string) ([]entity.Record, error)
}

// accessDeniedCodes são os códigos de erro de API suprimidos silenciosamente.
var accessDeniedCodes = map[string]bool{
	"UnauthorizedOperation": true,
	"AccessDenied":          true,
	"AccessDeniedException": true,
}

// classifyIssue converte um erro de coleta em um ScanIssue não fatal.
func classifyIssue(region string, category entity.Category, err error) *entity.ScanIssue {
	issue := &entity.ScanIssue{
		Region:   region,
		Category: category,
		Class:    entity.IssueError,
		Message:  err.Error(),
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		issue.Message = fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		if accessDeniedCodes[apiErr.ErrorCode()] {
			issue.Class = entity.IssueAccessDenied
		}
	}
	return issue
}

type computeReservationCollector struct {
	clients ClientFactory
}

func (c *computeReservationCollector) category() entity.Category {
	return entity.CategoryComputeReservation
}

func (c *computeReservationCollector) collect(ctx context.Context, region string) ([]entity.Record, error) {
	client := c.clients.EC2(region)
	result, err := client.DescribeReservedInstances(ctx, &ec2.DescribeReservedInstancesInput{})
	if err != nil {
		return nil, err
	}

	schema := entity.SchemaFor(entity.CategoryComputeReservation)
	records := make([]entity.Record, 0, len(result.ReservedInstances))
	for _, ri := range result.ReservedInstances {
		b := schema.NewBuilder(region)
		b.SetText("ReservedInstancesId", aws.ToString(ri.ReservedInstancesId))
		b.SetText("InstanceType", string(ri.InstanceType))
		b.SetText("AvailabilityZone", aws.ToString(ri.AvailabilityZone))
		b.SetText("State", string(ri.State))
		b.SetTimestamp("Start", ri.Start)
		b.SetTimestamp("End", ri.End)
		if ri.Duration != nil {
			b.SetText("Duration", fmt.Sprintf("%d seconds", *ri.Duration))
		}
		if ri.InstanceCount != nil {
			b.SetCount("InstanceCount", int64(*ri.InstanceCount))
		}
		b.SetText("ProductDescription", string(ri.ProductDescription))
		b.SetText("InstanceTenancy", string(ri.InstanceTenancy))
		b.SetText("OfferingClass", string(ri.OfferingClass))
		b.SetText("OfferingType", string(ri.OfferingType))
		if ri.FixedPrice != nil {
			b.SetMoney("FixedPrice", float64(*ri.FixedPrice))
		}
		if ri.UsagePrice != nil {
			b.SetMoney("UsagePrice", float64(*ri.UsagePrice))
		}
		b.SetText("CurrencyCode", string(ri.CurrencyCode))
		records = append(records, b.Build())
	}
	return records, nil
}

type databaseReservationCollector struct {
	clients ClientFactory
}

func (c *databaseReservationCollector) category() entity.Category {
	return entity.CategoryDatabaseReservation
}

func (c *databaseReservationCollector) collect(ctx context.Context, region string) ([]entity.Record, error) {
	client := c.clients.RDS(region)
	result, err := client.DescribeReservedDBInstances(ctx, &rds.DescribeReservedDBInstancesInput{})
	if err != nil {
		return nil, err
	}

	schema := entity.SchemaFor(entity.CategoryDatabaseReservation)
	records := make([]entity.Record, 0, len(result.ReservedDBInstances))
	for _, ri := range result.ReservedDBInstances {
		b := schema.NewBuilder(region)
		b.SetText("ReservedDBInstanceId", aws.ToString(ri.ReservedDBInstanceId))
		b.SetText("DBInstanceClass", aws.ToString(ri.DBInstanceClass))
		b.SetText("Engine", aws.ToString(ri.ProductDescription))
		b.SetText("State", aws.ToString(ri.State))
		b.SetTimestamp("Start", ri.StartTime)
		if ri.Duration != nil {
			b.SetText("Duration", fmt.Sprintf("%d seconds", *ri.Duration))
		}
		if ri.DBInstanceCount != nil {
			b.SetCount("DBInstanceCount", int64(*ri.DBInstanceCount))
		}
		b.SetText("OfferingType", aws.ToString(ri.OfferingType))
		if ri.MultiAZ != nil {
			b.SetFlag("MultiAZ", *ri.MultiAZ)
		}
		if ri.FixedPrice != nil {
			b.SetMoney("FixedPrice", *ri.FixedPrice)
		}
		if ri.UsagePrice != nil {
			b.SetMoney("UsagePrice", *ri.UsagePrice)
		}
		b.SetText("CurrencyCode", aws.ToString(ri.CurrencyCode))
		records = append(records, b.Build())
	}
	return records, nil
}

type subscriptionPlanCollector struct {
	clients ClientFactory
}

func (c *subscriptionPlanCollector) category() entity.Category {
	return entity.CategorySubscriptionPlan
}

func (c *subscriptionPlanCollector) collect(ctx context.Context, region string) ([]entity.Record, error) {
	client := c.clients.SavingsPlans(region)
	result, err := client.DescribeSavingsPlans(ctx, &savingsplans.DescribeSavingsPlansInput{})
	if err != nil {
		return nil, err
	}

	schema := entity.SchemaFor(entity.CategorySubscriptionPlan)
	records := make([]entity.Record, 0, len(result.SavingsPlans))
	for _, sp := range result.SavingsPlans {
		b := schema.NewBuilder(region)
		b.SetText("SavingsPlanId", aws.ToString(sp.SavingsPlanId))
		b.SetText("SavingsPlanArn", aws.ToString(sp.SavingsPlanArn))
		b.SetText("Description", aws.ToString(sp.Description))
		b.SetText("State", string(sp.State))
		b.SetText("PlanType", string(sp.SavingsPlanType))
		b.SetText("PaymentOption", string(sp.PaymentOption))
		// A API de Savings Plans devolve datas já em texto ISO-8601.
		b.SetTimestampText("Start", aws.ToString(sp.Start))
		b.SetTimestampText("End", aws.ToString(sp.End))
		if sp.Commitment != nil {
			currency := string(sp.Currency)
			if currency == "" {
				currency = "USD"
			}
			b.SetText("Commitment", fmt.Sprintf("%s %s/hour", aws.ToString(sp.Commitment), currency))
		}
		b.SetText("Currency", string(sp.Currency))
		b.SetText("UpfrontPayment", aws.ToString(sp.UpfrontPaymentAmount))
		b.SetText("RecurringPayment", aws.ToString(sp.RecurringPaymentAmount))
		if sp.TermDurationInSeconds > 0 {
			b.SetCount("TermDurationInSeconds", sp.TermDurationInSeconds)
		}
		b.SetText("EC2InstanceFamily", aws.ToString(sp.Ec2InstanceFamily))
		b.SetText("PlanRegion", aws.ToString(sp.Region))
		records = append(records, b.Build())
	}
	return records, nil
}
