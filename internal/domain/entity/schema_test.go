package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemaForCategories verifies every category resolves to its schema with
// Type and Region leading the field order.
func TestSchemaForCategories(t *testing.T) {
	for _, category := range Categories() {
		schema := SchemaFor(category)
		assert.Equal(t, category, schema.Category)
		require.GreaterOrEqual(t, len(schema.Fields), 2)
		assert.Equal(t, "Type", schema.Fields[0].Name)
		assert.Equal(t, "Region", schema.Fields[1].Name)
	}
}

// TestBuilderDefaults verifies kind defaults on an otherwise empty record:
// money fields render 0, counts 0, flags false, text and timestamps N/A.
func TestBuilderDefaults(t *testing.T) {
	record := SchemaFor(CategoryComputeReservation).NewBuilder("sa-east-1").Build()

	fixedPrice, ok := record.Get("FixedPrice")
	require.True(t, ok)
	assert.Equal(t, float64(0), fixedPrice)

	usagePrice, _ := record.Get("UsagePrice")
	assert.Equal(t, float64(0), usagePrice)

	instanceCount, _ := record.Get("InstanceCount")
	assert.Equal(t, int64(0), instanceCount)

	start, _ := record.Get("Start")
	assert.Equal(t, NotAvailable, start)

	zone, _ := record.Get("AvailabilityZone")
	assert.Equal(t, NotAvailable, zone)

	// Schema-level default overrides the kind default.
	currency, _ := record.Get("CurrencyCode")
	assert.Equal(t, "USD", currency)
}

// TestBuilderFlagDefault verifies the flag kind defaults to false.
func TestBuilderFlagDefault(t *testing.T) {
	record := SchemaFor(CategoryDatabaseReservation).NewBuilder("us-west-2").Build()

	multiAZ, ok := record.Get("MultiAZ")
	require.True(t, ok)
	assert.Equal(t, false, multiAZ)
}

// TestBuilderSetText verifies empty text keeps the schema default.
func TestBuilderSetText(t *testing.T) {
	record := SchemaFor(CategorySubscriptionPlan).
		NewBuilder("us-east-1").
		SetText("SavingsPlanId", "sp-123").
		SetText("Description", "").
		SetText("Currency", "").
		Build()

	id, _ := record.Get("SavingsPlanId")
	assert.Equal(t, "sp-123", id)

	description, _ := record.Get("Description")
	assert.Equal(t, NotAvailable, description)

	currency, _ := record.Get("Currency")
	assert.Equal(t, "USD", currency)
}

// TestBuilderTimestamps verifies time values render in the report layout,
// textual timestamps pass through unchanged and nil keeps the N/A default.
func TestBuilderTimestamps(t *testing.T) {
	start := time.Date(2024, 11, 30, 18, 45, 0, 0, time.UTC)
	record := SchemaFor(CategoryComputeReservation).
		NewBuilder("eu-central-1").
		SetTimestamp("Start", &start).
		SetTimestamp("End", nil).
		Build()

	startValue, _ := record.Get("Start")
	assert.Equal(t, "2024-11-30 18:45:00 UTC", startValue)

	endValue, _ := record.Get("End")
	assert.Equal(t, NotAvailable, endValue)

	plan := SchemaFor(CategorySubscriptionPlan).
		NewBuilder("us-east-1").
		SetTimestampText("Start", "2023-06-01T00:00:00.000Z").
		SetTimestampText("End", "").
		Build()

	planStart, _ := plan.Get("Start")
	assert.Equal(t, "2023-06-01T00:00:00.000Z", planStart)

	planEnd, _ := plan.Get("End")
	assert.Equal(t, NotAvailable, planEnd)
}

// TestBuilderFieldOrder verifies the built record follows the schema order
// regardless of the order values were set in.
func TestBuilderFieldOrder(t *testing.T) {
	record := SchemaFor(CategoryComputeReservation).
		NewBuilder("us-east-1").
		SetText("CurrencyCode", "BRL").
		SetText("ReservedInstancesId", "ri-1").
		SetMoney("FixedPrice", 10).
		Build()

	schema := SchemaFor(CategoryComputeReservation)
	require.Equal(t, len(schema.Fields), record.Len())
	for i, field := range record.Fields() {
		assert.Equal(t, schema.Fields[i].Name, field.Name)
	}
}

// TestBuilderTypeAndRegion verifies the builder seeds the two mandatory
// fields on creation.
func TestBuilderTypeAndRegion(t *testing.T) {
	record := SchemaFor(CategorySubscriptionPlan).NewBuilder("ap-south-1").Build()
	assert.Equal(t, CategorySubscriptionPlan, record.Category())
	assert.Equal(t, "ap-south-1", record.Region())
}
