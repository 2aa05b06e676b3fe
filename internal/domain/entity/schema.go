package entity

import "time"

// FieldKind classifies how a schema field defaults when the source value is
// missing.
type FieldKind int

const (
	// KindText defaults to "N/A".
	KindText FieldKind = iota
	// KindTimestamp renders time values as "YYYY-MM-DD HH:MM:SS UTC" and
	// defaults to "N/A". Source values that are already text pass through.
	KindTimestamp
	// KindMoney defaults to 0.
	KindMoney
	// KindCount defaults to 0.
	KindCount
	// KindFlag defaults to false.
	KindFlag
)

// FieldDef declara um campo do schema de uma categoria. Default, quando não
// nulo, substitui o default do kind (ex.: CurrencyCode -> "USD").
type FieldDef struct {
	Name    string
	Kind    FieldKind
	Default any
}

func (d FieldDef) fallback() any {
	if d.Default != nil {
		return d.Default
	}
	switch d.Kind {
	case KindMoney:
		return float64(0)
	case KindCount:
		return int64(0)
	case KindFlag:
		return false
	default:
		return NotAvailable
	}
}

// Schema declara o layout ordenado dos campos de uma categoria de registro.
// A ordem dos campos aqui é a ordem do registro serializado.
type Schema struct {
	Category Category
	Fields   []FieldDef
}

var computeReservationSchema = Schema{
	Category: CategoryComputeReservation,
	Fields: []FieldDef{
		{Name: "Type", Kind: KindText},
		{Name: "Region", Kind: KindText},
		{Name: "ReservedInstancesId", Kind: KindText},
		{Name: "InstanceType", Kind: KindText},
		{Name: "AvailabilityZone", Kind: KindText},
		{Name: "State", Kind: KindText},
		{Name: "Start", Kind: KindTimestamp},
		{Name: "End", Kind: KindTimestamp},
		{Name: "Duration", Kind: KindText},
		{Name: "InstanceCount", Kind: KindCount},
		{Name: "ProductDescription", Kind: KindText},
		{Name: "InstanceTenancy", Kind: KindText},
		{Name: "OfferingClass", Kind: KindText},
		{Name: "OfferingType", Kind: KindText},
		{Name: "FixedPrice", Kind: KindMoney},
		{Name: "UsagePrice", Kind: KindMoney},
		{Name: "CurrencyCode", Kind: KindText, Default: "USD"},
	},
}

var databaseReservationSchema = Schema{
	Category: CategoryDatabaseReservation,
	Fields: []FieldDef{
		{Name: "Type", Kind: KindText},
		{Name: "Region", Kind: KindText},
		{Name: "ReservedDBInstanceId", Kind: KindText},
		{Name: "DBInstanceClass", Kind: KindText},
		{Name: "Engine", Kind: KindText},
		{Name: "State", Kind: KindText},
		{Name: "Start", Kind: KindTimestamp},
		{Name: "Duration", Kind: KindText},
		{Name: "DBInstanceCount", Kind: KindCount},
		{Name: "OfferingType", Kind: KindText},
		{Name: "MultiAZ", Kind: KindFlag},
		{Name: "FixedPrice", Kind: KindMoney},
		{Name: "UsagePrice", Kind: KindMoney},
		{Name: "CurrencyCode", Kind: KindText, Default: "USD"},
	},
}

var subscriptionPlanSchema = Schema{
	Category: CategorySubscriptionPlan,
	Fields: []FieldDef{
		{Name: "Type", Kind: KindText},
		{Name: "Region", Kind: KindText},
		{Name: "SavingsPlanId", Kind: KindText},
		{Name: "SavingsPlanArn", Kind: KindText},
		{Name: "Description", Kind: KindText},
		{Name: "State", Kind: KindText},
		{Name: "PlanType", Kind: KindText},
		{Name: "PaymentOption", Kind: KindText},
		{Name: "Start", Kind: KindTimestamp},
		{Name: "End", Kind: KindTimestamp},
		{Name: "Commitment", Kind: KindText},
		{Name: "Currency", Kind: KindText, Default: "USD"},
		{Name: "UpfrontPayment", Kind: KindText},
		{Name: "RecurringPayment", Kind: KindText},
		{Name: "TermDurationInSeconds", Kind: KindText},
		{Name: "EC2InstanceFamily", Kind: KindText},
		{Name: "PlanRegion", Kind: KindText},
	},
}

// SchemaFor returns the record schema of the given category.
func SchemaFor(c Category) Schema {
	switch c {
	case CategoryComputeReservation:
		return computeReservationSchema
	case CategoryDatabaseReservation:
		return databaseReservationSchema
	case CategorySubscriptionPlan:
		return subscriptionPlanSchema
	}
	return Schema{Category: c}
}

// RecordBuilder monta um Record de um schema aplicando os defaults por kind.
// Type e Region são preenchidos na criação; campos não setados recebem o
// fallback do schema na ordem declarada.
type RecordBuilder struct {
	schema Schema
	values map[string]any
}

// NewBuilder starts a record for one resource found in the given scan region.
func (s Schema) NewBuilder(region string) *RecordBuilder {
	b := &RecordBuilder{schema: s, values: make(map[string]any, len(s.Fields))}
	b.values["Type"] = string(s.Category)
	b.values["Region"] = region
	return b
}

// Set stores a raw value for the named field.
func (b *RecordBuilder) Set(name string, value any) *RecordBuilder {
	b.values[name] = value
	return b
}

// SetText stores a text value; empty text keeps the schema default.
func (b *RecordBuilder) SetText(name, value string) *RecordBuilder {
	if value != "" {
		b.values[name] = value
	}
	return b
}

// SetMoney stores a monetary value.
func (b *RecordBuilder) SetMoney(name string, value float64) *RecordBuilder {
	b.values[name] = value
	return b
}

// SetCount stores an integer count.
func (b *RecordBuilder) SetCount(name string, value int64) *RecordBuilder {
	b.values[name] = value
	return b
}

// SetFlag stores a boolean value.
func (b *RecordBuilder) SetFlag(name string, value bool) *RecordBuilder {
	b.values[name] = value
	return b
}

// SetTimestamp renders t no layout do relatório; nil mantém o default N/A.
func (b *RecordBuilder) SetTimestamp(name string, t *time.Time) *RecordBuilder {
	if t != nil {
		b.values[name] = FormatTimestamp(*t)
	}
	return b
}

// SetTimestampText stores an already-textual timestamp unchanged; empty text
// keeps the default.
func (b *RecordBuilder) SetTimestampText(name, value string) *RecordBuilder {
	if value != "" {
		b.values[name] = value
	}
	return b
}

// Build materializes the record in schema order.
func (b *RecordBuilder) Build() Record {
	fields := make([]Field, 0, len(b.schema.Fields))
	for _, def := range b.schema.Fields {
		v, ok := b.values[def.Name]
		if !ok {
			v = def.fallback()
		}
		fields = append(fields, Field{Name: def.Name, Value: v})
	}
	return newRecord(fields)
}
