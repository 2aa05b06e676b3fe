package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Category identifica o tipo de compromisso que um registro descreve.
type Category string

const (
	CategoryComputeReservation  Category = "compute-reservation"
	CategoryDatabaseReservation Category = "database-reservation"
	CategorySubscriptionPlan    Category = "subscription-plan"
)

// Categories returns every record category in scan order.
func Categories() []Category {
	return []Category{
		CategoryComputeReservation,
		CategoryDatabaseReservation,
		CategorySubscriptionPlan,
	}
}

// Label returns the display name used in record headers.
func (c Category) Label() string {
	switch c {
	case CategoryComputeReservation:
		return "EC2 Reserved Instance"
	case CategoryDatabaseReservation:
		return "RDS Reserved Instance"
	case CategorySubscriptionPlan:
		return "Savings Plan"
	}
	return string(c)
}

// PluralLabel returns the display name used in summary lines.
func (c Category) PluralLabel() string {
	return c.Label() + "s"
}

// NotAvailable é o valor sentinela para campos opcionais ausentes.
const NotAvailable = "N/A"

// timestampLayout renders instants in UTC for report output.
const timestampLayout = "2006-01-02 15:04:05 UTC"

// FormatTimestamp renders t in UTC using the report layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Field is a single name/value pair of a reservation record.
type Field struct {
	Name  string
	Value any
}

// Record é um mapeamento plano e ordenado de campos que descreve uma única
// reserva ou savings plan. A ordem de inserção dos campos faz parte do
// registro: a serialização JSON a preserva, e serializar -> ler -> serializar
// reproduz os mesmos bytes. Um Record é imutável depois de construído.
type Record struct {
	fields []Field
	index  map[string]int
}

func newRecord(fields []Field) Record {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return Record{fields: fields, index: idx}
}

// Category returns the record's Type discriminant.
func (r Record) Category() Category {
	if v, ok := r.Get("Type"); ok {
		return Category(FormatValue(v))
	}
	return ""
}

// Region returns the region under scan when the record was found.
func (r Record) Region() string {
	if v, ok := r.Get("Region"); ok {
		return FormatValue(v)
	}
	return ""
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Fields returns a copy of the record's fields in insertion order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// MarshalJSON serializa o registro como um objeto JSON preservando a ordem
// de inserção dos campos. Valores não primitivos são convertidos para a sua
// forma textual no momento da serialização.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalFieldValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalFieldValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, json.Number:
		return json.Marshal(val)
	case time.Time:
		return json.Marshal(FormatTimestamp(val))
	default:
		// Qualquer outro tipo vira texto, como no dump original.
		return json.Marshal(fmt.Sprint(val))
	}
}

// UnmarshalJSON reconstrói o registro preservando a ordem dos campos do
// objeto JSON. Registros são planos: valores aninhados são rejeitados.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: invalid field name %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		if _, nested := valTok.(json.Delim); nested {
			return fmt.Errorf("record: field %s has a nested value", key)
		}
		fields = append(fields, Field{Name: key, Value: valTok})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = newRecord(fields)
	return nil
}

// FormatValue renders a field value for console and tabular output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NotAvailable
	case string:
		return val
	case json.Number:
		return val.String()
	case time.Time:
		return FormatTimestamp(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
