package entity

import "time"

// RIUtilization resume a utilização de Reserved Instances no período.
type RIUtilization struct {
	UtilizationPercent float64 `json:"utilization_percent"`
	PurchasedHours     float64 `json:"purchased_hours,omitempty"`
	UsedHours          float64 `json:"used_hours,omitempty"`
	UnusedHours        float64 `json:"unused_hours,omitempty"`
}

// SPUtilization resume a utilização de Savings Plans no período.
type SPUtilization struct {
	UtilizationPercent float64 `json:"utilization_percent"`
	TotalCommitment    float64 `json:"total_commitment,omitempty"`
	UsedCommitment     float64 `json:"used_commitment,omitempty"`
	UnusedCommitment   float64 `json:"unused_commitment,omitempty"`
}

// CommitmentBudget is a budget scoped to RI or Savings Plans utilization or
// coverage.
type CommitmentBudget struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// CommitmentUtilization combina utilização de RI e SP com os budgets de
// compromisso da conta para o período analisado.
type CommitmentUtilization struct {
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	RI          *RIUtilization     `json:"ri,omitempty"`
	SP          *SPUtilization     `json:"sp,omitempty"`
	Budgets     []CommitmentBudget `json:"budgets,omitempty"`
}
