package entity

import "time"

// IssueClass classifica uma falha não fatal de coleta.
type IssueClass string

const (
	// IssueAccessDenied marks fetches rejected by authorization.
	IssueAccessDenied IssueClass = "access-denied"
	// IssueError marks any other non-fatal fetch failure.
	IssueError IssueClass = "error"
)

// ScanIssue records a non-fatal failure for one region/category fetch. The
// scan keeps going; issues only influence console diagnostics.
type ScanIssue struct {
	Region   string     `json:"region"`
	Category Category   `json:"category"`
	Class    IssueClass `json:"class"`
	Message  string     `json:"message"`
}

// RegionCount é a contagem de registros de uma região, na ordem em que a
// região apareceu pela primeira vez no resultado.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// CategoryCount is the number of records of one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// ReservationReport agrega o resultado completo de uma varredura da conta.
// O dump JSON gravado em disco contém apenas Records; os demais campos
// existem para o console e para os exports opcionais.
type ReservationReport struct {
	AccountID   string          `json:"account_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Records     []Record        `json:"records"`
	RegionIndex []RegionCount   `json:"region_index"`
	Categories  []CategoryCount `json:"categories"`
	Total       int             `json:"total"`
	Issues      []ScanIssue     `json:"issues,omitempty"`
}
