// Package analysis содержит аналитические отчеты по проектам.
//
// Реализация унаследована от прототипа и использует статические таблицы
// вместо реальных моделей. Некоторые расчеты помечены как временные.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// policy описывает нормативное требование, по которому проверяется проект.
type policy struct {
	ID          string
	Title       string
	Category    string
	Threshold   float64
	Description string
}

// policyDB статический набор требований FAR для проверки проектов.
var policyDB = []policy{
	{
		ID:          "FAR-15.404",
		Title:       "Proposal Analysis Techniques",
		Category:    "pricing",
		Threshold:   500000,
		Description: "Cost or price analysis required for proposals above threshold",
	},
	{
		ID:          "FAR-31.201",
		Title:       "Allowable Cost Determination",
		Category:    "cost_principles",
		Threshold:   100000,
		Description: "Costs must be reasonable, allocable and allowable",
	},
	{
		ID:          "FAR-52.215",
		Title:       "Certified Cost or Pricing Data",
		Category:    "disclosure",
		Threshold:   2000000,
		Description: "Certified cost or pricing data required above threshold",
	},
	{
		ID:          "FAR-9.104",
		Title:       "Responsibility Standards",
		Category:    "qualification",
		Threshold:   250000,
		Description: "Contractor responsibility determination required",
	},
}

// PolicyFinding результат проверки проекта по одному требованию.
type PolicyFinding struct {
	PolicyID    string  `json:"policy_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	Threshold   float64 `json:"threshold"`
}

// ComplianceReport сводный отчет соответствия проекта нормативным требованиям.
//
// Поле requires_executive_review намеренно продублировано в двух стилях
// именования: клиенты прототипа читают оба ключа.
type ComplianceReport struct {
	ProjectID                int             `json:"project_id"`
	ProjectName              string          `json:"project_name"`
	Agency                   string          `json:"agency"`
	OverallStatus            string          `json:"overall_status"`
	RiskScore                float64         `json:"risk_score"`
	Violations               int             `json:"violations"`
	Findings                 []PolicyFinding `json:"findings"`
	RequiresExecutiveReview  bool            `json:"requires_executive_review"`
	RequiresExecutiveReview2 bool            `json:"requiresExecutiveReview"`
	GeneratedAt              time.Time       `json:"generated_at"`
}

// ProjectReader возвращает проект владельца для построения отчета.
type ProjectReader interface {
	ReadProject(ctx context.Context, id int, userUID string) (*ProjectInfo, error)
}

// ProjectInfo подмножество полей проекта, нужное аналитике.
type ProjectInfo struct {
	ID          int
	Name        string
	Agency      string
	Budget      float64
	Description string
}

// Compliance проверяет бюджет проекта против порогов статической базы требований.
// Итоговый статус всегда PARTIAL при превышении хотя бы одного порога.
func Compliance(project *ProjectInfo) *ComplianceReport {
	findings := make([]PolicyFinding, 0, len(policyDB))
	violations := 0

	for _, p := range policyDB {
		status := "COMPLIANT"
		severity := "low"
		if project.Budget > p.Threshold {
			// TODO: заменить на реальную проверку документации проекта,
			// сейчас превышение порога всегда дает PARTIAL.
			status = "PARTIAL"
			severity = severityFor(project.Budget, p.Threshold)
			violations++
		}
		findings = append(findings, PolicyFinding{
			PolicyID:    p.ID,
			Title:       p.Title,
			Category:    p.Category,
			Status:      status,
			Severity:    severity,
			Description: p.Description,
			Threshold:   p.Threshold,
		})
	}

	riskScore := 0.12 * float64(violations)
	if riskScore > 0.45 {
		riskScore = 0.45
	}

	overall := "COMPLIANT"
	if violations > 0 {
		overall = "PARTIAL"
	}

	return &ComplianceReport{
		ProjectID:                project.ID,
		ProjectName:              project.Name,
		Agency:                   project.Agency,
		OverallStatus:            overall,
		RiskScore:                riskScore,
		Violations:               violations,
		Findings:                 findings,
		RequiresExecutiveReview:  riskScore >= 0.3,
		RequiresExecutiveReview2: riskScore >= 0.3,
		GeneratedAt:              time.Now().UTC(),
	}
}

func severityFor(budget, threshold float64) string {
	switch {
	case budget > threshold*4:
		return "high"
	case budget > threshold*2:
		return "medium"
	default:
		return "low"
	}
}

// normalizeAgency приводит название агентства к ключу таблицы множителей.
func normalizeAgency(agency string) string {
	key := strings.ToUpper(strings.TrimSpace(agency))
	if _, ok := agencyMultipliers[key]; ok {
		return key
	}
	return "DEFAULT"
}

// describeAgency возвращает человеко-читаемое имя для отчета.
func describeAgency(agency string) string {
	key := normalizeAgency(agency)
	if key == "DEFAULT" {
		return fmt.Sprintf("%s (standard rates)", agency)
	}
	return key
}
