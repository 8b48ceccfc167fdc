package usecase

import (
	"fmt"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

const summaryInstruction = `Write a simple business idea summary including:
1) Idea title
2) One-line description
3) Main customers
4) Problem solved
5) Why idea fits this location
6) 3 simple next steps.`

// buildSummaryContext enumerates the collected fields for the summary
// request. Missing fields render empty, never as an error.
func buildSummaryContext(profile *domain.IdeaProfile) string {
	return fmt.Sprintf(`Background: %s
Idea: %s
Customers: %s
Competitors: %s
Location: %s`,
		profile.Background,
		profile.Idea,
		profile.Customers,
		profile.Competitors,
		profile.Location,
	)
}
