package derived

import (
	"strings"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

type categoryRule struct {
	category domain.Category
	keywords []string
}

// categoryRules is evaluated top to bottom; the first rule with a matching keyword wins
var categoryRules = []categoryRule{
	{domain.CategoryRailway, []string{"railway", "rrb"}},
	{domain.CategoryBanking, []string{"bank", "sbi", "rbi"}},
	{domain.CategoryUPSCSSC, []string{"upsc", "ssc", "psc", "staff selection", "public service commission"}},
	{domain.CategoryDefence, []string{"police", "defence", "defense", "army", "navy", "air force"}},
	{domain.CategoryTeaching, []string{"university", "college", "school", "education"}},
	{domain.CategoryMedical, []string{"hospital", "aiims", "medical"}},
	{domain.CategoryJudicial, []string{"court", "judicial"}},
}

// CategoryOf classifies an organization name by case-insensitive keyword match
func CategoryOf(organization string) domain.Category {
	org := strings.ToLower(organization)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(org, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

// ParseCategory resolves a category label case-insensitively
func ParseCategory(s string) (domain.Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range domain.Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}
