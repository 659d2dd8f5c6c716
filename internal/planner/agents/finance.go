package agents

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

// FinanceErrands lists upcoming bills and errands and slots an errand run
// into the largest evening free block.
func FinanceErrands(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	emails := collab.FetchEmails()

	bills := []models.Bill{
		{Name: "Credit Card", Due: "in 2 days", Amount: 1200},
		{Name: "Electricity", Due: "in 5 days", Amount: 850},
	}
	errands := []models.Errand{
		{Title: "Groceries (milk, eggs, greens)", DurationMin: 25},
		{Title: "Dry cleaning pickup", DurationMin: 15},
	}

	byMinutes := make([]models.FreeBlock, len(ctx.FreeBlocks))
	copy(byMinutes, ctx.FreeBlocks)
	sort.SliceStable(byMinutes, func(i, j int) bool { return byMinutes[i].Minutes > byMinutes[j].Minutes })
	slot := firstBlockWhere(byMinutes, func(b models.FreeBlock) bool {
		return b.Start >= "17:00" && b.Minutes >= 30
	})
	if slot == nil {
		slot = firstBlock(ctx.FreeBlocks)
	}

	toPay := []models.Email{}
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e.Subject), "invoice") {
			toPay = append(toPay, e)
		}
	}

	summary := fmt.Sprintf("%d bills upcoming; %d errands", len(bills), len(errands))
	if slot != nil {
		summary += "; slot " + slot.Start
	}
	return &models.Card{
		Agent:    "FinanceErrandsAgent",
		Title:    "Finance & Errands",
		Summary:  summary,
		Priority: 5,
		Data: models.CardData{
			Finance: &models.FinanceData{
				Bills:         bills,
				EmailsToPay:   toPay,
				Errands:       errands,
				SuggestedTime: slot,
			},
		},
	}
}
