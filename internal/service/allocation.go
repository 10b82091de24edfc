package service

import (
	"cmp"
	"slices"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
)

// HourSummary часы подписки
type HourSummary struct {
	Total int `json:"total"`
	Used  int `json:"used"`
	Left  int `json:"left"`
}

func summarize(usage []model.HourBlockUsage) HourSummary {
	total, used := hoursTotal(usage), hoursUsed(usage)
	return HourSummary{Total: total, Used: used, Left: total - used}
}

func hoursTotal(usage []model.HourBlockUsage) int {
	total := 0
	for _, u := range usage {
		total += u.NumberOfHours
	}
	return total
}

func hoursUsed(usage []model.HourBlockUsage) int {
	used := 0
	for _, u := range usage {
		used += u.Used
	}
	return used
}

// eligibleBlocks оставляет пакеты услуг учителя tutorID, упорядоченные по дате покупки и id
func eligibleBlocks(usage []model.HourBlockUsage, tutorID int64) []model.HourBlockUsage {
	eligible := make([]model.HourBlockUsage, 0, len(usage))
	for _, u := range usage {
		if u.TutorID == tutorID {
			eligible = append(eligible, u)
		}
	}

	slices.SortStableFunc(eligible, func(a, b model.HourBlockUsage) int {
		return cmp.Or(a.Block.PurchaseDate.Compare(b.Block.PurchaseDate), cmp.Compare(a.Block.ID, b.Block.ID))
	})

	return eligible
}

// firstOpenBlock возвращает самый ранний пакет со свободными часами.
// Более поздний пакет не выбирается, пока в раннем есть место.
func firstOpenBlock(usage []model.HourBlockUsage, tutorID int64) (model.HourBlockUsage, bool) {
	for _, u := range eligibleBlocks(usage, tutorID) {
		if u.Remaining() > 0 {
			return u, true
		}
	}
	return model.HourBlockUsage{}, false
}
