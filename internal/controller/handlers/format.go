package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return fmt.Sprintf("%s-%s", start.Format(DateTimeLayout), end.Format(TimeLayout))
	}
	return fmt.Sprintf("%s - %s", start.Format(DateTimeLayout), end.Format(DateTimeLayout))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// FormatPrice форматирует цену из копеек в рубли
func FormatPrice(priceInCents int) string {
	rubles := priceInCents / 100
	kopecks := priceInCents % 100
	if kopecks == 0 {
		return fmt.Sprintf("%d ₽", rubles)
	}
	return fmt.Sprintf("%d.%02d ₽", rubles, kopecks)
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

func formatSlot(av *model.Availability, now time.Time) string {
	line := fmt.Sprintf("#%d  %s (%s)", av.ID, FormatTimeRange(av.Start, av.End()), FormatDuration(av.SessionLength))
	if av.IsOutdated(now) {
		line += " ⌛"
	}
	return line
}

var lessonStatusNames = map[model.LessonStatus]string{
	model.LessonNotTakenPlace: "⏳ не началось",
	model.LessonInProgress:    "▶️ идёт",
	model.LessonTookPlace:     "✅ прошло",
}

// formatLesson статус и тема занятия длиной minutes
func formatLesson(l *model.Lesson, now time.Time, minutes int) string {
	if l == nil {
		return ""
	}
	line := fmt.Sprintf("  занятие #%d %s", l.ID, lessonStatusNames[l.Status(now, time.Duration(minutes)*time.Minute)])
	if l.Absence {
		line += " 🚫 пропуск"
	}
	if l.Title != "" {
		line += fmt.Sprintf(" «%s»", l.Title)
	}
	return line
}

func formatBooking(b *model.Booking, now time.Time) string {
	if b.Availability == nil {
		return fmt.Sprintf("#%d  слот #%d", b.ID, b.AvailabilityID)
	}
	return fmt.Sprintf("#%d  %s", b.ID, FormatTimeRange(b.Availability.Start, b.Availability.End())) +
		formatLesson(b.Lesson, now, b.Availability.SessionLength)
}

func formatAppointment(a *model.Appointment, now time.Time) string {
	r := a.TimeRange()
	return fmt.Sprintf("#%d  %s  пакет #%d", a.ID, FormatTimeRange(r.Start, r.End), a.HourBlockID) +
		formatLesson(a.Lesson, now, a.SessionLength)
}

func formatService(s *model.Service) string {
	kind := ""
	if s.IsDefault() {
		kind = " (разовое занятие)"
	}
	return fmt.Sprintf("#%d  предмет #%d: %d ч × %s = %s, занятие %s%s",
		s.ID, s.SubjectID, s.NumberOfHours, FormatPrice(s.PricePerHour), FormatPrice(s.TotalPrice()),
		FormatDuration(s.SessionLength), kind)
}

func formatHours(summary service.HourSummary) string {
	return fmt.Sprintf("⏱ Всего: %d ч\n✅ Использовано: %d ч\n🕐 Осталось: %d ч", summary.Total, summary.Used, summary.Left)
}

func formatRecurring(items []*model.RecurringAvailability) string {
	var sb strings.Builder
	for _, r := range items {
		status := "🟢"
		if !r.IsActive {
			status = "⏸"
		}
		fmt.Fprintf(&sb, "%s %s %02d:%02d  услуга #%d  группа %s\n",
			status, GetWeekdayName(r.Weekday), r.StartHour, r.StartMinute, r.ServiceID, r.GroupID)
	}
	return sb.String()
}
