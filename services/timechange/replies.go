package timechange

import (
	"fmt"
	"strings"
	"time"

	"zmina/models"
)

// User-facing strings. The chat audience is Ukrainian cleaning staff, so all
// replies are localized in one place.
const (
	msgCheckoutRule          = "Час виїзду повинен бути до 14:00"
	msgCheckinRule           = "Час заїзду повинен бути після 14:00"
	msgCleaningRule          = "Прибирання має починатися щонайменше через 30 хвилин після виїзду та завершуватися до 14:00"
	msgCleaningNeedsCheckout = "Спочатку вкажіть час виїзду, потім час прибирання"
	msgBadTimeFormat         = "Невірний формат часу. Вкажіть час у форматі ГГ:00, наприклад 11:00"

	msgCheckoutAfterCheckin      = "Виїзд має бути раніше заїзду того ж дня о"
	msgCleaningOverlapsCheckin   = "Прибирання не встигне завершитися до заїзду о"
	msgCheckinBeforeCleaningDone = "Прибирання ще триватиме, воно заплановане на"
	msgCheckinBeforeCheckout     = "Попередній гість виїжджає о"

	msgAccessDenied = "У вас немає доступу до цієї квартири"
	msgNotFound     = "Бронювання не знайдено. Можливо, дані оновилися — спробуйте ще раз"
	msgTypeMismatch = "Це поле не можна змінити для цього типу завдання"
	msgTryAgain     = "Не вдалося зберегти зміну. Спробуйте ще раз"
)

var changeNoun = map[models.ChangeType]string{
	models.ChangeCheckout: "виїзду",
	models.ChangeCheckin:  "заїзду",
	models.ChangeCleaning: "прибирання",
}

// formatDate renders a YYYY-MM-DD booking date as DD.MM.YYYY for replies.
func formatDate(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02.01.2006")
	}
	return date
}

// successMessage builds the confirmation reply from the committed audit
// entry, so the reply always reflects exactly what was recorded.
func successMessage(entry *models.AuditEntry) string {
	return fmt.Sprintf("✅ Час %s змінено: %s (кв. %s), %s — %s",
		changeNoun[entry.ChangeType], entry.Address, entry.ApartmentID,
		formatDate(entry.Date), entry.NewTime)
}

// rejectionMessage lists every validation error and conflict found.
func rejectionMessage(errs []string, conflicts []models.Conflict) string {
	var sb strings.Builder
	sb.WriteString("❌ Зміну не застосовано:")
	for _, e := range errs {
		sb.WriteString("\n• ")
		sb.WriteString(e)
	}
	for _, c := range conflicts {
		sb.WriteString("\n• ")
		sb.WriteString(c.Description)
	}
	return sb.String()
}

var clarificationLead = map[string]string{
	"date":      "Уточніть, будь ласка, дату:",
	"apartment": "Уточніть, будь ласка, квартиру:",
	"guest":     "Уточніть, будь ласка, гостя:",
	"time":      "Уточніть, будь ласка, час:",
}

// clarificationPrompt enumerates the offered options for one clarification.
func clarificationPrompt(c *models.Clarification) string {
	var sb strings.Builder
	if c.Message != "" {
		sb.WriteString(c.Message)
	} else if lead, ok := clarificationLead[c.Type]; ok {
		sb.WriteString(lead)
	} else {
		sb.WriteString("Уточніть, будь ласка, запит:")
	}
	for i, opt := range c.AvailableOptions {
		display := opt.Display
		if display == "" {
			display = opt.Value
		}
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, display))
	}
	return sb.String()
}

// ambiguousPrompt enumerates matched bookings so the user can pick one.
func ambiguousPrompt(matches []models.BookingRef) string {
	var sb strings.Builder
	sb.WriteString("Знайдено декілька бронювань. Яке саме мали на увазі?")
	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("\n%d. %s (кв. %s), %s", i+1, m.Address, m.ApartmentID, formatDate(m.Date)))
		if m.GuestName != "" {
			sb.WriteString(" — ")
			sb.WriteString(m.GuestName)
		}
	}
	return sb.String()
}
