package utils

import (
	"strconv"

	tele "gopkg.in/telebot.v3"

	"job-deadline-bot/internal/models"
)

// Callback uniques. telebot sends them as "\f<unique>|<data>".
const (
	CallbackApplied = "applied"
	CallbackListAll = "list_all"
)

// ReminderKeyboard offers the posting link, a mark-applied shortcut bound to
// the index at send time, and the full list.
func ReminderKeyboard(rec *models.JobRecord) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row
	if rec.Link != "" {
		rows = append(rows, menu.Row(menu.URL("🔗 Open posting", rec.Link)))
	}

	btnApplied := menu.Data("✅ Mark applied", CallbackApplied, strconv.Itoa(rec.Index))
	btnList := menu.Data("📋 List all", CallbackListAll)
	rows = append(rows, menu.Row(btnApplied, btnList))

	menu.Inline(rows...)

	return menu
}

// SheetKeyboard links to the spreadsheet. Nil when there is no sheet.
func SheetKeyboard(sheetURL string) *tele.ReplyMarkup {
	if sheetURL == "" {
		return nil
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.URL("📊 View Google Sheet", sheetURL)))

	return menu
}
