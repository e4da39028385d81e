package handler

import (
	"fmt"
	"strings"

	"vocabquiz/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	msgFailure          = "Something went wrong. Try again later."
	msgUnknownWordSet   = "This word set is not available."
	msgUnknownDirection = "Unknown quiz direction."
)

// formatView renders the message text of a quiz view
func formatView(v domain.View) string {
	var b strings.Builder

	if v.Feedback != "" {
		b.WriteString("❌ " + v.Feedback + "\n\n")
	}

	if v.Done {
		b.WriteString("🎉 Done!\n\nPress Reset to start over or enable more groups.")
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n\n%d left", v.Prompt, v.Remaining)
	return b.String()
}

// quizMarkup renders modes, group filters, word sets and reset as inline buttons
func quizMarkup(v domain.View) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	modes := tele.Row{}
	for _, m := range v.Modes {
		modes = append(modes, markup.Data(radio(m.Value == v.Direction)+m.Label, actionDirection+"_"+string(m.Value)))
	}
	rows = append(rows, modes)

	groups := make([]tele.Btn, 0, len(v.Groups))
	for i, g := range v.Groups {
		groups = append(groups, markup.Data(checkbox(g.Active)+g.Value, groupCallback(v.WordSet, i, g.Value)))
	}
	rows = append(rows, markup.Split(2, groups)...)

	if len(v.WordSets) > 1 {
		sets := tele.Row{}
		for _, name := range v.WordSets {
			sets = append(sets, markup.Data(radio(name == v.WordSet)+name, actionWordSet+"_"+name))
		}
		rows = append(rows, sets)
	}

	rows = append(rows, markup.Row(btnReset))

	markup.Inline(rows...)
	return markup
}

func radio(selected bool) string {
	if selected {
		return "● "
	}
	return "○ "
}

func checkbox(checked bool) string {
	if checked {
		return "✅ "
	}
	return "⬜ "
}
