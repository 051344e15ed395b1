package tui

import (
	"fmt"
	"strings"

	"github.com/runoshun/steps/internal/engine"
)

// View renders the checklist.
func (m *Model) View() string {
	if m.view == nil {
		if m.err != nil {
			return m.styles.App.Render(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		}
		return m.styles.App.Render("Loading...")
	}

	var b strings.Builder
	v := m.view
	b.WriteString(m.styles.Header.Render("Today " + v.Date))
	if v.HasSummary {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("  %d/%d", v.Summary.Done, v.Summary.Total)))
	}
	b.WriteString("\n")
	if v.Access.Active {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Onboarding day %d of %d", v.Access.Day, engine.OnboardingTotalDays)))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("No tasks yet. Add a goal with 'steps goal add <title>'."))
		b.WriteString("\n")
	}

	section := rowKind(-1)
	for i, r := range m.rows {
		if r.kind != section {
			section = r.kind
			b.WriteString(m.styles.Section.Render(sectionTitle(section)))
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(r, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.CanUnlock && v.Candidates > 0:
		b.WriteString(m.styles.Notice.Render("A new goal can be unlocked (u)"))
	case !v.CanUnlock:
		b.WriteString(m.styles.Subtitle.Render("Next unlock on " + v.NextUnlock))
	}
	if v.SideQuestOpen && len(v.SideQuests) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render("All done! Take a side quest (s)"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Streak %d · %d done in total", v.Streak, v.TotalDone)))
	b.WriteString("\n")

	if m.mode == ModeInput {
		b.WriteString("\n")
		b.WriteString(m.styles.Input.Render("New quick task: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return m.styles.App.Render(b.String())
}

func sectionTitle(k rowKind) string {
	switch k {
	case rowQuick:
		return "Quick tasks"
	case rowSide:
		return "Side quests"
	default:
		return "Tasks"
	}
}

func (m *Model) renderRow(r row, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("> ")
	}

	box := "[ ]"
	style := m.styles.Row
	switch {
	case r.rest:
		box = "[-]"
		style = m.styles.RowRest
	case r.done:
		box = "[x]"
		style = m.styles.RowDone
	}
	if selected {
		style = m.styles.RowSelected
	}

	line := cursor + style.Render(box+" "+r.label)
	if r.time != "" {
		line = cursor + m.styles.Time.Render(r.time) + " " + style.Render(box+" "+r.label)
	}
	if r.badge != "" {
		line += " " + m.styles.Badge.Render("("+r.badge+")")
	}
	return line
}
