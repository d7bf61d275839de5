package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
	assert.Equal(t, "2025\\-06\\-01", EscapeMarkdownV2("2025-06-01"))
	assert.Equal(t, "1\\.5 kg \\(half used\\)", EscapeMarkdownV2("1.5 kg (half used)"))
	assert.Equal(t, "a\\_b\\*c\\[d\\]e\\~f\\`g\\>h\\#i\\+j\\=k\\|l\\{m\\}n\\!o", EscapeMarkdownV2("a_b*c[d]e~f`g>h#i+j=k|l{m}n!o"))
}

func TestReminderDeltaDays(t *testing.T) {
	t.Setenv("REMINDER_DELTA_DAYS", "4")
	assert.Equal(t, 4, ReminderDeltaDays())

	t.Setenv("REMINDER_DELTA_DAYS", "not-a-number")
	assert.Equal(t, 0, ReminderDeltaDays())

	t.Setenv("REMINDER_DELTA_DAYS", "-2")
	assert.Equal(t, 0, ReminderDeltaDays())
}
