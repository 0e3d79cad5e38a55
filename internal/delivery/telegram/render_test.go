package telegram

import (
	"strings"
	"testing"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total, length int
		want                   string
	}{
		{current: 0, total: 5, length: 5, want: "[░░░░░]"},
		{current: 2, total: 4, length: 4, want: "[██░░]"},
		{current: 5, total: 5, length: 5, want: "[█████]"},
		{current: 7, total: 5, length: 5, want: "[█████]"},
		{current: 1, total: 0, length: 3, want: "[░░░]"},
	}
	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, tt.length); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.length, got, tt.want)
		}
	}
}

func TestRenderMenuEscapesMarkdown(t *testing.T) {
	menu := service.MenuView{Entries: []service.MenuEntry{{
		Index:          0,
		Title:          "Этап I. Пустая витрина",
		Subtitle:       "(осмотр)",
		QuestionsLabel: "3 вопроса",
		Action:         service.ActionStart,
	}}}

	scr := renderMenu(menu)

	if !strings.Contains(scr.text, `Этап I\. Пустая витрина`) || !strings.Contains(scr.text, `\(осмотр\)`) {
		t.Fatalf("expected escaped entry, got %q", scr.text)
	}
	if strings.Contains(scr.text, "Поздравляем") {
		t.Fatalf("congratulations must wait for every stage")
	}
	if scr.keyboard == nil || len(scr.keyboard.InlineKeyboard) != 1 {
		t.Fatalf("expected a single stage button")
	}
}
