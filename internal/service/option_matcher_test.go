package service

import "testing"

func TestOptionMatcherMatch(t *testing.T) {
	options := []string{"Реставратора", "Куратора", "Ночного охранника"}
	m := NewOptionMatcher()

	tests := []struct {
		reply string
		want  int
		ok    bool
	}{
		{reply: "1", want: 0, ok: true},
		{reply: " 3 ", want: 2, ok: true},
		{reply: "4", want: -1, ok: false},
		{reply: "0", want: -1, ok: false},
		{reply: "куратора", want: 1, ok: true},
		{reply: "Ночного  охранника!", want: 2, ok: true},
		{reply: "реставротора", want: 0, ok: true},
		{reply: "директора", want: -1, ok: false},
		{reply: "   ", want: -1, ok: false},
	}
	for _, tt := range tests {
		got, ok := m.Match(tt.reply, options)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q) = %d, %v; want %d, %v", tt.reply, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOptionMatcherYo(t *testing.T) {
	m := NewOptionMatcher()
	if got, ok := m.Match("ещё раз", []string{"Еще раз", "нет"}); !ok || got != 0 {
		t.Fatalf("expected ё to match е, got %d %v", got, ok)
	}
}
