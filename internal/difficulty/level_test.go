package difficulty

import "testing"

func TestLevelOrdering(t *testing.T) {
	if !(Easy < Medium && Medium < Hard) {
		t.Fatal("levels must be ordered Easy < Medium < Hard")
	}
}

func TestNextClampsAtHard(t *testing.T) {
	tests := []struct {
		in   Level
		want Level
	}{
		{Easy, Medium},
		{Medium, Hard},
		{Hard, Hard},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrevClampsAtEasy(t *testing.T) {
	tests := []struct {
		in   Level
		want Level
	}{
		{Hard, Medium},
		{Medium, Easy},
		{Easy, Easy},
	}
	for _, tt := range tests {
		if got := tt.in.Prev(); got != tt.want {
			t.Errorf("%s.Prev() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"easy", Easy, false},
		{"Medium", Medium, false},
		{"HARD", Hard, false},
		{"  hard \n", Hard, false},
		{"extreme", Easy, true},
		{"", Easy, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, lvl := range AllLevels() {
		got, err := ParseLevel(lvl.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", lvl.String(), err)
		}
		if got != lvl {
			t.Errorf("round trip of %s = %s", lvl, got)
		}
	}
}

func TestHistoryRecordsOnlyChanges(t *testing.T) {
	h := NewHistory(Medium)

	if h.Record(Medium) {
		t.Error("recording the current level should not append")
	}
	if !h.Record(Hard) {
		t.Error("recording a new level should append")
	}
	if h.Record(Hard) {
		t.Error("repeated level should not append")
	}
	if !h.Record(Medium) {
		t.Error("returning to an earlier level should append")
	}

	want := []Level{Medium, Hard, Medium}
	got := h.Levels()
	if len(got) != len(want) {
		t.Fatalf("history length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if h.Changes() != 2 {
		t.Errorf("Changes() = %d, want 2", h.Changes())
	}
	if h.Current() != Medium {
		t.Errorf("Current() = %s, want Medium", h.Current())
	}
}
