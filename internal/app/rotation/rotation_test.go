package rotation

import (
	"errors"
	"testing"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

func p(name string, available, last bool) domain.Participant {
	return domain.Participant{Name: name, DisplayHandle: "<@" + name + ">", Available: available, LastPicked: last}
}

func flags(r domain.Roster) map[string]bool {
	out := map[string]bool{}
	for _, x := range r {
		out[x.Name] = x.LastPicked
	}
	return out
}

func countPicked(r domain.Roster) int {
	n := 0
	for _, x := range r {
		if x.LastPicked {
			n++
		}
	}
	return n
}

func TestPickNext(t *testing.T) {
	tests := []struct {
		name   string
		roster domain.Roster
		want   string
	}{
		{
			name:   "no previous pick starts at first available",
			roster: domain.Roster{p("A", false, false), p("B", true, false), p("C", true, false)},
			want:   "B",
		},
		{
			name:   "successor of last picked",
			roster: domain.Roster{p("A", true, true), p("B", true, false), p("C", false, false)},
			want:   "B",
		},
		{
			name:   "wraps around to first available",
			roster: domain.Roster{p("A", true, false), p("B", false, false), p("C", true, true)},
			want:   "A",
		},
		{
			name:   "skips unavailable between available ones",
			roster: domain.Roster{p("A", true, true), p("B", false, false), p("C", true, false)},
			want:   "C",
		},
		{
			name:   "stale flag on unavailable participant is ignored",
			roster: domain.Roster{p("A", false, true), p("B", true, false), p("C", true, false)},
			want:   "B",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, updated, err := PickNext(tc.roster)
			if err != nil {
				t.Fatalf("pick next: %v", err)
			}
			if got.Name != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Name)
			}
			if !got.LastPicked {
				t.Fatalf("champion should carry lastPicked")
			}
			if len(updated) != len(tc.roster) {
				t.Fatalf("roster length changed: %d -> %d", len(tc.roster), len(updated))
			}
			for i := range updated {
				if updated[i].Name != tc.roster[i].Name {
					t.Fatalf("order changed at %d: %s", i, updated[i].Name)
				}
				if want := updated[i].Name == tc.want; updated[i].LastPicked != want {
					t.Fatalf("%s lastPicked=%v, want %v", updated[i].Name, updated[i].LastPicked, want)
				}
			}
		})
	}
}

func TestPickNextScenarioFlags(t *testing.T) {
	roster := domain.Roster{p("A", true, true), p("B", true, false), p("C", false, false)}
	got, updated, err := PickNext(roster)
	if err != nil {
		t.Fatalf("pick next: %v", err)
	}
	if got.Name != "B" {
		t.Fatalf("expected B, got %s", got.Name)
	}
	f := flags(updated)
	if f["A"] || !f["B"] || f["C"] {
		t.Fatalf("unexpected flags %v", f)
	}
	// el input no se toca
	if !roster[0].LastPicked || roster[1].LastPicked {
		t.Fatalf("input roster was mutated: %+v", roster)
	}
}

func TestPickNextSingleAvailable(t *testing.T) {
	roster := domain.Roster{p("C", false, false), p("D", true, false)}
	for i := 0; i < 2; i++ {
		got, updated, err := PickNext(roster)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if got.Name != "D" {
			t.Fatalf("pick %d: expected D, got %s", i, got.Name)
		}
		if f := flags(updated); !f["D"] || f["C"] {
			t.Fatalf("pick %d: unexpected flags %v", i, f)
		}
		roster = updated
	}
}

func TestPickNextNoAvailable(t *testing.T) {
	for _, roster := range []domain.Roster{nil, {p("A", false, true), p("B", false, false)}} {
		_, updated, err := PickNext(roster)
		if !errors.Is(err, domain.ErrNoAvailableParticipants) {
			t.Fatalf("expected ErrNoAvailableParticipants, got %v", err)
		}
		if updated != nil {
			t.Fatalf("expected no roster on failure")
		}
	}
}

func TestPickNextFullCycleIsFair(t *testing.T) {
	roster := domain.Roster{p("A", true, false), p("B", true, false), p("X", false, false), p("C", true, false)}
	seen := map[string]int{}
	var order []string
	for i := 0; i < 6; i++ {
		got, updated, err := PickNext(roster)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if n := countPicked(updated); n != 1 {
			t.Fatalf("pick %d: %d participants flagged", i, n)
		}
		seen[got.Name]++
		order = append(order, got.Name)
		roster = updated
	}
	want := []string{"A", "B", "C", "A", "B", "C"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("rotation order %v, want %v", order, want)
		}
	}
	if seen["X"] != 0 {
		t.Fatalf("unavailable participant was picked")
	}
}

func TestReenablingParticipantKeepsSingleFlag(t *testing.T) {
	roster := domain.Roster{p("A", true, false), p("B", true, false), p("C", true, false)}
	_, roster, _ = PickNext(roster) // A
	roster[0].Available = false
	_, roster, _ = PickNext(roster) // B, A pierde el flag
	if roster[0].LastPicked {
		t.Fatalf("unavailable participant kept lastPicked")
	}
	roster[0].Available = true
	if n := countPicked(roster); n != 1 {
		t.Fatalf("re-enabling introduced %d flags", n)
	}
	got, _, err := PickNext(roster)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got.Name != "C" {
		t.Fatalf("expected C after B, got %s", got.Name)
	}
}

func TestPickReroll(t *testing.T) {
	tests := []struct {
		name     string
		roster   domain.Roster
		previous string
		want     string
	}{
		{
			name:     "first eligible that is not last picked",
			roster:   domain.Roster{p("A", true, false), p("B", true, true), p("C", true, false)},
			previous: "A",
			want:     "C",
		},
		{
			name:     "falls back to first eligible when last picked is excluded",
			roster:   domain.Roster{p("A", true, false), p("B", true, true), p("C", true, false)},
			previous: "B",
			want:     "A",
		},
		{
			name:     "falls back to first of pool when every eligible is flagged",
			roster:   domain.Roster{p("A", true, true), p("B", true, true)},
			previous: "Z",
			want:     "A",
		},
		{
			name:     "unavailable participants are never eligible",
			roster:   domain.Roster{p("A", true, true), p("B", false, false), p("C", true, false)},
			previous: "A",
			want:     "C",
		},
		{
			name:     "unknown previous keeps the whole pool",
			roster:   domain.Roster{p("A", true, true), p("B", true, false)},
			previous: "",
			want:     "B",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, updated, err := PickReroll(tc.roster, tc.previous)
			if err != nil {
				t.Fatalf("pick reroll: %v", err)
			}
			if got.Name != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Name)
			}
			if n := countPicked(updated); n != 1 {
				t.Fatalf("expected exactly one flag, got %d", n)
			}
			if !flags(updated)[tc.want] {
				t.Fatalf("champion not flagged in updated roster")
			}
		})
	}
}

func TestPickRerollOnlyPreviousAvailable(t *testing.T) {
	roster := domain.Roster{p("A", true, true), p("B", false, false)}
	_, _, err := PickReroll(roster, "A")
	if !errors.Is(err, domain.ErrNoAvailableParticipants) {
		t.Fatalf("expected ErrNoAvailableParticipants, got %v", err)
	}
}

// Las dos reglas divergen a propósito sobre el mismo roster.
func TestStrategiesDiverge(t *testing.T) {
	roster := domain.Roster{p("A", true, false), p("B", true, true), p("C", true, false), p("D", true, false)}
	next, _, _ := PickNext(roster)
	reroll, _, _ := PickReroll(roster, "C")
	if next.Name != "C" {
		t.Fatalf("PickNext expected C, got %s", next.Name)
	}
	if reroll.Name != "A" {
		t.Fatalf("PickReroll expected A, got %s", reroll.Name)
	}
}
