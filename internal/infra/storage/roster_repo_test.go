package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

const sampleRoster = `[
  {
    "name": "ana",
    "slackHandle": "<@U01>",
    "available": true,
    "lastPicked": true
  },
  {
    "name": "bruno",
    "slackHandle": "<@U02>",
    "available": true,
    "lastPicked": false,
    "team": "payments"
  },
  {
    "name": "carla",
    "slackHandle": "<@U03>",
    "available": false,
    "lastPicked": false
  }
]`

func newFileRepo(t *testing.T, content string) (*RosterRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}
	return NewRosterRepo(NewFileBlob(path)), path
}

func TestLoadRoster(t *testing.T) {
	repo, _ := newFileRepo(t, sampleRoster)
	roster, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(roster))
	}
	want := []domain.Participant{
		{Name: "ana", DisplayHandle: "<@U01>", Available: true, LastPicked: true},
		{Name: "bruno", DisplayHandle: "<@U02>", Available: true},
		{Name: "carla", DisplayHandle: "<@U03>"},
	}
	for i, w := range want {
		got := roster[i]
		if got.Name != w.Name || got.DisplayHandle != w.DisplayHandle || got.Available != w.Available || got.LastPicked != w.LastPicked {
			t.Fatalf("entry %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, path := newFileRepo(t, sampleRoster)
	ctx := context.Background()

	roster, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := repo.Save(ctx, roster); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != sampleRoster {
		t.Fatalf("round trip changed the document:\n%s", data)
	}

	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range roster {
		a, b := roster[i], again[i]
		if a.Name != b.Name || a.DisplayHandle != b.DisplayHandle || a.Available != b.Available || a.LastPicked != b.LastPicked {
			t.Fatalf("entry %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestSaveKeepsUnknownFields(t *testing.T) {
	repo, path := newFileRepo(t, sampleRoster)
	ctx := context.Background()

	roster, _ := repo.Load(ctx)
	roster[0].LastPicked = false
	roster[1].LastPicked = true
	if err := repo.Save(ctx, roster); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"team": "payments"`) {
		t.Fatalf("unknown field dropped:\n%s", data)
	}
	again, _ := repo.Load(ctx)
	if again[0].LastPicked || !again[1].LastPicked {
		t.Fatalf("flags not persisted: %+v", again)
	}
}

func TestSaveNewParticipantsWithoutRaw(t *testing.T) {
	repo, path := newFileRepo(t, "")
	ctx := context.Background()
	roster := domain.Roster{
		{Name: "dani", DisplayHandle: "<@U04>", Available: true},
		{Name: "eva", Available: false, LastPicked: false},
	}
	if err := repo.Save(ctx, roster); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	want := `[
  {
    "name": "dani",
    "slackHandle": "<@U04>",
    "available": true,
    "lastPicked": false
  },
  {
    "name": "eva",
    "available": false,
    "lastPicked": false
  }
]`
	if string(data) != want {
		t.Fatalf("unexpected document:\n%s", data)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{"name": `},
		{"not a list", `{"name": "ana"}`},
		{"entry not object", `["ana"]`},
		{"missing name", `[{"available": true}]`},
		{"name not string", `[{"name": 3}]`},
		{"available not bool", `[{"name": "ana", "available": "yes"}]`},
		{"duplicate names", `[{"name": "ana"}, {"name": "ana"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, _ := newFileRepo(t, tc.content)
			_, err := repo.Load(context.Background())
			if !errors.Is(err, domain.ErrCorruptState) {
				t.Fatalf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	repo, _ := newFileRepo(t, "")
	_, err := repo.Load(context.Background())
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestSaveFailureLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "data.json")
	repo := NewRosterRepo(NewFileBlob(path))

	err := repo.Save(context.Background(), domain.Roster{{Name: "ana", Available: true}})
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("file should not exist after failed save: %v", statErr)
	}
}
