package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_MatchesBoardAndRoster(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("default rules: %v", err)
	}
	if r.Board.Width != 36 || r.Board.Height != 20 {
		t.Fatalf("expected 36x20 board, got %dx%d", r.Board.Width, r.Board.Height)
	}
	if r.Battle.Duration != 10 {
		t.Fatalf("expected 10s battle, got %.2f", r.Battle.Duration)
	}
	for _, name := range []string{"basic", "sprinkler", "pump", "sniper", "mortar", "hq", "spawner"} {
		if _, ok := r.Structure(name); !ok {
			t.Errorf("missing structure row %q", name)
		}
	}
	mortar, _ := r.Structure("mortar")
	if mortar.AoE != 2 || !mortar.Indirect || !mortar.Arc {
		t.Fatalf("mortar row wrong: %+v", mortar)
	}
	sprinkler, _ := r.Structure("sprinkler")
	if sprinkler.Scatter.Count != 3 {
		t.Fatalf("expected 3 droplets per sprinkler shot, got %d", sprinkler.Scatter.Count)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	a.Structures[0].Cost = 1
	if b.Structures[0].Cost == 1 {
		t.Fatal("mutating one rules value leaked into another")
	}
}

func TestStartFunds_ScalesWithStage(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	a, b := r.StartFunds(1)
	if a != 120 || b != 140 {
		t.Fatalf("stage 1 funds: got a=%d b=%d", a, b)
	}
	a, b = r.StartFunds(3)
	if a != 160 || b != 220 {
		t.Fatalf("stage 3 funds: got a=%d b=%d", a, b)
	}
}

func TestParse_PadsShortRows(t *testing.T) {
	doc := string(defaultRules)
	doc = strings.Replace(doc, `"...................................."`, `"..."`, 1)
	r, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(r.Stage.Layout[0]); got != 36 {
		t.Fatalf("expected padded row of 36, got %d", got)
	}
}

func TestParse_RejectsMissingHeadquarters(t *testing.T) {
	doc := strings.Replace(string(defaultRules), "E..\"", "...\"", 1)
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected layout without E to be rejected")
	}
	if !strings.Contains(err.Error(), "exactly one P and one E") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_RejectsUnknownFireMode(t *testing.T) {
	doc := strings.Replace(string(defaultRules), "fire: scatter", "fire: hose", 1)
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown fire mode "hose"`) {
		t.Fatalf("expected fire mode error, got %v", err)
	}
}

func TestParse_RejectsUnknownBagType(t *testing.T) {
	doc := strings.Replace(string(defaultRules), "- { type: pump, chance: 0.25 }", "- { type: laser }", 1)
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown structure "laser"`) {
		t.Fatalf("expected bag error, got %v", err)
	}
}

func TestLoad_ReadsFileAndWrapsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, defaultRules, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
