package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", "anna") || !m.Enabled("c", "anna") || !m.Enabled("e", "") {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", "anna") || m.Enabled("d", "anna") || m.Enabled("f", "") {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
	if m.Enabled("missing", "anna") {
		t.Fatal("unknown flags are off")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=abc%")

	if !m.Enabled("always", "anna") {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", "anna") || m.Enabled("broken", "anna") {
		t.Fatal("0% and malformed rollouts should be disabled")
	}

	first := m.Enabled("canary", "anna")
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", "anna"); got != first {
			t.Fatal("rollout evaluation must be deterministic per subject")
		}
	}

	if m.Enabled("canary", "") {
		t.Fatal("percentage rollout requires a subject")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,Leaderboard_Cache=ON, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw[LeaderboardCache] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot("anna")
	if len(snap) != 3 || !snap[LeaderboardCache] {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled(LeaderboardCache, "") {
		t.Fatal("nil manager enables nothing")
	}
	if len(m.Raw()) != 0 || len(m.Snapshot("anna")) != 0 {
		t.Fatal("nil manager has no flags")
	}
}
