package history

import (
	"path/filepath"
	"testing"
)

func openTestTrail(t *testing.T) *Trail {
	t.Helper()
	trail, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open trail: %v", err)
	}
	t.Cleanup(func() { trail.Close() })
	return trail
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "OsirisCare")
	trail, err := Open(dir)
	if err != nil {
		t.Fatalf("open trail in missing dir: %v", err)
	}
	trail.Close()
}

func TestRecordAndRecent(t *testing.T) {
	trail := openTestTrail(t)

	first := Entry{
		Hostname:         "clinic-pc-01",
		MaskedAccountKey: "ABCDEFGHXXXXXXXXXXXXXXXXXXXXXXX",
		OrganizationKey:  "Acme Clinics",
		Mode:             "install",
		Outcome:          OutcomeSuccess,
	}
	second := Entry{
		Hostname:         "clinic-pc-01",
		MaskedAccountKey: "ABCDEFGHXXXXXXXXXXXXXXXXXXXXXXX",
		OrganizationKey:  "Acme Clinics",
		Mode:             "reinstall",
		Outcome:          OutcomeFailed,
		Error:            "services: service OsirisCareAgent is not registered",
	}

	if err := trail.Record(first); err != nil {
		t.Fatal(err)
	}
	if err := trail.Record(second); err != nil {
		t.Fatal(err)
	}

	entries, err := trail.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Newest first.
	if entries[0].Mode != "reinstall" || entries[0].Outcome != OutcomeFailed {
		t.Errorf("newest entry wrong: %+v", entries[0])
	}
	if entries[0].Error == "" {
		t.Error("failure entry should carry the error text")
	}
	if entries[1].Mode != "install" || entries[1].Outcome != OutcomeSuccess {
		t.Errorf("oldest entry wrong: %+v", entries[1])
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp should be populated")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	trail := openTestTrail(t)
	for i := 0; i < 5; i++ {
		e := Entry{Hostname: "h", MaskedAccountKey: "m", OrganizationKey: "o", Mode: "install", Outcome: OutcomeSuccess}
		if err := trail.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := trail.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}

	n, err := trail.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("expected count 5, got %d", n)
	}
}

func TestRecentEmptyTrail(t *testing.T) {
	trail := openTestTrail(t)
	entries, err := trail.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
