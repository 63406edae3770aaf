package inventory

import "testing"

func TestResolveNameSpecialID(t *testing.T) {
	id := TitleID{Major: "00000001", Minor: "00000002"}
	name := resolveName(NameDatabase{}, id, "....")
	if name != "System Menu" {
		t.Fatalf("name = %q, want %q", name, "System Menu")
	}
}

func TestResolveNameIOS(t *testing.T) {
	id := TitleID{Major: "00000001", Minor: "00000009"}
	name := resolveName(NameDatabase{}, id, "....")
	if name != "IOS9" {
		t.Fatalf("name = %q, want %q", name, "IOS9")
	}
}

func TestResolveNameRegionalFallback(t *testing.T) {
	db := NameDatabase{"RBCJ": "Game Foo"}
	id := TitleID{Major: "00010001", Minor: "12345678"}

	if got := resolveName(db, id, "UBCJ"); got != "Game Foo" {
		t.Fatalf("UBCJ name = %q, want %q", got, "Game Foo")
	}
	if got := resolveName(db, id, "UBCE"); got != "" {
		t.Fatalf("UBCE name = %q, want empty", got)
	}
}

func TestResolveNameDirectHit(t *testing.T) {
	db := NameDatabase{"ABCD": "Direct Hit"}
	id := TitleID{Major: "00010001", Minor: "12345678"}
	if got := resolveName(db, id, "ABCD"); got != "Direct Hit" {
		t.Fatalf("name = %q, want %q", got, "Direct Hit")
	}
}

func TestLoadNameDatabaseMissingFileYieldsEmpty(t *testing.T) {
	db := LoadNameDatabase("/nonexistent/path/names.json")
	if len(db) != 0 {
		t.Fatalf("expected empty database, got %d entries", len(db))
	}
}
