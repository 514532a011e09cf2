package schedcsv

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestReadDemands(t *testing.T) {
	settings := engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3}

	path := writeTestFile(t, "wgroups.csv",
		"Name,Sessions\nSecurity WG,3\nPrivacy WG,2\nIoT WG,1\n")

	requests, err := ReadDemands(path, settings)
	if err != nil {
		t.Fatalf("ReadDemands failed: %v", err)
	}

	want := []engine.SessionRequest{
		{Name: "Security WG", Length: 3},
		{Name: "Privacy WG", Length: 2},
		{Name: "IoT WG", Length: 1},
	}
	if !reflect.DeepEqual(requests, want) {
		t.Errorf("ReadDemands() = %v, want %v", requests, want)
	}
}

func TestReadDemands_SkipsAndCaps(t *testing.T) {
	settings := engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3}

	path := writeTestFile(t, "wgroups.csv",
		"Name,Sessions\n"+
			",2\n"+ // blank name skipped
			"Oversized WG,9\n"+ // capped to 3
			"Undersized WG,0\n"+ // raised to 1
			"short\n") // too few columns skipped

	requests, err := ReadDemands(path, settings)
	if err != nil {
		t.Fatalf("ReadDemands failed: %v", err)
	}

	want := []engine.SessionRequest{
		{Name: "Oversized WG", Length: 3},
		{Name: "Undersized WG", Length: 1},
	}
	if !reflect.DeepEqual(requests, want) {
		t.Errorf("ReadDemands() = %v, want %v", requests, want)
	}
}

func TestReadDemands_MultilineNameCell(t *testing.T) {
	settings := engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 1}

	path := writeTestFile(t, "bofs.csv",
		"Topic,Len\n\"Mesh Networking\nproposed by Sam\",1\n")

	requests, err := ReadDemands(path, settings)
	if err != nil {
		t.Fatalf("ReadDemands failed: %v", err)
	}
	if len(requests) != 1 || requests[0].Name != "Mesh Networking" {
		t.Errorf("Expected first line of cell as name, got %v", requests)
	}
}

func TestReadDemands_Errors(t *testing.T) {
	settings := engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3}

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadDemands(filepath.Join(t.TempDir(), "nope.csv"), settings); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTestFile(t, "empty.csv", "")
		if _, err := ReadDemands(path, settings); err == nil {
			t.Error("Expected error for empty file")
		}
	})

	t.Run("narrow header", func(t *testing.T) {
		path := writeTestFile(t, "narrow.csv", "Name\nSecurity WG\n")
		if _, err := ReadDemands(path, settings); err == nil {
			t.Error("Expected error for header missing the length column")
		}
	})

	t.Run("non-integer length", func(t *testing.T) {
		path := writeTestFile(t, "badlen.csv", "Name,Sessions\nSecurity WG,two\n")
		if _, err := ReadDemands(path, settings); err == nil {
			t.Error("Expected error for non-integer length")
		}
	})
}

func TestReadDemands_StripsBOM(t *testing.T) {
	settings := engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3}

	path := writeTestFile(t, "bom.csv", "\uFEFFName,Sessions\nSecurity WG,2\n")

	requests, err := ReadDemands(path, settings)
	if err != nil {
		t.Fatalf("ReadDemands failed: %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("Expected 1 request, got %v", requests)
	}
}
