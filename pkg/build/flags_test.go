package build

import "testing"

func TestGetInfoDefaults(t *testing.T) {
	info := GetInfo()

	if info.Name == "" {
		t.Error("Name should never be empty")
	}
	if info.Version == "" {
		t.Error("Version should never be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should never be empty")
	}
	if info.Time == "" {
		t.Error("Time should never be empty")
	}
}

func TestGetInfoLinkerValues(t *testing.T) {
	buildName = "testapp"
	buildVersion = "1.2.3"
	defer func() {
		buildName = ""
		buildVersion = ""
	}()

	info := GetInfo()
	if info.Name != "testapp" {
		t.Errorf("Name = %q, want %q", info.Name, "testapp")
	}
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
}
