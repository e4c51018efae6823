package mesa

import (
	"os"
	"path/filepath"
	"testing"
)

const profileFixture = `1
version_number
"15140"

1 2 3
zone mass x_mass_fraction_H
1 4.0 0.7
2 2.0 0.5
3 0.1 0.1
`

func TestProfilePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"profile2.data", "profile10.data", "profile1.data", "profiles.index", "history.data"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(profileFixture), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	paths, err := ProfilePaths(dir)
	if err != nil {
		t.Fatalf("ProfilePaths() error = %v", err)
	}

	want := []string{"profile1.data", "profile2.data", "profile10.data"}
	if len(paths) != len(want) {
		t.Fatalf("ProfilePaths() returned %d paths, want %d: %v", len(paths), len(want), paths)
	}
	for i, w := range want {
		if filepath.Base(paths[i]) != w {
			t.Errorf("paths[%d] = %s, want %s (numeric sort, not lexical)", i, filepath.Base(paths[i]), w)
		}
	}
}

func TestLatestProfile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"profile1.data", "profile3.data"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(profileFixture), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	d, err := LatestProfile(dir)
	if err != nil {
		t.Fatalf("LatestProfile() error = %v", err)
	}
	if filepath.Base(d.Path) != "profile3.data" {
		t.Errorf("LatestProfile() loaded %s, want profile3.data", filepath.Base(d.Path))
	}
	if !d.Has("x_mass_fraction_H") {
		t.Error("profile should carry x_mass_fraction_H")
	}
}

func TestLatestProfileEmpty(t *testing.T) {
	if _, err := LatestProfile(t.TempDir()); err == nil {
		t.Error("LatestProfile() of empty dir should fail")
	}
}
