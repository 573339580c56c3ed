package aws

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestProfileRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	raw := `[default]
region = eu-west-1

[profile docs]
region = us-west-2

[profile bare]
output = json
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	uu := map[string]struct {
		profile, e string
	}{
		"default":  {profile: "", e: "eu-west-1"},
		"named":    {profile: "docs", e: "us-west-2"},
		"noRegion": {profile: "bare", e: ""},
		"missing":  {profile: "nope", e: ""},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			if got := ProfileRegion(path, u.profile); got != u.e {
				t.Errorf("expected %q, got %q", u.e, got)
			}
		})
	}
}

func TestProfileRegionNoFile(t *testing.T) {
	if got := ProfileRegion(filepath.Join(t.TempDir(), "none"), "docs"); got != "" {
		t.Errorf("expected blank region, got %q", got)
	}
}

func TestWrapAWSError(t *testing.T) {
	if WrapAWSError(nil, "op") != nil {
		t.Fatal("expected nil")
	}
	err := WrapAWSError(errors.New("boom"), "list documents")
	if err.Error() != "list documents failed: boom" {
		t.Errorf("unexpected error %q", err)
	}
}
