package config

import "testing"

func TestGetEnvAsStringMap(t *testing.T) {
	defaults := map[string]string{"medical": "MED"}

	t.Run("unset returns defaults", func(t *testing.T) {
		got := getEnvAsStringMap("SITE_TOKEN_PREFIXES_TEST", defaults)
		if got["medical"] != "MED" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("parses pairs", func(t *testing.T) {
		t.Setenv("SITE_TOKEN_PREFIXES_TEST", "medical=MED, bitbites=BIT ,broken,=X")
		got := getEnvAsStringMap("SITE_TOKEN_PREFIXES_TEST", defaults)
		if len(got) != 2 || got["medical"] != "MED" || got["bitbites"] != "BIT" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("all-garbage falls back to defaults", func(t *testing.T) {
		t.Setenv("SITE_TOKEN_PREFIXES_TEST", ",,=")
		got := getEnvAsStringMap("SITE_TOKEN_PREFIXES_TEST", defaults)
		if got["medical"] != "MED" {
			t.Fatalf("got %v", got)
		}
	})
}
