package racatalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rascan/internal/services"
	"rascan/internal/services/racatalog"
)

func TestValidateCredential(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		wantKey string
		valid   bool
	}{
		{"accepted", http.StatusOK, `{"Title":"Demo"}`, "good-key", true},
		{"rejected", http.StatusUnauthorized, `{"Error":"invalid key"}`, "bad-key", false},
		{"empty body", http.StatusOK, "", "good-key", false},
		{"null body", http.StatusOK, "null", "good-key", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/API/API_GetAchievementOfTheWeek.php" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("y"); got != tc.wantKey {
					t.Errorf("expected api key %q, got %q", tc.wantKey, got)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := racatalog.New(srv.URL, tc.wantKey)
			if got := client.ValidateCredential(context.Background()); got != tc.valid {
				t.Fatalf("ValidateCredential = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestListActivePlatformsFiltersInactive(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/API/API_GetConsoleIDs.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"ID":3,"Name":"SNES/Super Famicom","Active":true,"IsGameSystem":true},
			{"ID":101,"Name":"Events","Active":true,"IsGameSystem":false},
			{"ID":7,"Name":"NES/Famicom","Active":false,"IsGameSystem":true}
		]`))
	}))
	defer srv.Close()

	client := racatalog.New(srv.URL, "key")
	systems, err := client.ListActivePlatforms(context.Background())
	if err != nil {
		t.Fatalf("ListActivePlatforms: %v", err)
	}
	if len(systems) != 1 {
		t.Fatalf("expected 1 system, got %d", len(systems))
	}
	if systems[0].ID != 3 || systems[0].Name != "SNES/Super Famicom" {
		t.Fatalf("unexpected system %+v", systems[0])
	}
}

func TestListCatalogLowercasesHashes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/API/API_GetGameList.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("i"); got != "3" {
			t.Errorf("expected system id 3, got %q", got)
		}
		if got := r.URL.Query().Get("h"); got != "1" {
			t.Errorf("expected hashes requested, got h=%q", got)
		}
		_, _ = w.Write([]byte(`[
			{"ID":228,"Title":"Super Metroid","ConsoleID":3,"ConsoleName":"SNES/Super Famicom",
			 "NumAchievements":104,"Hashes":["A2C8DA2C8F1BEA1AD5EE4E4FA9F8BDBB"," 0B2C3D4E5F60718293A4B5C6D7E8F901 "]}
		]`))
	}))
	defer srv.Close()

	client := racatalog.New(srv.URL, "key")
	entries, err := client.ListCatalog(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Title != "Super Metroid" || entry.NumAchievements != 104 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Hashes[0] != "a2c8da2c8f1bea1ad5ee4e4fa9f8bdbb" {
		t.Fatalf("expected lower-cased hash, got %q", entry.Hashes[0])
	}
	if entry.Hashes[1] != "0b2c3d4e5f60718293a4b5c6d7e8f901" {
		t.Fatalf("expected trimmed hash, got %q", entry.Hashes[1])
	}
}

func TestListCatalogServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := racatalog.New(srv.URL, "key")
	if _, err := client.ListCatalog(context.Background(), 3); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestRequestRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	client := racatalog.New("https://example.invalid", "")
	if _, err := client.ListActivePlatforms(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
