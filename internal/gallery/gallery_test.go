package gallery

import (
	"testing"

	"photovault/internal/library"
)

func galleryFixture() []library.Photo {
	album := "alb-1"
	return []library.Photo{
		{ID: "p1", Name: "beach.jpg", Date: "3/7/2024", Favorite: true, Faces: 2, Album: &album, Tags: []string{"summer", "trip"}},
		{ID: "p2", Name: "CAT.jpg", Date: "3/8/2024", Favorite: false, Faces: 0, Tags: []string{"pets"}},
		{ID: "p3", Name: "dog.png", Date: "4/1/2024", Favorite: true, Faces: 1, Tags: []string{"pets"}},
		{ID: "p4", Name: "receipt.jpg", Date: "4/2/2024", Favorite: false, Faces: 0, Tags: []string{}},
	}
}

func ids(photos []library.Photo) []string {
	out := make([]string, len(photos))
	for i, photo := range photos {
		out[i] = photo.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseView(t *testing.T) {
	cases := []struct {
		input string
		want  string
		err   bool
	}{
		{"all", "all", false},
		{"", "all", false},
		{"favorites", "favorites", false},
		{"people", "people", false},
		{"album:alb-1", "album:alb-1", false},
		{"album:", "", true},
		{"bogus", "", true},
	}
	for _, tc := range cases {
		view, err := ParseView(tc.input)
		if tc.err {
			if err == nil {
				t.Errorf("ParseView(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseView(%q): %v", tc.input, err)
			continue
		}
		if view.String() != tc.want {
			t.Errorf("ParseView(%q): expected %s, got %s", tc.input, tc.want, view.String())
		}
	}
}

func TestFilterViews(t *testing.T) {
	photos := galleryFixture()

	cases := []struct {
		name string
		view View
		want []string
	}{
		{"all", All(), []string{"p1", "p2", "p3", "p4"}},
		{"favorites", Favorites(), []string{"p1", "p3"}},
		{"people", People(), []string{"p1", "p3"}},
		{"album", Album("alb-1"), []string{"p1"}},
		{"album miss", Album("other"), nil},
	}
	for _, tc := range cases {
		got := ids(Filter(photos, tc.view, ""))
		if !equal(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestFilterQueryIsCaseInsensitive(t *testing.T) {
	photos := galleryFixture()

	got := ids(Filter(photos, All(), "cat"))
	if !equal(got, []string{"p2"}) {
		t.Errorf("expected [p2] for query cat, got %v", got)
	}
	got = ids(Filter(photos, All(), "CaT"))
	if !equal(got, []string{"p2"}) {
		t.Errorf("expected [p2] for query CaT, got %v", got)
	}
}

func TestFilterQueryMatchesDateAndTags(t *testing.T) {
	photos := galleryFixture()

	got := ids(Filter(photos, All(), "3/8"))
	if !equal(got, []string{"p2"}) {
		t.Errorf("date query: expected [p2], got %v", got)
	}

	got = ids(Filter(photos, All(), "pets"))
	if !equal(got, []string{"p2", "p3"}) {
		t.Errorf("tag query: expected [p2 p3], got %v", got)
	}
}

func TestFilterComposesViewAndQuery(t *testing.T) {
	photos := galleryFixture()

	got := ids(Filter(photos, Favorites(), "pets"))
	if !equal(got, []string{"p3"}) {
		t.Errorf("expected [p3] for favorites+pets, got %v", got)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	photos := galleryFixture()

	got := ids(Filter(photos, All(), ".jpg"))
	if !equal(got, []string{"p1", "p2", "p4"}) {
		t.Errorf("expected insertion order restricted to matches, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	photos := galleryFixture()
	Filter(photos, Favorites(), "trip")
	if photos[0].ID != "p1" || len(photos) != 4 {
		t.Fatal("input slice was mutated")
	}
}
