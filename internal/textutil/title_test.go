package textutil

import "testing"

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"/media/old.family.videos.avi":  "Old Family Videos",
		"/media/summer_trip_2019.mkv":   "Summer Trip 2019",
		"/media/concert-live-set.mp4":   "Concert Live Set",
		"/media/already Spaced.mkv":     "Already Spaced",
		"/media/Movie.mkv":              "Movie",
		"movie.avi":                     "Movie",
		"/media/mixed.sep_and-dots.avi": "Mixed Sep And Dots",
	}
	for path, want := range cases {
		if got := DisplayTitle(path); got != want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDisplayTitleCollapsesWhitespace(t *testing.T) {
	if got := DisplayTitle("/media/a..b__c.mkv"); got != "A B C" {
		t.Fatalf("DisplayTitle = %q", got)
	}
}
