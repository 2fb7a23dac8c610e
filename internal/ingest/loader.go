package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Movie is one entry of the movies dataset (all_movies_reviews.json).
type Movie struct {
	Name      string     `json:"name"`
	Genre     stringList `json:"genre"`
	Directors stringList `json:"directors"`
	Rating    rating     `json:"rating"`
	URL       string     `json:"url"`
	Desc      string     `json:"desc"`
	Reviews   []Review   `json:"reviews"`
}

// Review is a single user review with an optional personal rating.
type Review struct {
	Review string   `json:"review"`
	Rating flexText `json:"rating"`
}

type rating struct {
	TotalRating flexText `json:"totalRating"`
}

// stringList accepts either a JSON string or an array of strings; the
// scraped dataset is inconsistent about this.
type stringList string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringList(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = stringList(strings.Join(many, ", "))
		return nil
	}
	return fmt.Errorf("expected string or string array, got %s", string(data))
}

// flexText accepts a JSON string, number, or null and normalizes to text.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexText(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", trimmed)
}

// LoadMovies reads and parses the movies dataset from the given path.
func LoadMovies(path string) ([]Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var movies []Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return movies, nil
}
