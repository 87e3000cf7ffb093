package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Question values double as difficulty keys into the catalog's
// easy/hard/extreme labels.
const (
	ValueEasy    = 200
	ValueHard    = 400
	ValueExtreme = 600
)

var questionValues = []int{ValueEasy, ValueHard, ValueExtreme}

var difficultyLabels = map[int]string{
	ValueEasy:    "easy",
	ValueHard:    "hard",
	ValueExtreme: "extreme",
}

// CategoryInfo describes one purchasable category in the catalog.
type CategoryInfo struct {
	ID    string
	Group string
	Title string
	Cost  int
}

// Question is a single catalog entry. Difficulty holds one of the
// easy/hard/extreme labels; Image, Audio and Choices are optional.
type Question struct {
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Image      string   `json:"image,omitempty"`
	Audio      string   `json:"audio,omitempty"`
	Choices    []string `json:"choices,omitempty"`
}

// CategorySource supplies the category catalog and, per category, a
// lazily-loaded question bank. The game core never performs I/O itself;
// everything it knows about questions arrives through this contract.
type CategorySource interface {
	ListCategories() ([]CategoryInfo, error)
	LoadQuestions(categoryID string) ([]Question, error)
}

// fileCatalog reads a catalog laid out as group -> title -> questions
// and assigns stable IDs (m1, m2, ...) by walking groups and titles in
// sorted order. Question banks are cached per category for the lifetime
// of the catalog.
type fileCatalog struct {
	path string
	cost int

	categories []CategoryInfo
	banks      map[string][]Question
}

func newFileCatalog(path string, cost int) (*fileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	var raw map[string]map[string][]Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	c := &fileCatalog{
		path:  path,
		cost:  cost,
		banks: make(map[string][]Question),
	}

	groups := make([]string, 0, len(raw))
	for group := range raw {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	id := 1
	for _, group := range groups {
		titles := make([]string, 0, len(raw[group]))
		for title := range raw[group] {
			titles = append(titles, title)
		}
		sort.Strings(titles)

		for _, title := range titles {
			categoryID := fmt.Sprintf("m%d", id)
			id++

			c.categories = append(c.categories, CategoryInfo{
				ID:    categoryID,
				Group: group,
				Title: title,
				Cost:  cost,
			})
			c.banks[categoryID] = raw[group][title]
		}
	}

	return c, nil
}

func (c *fileCatalog) ListCategories() ([]CategoryInfo, error) {
	return c.categories, nil
}

func (c *fileCatalog) LoadQuestions(categoryID string) ([]Question, error) {
	bank, ok := c.banks[categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrCatalogUnavailable, categoryID)
	}
	return bank, nil
}

// placeholderCatalog is the degraded source used when the real catalog
// cannot be read. A single category with a single easy question keeps
// the selection and board flow usable.
type placeholderCatalog struct {
	cost int
}

func (c placeholderCatalog) ListCategories() ([]CategoryInfo, error) {
	return []CategoryInfo{
		{
			ID:    "m1",
			Group: "General",
			Title: "Sample Questions",
			Cost:  c.cost,
		},
	}, nil
}

func (c placeholderCatalog) LoadQuestions(categoryID string) ([]Question, error) {
	return []Question{
		{
			Difficulty: "easy",
			Question:   "Sample question",
			Answer:     "Sample answer",
		},
	}, nil
}

// loadCatalog opens the configured catalog file, degrading to the
// built-in placeholder instead of failing the game.
func loadCatalog(cfg *Config) CategorySource {
	src, err := newFileCatalog(cfg.questions, cfg.categoryCost)
	if err != nil {
		logf(cfg, "GAMES: Falling back to placeholder catalog: %v", err)
		return placeholderCatalog{cost: cfg.categoryCost}
	}
	return src
}

// placeholderQuestion fills a board slot when a category bank has no
// question at the requested difficulty.
func placeholderQuestion(title string, value int) Question {
	return Question{
		Difficulty: difficultyLabels[value],
		Question:   fmt.Sprintf("Sample question about %s (%d points)", title, value),
		Answer:     "Sample answer",
	}
}
