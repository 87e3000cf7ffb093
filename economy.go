package main

import (
	"fmt"
	"math/rand"
)

const (
	boardSize    = 6
	toolsPerTeam = 3
)

// Category is one catalog entry promoted into a selection. Locked flips
// false exactly once via Purchase and never re-locks.
type Category struct {
	ID         string
	Group      string
	Title      string
	Cost       int
	Locked     bool
	UnlockedBy TeamID
}

// Selection holds all pre-game state: the category catalog with lock
// status, the two selection-phase balances, the chosen category set,
// and each team's chosen tools. It is mutable only until the game
// starts; startGame snapshots it into a session.
type Selection struct {
	source     CategorySource
	categories []*Category
	byID       map[string]*Category
	balances   [2]int
	chosen     []string
	tools      [2][]ToolID
}

// newSelection resolves the catalog and rolls each category's initial
// lock state from the injected random source.
func newSelection(src CategorySource, startingPoints int, lockChance float64, rng *rand.Rand) (*Selection, error) {
	infos, err := src.ListCategories()
	if err != nil {
		return nil, err
	}

	s := &Selection{
		source:   src,
		byID:     make(map[string]*Category, len(infos)),
		balances: [2]int{startingPoints, startingPoints},
	}

	for _, info := range infos {
		cat := &Category{
			ID:         info.ID,
			Group:      info.Group,
			Title:      info.Title,
			Cost:       info.Cost,
			Locked:     rng.Float64() < lockChance,
			UnlockedBy: NoTeam,
		}
		s.categories = append(s.categories, cat)
		s.byID[cat.ID] = cat
	}

	return s, nil
}

func (s *Selection) Categories() []*Category {
	return s.categories
}

func (s *Selection) Balance(team TeamID) int {
	return s.balances[team]
}

func (s *Selection) Chosen() []string {
	return s.chosen
}

func (s *Selection) Tools(team TeamID) []ToolID {
	return s.tools[team]
}

func (s *Selection) isChosen(id string) bool {
	for _, c := range s.chosen {
		if c == id {
			return true
		}
	}
	return false
}

// ToggleCategory adds an unlocked category to the chosen set, or
// removes it if already chosen. The chosen set is capped at six.
func (s *Selection) ToggleCategory(id string) error {
	cat, ok := s.byID[id]
	if !ok {
		return ErrUnknownCategory
	}
	if cat.Locked {
		return ErrCategoryLocked
	}

	for i, c := range s.chosen {
		if c == id {
			s.chosen = append(s.chosen[:i], s.chosen[i+1:]...)
			return nil
		}
	}

	if len(s.chosen) >= boardSize {
		return fmt.Errorf("%w: already chose %d categories", ErrInvalidSelection, boardSize)
	}

	s.chosen = append(s.chosen, id)
	return nil
}

// Purchase debits the category cost from the paying team's balance and
// unlocks the category, permanently. Purchasing an already-unlocked
// category is a no-op. If the chosen set still has room, the newly
// unlocked category joins it.
func (s *Selection) Purchase(team TeamID, id string) error {
	cat, ok := s.byID[id]
	if !ok {
		return ErrUnknownCategory
	}
	if !cat.Locked {
		return nil
	}
	if s.balances[team] < cat.Cost {
		return ErrInsufficientFunds
	}

	s.balances[team] -= cat.Cost
	cat.Locked = false
	cat.UnlockedBy = team

	if len(s.chosen) < boardSize && !s.isChosen(id) {
		s.chosen = append(s.chosen, id)
	}

	return nil
}

// ToggleTool adds a tool to the team's setup picks, or removes it if
// already picked. Picks are capped at three per team.
func (s *Selection) ToggleTool(team TeamID, tool ToolID) error {
	if _, ok := toolCatalog[tool]; !ok {
		return ErrUnknownTool
	}

	picks := s.tools[team]
	for i, t := range picks {
		if t == tool {
			s.tools[team] = append(picks[:i], picks[i+1:]...)
			return nil
		}
	}

	if len(picks) >= toolsPerTeam {
		return fmt.Errorf("%w: already picked %d tools", ErrInvalidSelection, toolsPerTeam)
	}

	s.tools[team] = append(picks, tool)
	return nil
}

// ready reports whether the selection satisfies both start constraints.
func (s *Selection) ready() bool {
	if len(s.chosen) != boardSize {
		return false
	}
	for team := range s.tools {
		if len(s.tools[team]) != toolsPerTeam {
			return false
		}
	}
	return true
}

// reset restores both balances for a fresh selection round. Unlocked
// categories stay unlocked.
func (s *Selection) reset(startingPoints int) {
	s.balances = [2]int{startingPoints, startingPoints}
	s.chosen = nil
	s.tools = [2][]ToolID{}
}
