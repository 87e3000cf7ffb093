package main

import (
	"fmt"
	"math/rand"
)

// SlotKey addresses one of the 36 question slots on a board: six
// categories, three point values, two instances per value.
type SlotKey struct {
	CategoryID string `json:"category"`
	Value      int    `json:"value"`
	Instance   int    `json:"instance"`
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s_%d_%d", k.CategoryID, k.Value, k.Instance)
}

// QuestionSlot binds a slot to its sampled question. Answered flips
// true exactly once and never reverts.
type QuestionSlot struct {
	Key      SlotKey
	Question Question
	Answered bool
}

// BoardCategory is a chosen category frozen onto the board, annotated
// with its slot index 0-5 in selection order.
type BoardCategory struct {
	Slot  int    `json:"slot"`
	ID    string `json:"id"`
	Group string `json:"group"`
	Title string `json:"title"`
}

// Board holds the frozen six categories and their 36 populated slots.
// The per-category banks are retained so the change-question tool can
// re-sample.
type Board struct {
	categories []BoardCategory
	slots      map[SlotKey]*QuestionSlot
	banks      map[string][]Question
	rng        *rand.Rand
}

// newBoard freezes the chosen categories in selection order and samples
// two questions per value from each category's bank: two distinct
// questions when the bank allows, the single candidate doubled when it
// has exactly one, and a placeholder when it has none. A bank that
// fails to load degrades to placeholders rather than failing the game.
func newBoard(src CategorySource, chosen []*Category, rng *rand.Rand) *Board {
	b := &Board{
		slots: make(map[SlotKey]*QuestionSlot, boardSize*len(questionValues)*2),
		banks: make(map[string][]Question, boardSize),
		rng:   rng,
	}

	for i, cat := range chosen {
		b.categories = append(b.categories, BoardCategory{
			Slot:  i,
			ID:    cat.ID,
			Group: cat.Group,
			Title: cat.Title,
		})

		bank, err := src.LoadQuestions(cat.ID)
		if err != nil {
			bank = nil
		}
		b.banks[cat.ID] = bank

		for _, value := range questionValues {
			candidates := questionsOfValue(bank, value)

			var first, second Question
			switch {
			case len(candidates) >= 2:
				perm := rng.Perm(len(candidates))
				first, second = candidates[perm[0]], candidates[perm[1]]
			case len(candidates) == 1:
				first, second = candidates[0], candidates[0]
			default:
				first = placeholderQuestion(cat.Title, value)
				second = first
			}

			for i, q := range []Question{first, second} {
				key := SlotKey{CategoryID: cat.ID, Value: value, Instance: i + 1}
				b.slots[key] = &QuestionSlot{Key: key, Question: q}
			}
		}
	}

	return b
}

func questionsOfValue(bank []Question, value int) []Question {
	label := difficultyLabels[value]
	var out []Question
	for _, q := range bank {
		if q.Difficulty == label {
			out = append(out, q)
		}
	}
	return out
}

func (b *Board) Categories() []BoardCategory {
	return b.categories
}

// Slot looks up a populated slot by key.
func (b *Board) Slot(key SlotKey) (*QuestionSlot, error) {
	slot, ok := b.slots[key]
	if !ok {
		return nil, ErrUnknownSlot
	}
	return slot, nil
}

// IsComplete reports whether every slot on the board has been answered.
func (b *Board) IsComplete() bool {
	for _, slot := range b.slots {
		if !slot.Answered {
			return false
		}
	}
	return true
}

// substitute re-samples the slot's question from the same category and
// value, excluding the question currently on display. The original
// question stays in place when the bank has no other candidate.
func (b *Board) substitute(key SlotKey) (Question, error) {
	slot, ok := b.slots[key]
	if !ok {
		return Question{}, ErrUnknownSlot
	}

	var alternatives []Question
	for _, q := range questionsOfValue(b.banks[key.CategoryID], key.Value) {
		if q.Question != slot.Question.Question {
			alternatives = append(alternatives, q)
		}
	}
	if len(alternatives) == 0 {
		return Question{}, ErrNoAlternative
	}

	slot.Question = alternatives[b.rng.Intn(len(alternatives))]
	return slot.Question, nil
}
