package main

import (
	"math/rand"
	"time"
)

// TeamID is 0 or 1. NoTeam stands in for "nobody", both as an
// adjudication result and as the unlocked-by marker of a category that
// was never purchased.
type TeamID int

const NoTeam TeamID = -1

func otherTeam(t TeamID) TeamID {
	return 1 - t
}

// Team is one of the two sides of a session. Score starts from the
// selection-phase balance; SelectedTools are the three setup picks and
// UsedTools the ones already spent.
type Team struct {
	ID            TeamID
	Name          string
	Score         int
	SelectedTools []ToolID
	UsedTools     map[ToolID]bool
}

var defaultTeamNames = [2]string{"Team 1", "Team 2"}

// Thresholds the add-time tool resets the timer to, replacing whatever
// values were active.
const (
	addTimeSoft = 120 * time.Second
	addTimeHard = 150 * time.Second
)

// searchExtension is added to both active thresholds by the search tool.
const searchExtension = 20 * time.Second

// GameSession owns one playthrough: the two teams, the frozen board,
// whose turn it is, the active question with its power-up context, and
// the question timer. All methods are called from a single goroutine
// (the owning hub's run loop).
type GameSession struct {
	teams          [2]*Team
	selection      *Selection
	board          *Board
	currentTeam    TeamID
	active         *QuestionSlot
	activation     PowerupActivation
	timer          *QuestionTimer
	startingPoints int
	defaultSoft    time.Duration
	defaultHard    time.Duration
	summaryDone    bool
}

// newGameSession validates the two start constraints, snapshots the
// selection balances into team scores, and populates the board. The
// selection stays attached for mid-game category purchases.
func newGameSession(sel *Selection, src CategorySource, names [2]string, rng *rand.Rand, clock Clock, soft, hard time.Duration) (*GameSession, error) {
	if !sel.ready() {
		return nil, ErrInvalidSelection
	}

	chosen := make([]*Category, 0, boardSize)
	for _, id := range sel.Chosen() {
		chosen = append(chosen, sel.byID[id])
	}

	s := &GameSession{
		selection:   sel,
		board:       newBoard(src, chosen, rng),
		timer:       newQuestionTimer(clock, soft, hard),
		defaultSoft: soft,
		defaultHard: hard,
	}

	for i := range s.teams {
		name := names[i]
		if name == "" {
			name = defaultTeamNames[i]
		}

		tools := make([]ToolID, len(sel.tools[i]))
		copy(tools, sel.tools[i])

		s.teams[i] = &Team{
			ID:            TeamID(i),
			Name:          name,
			Score:         sel.balances[i],
			SelectedTools: tools,
			UsedTools:     make(map[ToolID]bool, toolsPerTeam),
		}
	}

	s.startingPoints = max(sel.balances[0], sel.balances[1])

	return s, nil
}

func (s *GameSession) Teams() [2]*Team {
	return s.teams
}

func (s *GameSession) Board() *Board {
	return s.board
}

func (s *GameSession) CurrentTeam() TeamID {
	return s.currentTeam
}

func (s *GameSession) Active() *QuestionSlot {
	return s.active
}

func (s *GameSession) Activation() PowerupActivation {
	return s.activation
}

func (s *GameSession) Timer() *QuestionTimer {
	return s.timer
}

// Activate opens an unanswered slot and starts its timer with the
// default timeout thresholds.
func (s *GameSession) Activate(key SlotKey) (*QuestionSlot, error) {
	if s.active != nil {
		return nil, ErrQuestionOpen
	}

	slot, err := s.board.Slot(key)
	if err != nil {
		return nil, err
	}
	if slot.Answered {
		return nil, ErrAlreadyAnswered
	}

	s.active = slot
	s.activation = PowerupActivation{}
	s.timer.Reset()
	s.timer.SetThresholds(s.defaultSoft, s.defaultHard)
	s.timer.Start()

	return slot, nil
}

// closeQuestion discards the active question context. The power-up
// flags die with it.
func (s *GameSession) closeQuestion() {
	s.active = nil
	s.activation = PowerupActivation{}
	s.timer.Reset()
}

// Deactivate returns to the board without adjudicating. The slot stays
// unanswered and can be re-opened later.
func (s *GameSession) Deactivate() {
	if s.active == nil {
		return
	}
	s.closeQuestion()
}

// AdjudicationResult reports what a single adjudication changed.
type AdjudicationResult struct {
	Winner    TeamID
	Awarded   [2]int
	Completed bool
}

// Adjudicate declares the winner of the active question (NoTeam when
// nobody answered correctly), applies the power-up scoring modifiers,
// marks the slot answered, and rotates the turn. The turn rotates
// unconditionally, even on a NoTeam result.
func (s *GameSession) Adjudicate(winner TeamID) (AdjudicationResult, error) {
	if s.active == nil {
		return AdjudicationResult{}, ErrNoActiveQuestion
	}

	result := AdjudicationResult{Winner: winner}
	amount := s.activation.award(s.active.Key.Value)

	switch {
	case s.activation.SharePoints:
		half := amount / 2
		for i := range s.teams {
			s.teams[i].Score += half
			result.Awarded[i] = half
		}
	case winner != NoTeam:
		s.teams[winner].Score += amount
		result.Awarded[winner] = amount
	}

	s.active.Answered = true
	s.closeQuestion()
	s.currentTeam = otherTeam(s.currentTeam)
	result.Completed = s.completeOnce()

	return result, nil
}

// SetTurn is the manual turn override. Always legal during a game.
func (s *GameSession) SetTurn(team TeamID) {
	s.currentTeam = team
}

// AdjustScore applies a manual correction. Scores never go negative.
func (s *GameSession) AdjustScore(team TeamID, delta int) {
	s.teams[team].Score = max(0, s.teams[team].Score+delta)
}

// PurchaseCategory unlocks a still-locked category mid-game, paid for
// out of the team's live score. The board itself never changes; the
// unlock only matters for a later selection round.
func (s *GameSession) PurchaseCategory(team TeamID, id string) error {
	cat, ok := s.selection.byID[id]
	if !ok {
		return ErrUnknownCategory
	}
	if !cat.Locked {
		return nil
	}
	if s.teams[team].Score < cat.Cost {
		return ErrInsufficientFunds
	}

	s.teams[team].Score -= cat.Cost
	cat.Locked = false
	cat.UnlockedBy = team

	return nil
}

// ToolResult reports what a tool activation changed, for broadcasting.
type ToolResult struct {
	Team         TeamID
	Tool         ToolID
	DisabledTeam TeamID
	NewQuestion  *Question
	Cancelled    bool
	Completed    bool
	NoEffect     bool
}

// ActivateTool spends one of the team's setup picks on the active
// question. A spent tool stays spent even when its effect turns out to
// be moot; the only activation that is rejected without consuming the
// tool is a steal/mute conflict, since rejecting it means the effect
// never happened.
func (s *GameSession) ActivateTool(team TeamID, tool ToolID) (ToolResult, error) {
	if _, ok := toolCatalog[tool]; !ok {
		return ToolResult{}, ErrUnknownTool
	}
	if s.active == nil {
		return ToolResult{}, ErrNoActiveQuestion
	}

	owner := s.teams[team]

	selected := false
	for _, t := range owner.SelectedTools {
		if t == tool {
			selected = true
			break
		}
	}
	if !selected {
		return ToolResult{}, ErrToolNotSelected
	}
	if owner.UsedTools[tool] {
		return ToolResult{}, ErrAlreadyUsed
	}

	if (tool == ToolStealQuestion || tool == ToolMuteOpponent) && s.activation.channelDisabled() {
		return ToolResult{}, ErrChannelConflict
	}

	owner.UsedTools[tool] = true

	result := ToolResult{
		Team:         team,
		Tool:         tool,
		DisabledTeam: NoTeam,
	}

	switch tool {
	case ToolDoublePoints:
		s.activation.DoublePoints = true

	case ToolSearch:
		s.activation.HalfPoints = true
		if s.timer.Running() {
			s.timer.ExtendThresholds(searchExtension)
		}

	case ToolStealQuestion:
		s.activation.StealTurn = true
		s.currentTeam = team
		result.DisabledTeam = otherTeam(team)

	case ToolMuteOpponent:
		s.activation.MuteOpponent = true
		result.DisabledTeam = otherTeam(team)

	case ToolChangeQuestion:
		q, err := s.board.substitute(s.active.Key)
		if err != nil {
			// The tool is spent regardless.
			return result, err
		}
		result.NewQuestion = &q

	case ToolAddTime:
		if team != s.currentTeam {
			result.NoEffect = true
			break
		}
		s.activation.AddTime = true
		s.timer.SetThresholds(addTimeSoft, addTimeHard)

	case ToolSharePoints:
		s.activation.SharePoints = true

	case ToolCancelQuestion:
		s.active.Answered = true
		s.closeQuestion()
		result.Cancelled = true
		result.Completed = s.completeOnce()

	case ToolCallFriend, ToolStealPlayer:
		// Out-of-band aids. Announcing the activation is the whole effect.
		result.NoEffect = true
	}

	return result, nil
}

// Tick polls the active question's timer. Soft timeout is suppressed
// while the opponent's answer channel is muted, since there is no other
// team left to hand the window to.
func (s *GameSession) Tick() (TimeoutPhase, bool) {
	if s.active == nil {
		return TimeoutNone, false
	}
	return s.timer.Tick(s.activation.MuteOpponent)
}

// completeOnce reports board completion exactly once per session, so
// the end-of-game summary cannot fire twice.
func (s *GameSession) completeOnce() bool {
	if s.summaryDone || !s.board.IsComplete() {
		return false
	}
	s.summaryDone = true
	return true
}

// GameSummary is the end-of-game standing. Winner is NoTeam on a tie.
type GameSummary struct {
	Winner TeamID
	Scores [2]int
}

// Summary computes the final standing. Callable at any point; the hub
// sends it when the board completes or the operator ends the game early.
func (s *GameSession) Summary() GameSummary {
	summary := GameSummary{
		Scores: [2]int{s.teams[0].Score, s.teams[1].Score},
	}

	switch {
	case s.teams[0].Score > s.teams[1].Score:
		summary.Winner = s.teams[0].ID
	case s.teams[1].Score > s.teams[0].Score:
		summary.Winner = s.teams[1].ID
	default:
		summary.Winner = NoTeam
	}

	return summary
}
