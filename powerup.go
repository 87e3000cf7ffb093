package main

// ToolID identifies one of the ten power-up tools. Each team picks
// three during setup; each pick is usable once per game.
type ToolID string

const (
	ToolDoublePoints   ToolID = "double_points"
	ToolSearch         ToolID = "search"
	ToolStealQuestion  ToolID = "steal_question"
	ToolMuteOpponent   ToolID = "mute_opponent"
	ToolChangeQuestion ToolID = "change_question"
	ToolCallFriend     ToolID = "call_friend"
	ToolAddTime        ToolID = "add_time"
	ToolStealPlayer    ToolID = "steal_player"
	ToolSharePoints    ToolID = "share_points"
	ToolCancelQuestion ToolID = "cancel_question"
)

// Tool describes a catalog entry for the setup screen.
type Tool struct {
	ID     ToolID `json:"id"`
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// toolOrder fixes the display order of the catalog.
var toolOrder = []ToolID{
	ToolDoublePoints,
	ToolSearch,
	ToolStealQuestion,
	ToolMuteOpponent,
	ToolChangeQuestion,
	ToolCallFriend,
	ToolAddTime,
	ToolStealPlayer,
	ToolSharePoints,
	ToolCancelQuestion,
}

var toolCatalog = map[ToolID]Tool{
	ToolDoublePoints: {
		ID:     ToolDoublePoints,
		Name:   "Double Points",
		Effect: "Doubles the points awarded for this question",
	},
	ToolSearch: {
		ID:     ToolSearch,
		Name:   "Search Engine",
		Effect: "Look the answer up; halves the points and adds 20 seconds",
	},
	ToolStealQuestion: {
		ID:     ToolStealQuestion,
		Name:   "Steal Question",
		Effect: "Take the turn and answer in the other team's place",
	},
	ToolMuteOpponent: {
		ID:     ToolMuteOpponent,
		Name:   "Mute Opponent",
		Effect: "The other team may not answer this question",
	},
	ToolChangeQuestion: {
		ID:     ToolChangeQuestion,
		Name:   "Change Question",
		Effect: "Swap in a different question of the same value",
	},
	ToolCallFriend: {
		ID:     ToolCallFriend,
		Name:   "Call a Friend",
		Effect: "Phone anyone you like for help",
	},
	ToolAddTime: {
		ID:     ToolAddTime,
		Name:   "Add Time",
		Effect: "Resets the timeouts to 120 and 150 seconds",
	},
	ToolStealPlayer: {
		ID:     ToolStealPlayer,
		Name:   "Steal Player",
		Effect: "Borrow a player from the other team for this question",
	},
	ToolSharePoints: {
		ID:     ToolSharePoints,
		Name:   "Share Points",
		Effect: "Points for this question are split between both teams",
	},
	ToolCancelQuestion: {
		ID:     ToolCancelQuestion,
		Name:   "Cancel Question",
		Effect: "Closes this question immediately; nobody scores",
	},
}

// PowerupActivation holds the modifier flags for the active question
// only. It is a plain value owned by the session and zeroed whenever
// the question closes, so effects cannot leak across questions.
type PowerupActivation struct {
	DoublePoints bool
	HalfPoints   bool
	StealTurn    bool
	MuteOpponent bool
	SharePoints  bool
	AddTime      bool
}

// channelDisabled reports whether one team's answer channel is already
// disabled. StealTurn and MuteOpponent both do this, which is why they
// are mutually exclusive per question.
func (a PowerupActivation) channelDisabled() bool {
	return a.StealTurn || a.MuteOpponent
}

// award applies the scoring modifiers to a base point value: halving
// first (floor division), then doubling. The two compose.
func (a PowerupActivation) award(value int) int {
	amount := value
	if a.HalfPoints {
		amount /= 2
	}
	if a.DoublePoints {
		amount *= 2
	}
	return amount
}
