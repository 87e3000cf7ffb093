// Triviabox Trivia Game
//
// Two teams share a single browser tab driven by one operator. During
// setup the teams pick six categories from a catalog (locked categories
// cost points to unlock) and three power-up tools each. The board holds
// six categories with three point values and two questions per value.
// Questions are answered out loud and adjudicated manually; the server
// owns the rules: purchase economics, board population, turn rotation,
// scoring with power-up modifiers, and the two-stage question timer.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Selection phase: category toggle/purchase, tool picks, team names
// - Board phase: slot activation, answer reveal, manual adjudication
// - Ten single-use power-up tools modifying scoring, timing and turns
// - Soft/hard timeout escalation polled on a fixed interval
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - Browsers identified by cookie (uuid)
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"errors"
	"log"
	mathrand "math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients. One struct, discriminated by Type.
type ClientMessage struct {
	Type     string   `json:"type"`               // see readPump for the full set
	Team     *int     `json:"team,omitempty"`     // purchase / toggle_tool / use_tool / adjust_score / set_turn
	Names    []string `json:"names,omitempty"`    // set_names
	Category string   `json:"category,omitempty"` // toggle_category / purchase / activate
	Tool     string   `json:"tool,omitempty"`     // toggle_tool / use_tool
	Value    int      `json:"value,omitempty"`    // activate
	Instance int      `json:"instance,omitempty"` // activate
	Winner   *int     `json:"winner,omitempty"`   // adjudicate (absent means "no one")
	Delta    int      `json:"delta,omitempty"`    // adjust_score (sign only; step is fixed)
}

// Sent to a single client when an operation is rejected.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Op      string `json:"op"`   // echo of the rejected command type
	Message string `json:"message"`
}

// CategoryState mirrors one catalog category for the selection screen.
type CategoryState struct {
	ID         string `json:"id"`
	Group      string `json:"group"`
	Title      string `json:"title"`
	Cost       int    `json:"cost"`
	Locked     bool   `json:"locked"`
	UnlockedBy *int   `json:"unlocked_by,omitempty"`
}

// SelectionStateMessage is the full setup-phase snapshot.
type SelectionStateMessage struct {
	Type       string          `json:"type"` // "selection_state"
	Categories []CategoryState `json:"categories"`
	Chosen     []string        `json:"chosen"`
	Balances   [2]int          `json:"balances"`
	Tools      [2][]ToolID     `json:"tools"`
	Catalog    []Tool          `json:"catalog"`
	Names      [2]string       `json:"names"`
	Ready      bool            `json:"ready"`
}

// TeamState mirrors one team for the scoreboard.
type TeamState struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Score         int      `json:"score"`
	SelectedTools []ToolID `json:"selected_tools"`
	UsedTools     []ToolID `json:"used_tools"`
}

// SlotState is one board cell: addressed by key, answered or not.
type SlotState struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
	Instance int    `json:"instance"`
	Answered bool   `json:"answered"`
}

// GameStateMessage is the full in-game snapshot: teams, turn, board.
// Active tells the client whether a question page is currently open.
type GameStateMessage struct {
	Type        string          `json:"type"` // "game_state"
	Teams       [2]TeamState    `json:"teams"`
	CurrentTeam int             `json:"current_team"`
	Categories  []BoardCategory `json:"categories"`
	Slots       []SlotState     `json:"slots"`
	Active      bool            `json:"active"`
	Complete    bool            `json:"complete"`
}

// QuestionMessage announces the active question. Answer is withheld
// until reveal_answer.
type QuestionMessage struct {
	Type     string   `json:"type"` // "question"
	Category string   `json:"category"`
	Group    string   `json:"group"`
	Title    string   `json:"title"`
	Value    int      `json:"value"`
	Instance int      `json:"instance"`
	Question string   `json:"question"`
	Image    string   `json:"image,omitempty"`
	Audio    string   `json:"audio,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

// AnswerMessage reveals the active question's answer text.
type AnswerMessage struct {
	Type   string `json:"type"` // "answer"
	Answer string `json:"answer"`
}

// TimerMessage carries the MM:SS display and the timeout phase. Signal
// is set once on each phase crossing.
type TimerMessage struct {
	Type    string `json:"type"` // "timer"
	Display string `json:"display"`
	Running bool   `json:"running"`
	Phase   string `json:"phase"`
	Signal  string `json:"signal,omitempty"` // "times_up" or "overdue"
}

// ToolMessage announces a tool activation and its outcome.
type ToolMessage struct {
	Type         string `json:"type"` // "tool_used"
	Team         int    `json:"team"`
	Tool         ToolID `json:"tool"`
	Name         string `json:"name"`
	DisabledTeam *int   `json:"disabled_team,omitempty"`
	Cancelled    bool   `json:"cancelled,omitempty"`
	NoEffect     bool   `json:"no_effect,omitempty"`
	Failed       string `json:"failed,omitempty"` // e.g. no substitute available
}

// SummaryMessage is the end-of-game standing. Winner is absent on a tie.
type SummaryMessage struct {
	Type       string    `json:"type"` // "summary"
	Winner     *int      `json:"winner,omitempty"`
	WinnerName string    `json:"winner_name,omitempty"`
	Names      [2]string `json:"names"`
	Scores     [2]int    `json:"scores"`
}

type triviaClient struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type triviaCommand struct {
	client *triviaClient
	msg    ClientMessage
}

type triviaHub struct {
	id      string
	source  CategorySource
	clock   Clock
	rng     *mathrand.Rand
	clients map[*triviaClient]bool

	register chan *triviaClient
	unreg    chan *triviaClient
	commands chan triviaCommand

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time

	names       [2]string
	selection   *Selection
	game        *GameSession
	lastDisplay string
}

func newTriviaHub(cfg *Config, gameID string, src CategorySource) *triviaHub {
	now := time.Now()

	h := &triviaHub{
		id:         gameID,
		source:     src,
		clock:      systemClock{},
		rng:        mathrand.New(mathrand.NewSource(now.UnixNano())),
		clients:    make(map[*triviaClient]bool),
		register:   make(chan *triviaClient),
		unreg:      make(chan *triviaClient),
		commands:   make(chan triviaCommand),
		createdAt:  now,
		lastActive: now,
		names:      defaultTeamNames,
	}

	sel, err := newSelection(src, cfg.startingPoints, cfg.lockChance, h.rng)
	if err != nil {
		// The file catalog already degraded at load time; this only
		// fires if the source itself misbehaves.
		logf(cfg, "GAMES: Selection for %s degraded to placeholder: %v", gameID, err)
		sel, _ = newSelection(placeholderCatalog{cost: cfg.categoryCost}, cfg.startingPoints, cfg.lockChance, h.rng)
	}
	h.selection = sel

	return h
}

func (h *triviaHub) run(cfg *Config) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true
			h.mu.Unlock()

			// Full snapshot so a rejoining browser can rebuild its view.
			c.send <- h.selectionState()
			if h.game != nil {
				c.send <- h.gameState()
				if active := h.game.Active(); active != nil {
					c.send <- h.questionMessage(active)
					c.send <- h.timerMessage("")
				}
			}

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.mu.Unlock()

			h.handleCommand(cfg, cmd)

		case <-ticker.C:
			h.tick()
		}
	}
}

// broadcast fans a message out to every connected client, evicting
// clients whose send buffer is full.
func (h *triviaHub) broadcast(msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// reject reports a refused operation to the client that sent it.
func (h *triviaHub) reject(c *triviaClient, op string, err error) {
	select {
	case c.send <- ErrorMessage{
		Type:    "error",
		Op:      op,
		Message: err.Error(),
	}:
	default:
		h.mu.Lock()
		delete(h.clients, c)
		close(c.send)
		h.mu.Unlock()
	}
}

func teamFromMessage(msg ClientMessage) (TeamID, bool) {
	if msg.Team == nil || *msg.Team < 0 || *msg.Team > 1 {
		return NoTeam, false
	}
	return TeamID(*msg.Team), true
}

func (h *triviaHub) handleCommand(cfg *Config, cmd triviaCommand) {
	c := cmd.client
	msg := cmd.msg

	switch msg.Type {
	case "set_names":
		for i := range h.names {
			if i < len(msg.Names) && strings.TrimSpace(msg.Names[i]) != "" {
				h.names[i] = strings.TrimSpace(msg.Names[i])
			}
		}
		h.broadcast(h.selectionState())

	case "toggle_category":
		if h.game != nil {
			h.reject(c, msg.Type, ErrGameInProgress)
			return
		}
		if err := h.selection.ToggleCategory(msg.Category); err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		h.broadcast(h.selectionState())

	case "purchase":
		team, ok := teamFromMessage(msg)
		if !ok {
			h.reject(c, msg.Type, errors.New("missing team"))
			return
		}

		if h.game == nil {
			if err := h.selection.Purchase(team, msg.Category); err != nil {
				h.reject(c, msg.Type, err)
				return
			}
			logf(cfg, "GAMES: %q unlocked category %s in %s", h.names[team], msg.Category, h.id)
			h.broadcast(h.selectionState())
			return
		}

		if err := h.game.PurchaseCategory(team, msg.Category); err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		logf(cfg, "GAMES: %q unlocked category %s mid-game in %s", h.names[team], msg.Category, h.id)
		h.broadcast(h.selectionState())
		h.broadcast(h.gameState())

	case "toggle_tool":
		if h.game != nil {
			h.reject(c, msg.Type, ErrGameInProgress)
			return
		}
		team, ok := teamFromMessage(msg)
		if !ok {
			h.reject(c, msg.Type, errors.New("missing team"))
			return
		}
		if err := h.selection.ToggleTool(team, ToolID(msg.Tool)); err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		h.broadcast(h.selectionState())

	case "start_game":
		if h.game != nil {
			h.reject(c, msg.Type, ErrGameInProgress)
			return
		}
		game, err := newGameSession(h.selection, h.source, h.names, h.rng, h.clock, cfg.softTimeout, cfg.hardTimeout)
		if err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		h.game = game
		logf(cfg, "GAMES: Started game %s (%q vs %q)", h.id, h.names[0], h.names[1])
		h.broadcast(h.gameState())

	case "activate":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		key := SlotKey{CategoryID: msg.Category, Value: msg.Value, Instance: msg.Instance}
		slot, err := h.game.Activate(key)
		if err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		h.lastDisplay = ""
		h.broadcast(h.questionMessage(slot))
		h.broadcast(h.timerMessage(""))

	case "reveal_answer":
		if h.game == nil || h.game.Active() == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.broadcast(AnswerMessage{
			Type:   "answer",
			Answer: h.game.Active().Question.Answer,
		})

	case "adjudicate":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		winner := NoTeam
		if team, ok := teamFromMessage(ClientMessage{Team: msg.Winner}); ok {
			winner = team
		}
		result, err := h.game.Adjudicate(winner)
		if err != nil {
			h.reject(c, msg.Type, err)
			return
		}
		logf(cfg, "GAMES: Adjudicated for team %d in %s (+%v)", result.Winner, h.id, result.Awarded)
		h.broadcast(h.gameState())
		if result.Completed {
			h.broadcastSummary()
		}

	case "use_tool":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		team, ok := teamFromMessage(msg)
		if !ok {
			h.reject(c, msg.Type, errors.New("missing team"))
			return
		}
		result, err := h.game.ActivateTool(team, ToolID(msg.Tool))
		if err != nil && !errors.Is(err, ErrNoAlternative) {
			h.reject(c, msg.Type, err)
			return
		}

		tm := ToolMessage{
			Type: "tool_used",
			Team: int(team),
			Tool: result.Tool,
			Name: toolCatalog[result.Tool].Name,
		}
		if result.DisabledTeam != NoTeam {
			disabled := int(result.DisabledTeam)
			tm.DisabledTeam = &disabled
		}
		tm.Cancelled = result.Cancelled
		tm.NoEffect = result.NoEffect
		if err != nil {
			tm.Failed = err.Error()
		}
		logf(cfg, "GAMES: %q used tool %s in %s", h.names[team], result.Tool, h.id)
		h.broadcast(tm)

		if result.NewQuestion != nil {
			h.broadcast(h.questionMessage(h.game.Active()))
		}
		h.broadcast(h.gameState())
		if result.Completed {
			h.broadcastSummary()
		}

	case "timer_pause":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.game.Timer().Pause()
		h.broadcast(h.timerMessage(""))

	case "timer_resume":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.game.Timer().Start()
		h.broadcast(h.timerMessage(""))

	case "timer_reset":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.game.Timer().Reset()
		h.game.Timer().Start()
		h.broadcast(h.timerMessage(""))

	case "back_to_board":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.game.Deactivate()
		h.broadcast(h.gameState())

	case "adjust_score":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		team, ok := teamFromMessage(msg)
		if !ok {
			h.reject(c, msg.Type, errors.New("missing team"))
			return
		}
		step := 100
		if msg.Delta < 0 {
			step = -100
		}
		h.game.AdjustScore(team, step)
		h.broadcast(h.gameState())

	case "set_turn":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		team, ok := teamFromMessage(msg)
		if !ok {
			h.reject(c, msg.Type, errors.New("missing team"))
			return
		}
		h.game.SetTurn(team)
		h.broadcast(h.gameState())

	case "end_game":
		if h.game == nil {
			h.reject(c, msg.Type, ErrNoActiveQuestion)
			return
		}
		h.broadcastSummary()

	case "reset":
		// Acknowledge the summary (or abandon the game): back to the
		// selection phase with fresh balances. Unlocks persist.
		h.game = nil
		h.selection.reset(cfg.startingPoints)
		logf(cfg, "GAMES: Reset game %s to category selection", h.id)
		h.broadcast(h.selectionState())
	}
}

// tick drives the active question's timeout escalation and keeps every
// client's timer display in sync, one message per displayed second.
func (h *triviaHub) tick() {
	if h.game == nil || h.game.Active() == nil {
		return
	}

	phase, changed := h.game.Tick()

	signal := ""
	if changed {
		switch phase {
		case TimeoutSoft:
			signal = "times_up"
		case TimeoutHard:
			signal = "overdue"
		}
	}

	display := formatElapsed(h.game.Timer().Elapsed())
	if !changed && display == h.lastDisplay {
		return
	}
	h.lastDisplay = display

	h.broadcast(h.timerMessage(signal))
}

func (h *triviaHub) selectionState() SelectionStateMessage {
	sel := h.selection

	categories := make([]CategoryState, 0, len(sel.Categories()))
	for _, cat := range sel.Categories() {
		state := CategoryState{
			ID:     cat.ID,
			Group:  cat.Group,
			Title:  cat.Title,
			Cost:   cat.Cost,
			Locked: cat.Locked,
		}
		if cat.UnlockedBy != NoTeam {
			team := int(cat.UnlockedBy)
			state.UnlockedBy = &team
		}
		categories = append(categories, state)
	}

	catalog := make([]Tool, 0, len(toolOrder))
	for _, id := range toolOrder {
		catalog = append(catalog, toolCatalog[id])
	}

	return SelectionStateMessage{
		Type:       "selection_state",
		Categories: categories,
		Chosen:     sel.Chosen(),
		Balances:   [2]int{sel.Balance(0), sel.Balance(1)},
		Tools:      [2][]ToolID{sel.Tools(0), sel.Tools(1)},
		Catalog:    catalog,
		Names:      h.names,
		Ready:      sel.ready(),
	}
}

func (h *triviaHub) gameState() GameStateMessage {
	game := h.game
	board := game.Board()

	msg := GameStateMessage{
		Type:        "game_state",
		CurrentTeam: int(game.CurrentTeam()),
		Categories:  board.Categories(),
		Active:      game.Active() != nil,
		Complete:    board.IsComplete(),
	}

	for i, team := range game.Teams() {
		used := make([]ToolID, 0, len(team.UsedTools))
		for _, id := range toolOrder {
			if team.UsedTools[id] {
				used = append(used, id)
			}
		}
		msg.Teams[i] = TeamState{
			ID:            int(team.ID),
			Name:          team.Name,
			Score:         team.Score,
			SelectedTools: team.SelectedTools,
			UsedTools:     used,
		}
	}

	for _, cat := range board.Categories() {
		for _, value := range questionValues {
			for instance := 1; instance <= 2; instance++ {
				key := SlotKey{CategoryID: cat.ID, Value: value, Instance: instance}
				slot, err := board.Slot(key)
				if err != nil {
					continue
				}
				msg.Slots = append(msg.Slots, SlotState{
					Category: key.CategoryID,
					Value:    key.Value,
					Instance: key.Instance,
					Answered: slot.Answered,
				})
			}
		}
	}

	return msg
}

func (h *triviaHub) questionMessage(slot *QuestionSlot) QuestionMessage {
	msg := QuestionMessage{
		Type:     "question",
		Category: slot.Key.CategoryID,
		Value:    slot.Key.Value,
		Instance: slot.Key.Instance,
		Question: slot.Question.Question,
		Image:    slot.Question.Image,
		Audio:    slot.Question.Audio,
		Choices:  slot.Question.Choices,
	}

	for _, cat := range h.game.Board().Categories() {
		if cat.ID == slot.Key.CategoryID {
			msg.Group = cat.Group
			msg.Title = cat.Title
			break
		}
	}

	return msg
}

func (h *triviaHub) timerMessage(signal string) TimerMessage {
	timer := h.game.Timer()
	return TimerMessage{
		Type:    "timer",
		Display: formatElapsed(timer.Elapsed()),
		Running: timer.Running(),
		Phase:   timer.Phase().String(),
		Signal:  signal,
	}
}

func (h *triviaHub) broadcastSummary() {
	summary := h.game.Summary()

	msg := SummaryMessage{
		Type:   "summary",
		Names:  h.names,
		Scores: summary.Scores,
	}
	if summary.Winner != NoTeam {
		winner := int(summary.Winner)
		msg.Winner = &winner
		msg.WinnerName = h.names[summary.Winner]
	}

	h.broadcast(msg)
}

// closeAll disconnects all clients of this hub (used by reaper).
func (h *triviaHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "triviabox_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*triviaHub
	source      CategorySource
	idleTimeout time.Duration
}

func newGameManager(src CategorySource, idleTimeout time.Duration) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*triviaHub),
		source:      src,
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *triviaHub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newTriviaHub(cfg, gameID, gm.source)
	gm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &triviaClient{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *triviaClient) readPump(h *triviaHub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "set_names", "toggle_category", "purchase", "toggle_tool",
			"start_game", "activate", "reveal_answer", "adjudicate",
			"use_tool", "timer_pause", "timer_resume", "timer_reset",
			"back_to_board", "adjust_score", "set_turn", "end_game",
			"reset":
			h.commands <- triviaCommand{
				client: c,
				msg:    msg,
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *triviaClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed trivia/index.html
var indexHTML []byte

func getIndexHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(indexHTML)
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerTriviaGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router) {
	gm := newGameManager(loadCatalog(cfg), cfg.sessionTimeout)

	full := cfg.prefix + path

	// Root path → redirect to new random game
	mux.GET(full, redirectNewGame(cfg, full, gm))

	// Per-game client view (HTML)
	mux.GET(full+"/:gameid", getIndexHandler(cfg))

	// Per-game websocket
	mux.GET(full+"/:gameid/ws", serveWSForManager(cfg, gm))

	// Per-game QR code
	mux.GET(full+"/:gameid/qr", qrHandler)
}
