package games

// Two teams, one shared screen, one operator driving the mouse.
// Setup: each team starts with a pool of points. Six categories are picked from
// the catalog; locked categories must be bought out of a team's pool first.
// Each team also picks three power-up tools from a list of ten.
// Board: six categories, values 200/400/600, two questions per value (36 total).
// Play: the operator opens a question, teams answer out loud, the operator
// reveals the answer and clicks whichever team got it right (or "no one").
// Points go to the winner, the turn flips to the other team either way.
// Tools: single use per team per game, activated while a question is open.
// They double or halve points, steal or mute the other team, swap or cancel
// the question, stretch the timer, or split the points.
// Timer: counts up per question. At the soft timeout the other team gets the
// remaining window; at the hard timeout the answer button goes red. Nothing is
// scored automatically - the operator always decides.

// Display formats:
// Category picker with group tabs, then the classic value grid
// Question page with image/audio slot, timer, and tool tray per team

// Implementation details:
// - One websocket per game ID; every browser tab sees the same state
// - The server owns all rules; the page is dumb rendering plus clicks
