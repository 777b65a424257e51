package entity

const (
	HumanPlayerType = "human"
	BotPlayerType   = "bot"
)

// Player holds information about one seat in a game. Seat is the engine
// player id (1..num_players); 0 means no seat assigned yet.
type Player struct {
	ID     string `json:"id"`
	Seat   int    `json:"seat,omitempty"`
	Type   string `json:"type,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func (that *Player) IsBot() bool {
	return that.Type == BotPlayerType
}
