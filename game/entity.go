package game

// Entity is anything the tick loop moves and draws.
type Entity interface {
	Advance(frame Frame)
	Draw(s Surface)
}

var (
	_ Entity = (*Mole)(nil)
	_ Entity = (*Reaction)(nil)
)
