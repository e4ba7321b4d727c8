package model

import (
	"errors"
	"fmt"
)

// ErrUnknownCardType is returned for card strings outside the closed set.
var ErrUnknownCardType = errors.New("unknown card type")

// CardType is the command card a noble phantasm is attached to.
type CardType string

const (
	CardBuster CardType = "buster"
	CardArts   CardType = "arts"
	CardQuick  CardType = "quick"
)

// ParseCardType parses a raw card string. No inference: anything outside
// buster/arts/quick is a data-integrity error.
func ParseCardType(s string) (CardType, error) {
	switch CardType(s) {
	case CardBuster, CardArts, CardQuick:
		return CardType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCardType, s)
	}
}

// NoblePhantasm belongs to exactly one Servant.
type NoblePhantasm struct {
	ID   int      `json:"id"`
	Num  int      `json:"num"`
	Name string   `json:"name"`
	Card CardType `json:"card"`
}

// Servant is a playable character after name disambiguation.
type Servant struct {
	ID             int             `json:"id"`
	CollectionNo   int             `json:"collectionNo"`
	Name           string          `json:"name"`
	ClassName      string          `json:"className"`
	Rarity         int             `json:"rarity"`
	NoblePhantasms []NoblePhantasm `json:"np"`
	Skills         []Skill         `json:"skills"`
}
