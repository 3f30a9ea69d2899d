package domain

// CoinSide is the result of a coin flip.
type CoinSide bool

const (
	Heads CoinSide = true
	Tails CoinSide = false
)

func (c CoinSide) String() string {
	if c == Heads {
		return "Heads"
	}
	return "Tails"
}

// ImageURL returns an image of the coin showing this side.
func (c CoinSide) ImageURL() string {
	if c == Heads {
		return "https://i.imgur.com/tBQQSIZ.png"
	}
	return "https://i.imgur.com/nEsC24S.png"
}
