package lexer

type (
	// Spaces is a set of ASCII control and space characters, one bit per code.
	Spaces uint64
)

var (
	Blank    = NewSpaces(' ', '\t', '\r')
	BlankAll = NewSpaces(' ', '\t', '\r', '\n')
)

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Has(r rune) bool {
	return r >= 0 && r < 64 && s&(1<<r) != 0
}

// Only reports whether text consists of s characters only.
func (s Spaces) Only(text []byte) bool {
	for _, c := range text {
		if !s.Has(rune(c)) {
			return false
		}
	}

	return true
}
