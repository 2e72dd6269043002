package document

// Format identifies an ICAO 9303 machine-readable zone layout.
type Format string

const (
	FormatTD1 Format = "TD1"
	FormatTD2 Format = "TD2"
	FormatTD3 Format = "TD3"
)

// span addresses a substring of one MRZ line. A zero span is absent.
type span struct {
	line, from, to int
}

func (s span) absent() bool {
	return s.to == 0
}

func (s span) of(lines []string) string {
	if s.absent() {
		return ""
	}
	return lines[s.line][s.from:s.to]
}

type layout struct {
	format Format
	lines  int
	width  int

	code          span
	state         span
	number        span
	numberCheck   span
	nationality   span
	birth         span
	birthCheck    span
	sex           span
	expiry        span
	expiryCheck   span
	optional      span
	optionalCheck span
	optional2     span
	names         span
	composite     span

	// compositeOver lists the spans covered by the composite check digit.
	compositeOver []span
}

var layouts = []layout{
	{
		format:        FormatTD1,
		lines:         3,
		width:         30,
		code:          span{0, 0, 2},
		state:         span{0, 2, 5},
		number:        span{0, 5, 14},
		numberCheck:   span{0, 14, 15},
		optional:      span{0, 15, 30},
		birth:         span{1, 0, 6},
		birthCheck:    span{1, 6, 7},
		sex:           span{1, 7, 8},
		expiry:        span{1, 8, 14},
		expiryCheck:   span{1, 14, 15},
		nationality:   span{1, 15, 18},
		optional2:     span{1, 18, 29},
		composite:     span{1, 29, 30},
		names:         span{2, 0, 30},
		compositeOver: []span{{0, 5, 30}, {1, 0, 7}, {1, 8, 15}, {1, 18, 29}},
	},
	{
		format:        FormatTD2,
		lines:         2,
		width:         36,
		code:          span{0, 0, 2},
		state:         span{0, 2, 5},
		names:         span{0, 5, 36},
		number:        span{1, 0, 9},
		numberCheck:   span{1, 9, 10},
		nationality:   span{1, 10, 13},
		birth:         span{1, 13, 19},
		birthCheck:    span{1, 19, 20},
		sex:           span{1, 20, 21},
		expiry:        span{1, 21, 27},
		expiryCheck:   span{1, 27, 28},
		optional:      span{1, 28, 35},
		composite:     span{1, 35, 36},
		compositeOver: []span{{1, 0, 10}, {1, 13, 20}, {1, 21, 35}},
	},
	{
		format:        FormatTD3,
		lines:         2,
		width:         44,
		code:          span{0, 0, 2},
		state:         span{0, 2, 5},
		names:         span{0, 5, 44},
		number:        span{1, 0, 9},
		numberCheck:   span{1, 9, 10},
		nationality:   span{1, 10, 13},
		birth:         span{1, 13, 19},
		birthCheck:    span{1, 19, 20},
		sex:           span{1, 20, 21},
		expiry:        span{1, 21, 27},
		expiryCheck:   span{1, 27, 28},
		optional:      span{1, 28, 42},
		optionalCheck: span{1, 42, 43},
		composite:     span{1, 43, 44},
		compositeOver: []span{{1, 0, 10}, {1, 13, 20}, {1, 21, 43}},
	},
}

func detect(lines []string) (layout, bool) {
	for _, l := range layouts {
		if len(lines) != l.lines {
			continue
		}
		fits := true
		for _, line := range lines {
			if len(line) != l.width {
				fits = false
				break
			}
		}
		if fits {
			return l, true
		}
	}
	return layout{}, false
}
