package counter

// Mode selects how per-word results combine into a single score.
//
// The plain modes use count*weight per matched word; the V variants use the
// weight alone and ignore how many times the word matched.
type Mode int

const (
	ModeSum Mode = iota
	ModeSumV
	ModeMin
	ModeMinV
	ModeMax
	ModeMaxV
	ModeAvg
	ModeAvgV
	ModeMul
	ModeMulV
	ModeAny
	ModeAnyV
)

var modeNames = [...]string{
	ModeSum:  "SUM",
	ModeSumV: "SUMV",
	ModeMin:  "MIN",
	ModeMinV: "MINV",
	ModeMax:  "MAX",
	ModeMaxV: "MAXV",
	ModeAvg:  "AVG",
	ModeAvgV: "AVGV",
	ModeMul:  "MUL",
	ModeMulV: "MULV",
	ModeAny:  "ANY",
	ModeAnyV: "ANYV",
}

var modesByName = func() map[string]Mode {
	m := make(map[string]Mode, len(modeNames))
	for i, name := range modeNames {
		m[name] = Mode(i)
	}
	return m
}()

// ParseMode looks up a mode by its exact, case-sensitive name.
func ParseMode(name string) (Mode, bool) {
	m, ok := modesByName[name]
	return m, ok
}

// ModeNames lists the recognized mode names in declaration order.
func ModeNames() []string {
	return append([]string(nil), modeNames[:]...)
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "UNKNOWN"
	}
	return modeNames[m]
}

// WeightOnly reports whether the mode ignores match counts.
func (m Mode) WeightOnly() bool {
	switch m {
	case ModeSumV, ModeMinV, ModeMaxV, ModeAvgV, ModeMulV, ModeAnyV:
		return true
	}
	return false
}
