// Package gesture turns a single hand pose into a discrete gesture label and
// stabilizes those labels over time.
package gesture

import "sort"

// Label is a gesture name as it appears on the wire.
type Label string

// Alphabet.
const (
	A Label = "A"
	B Label = "B"
	C Label = "C"
	D Label = "D"
	E Label = "E"
	F Label = "F"
	G Label = "G"
	H Label = "H"
	I Label = "I"
	J Label = "J"
	K Label = "K"
	L Label = "L"
	M Label = "M"
	N Label = "N"
	O Label = "O"
	P Label = "P"
	Q Label = "Q"
	R Label = "R"
	S Label = "S"
	T Label = "T"
	U Label = "U"
	V Label = "V"
	W Label = "W"
	X Label = "X"
	Y Label = "Y"
	Z Label = "Z"
)

// Common words.
const (
	Namaste  Label = "Namaste"
	Hello    Label = "Hello"
	ThankYou Label = "Thank You"
	Please   Label = "Please"
	Yes      Label = "Yes"
	No       Label = "No"
	Help     Label = "Help"
	Sorry    Label = "Sorry"
	Good     Label = "Good"
	Bad      Label = "Bad"
)

// Numbers.
const (
	One   Label = "One"
	Two   Label = "Two"
	Three Label = "Three"
	Four  Label = "Four"
	Five  Label = "Five"
)

// Other hand shapes.
const (
	OK       Label = "OK"
	Peace    Label = "Peace"
	RockOn   Label = "Rock On"
	CallMe   Label = "Call Me"
	ILoveYou Label = "I Love You"
	Fist     Label = "Fist"
	ThumbsUp Label = "Thumbs Up"
)

// Sentinels. Neither is ever counted in statistics.
const (
	Unknown        Label = "Unknown"
	NoHandDetected Label = "No Hand Detected"
)

// IsSentinel reports whether l is Unknown or NoHandDetected.
func (l Label) IsSentinel() bool {
	return l == Unknown || l == NoHandDetected
}

// Category groups catalog entries.
type Category string

const (
	CategoryAlphabet Category = "alphabet"
	CategoryCommon   Category = "common"
	CategoryNumber   Category = "number"
	CategoryGesture  Category = "gesture"
)

// Info describes a label for display. It plays no part in classification.
type Info struct {
	Label       Label    `json:"label"`
	Symbol      string   `json:"symbol"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

var catalog = map[Label]Info{
	A: {A, "✊", "Closed fist with thumb on side", CategoryAlphabet},
	B: {B, "✋", "Flat hand, fingers together", CategoryAlphabet},
	C: {C, "👌", "Curved hand forming C shape", CategoryAlphabet},
	D: {D, "☝️", "Index finger up, thumb touching middle", CategoryAlphabet},
	E: {E, "✊", "Closed fist, fingers curled", CategoryAlphabet},
	F: {F, "👌", "OK sign, index and thumb touching", CategoryAlphabet},
	G: {G, "👈", "Index finger and thumb extended sideways", CategoryAlphabet},
	H: {H, "✌️", "Index and middle fingers extended sideways", CategoryAlphabet},
	I: {I, "🤙", "Pinky finger extended upward", CategoryAlphabet},
	J: {J, "🤙", "Pinky with motion", CategoryAlphabet},
	K: {K, "✌️", "Index and middle up, thumb between", CategoryAlphabet},
	L: {L, "👍", "L shape with thumb and index", CategoryAlphabet},
	M: {M, "✊", "Fist with thumb under fingers", CategoryAlphabet},
	N: {N, "✊", "Fist with thumb under two fingers", CategoryAlphabet},
	O: {O, "👌", "Circle with all fingers", CategoryAlphabet},
	P: {P, "👇", "Index and middle down, thumb out", CategoryAlphabet},
	Q: {Q, "👇", "Index and thumb pointing down", CategoryAlphabet},
	R: {R, "🤞", "Index and middle crossed", CategoryAlphabet},
	S: {S, "✊", "Fist with thumb across fingers", CategoryAlphabet},
	T: {T, "✊", "Fist with thumb between fingers", CategoryAlphabet},
	U: {U, "✌️", "Index and middle together pointing up", CategoryAlphabet},
	V: {V, "✌️", "Index and middle apart, peace sign", CategoryAlphabet},
	W: {W, "🤟", "Three fingers up", CategoryAlphabet},
	X: {X, "☝️", "Index bent, hook shape", CategoryAlphabet},
	Y: {Y, "🤙", "Thumb and pinky extended", CategoryAlphabet},
	Z: {Z, "☝️", "Index traces Z in air", CategoryAlphabet},

	Namaste:  {Namaste, "🙏", "Palms together", CategoryCommon},
	Hello:    {Hello, "👋", "Open hand waving", CategoryCommon},
	ThankYou: {ThankYou, "🙏", "Hand from chin forward", CategoryCommon},
	Please:   {Please, "🤲", "Circular motion on chest", CategoryCommon},
	Yes:      {Yes, "👍", "Thumbs up", CategoryCommon},
	No:       {No, "👎", "Thumbs down or head shake", CategoryCommon},
	Help:     {Help, "🆘", "Fist on open palm", CategoryCommon},
	Sorry:    {Sorry, "✊", "Fist circling on chest", CategoryCommon},
	Good:     {Good, "👍", "Thumbs up", CategoryCommon},
	Bad:      {Bad, "👎", "Thumbs down", CategoryCommon},

	One:   {One, "☝️", "Index finger extended", CategoryNumber},
	Two:   {Two, "✌️", "Two fingers extended", CategoryNumber},
	Three: {Three, "🤟", "Three fingers extended", CategoryNumber},
	Four:  {Four, "🖐️", "Four fingers extended", CategoryNumber},
	Five:  {Five, "🖐️", "All fingers extended", CategoryNumber},

	OK:       {OK, "👌", "Thumb and index finger touching", CategoryGesture},
	Peace:    {Peace, "✌️", "Index and middle finger V", CategoryGesture},
	RockOn:   {RockOn, "🤘", "Index and pinky extended", CategoryGesture},
	CallMe:   {CallMe, "🤙", "Thumb and pinky extended", CategoryGesture},
	ILoveYou: {ILoveYou, "🤟", "Thumb, index, and pinky up", CategoryGesture},
	Fist:     {Fist, "✊", "All fingers closed", CategoryGesture},
	ThumbsUp: {ThumbsUp, "👍", "Thumb raised, other fingers closed", CategoryGesture},
}

// Lookup returns the catalog entry for l.
func Lookup(l Label) (Info, bool) {
	info, ok := catalog[l]
	return info, ok
}

// Catalog returns every catalog entry ordered by category, then label.
func Catalog() []Info {
	order := map[Category]int{
		CategoryAlphabet: 0,
		CategoryCommon:   1,
		CategoryNumber:   2,
		CategoryGesture:  3,
	}

	out := make([]Info, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return order[out[i].Category] < order[out[j].Category]
		}
		return out[i].Label < out[j].Label
	})
	return out
}

var numerals = map[Label]string{
	One:   "1",
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
}

// ShortForm returns the compact display form of a label: letters stay as
// they are, numbers become digits, Yes and No become thumb symbols, and
// anything else is cut to its first character, so Unknown is "U". A frame
// without a hand has no short form.
func ShortForm(l Label) string {
	switch {
	case l == NoHandDetected:
		return ""
	case l == "":
		return "?"
	case l == Yes:
		return "👍"
	case l == No:
		return "👎"
	}
	if n, ok := numerals[l]; ok {
		return n
	}
	// Labels are ASCII, so the first byte is the first character.
	return string(l[0])
}
