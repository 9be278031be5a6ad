package transcript

// TurnStrategy decides which speaker holds the floor after each
// utterance. Implementations see the utterance just labeled plus a peek
// at the next one (nil at the end of the sequence) and return the
// speaker number for that next utterance.
type TurnStrategy interface {
	// Start returns the speaker number for the first utterance.
	Start() int
	// Next returns the speaker number for the utterance following utt.
	Next(current int, utt Utterance, next *Utterance) int
}

// TwoPartyAlternator is the stock TurnStrategy: exactly two speakers
// who alternate turns, except that a question hands the floor over
// unconditionally and a continuation marker on the next utterance keeps
// it. It deliberately ignores the recognizer's own diarization tags;
// label stability is bought at the cost of misattributing true
// multi-party speech.
type TwoPartyAlternator struct {
	IsQuestion     Predicate
	IsContinuation Predicate
}

// Start begins every conversation at speaker 1.
func (a TwoPartyAlternator) Start() int { return 1 }

// Next applies the alternation rule. After a question the floor always
// flips. Otherwise it flips unless the upcoming utterance opens with a
// continuation marker; with no upcoming utterance the floor stays put.
func (a TwoPartyAlternator) Next(current int, utt Utterance, next *Utterance) int {
	if a.IsQuestion(utt.Text) {
		return 3 - current
	}
	if next != nil && !a.IsContinuation(next.Text) {
		return 3 - current
	}
	return current
}

// Refiner relabels an utterance sequence with stable speaker labels. It
// is a pure relabeling pass: length, order, text, and confidences are
// never touched.
type Refiner struct {
	strategy TurnStrategy
}

// RefinerOption configures a Refiner.
type RefinerOption func(*Refiner)

// WithStrategy replaces the turn-taking strategy.
func WithStrategy(s TurnStrategy) RefinerOption {
	return func(r *Refiner) { r.strategy = s }
}

// WithPolicy uses the policy's predicates with the stock two-party
// alternator.
func WithPolicy(p Policy) RefinerOption {
	return WithStrategy(TwoPartyAlternator{
		IsQuestion:     p.IsQuestion,
		IsContinuation: p.IsContinuation,
	})
}

// NewRefiner builds a Refiner using the default policy's two-party
// alternator.
func NewRefiner(opts ...RefinerOption) *Refiner {
	r := &Refiner{}
	WithPolicy(DefaultPolicy())(r)
	for _, o := range opts {
		o(r)
	}
	return r
}

// Refine returns a new sequence of the same length and order with the
// Speaker field replaced. The fold reads one utterance plus a one-step
// lookahead; state is the single current-speaker counter.
func (r *Refiner) Refine(utts []Utterance) []Utterance {
	out := make([]Utterance, len(utts))
	state := r.strategy.Start()
	for i, u := range utts {
		u.Speaker = speakerLabel(state)
		out[i] = u

		var next *Utterance
		if i+1 < len(utts) {
			next = &utts[i+1]
		}
		state = r.strategy.Next(state, utts[i], next)
	}
	return out
}

// Refine runs a default Refiner over the utterance sequence.
func Refine(utts []Utterance) []Utterance {
	return NewRefiner().Refine(utts)
}
