package season

// Step is the wizard's position in the five-step flow.
type Step int

const (
	StepBasics Step = iota + 1
	StepTeams
	StepSchedule
	StepTimeFields
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "basics"
	case StepTeams:
		return "teams"
	case StepSchedule:
		return "schedule"
	case StepTimeFields:
		return "time_fields"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// State is the wizard's lifecycle phase. Mutations are only accepted while
// active; a session in flight on a submit rejects everything until the
// submission resolves, and the terminal states accept nothing at all.
type State int

const (
	StateActive State = iota
	StateSubmitting
	StateCreated
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateCreated:
		return "created"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Wizard drives one season-creation session: it owns a draft, a step
// pointer, and the lifecycle state. Construct one per session with
// NewWizard; there is no shared instance.
type Wizard struct {
	draft *Draft
	step  Step
	state State
}

// NewWizard opens a fresh wizard at the Basics step over a default draft.
func NewWizard() *Wizard {
	return &Wizard{draft: NewDraft(), step: StepBasics, state: StateActive}
}

// Draft exposes the wizard's draft for mutation. Callers must check
// Mutable first; handlers do this under the session lock.
func (w *Wizard) Draft() *Draft { return w.draft }

// Step returns the current step (1-based).
func (w *Wizard) Step() Step { return w.step }

// State returns the lifecycle state.
func (w *Wizard) State() State { return w.state }

// Mutable returns nil when the wizard accepts mutations, or the error
// explaining why not.
func (w *Wizard) Mutable() error {
	switch w.state {
	case StateActive:
		return nil
	case StateSubmitting:
		return ErrSubmitInProgress
	default:
		return ErrWizardFinished
	}
}

// validateStep runs the gating rules for one step.
func (w *Wizard) validateStep(s Step) error {
	switch s {
	case StepBasics:
		return w.draft.validateBasics()
	case StepTeams:
		return w.draft.validateTeams()
	case StepSchedule:
		return w.draft.Validate()
	case StepTimeFields:
		return w.draft.validateTimeFields()
	case StepReview:
		return w.validateAll()
	}
	return nil
}

// validateAll re-runs every step's rules, in step order.
func (w *Wizard) validateAll() error {
	if err := w.draft.validateBasics(); err != nil {
		return err
	}
	if err := w.draft.validateTeams(); err != nil {
		return err
	}
	return w.draft.Validate()
}

// Next validates the current step and, on success, advances one step.
// Advancement is capped at the Review step.
func (w *Wizard) Next() error {
	if err := w.Mutable(); err != nil {
		return err
	}
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Prev steps back unconditionally; reviewing earlier steps needs no
// validation. Already at Basics is a no-op.
func (w *Wizard) Prev() error {
	if err := w.Mutable(); err != nil {
		return err
	}
	if w.step > StepBasics {
		w.step--
	}
	return nil
}

// GoTo jumps to step n: any step at or before the current one freely, or
// exactly one step forward after the current step validates. Anything
// further ahead is unreachable.
func (w *Wizard) GoTo(n Step) error {
	if err := w.Mutable(); err != nil {
		return err
	}
	if n < StepBasics || n > StepReview {
		return ErrStepNotReachable
	}
	if n <= w.step {
		w.step = n
		return nil
	}
	if n != w.step+1 {
		return ErrStepNotReachable
	}
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	w.step = n
	return nil
}

// BeginSubmit re-validates the whole draft and, on success, builds the
// submission payload and locks the wizard against further mutation while
// the provisioning call is outstanding. Callers must resolve the attempt
// with FinishSubmit.
func (w *Wizard) BeginSubmit() (*SubmitPayload, error) {
	if err := w.Mutable(); err != nil {
		return nil, err
	}
	if w.step != StepReview {
		return nil, ErrSubmitNotAtReview
	}
	if err := w.validateAll(); err != nil {
		return nil, err
	}
	payload := w.draft.BuildPayload()
	w.state = StateSubmitting
	return payload, nil
}

// FinishSubmit resolves an outstanding submission. Success is terminal; a
// failure returns the wizard to the Review step with the draft fully
// intact for retry.
func (w *Wizard) FinishSubmit(ok bool) error {
	if w.state != StateSubmitting {
		return ErrNoPendingSubmit
	}
	if ok {
		w.state = StateCreated
	} else {
		w.state = StateActive
	}
	return nil
}

// Abandon discards the session. Nothing external has happened unless the
// wizard already reached Created, so abandoning has no side effects.
func (w *Wizard) Abandon() {
	if w.state == StateActive {
		w.state = StateAbandoned
	}
}
