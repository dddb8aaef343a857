package eligibility

import "errors"

// Answer is a yes/no response to a questionnaire question
type Answer string

const (
	Yes Answer = "yes"
	No  Answer = "no"
)

func (a Answer) IsValid() bool {
	return a == Yes || a == No
}

// Answers holds the five health questionnaire responses. All five must be
// answered before evaluation.
type Answers struct {
	Age           Answer // between 18 and 65 years old?
	Weight        Answer // weighs more than 50kg (110 lbs)?
	RecentIllness Answer // fever or felt unwell in the last 48 hours?
	Medication    Answer // currently taking antibiotics?
	RecentTattoo  Answer // tattoo, piercing or permanent make-up in the last 3 months?
}

// Result is the eligibility verdict. Reason is nil when eligible.
type Result struct {
	Eligible bool
	Reason   *string
}

// ErrIncomplete is returned when any of the five answers is missing or not
// a yes/no value. Callers must block submission rather than treat this as
// a runtime failure.
var ErrIncomplete = errors.New("questionnaire incomplete: all five answers are required")

const (
	ReasonAge        = "Donor must be between 18 and 65 years old."
	ReasonWeight     = "Donor must weigh over 50kg (110 lbs)."
	ReasonIllness    = "Recent illness with fever requires a temporary deferral."
	ReasonMedication = "Taking certain medications like antibiotics requires a temporary deferral."
	ReasonTattoo     = "A new tattoo, piercing, or permanent makeup in the last 3 months requires a deferral."
)

// rule is one row of the eligibility decision table. Rules are evaluated in
// order and the first failing rule wins.
type rule struct {
	failsWhen func(Answers) bool
	reason    string
}

var rules = []rule{
	{func(a Answers) bool { return a.Age == No }, ReasonAge},
	{func(a Answers) bool { return a.Weight == No }, ReasonWeight},
	{func(a Answers) bool { return a.RecentIllness == Yes }, ReasonIllness},
	{func(a Answers) bool { return a.Medication == Yes }, ReasonMedication},
	{func(a Answers) bool { return a.RecentTattoo == Yes }, ReasonTattoo},
}

// Evaluate runs the questionnaire decision table against the given answers.
// It is pure with respect to its inputs; applying the verdict to the donor's
// availability is the caller's responsibility.
func Evaluate(answers Answers) (Result, error) {
	for _, a := range []Answer{answers.Age, answers.Weight, answers.RecentIllness, answers.Medication, answers.RecentTattoo} {
		if !a.IsValid() {
			return Result{}, ErrIncomplete
		}
	}

	for _, r := range rules {
		if r.failsWhen(answers) {
			reason := r.reason
			return Result{Eligible: false, Reason: &reason}, nil
		}
	}

	return Result{Eligible: true, Reason: nil}, nil
}
