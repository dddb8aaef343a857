package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPass() Answers {
	return Answers{
		Age:           Yes,
		Weight:        Yes,
		RecentIllness: No,
		Medication:    No,
		RecentTattoo:  No,
	}
}

func TestEvaluate_Eligible(t *testing.T) {
	result, err := Evaluate(allPass())
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Nil(t, result.Reason)
}

func TestEvaluate_FirstFailingRuleWins(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Answers)
		reason  string
	}{
		{"underage or overage", func(a *Answers) { a.Age = No }, ReasonAge},
		{"underweight", func(a *Answers) { a.Weight = No }, ReasonWeight},
		{"recent illness", func(a *Answers) { a.RecentIllness = Yes }, ReasonIllness},
		{"on medication", func(a *Answers) { a.Medication = Yes }, ReasonMedication},
		{"recent tattoo", func(a *Answers) { a.RecentTattoo = Yes }, ReasonTattoo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := allPass()
			tt.mutate(&answers)

			result, err := Evaluate(answers)
			require.NoError(t, err)
			assert.False(t, result.Eligible)
			require.NotNil(t, result.Reason)
			assert.Equal(t, tt.reason, *result.Reason)
		})
	}
}

func TestEvaluate_PrecedenceOrder(t *testing.T) {
	// Every rule fails; age has the highest precedence
	result, err := Evaluate(Answers{
		Age:           No,
		Weight:        No,
		RecentIllness: Yes,
		Medication:    Yes,
		RecentTattoo:  Yes,
	})
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	require.NotNil(t, result.Reason)
	assert.Equal(t, ReasonAge, *result.Reason)

	// Age passes, weight fails alongside later rules; weight wins
	result, err = Evaluate(Answers{
		Age:           Yes,
		Weight:        No,
		RecentIllness: Yes,
		Medication:    Yes,
		RecentTattoo:  Yes,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Reason)
	assert.Equal(t, ReasonWeight, *result.Reason)

	// Illness beats medication and tattoo
	result, err = Evaluate(Answers{
		Age:           Yes,
		Weight:        Yes,
		RecentIllness: Yes,
		Medication:    Yes,
		RecentTattoo:  Yes,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Reason)
	assert.Equal(t, ReasonIllness, *result.Reason)

	// Medication beats tattoo
	result, err = Evaluate(Answers{
		Age:           Yes,
		Weight:        Yes,
		RecentIllness: No,
		Medication:    Yes,
		RecentTattoo:  Yes,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Reason)
	assert.Equal(t, ReasonMedication, *result.Reason)
}

func TestEvaluate_AgeNoExampleScenario(t *testing.T) {
	result, err := Evaluate(Answers{
		Age:           No,
		Weight:        Yes,
		RecentIllness: No,
		Medication:    No,
		RecentTattoo:  No,
	})
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	require.NotNil(t, result.Reason)
	assert.Equal(t, "Donor must be between 18 and 65 years old.", *result.Reason)
}

func TestEvaluate_IncompleteRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Answers)
	}{
		{"missing age", func(a *Answers) { a.Age = "" }},
		{"missing weight", func(a *Answers) { a.Weight = "" }},
		{"missing illness", func(a *Answers) { a.RecentIllness = "" }},
		{"missing medication", func(a *Answers) { a.Medication = "" }},
		{"missing tattoo", func(a *Answers) { a.RecentTattoo = "" }},
		{"garbage answer", func(a *Answers) { a.Weight = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := allPass()
			tt.mutate(&answers)

			_, err := Evaluate(answers)
			assert.ErrorIs(t, err, ErrIncomplete)
		})
	}
}

func TestEvaluate_AllCombinationsTerminate(t *testing.T) {
	// Exhaustive sweep of the 32 yes/no combinations: each either passes
	// every rule or reports the first failing rule's reason.
	answers := []Answer{Yes, No}
	for _, age := range answers {
		for _, weight := range answers {
			for _, illness := range answers {
				for _, medication := range answers {
					for _, tattoo := range answers {
						a := Answers{age, weight, illness, medication, tattoo}
						result, err := Evaluate(a)
						require.NoError(t, err)

						expectEligible := age == Yes && weight == Yes && illness == No && medication == No && tattoo == No
						assert.Equal(t, expectEligible, result.Eligible, "answers: %+v", a)
						if expectEligible {
							assert.Nil(t, result.Reason)
						} else {
							assert.NotNil(t, result.Reason)
						}
					}
				}
			}
		}
	}
}
