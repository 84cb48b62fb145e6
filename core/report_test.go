package core

import "testing"

func resistantPred(label string, attrs []Attribution) *Prediction {
	p := NewPrediction(label)
	p.Resistant = true
	p.Probability = 0.9
	p.Attributions = attrs
	return p
}

func TestReportSummary(t *testing.T) {
	tests := []struct {
		name  string
		preds []*Prediction
		want  string
	}{
		{
			name: "two resistant in panel order",
			preds: []*Prediction{
				resistantPred("Ciprofloxacin", nil),
				NewPrediction("Meropenem"),
				resistantPred("Vancomycin", nil),
			},
			want: "Ciprofloxacin, Vancomycin",
		},
		{
			name:  "all sensitive",
			preds: []*Prediction{NewPrediction("Meropenem")},
			want:  NoResistanceSummary,
		},
		{
			name:  "empty panel",
			preds: nil,
			want:  NoResistanceSummary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Predictions: tt.preds}
			if got := r.Summary(); got != tt.want {
				t.Errorf("Summary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportAttributions(t *testing.T) {
	withAttrs := resistantPred("Ciprofloxacin", []Attribution{{Feature: "age", Value: 0.5}})
	withoutAttrs := resistantPred("Vancomycin", nil)
	sensitive := NewPrediction("Meropenem")
	sensitive.Attributions = []Attribution{{Feature: "age", Value: 0.1}} // 不该出现

	r := &Report{Predictions: []*Prediction{withAttrs, withoutAttrs, sensitive}}
	attrs := r.Attributions()
	if len(attrs) != 1 {
		t.Fatalf("attributions = %v, want only resistant labels with non-empty lists", attrs)
	}
	if list, ok := attrs["Ciprofloxacin"]; !ok || len(list) != 1 || list[0].Feature != "age" {
		t.Errorf("attrs[Ciprofloxacin] = %v", list)
	}
}

func TestPredictionVerdict(t *testing.T) {
	p := NewPrediction("Ciprofloxacin")
	if p.Verdict() != "Sensitive" {
		t.Errorf("Verdict = %q, want Sensitive", p.Verdict())
	}
	p.Resistant = true
	if p.Verdict() != "Resistant" {
		t.Errorf("Verdict = %q, want Resistant", p.Verdict())
	}
}
