package explain

import (
	"fmt"
	"math"
	"testing"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/model"
)

// fakeExplainer 返回预置贡献值。
type fakeExplainer struct {
	contribs []float64
	err      error
}

func (f *fakeExplainer) Name() string { return "fake" }
func (f *fakeExplainer) Classify(_ *core.FeatureVector) (*model.Outcome, error) {
	return &model.Outcome{Resistant: true, Probability: 0.9}, nil
}
func (f *fakeExplainer) Contributions(_ *core.FeatureVector) ([]float64, error) {
	return f.contribs, f.err
}

// opaqueClassifier 不实现 Explainer。
type opaqueClassifier struct{}

func (opaqueClassifier) Name() string { return "opaque" }
func (opaqueClassifier) Classify(_ *core.FeatureVector) (*model.Outcome, error) {
	return &model.Outcome{Resistant: true, Probability: 0.8}, nil
}

func vec5() *core.FeatureVector {
	return &core.FeatureVector{
		Names:  []string{"f0", "f1", "f2", "f3", "f4", "f5", "f6"},
		Values: []float64{0, 0, 0, 0, 0, 0, 0},
	}
}

func TestExplain_TopKByAbsoluteValue(t *testing.T) {
	clf := &fakeExplainer{contribs: []float64{0.1, -0.9, 0.3, -0.05, 0.7, 0.0, -0.2}}

	attrs, err := Explain(clf, vec5(), 5)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(attrs) != 5 {
		t.Fatalf("len(attrs) = %d, want 5", len(attrs))
	}
	wantOrder := []string{"f1", "f4", "f2", "f6", "f0"}
	for i, want := range wantOrder {
		if attrs[i].Feature != want {
			t.Errorf("attrs[%d].Feature = %q, want %q", i, attrs[i].Feature, want)
		}
	}
	// 负贡献保留符号
	if attrs[0].Value != -0.9 {
		t.Errorf("attrs[0].Value = %v, want -0.9", attrs[0].Value)
	}
	for i := 1; i < len(attrs); i++ {
		if math.Abs(attrs[i].Value) > math.Abs(attrs[i-1].Value) {
			t.Errorf("not sorted by |value| at %d: %v after %v", i, attrs[i].Value, attrs[i-1].Value)
		}
	}
}

func TestExplain_TiesKeepFeatureOrder(t *testing.T) {
	clf := &fakeExplainer{contribs: []float64{0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5}}

	attrs, err := Explain(clf, vec5(), 0) // 0 → DefaultTopK
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(attrs) != DefaultTopK {
		t.Fatalf("len(attrs) = %d, want %d", len(attrs), DefaultTopK)
	}
	for i, want := range []string{"f0", "f1", "f2", "f3", "f4"} {
		if attrs[i].Feature != want {
			t.Errorf("attrs[%d].Feature = %q, want %q (stable order broken)", i, attrs[i].Feature, want)
		}
	}
}

func TestExplain_FewerFeaturesThanTopK(t *testing.T) {
	clf := &fakeExplainer{contribs: []float64{0.2, -0.1}}
	vec := &core.FeatureVector{Names: []string{"a", "b"}, Values: []float64{1, 2}}

	attrs, err := Explain(clf, vec, 5)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(attrs) != 2 {
		t.Errorf("len(attrs) = %d, want 2", len(attrs))
	}
}

func TestExplain_NonExplainer(t *testing.T) {
	attrs, err := Explain(opaqueClassifier{}, vec5(), 5)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if attrs != nil {
		t.Errorf("expected nil attributions for non-explainer, got %v", attrs)
	}
}

func TestExplain_Errors(t *testing.T) {
	tests := []struct {
		name string
		clf  model.Classifier
	}{
		{name: "explainer error", clf: &fakeExplainer{err: fmt.Errorf("matrix singular")}},
		{name: "length mismatch", clf: &fakeExplainer{contribs: []float64{0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Explain(tt.clf, vec5(), 5); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
