package amrkit

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/feature"
	"github.com/rushteam/amrkit/model"
	"github.com/rushteam/amrkit/registry"
	"github.com/rushteam/amrkit/report"
	"github.com/rushteam/amrkit/schema"
	"github.com/rushteam/amrkit/store"
)

func testEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	s, err := schema.New([]string{"age", "bacteria_count"})
	if err != nil {
		t.Fatal(err)
	}
	reg, err := registry.New([]registry.Entry{
		{Label: "Ciprofloxacin", Classifier: &model.LRModel{
			ModelName: "lr-cipro",
			Bias:      -1.0,
			Weights:   map[string]float64{"age": 0.02, "bacteria_count": 0.0004},
			Means:     map[string]float64{"age": 50, "bacteria_count": 5000},
			Threshold: 0.5,
		}},
		{Label: "Meropenem", Classifier: &model.LRModel{
			ModelName: "lr-mero",
			Bias:      -5.0,
			Weights:   map[string]float64{"age": 0.01, "bacteria_count": 0.0001},
			Means:     map[string]float64{"age": 50, "bacteria_count": 5000},
			Threshold: 0.5,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine, err := NewEngine(s, reg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestEnginePredict(t *testing.T) {
	engine := testEngine(t)

	rpt, err := engine.Predict(context.Background(), "patient-001", map[string]any{
		"age": 80, "bacteria_count": "9000", "hospital": "ignored",
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if len(rpt.Predictions) != 2 {
		t.Fatalf("predictions = %d, want 2", len(rpt.Predictions))
	}
	cipro, mero := rpt.Predictions[0], rpt.Predictions[1]
	if cipro.Antibiotic != "Ciprofloxacin" || !cipro.Resistant {
		t.Errorf("cipro = %+v, want resistant", cipro)
	}
	if mero.Antibiotic != "Meropenem" || mero.Resistant {
		t.Errorf("mero = %+v, want sensitive", mero)
	}

	// 耐药标签带归因，敏感标签不带
	if len(cipro.Attributions) == 0 {
		t.Error("resistant label should carry attributions")
	}
	if len(mero.Attributions) != 0 {
		t.Errorf("sensitive label should not carry attributions: %v", mero.Attributions)
	}

	// 缺省规则产出避免使用建议
	if len(rpt.Suggestions) != 1 || !strings.Contains(rpt.Suggestions[0], "Ciprofloxacin") {
		t.Errorf("suggestions = %v", rpt.Suggestions)
	}
}

func TestEnginePredict_AllSensitive(t *testing.T) {
	engine := testEngine(t)

	rpt, err := engine.Predict(context.Background(), "patient-002", map[string]any{
		"age": 20, "bacteria_count": 100,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for _, p := range rpt.Predictions {
		if p.Resistant {
			t.Fatalf("%s unexpectedly resistant (p=%v)", p.Antibiotic, p.Probability)
		}
	}
	if len(rpt.Suggestions) != 1 || rpt.Suggestions[0] != core.NoResistanceSummary {
		t.Errorf("suggestions = %v, want all-sensitive message", rpt.Suggestions)
	}
}

func TestEnginePredict_MissingFeatures(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.Predict(context.Background(), "patient-003", map[string]any{
		"age": 40,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !core.IsMissingFeatures(err) {
		t.Errorf("expected missing-features error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bacteria_count") {
		t.Errorf("message = %q, want missing column named", err.Error())
	}
}

func TestEnginePredict_Deterministic(t *testing.T) {
	engine := testEngine(t)
	raw := map[string]any{"age": 80, "bacteria_count": 9000}

	first, err := engine.Predict(context.Background(), "patient-004", raw)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	second, err := engine.Predict(context.Background(), "patient-004", raw)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	for _, format := range []report.Format{report.FormatFragment, report.FormatTabular, report.FormatDocument} {
		a, err := report.Render(first, format)
		if err != nil {
			t.Fatalf("Render(%s): %v", format, err)
		}
		b, err := report.Render(second, format)
		if err != nil {
			t.Fatalf("Render(%s): %v", format, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("format %s not reproducible across identical requests", format)
		}
	}
}

func TestEnginePredict_WithFeatureSource(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()
	if err := st.HSet(ctx, "amr:patient:patient-005", "bacteria_count", []byte("9000")); err != nil {
		t.Fatal(err)
	}
	src := feature.NewStoreSource(st, "")

	engine := testEngine(t, WithFeatureSource(src))

	// 上传行只带 age，bacteria_count 由特征库补齐
	rpt, err := engine.Predict(ctx, "patient-005", map[string]any{"age": 80})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !rpt.Predictions[0].Resistant {
		t.Errorf("enriched prediction = %+v", rpt.Predictions[0])
	}

	// 特征库也没有的列照常缺失
	if _, err := engine.Predict(ctx, "patient-unknown", map[string]any{"age": 80}); !core.IsMissingFeatures(err) {
		t.Errorf("expected missing-features error, got %v", err)
	}
}

func TestEnginePredict_TopK(t *testing.T) {
	engine := testEngine(t, WithTopK(1))

	rpt, err := engine.Predict(context.Background(), "patient-006", map[string]any{
		"age": 80, "bacteria_count": 9000,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(rpt.Predictions[0].Attributions) != 1 {
		t.Errorf("attributions = %v, want top-1", rpt.Predictions[0].Attributions)
	}
}

func TestNewEngine_Validation(t *testing.T) {
	s, _ := schema.New([]string{"age"})
	reg, _ := registry.New([]registry.Entry{
		{Label: "X", Classifier: &model.LRModel{Weights: map[string]float64{"age": 1}, Threshold: 0.5}},
	})

	if _, err := NewEngine(nil, reg); err == nil {
		t.Error("expected error for nil schema")
	}
	if _, err := NewEngine(s, nil); err == nil {
		t.Error("expected error for nil registry")
	}
}
