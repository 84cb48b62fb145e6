package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rushteam/amrkit/core"
)

func sampleReport() *core.Report {
	resistant := core.NewPrediction("Ciprofloxacin")
	resistant.Resistant = true
	resistant.Probability = 0.8134
	resistant.Attributions = []core.Attribution{
		{Feature: "bacteria_count", Value: 1.2345},
		{Feature: "age", Value: -0.4567},
	}
	sensitive := core.NewPrediction("Meropenem")
	sensitive.Probability = 0.1987

	return Assemble("patient-001",
		[]*core.Prediction{resistant, sensitive},
		[]string{"Avoid using Ciprofloxacin. Consider alternative antibiotic."})
}

func TestRenderTabular(t *testing.T) {
	out, err := Render(sampleReport(), FormatTabular)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	want := [][]string{
		{"Antibiotic", "Prediction", "Probability"},
		{"Ciprofloxacin", "Resistant", "81.34%"},
		{"Meropenem", "Sensitive", "19.87%"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("rows[%d][%d] = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestRenderFragment(t *testing.T) {
	out, err := Render(sampleReport(), FormatFragment)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var frag Fragment
	if err := json.Unmarshal(out, &frag); err != nil {
		t.Fatalf("parse fragment: %v", err)
	}

	if frag.PatientID != "patient-001" {
		t.Errorf("PatientID = %q", frag.PatientID)
	}
	if len(frag.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(frag.Results))
	}
	if frag.Results[0].Verdict != "Resistant" || frag.Results[0].Percent != "81%" {
		t.Errorf("results[0] = %+v", frag.Results[0])
	}
	if frag.Results[1].Verdict != "Sensitive" || frag.Results[1].Percent != "20%" {
		t.Errorf("results[1] = %+v", frag.Results[1])
	}

	// 仅耐药标签带归因区块
	if len(frag.Explanations) != 1 {
		t.Fatalf("explanations = %d, want 1", len(frag.Explanations))
	}
	exp := frag.Explanations[0]
	if exp.Antibiotic != "Ciprofloxacin" {
		t.Errorf("explanation antibiotic = %q", exp.Antibiotic)
	}
	if len(exp.Items) != 2 || exp.Items[0].Impact != "1.2345" || exp.Items[1].Impact != "-0.4567" {
		t.Errorf("explanation items = %+v", exp.Items)
	}

	if len(frag.Suggestions) != 1 || !strings.Contains(frag.Suggestions[0], "Ciprofloxacin") {
		t.Errorf("suggestions = %v", frag.Suggestions)
	}
	if frag.Summary != "Ciprofloxacin" {
		t.Errorf("summary = %q, want %q", frag.Summary, "Ciprofloxacin")
	}
}

func TestRenderDocument_Reproducible(t *testing.T) {
	r := sampleReport()

	first, err := Render(r, FormatDocument)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 跨过一个整秒边界再渲染：若元数据日期取自墙钟，两次输出必然不同
	time.Sleep(time.Until(time.Now().Truncate(time.Second).Add(time.Second + 50*time.Millisecond)))
	second, err := Render(r, FormatDocument)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same report differ byte-wise")
	}
	if !bytes.HasPrefix(first, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", first[:min(8, len(first))])
	}
	if wall := []byte(time.Now().UTC().Format("D:2006")); bytes.Contains(first, wall) {
		t.Errorf("document metadata embeds the current date (%s)", wall)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleReport(), Format("hologram"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !core.IsRenderFailure(err) {
		t.Errorf("expected render failure, got %v", err)
	}
}

func TestAssemble_NoResistance(t *testing.T) {
	sensitive := core.NewPrediction("Meropenem")
	sensitive.Probability = 0.1

	r := Assemble("patient-002", []*core.Prediction{sensitive}, nil)
	if len(r.Suggestions) != 1 || r.Suggestions[0] != core.NoResistanceSummary {
		t.Errorf("suggestions = %v, want default all-sensitive message", r.Suggestions)
	}
	if r.Summary() != core.NoResistanceSummary {
		t.Errorf("summary = %q", r.Summary())
	}

	out, err := Render(r, FormatFragment)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var frag Fragment
	if err := json.Unmarshal(out, &frag); err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if len(frag.Explanations) != 0 {
		t.Errorf("expected no explanations, got %v", frag.Explanations)
	}
}

func TestAssemble_ResistantWithoutSuggestions(t *testing.T) {
	resistant := core.NewPrediction("Ciprofloxacin")
	resistant.Resistant = true
	resistant.Probability = 0.9

	// 规则集未覆盖耐药场景：不得谎报"全部敏感"
	r := Assemble("patient-003", []*core.Prediction{resistant}, nil)
	if len(r.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty for resistant panel without rules", r.Suggestions)
	}
	if r.Summary() != "Ciprofloxacin" {
		t.Errorf("summary = %q, want resistant label listed", r.Summary())
	}
}
