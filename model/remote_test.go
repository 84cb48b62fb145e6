package model

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/amrkit/core"
)

type stubMLService struct {
	scores []float64
	err    error

	gotReq *core.MLPredictRequest
}

func (s *stubMLService) Predict(_ context.Context, req *core.MLPredictRequest) (*core.MLPredictResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &core.MLPredictResponse{Predictions: s.scores}, nil
}

func (s *stubMLService) Health(_ context.Context) error { return nil }
func (s *stubMLService) Close(_ context.Context) error  { return nil }

func TestRemoteModel_Classify(t *testing.T) {
	svc := &stubMLService{scores: []float64{0.73}}
	m := NewRemoteModel("remote-vanco", svc,
		WithRemoteModelName("amr_vanco"),
		WithRemoteThreshold(0.6),
	)

	vec := &core.FeatureVector{Names: []string{"age"}, Values: []float64{67}}
	out, err := m.Classify(vec)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !out.Resistant || out.Probability != 0.73 {
		t.Errorf("outcome = %+v, want resistant 0.73 at threshold 0.6", out)
	}
	if svc.gotReq.ModelName != "amr_vanco" {
		t.Errorf("request model = %q", svc.gotReq.ModelName)
	}
	if len(svc.gotReq.Features) != 1 || svc.gotReq.Features[0]["age"] != 67 {
		t.Errorf("request features = %v", svc.gotReq.Features)
	}
}

func TestRemoteModel_Errors(t *testing.T) {
	vec := &core.FeatureVector{Names: []string{"age"}, Values: []float64{67}}

	tests := []struct {
		name string
		m    *RemoteModel
	}{
		{name: "no service", m: &RemoteModel{name: "x"}},
		{name: "service error", m: NewRemoteModel("x", &stubMLService{err: fmt.Errorf("unreachable")})},
		{name: "empty response", m: NewRemoteModel("x", &stubMLService{scores: []float64{}})},
		{name: "probability out of range", m: NewRemoteModel("x", &stubMLService{scores: []float64{1.5}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Classify(vec); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRemoteModel_NotExplainer(t *testing.T) {
	m := NewRemoteModel("x", &stubMLService{scores: []float64{0.5}})
	if _, ok := interface{}(m).(Explainer); ok {
		t.Error("remote model must not implement Explainer")
	}
}
