package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/amrkit/core"
)

// RemoteModel 是通过远程推理服务（core.MLService）完成预测的 Classifier 实现。
// 服务返回耐药类概率，判定在本地按 Threshold 完成（概率与判定仍源自同一次调用）。
//
// 远程模型不实现 Explainer：服务端不回传归因，按契约其耐药判定的归因列表为空，
// 报告其余部分照常渲染。
type RemoteModel struct {
	name      string
	Service   core.MLService
	ModelName string        // 远程服务上的模型名（服务支持多模型时使用）
	Threshold float64       // 判定阈值，缺省 0.5
	Timeout   time.Duration // 单次调用超时，缺省 5s
}

func NewRemoteModel(name string, svc core.MLService, opts ...RemoteModelOption) *RemoteModel {
	m := &RemoteModel{
		name:      name,
		Service:   svc,
		Threshold: 0.5,
		Timeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RemoteModelOption 远程模型配置选项
type RemoteModelOption func(*RemoteModel)

// WithRemoteThreshold 设置判定阈值。
func WithRemoteThreshold(t float64) RemoteModelOption {
	return func(m *RemoteModel) { m.Threshold = t }
}

// WithRemoteModelName 设置远程服务上的模型名。
func WithRemoteModelName(name string) RemoteModelOption {
	return func(m *RemoteModel) { m.ModelName = name }
}

// WithRemoteTimeout 设置单次调用超时。
func WithRemoteTimeout(d time.Duration) RemoteModelOption {
	return func(m *RemoteModel) { m.Timeout = d }
}

func (m *RemoteModel) Name() string { return m.name }

func (m *RemoteModel) Classify(vec *core.FeatureVector) (*Outcome, error) {
	if m.Service == nil {
		return nil, fmt.Errorf("remote model %s has no service", m.name)
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
	defer cancel()

	resp, err := m.Service.Predict(ctx, &core.MLPredictRequest{
		Features:  []map[string]float64{vec.ToMap()},
		ModelName: m.ModelName,
	})
	if err != nil {
		return nil, fmt.Errorf("remote predict: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("remote predict: empty response")
	}
	p := resp.Predictions[0]
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("remote predict: probability %v out of [0,1]", p)
	}
	return &Outcome{
		Resistant:   p >= m.Threshold,
		Probability: p,
	}, nil
}
