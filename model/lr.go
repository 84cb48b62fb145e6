package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/rushteam/amrkit/core"
)

// LRModel 实现了逻辑回归 (Logistic Regression) 二分类器。
//
// 预测原理：
// 1. 线性加权求和: z = Bias + sum(Weight_i * Feature_i)
// 2. Sigmoid 变换: P = 1 / (1 + exp(-z))
//
// P 是耐药类概率；判定按模型自带的 Threshold（训练时校准，默认 0.5）。
//
// 归因原理（精确线性归因）：
// contribution_i = Weight_i * (Feature_i - Mean_i)
// 其中 Mean_i 是训练集基线均值；所有贡献之和恰等于 z 相对基线 margin 的偏移。
type LRModel struct {
	ModelName string             `json:"name"`
	Bias      float64            `json:"bias"`
	Weights   map[string]float64 `json:"weights"`
	Means     map[string]float64 `json:"means"`     // 训练集特征均值（归因基线，可缺省为 0）
	Threshold float64            `json:"threshold"` // 判定阈值，缺省 0.5
}

// LoadLRModel 从 JSON 文件加载逻辑回归模型。
func LoadLRModel(path string) (*LRModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLRModel(data)
}

// ParseLRModel 从 JSON 字节解析逻辑回归模型。
func ParseLRModel(data []byte) (*LRModel, error) {
	var m LRModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse lr model: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("lr model has no weights")
	}
	if m.Threshold == 0 {
		m.Threshold = 0.5
	}
	return &m, nil
}

func (m *LRModel) Name() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "lr"
}

func (m *LRModel) Classify(vec *core.FeatureVector) (*Outcome, error) {
	z := m.margin(vec)
	p := sigmoid(z)
	return &Outcome{
		Resistant:   p >= m.Threshold,
		Probability: p,
	}, nil
}

// Contributions 实现 Explainer：精确线性归因，无需采样。
func (m *LRModel) Contributions(vec *core.FeatureVector) ([]float64, error) {
	out := make([]float64, vec.Len())
	for i, name := range vec.Names {
		w, ok := m.Weights[name]
		if !ok {
			continue
		}
		out[i] = w * (vec.Values[i] - m.Means[name])
	}
	return out, nil
}

func (m *LRModel) margin(vec *core.FeatureVector) float64 {
	z := m.Bias
	for i, name := range vec.Names {
		if w, ok := m.Weights[name]; ok {
			z += w * vec.Values[i]
		}
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
