package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rushteam/amrkit/core"
)

// GBDTModel 实现了梯度提升树 (Gradient Boosted Decision Trees) 二分类器，
// 参数格式兼容 XGBoost 式的树 dump：若干棵回归树在 logit（margin）空间上累加。
//
// 预测原理：
// 1. margin = BaseScore + sum(每棵树落入叶子的输出值)
// 2. Sigmoid 变换: P = 1 / (1 + exp(-margin))
//
// 归因原理（路径分解，加性）：
// 对每棵树预计算各节点的期望输出 E[n]（叶子为自身输出，内部节点为按 Cover
// 加权的子节点期望）。样本沿分裂路径下行时，每步将 E[child] - E[current]
// 记到该分裂特征头上。全部贡献之和恰等于 margin 相对基线
// (BaseScore + sum(E[root])) 的偏移，满足加性局部归因契约。
type GBDTModel struct {
	ModelName string   `json:"name"`
	BaseScore float64  `json:"base_score"` // margin 空间的全局基线
	Threshold float64  `json:"threshold"`  // 判定阈值，缺省 0.5
	Features  []string `json:"features"`   // 训练时的特征顺序（用于与向量校验，可缺省）
	Trees     []Tree   `json:"trees"`

	// expected[t][n] 是第 t 棵树节点 n 的期望输出，解析时预计算
	expected [][]float64
}

// Tree 是一棵回归树，Nodes[0] 为根。
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode 是树节点。Feature < 0 表示叶子；内部节点按
// value < Threshold 走 Left，否则走 Right。
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"` // 叶子输出（margin 空间）
	Cover     float64 `json:"cover"` // 训练样本覆盖数（期望值加权用）
}

// IsLeaf 判断是否为叶子节点。
func (n *TreeNode) IsLeaf() bool { return n.Feature < 0 }

// LoadGBDTModel 从 JSON 文件加载梯度提升树模型。
func LoadGBDTModel(path string) (*GBDTModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGBDTModel(data)
}

// ParseGBDTModel 从 JSON 字节解析模型并预计算节点期望值。
func ParseGBDTModel(data []byte) (*GBDTModel, error) {
	var m GBDTModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse gbdt model: %w", err)
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("gbdt model has no trees")
	}
	if m.Threshold == 0 {
		m.Threshold = 0.5
	}
	m.expected = make([][]float64, len(m.Trees))
	for t := range m.Trees {
		tree := &m.Trees[t]
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("gbdt tree %d is empty", t)
		}
		for i := range tree.Nodes {
			n := &tree.Nodes[i]
			if n.IsLeaf() {
				continue
			}
			if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("gbdt tree %d node %d has out-of-range children", t, i)
			}
		}
		exp, err := expectedValues(tree)
		if err != nil {
			return nil, fmt.Errorf("gbdt tree %d: %w", t, err)
		}
		m.expected[t] = exp
	}
	return &m, nil
}

func (m *GBDTModel) Name() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "gbdt"
}

func (m *GBDTModel) Classify(vec *core.FeatureVector) (*Outcome, error) {
	if err := m.checkVector(vec); err != nil {
		return nil, err
	}
	margin := m.BaseScore
	for t := range m.Trees {
		leaf, err := m.descend(t, vec, nil)
		if err != nil {
			return nil, err
		}
		margin += leaf
	}
	p := sigmoid(margin)
	return &Outcome{
		Resistant:   p >= m.Threshold,
		Probability: p,
	}, nil
}

// Contributions 实现 Explainer：对每棵树做路径分解并累加。
func (m *GBDTModel) Contributions(vec *core.FeatureVector) ([]float64, error) {
	if err := m.checkVector(vec); err != nil {
		return nil, err
	}
	contrib := make([]float64, vec.Len())
	for t := range m.Trees {
		if _, err := m.descend(t, vec, contrib); err != nil {
			return nil, err
		}
	}
	return contrib, nil
}

// descend 沿分裂路径下行到叶子并返回叶子输出；contrib 非 nil 时
// 同时把每步期望变化量记入对应分裂特征。
func (m *GBDTModel) descend(t int, vec *core.FeatureVector, contrib []float64) (float64, error) {
	tree := &m.Trees[t]
	exp := m.expected[t]
	cur := 0
	for steps := 0; steps <= len(tree.Nodes); steps++ {
		node := &tree.Nodes[cur]
		if node.IsLeaf() {
			return node.Value, nil
		}
		if node.Feature >= vec.Len() {
			return 0, fmt.Errorf("tree %d references feature %d beyond vector length %d", t, node.Feature, vec.Len())
		}
		next := node.Right
		if vec.Values[node.Feature] < node.Threshold {
			next = node.Left
		}
		if contrib != nil {
			contrib[node.Feature] += exp[next] - exp[cur]
		}
		cur = next
	}
	return 0, fmt.Errorf("tree %d contains a cycle", t)
}

func (m *GBDTModel) checkVector(vec *core.FeatureVector) error {
	if len(m.Features) == 0 {
		return nil
	}
	if len(m.Features) != vec.Len() {
		return fmt.Errorf("feature count mismatch: model expects %d, vector has %d", len(m.Features), vec.Len())
	}
	for i, name := range m.Features {
		if vec.Names[i] != name {
			return fmt.Errorf("feature order mismatch at %d: model expects %q, vector has %q", i, name, vec.Names[i])
		}
	}
	return nil
}

// expectedValues 自底向上计算每个节点的期望输出：叶子为自身输出，
// 内部节点为按 Cover 加权的子节点期望。节点数组允许任意排列，
// 通过迭代收敛直到所有节点求值完成。
func expectedValues(tree *Tree) ([]float64, error) {
	n := len(tree.Nodes)
	exp := make([]float64, n)
	done := make([]bool, n)
	remaining := n
	for remaining > 0 {
		progressed := false
		for i := range tree.Nodes {
			if done[i] {
				continue
			}
			node := &tree.Nodes[i]
			if node.IsLeaf() {
				exp[i] = node.Value
				done[i] = true
				remaining--
				progressed = true
				continue
			}
			if !done[node.Left] || !done[node.Right] {
				continue
			}
			l, r := &tree.Nodes[node.Left], &tree.Nodes[node.Right]
			total := l.Cover + r.Cover
			if total <= 0 {
				// 缺少 cover 信息时退化为等权平均
				exp[i] = (exp[node.Left] + exp[node.Right]) / 2
			} else {
				exp[i] = (l.Cover*exp[node.Left] + r.Cover*exp[node.Right]) / total
			}
			done[i] = true
			remaining--
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("node graph is not a tree")
		}
	}
	return exp, nil
}
