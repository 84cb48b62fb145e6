// Package feature 提供 core.FeatureSource 的基础设施实现与补齐节点。
package feature

import (
	"context"
	"strconv"

	"github.com/rushteam/amrkit/core"
)

// StoreSource 是基于 core.KeyValueStore 的患者特征来源。
// 每个患者一个 Hash：key 为 KeyPrefix+patientID，field 为特征名，
// value 为数值的十进制文本。
type StoreSource struct {
	Store core.KeyValueStore

	// KeyPrefix Hash key 前缀，缺省 "amr:patient:"
	KeyPrefix string
}

func NewStoreSource(st core.KeyValueStore, keyPrefix string) *StoreSource {
	if keyPrefix == "" {
		keyPrefix = "amr:patient:"
	}
	return &StoreSource{Store: st, KeyPrefix: keyPrefix}
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) GetPatientFeatures(ctx context.Context, patientID string) (map[string]float64, error) {
	raw, err := s.Store.HGetAll(ctx, s.KeyPrefix+patientID)
	if err != nil {
		return nil, err
	}
	features := make(map[string]float64, len(raw))
	for field, val := range raw {
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			continue // 非数值字段跳过
		}
		features[field] = f
	}
	return features, nil
}

func (s *StoreSource) BatchGetPatientFeatures(ctx context.Context, patientIDs []string) (map[string]map[string]float64, error) {
	result := make(map[string]map[string]float64, len(patientIDs))
	for _, id := range patientIDs {
		features, err := s.GetPatientFeatures(ctx, id)
		if err != nil {
			if core.IsStoreNotFound(err) {
				continue
			}
			return nil, err
		}
		if len(features) > 0 {
			result[id] = features
		}
	}
	return result, nil
}

func (s *StoreSource) Close(ctx context.Context) error {
	return s.Store.Close()
}

var _ core.FeatureSource = (*StoreSource)(nil)
