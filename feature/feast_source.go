package feature

import (
	"context"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/feast"
	"github.com/rushteam/amrkit/pkg/conv"
)

// FeastSource 是基于 Feast 在线特征服务的患者特征来源。
//
// Features 使用 Feast 的 "<view>:<name>" 引用格式；返回给上层时
// 以去掉 view 前缀的裸特征名为 key，与 schema 的特征名对齐。
type FeastSource struct {
	Client feast.Client

	// Features 要获取的特征引用列表，如 ["patient_labs:bacteria_count"]
	Features []string

	// EntityKey 实体键名，缺省 "patient_id"
	EntityKey string

	// Project 项目名（可选，缺省用客户端配置）
	Project string
}

func NewFeastSource(client feast.Client, features []string, opts ...FeastSourceOption) *FeastSource {
	s := &FeastSource{
		Client:    client,
		Features:  features,
		EntityKey: "patient_id",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FeastSourceOption 配置选项
type FeastSourceOption func(*FeastSource)

// WithEntityKey 设置实体键名。
func WithEntityKey(key string) FeastSourceOption {
	return func(s *FeastSource) { s.EntityKey = key }
}

// WithProject 设置项目名。
func WithProject(project string) FeastSourceOption {
	return func(s *FeastSource) { s.Project = project }
}

func (s *FeastSource) Name() string { return "feast" }

func (s *FeastSource) GetPatientFeatures(ctx context.Context, patientID string) (map[string]float64, error) {
	result, err := s.BatchGetPatientFeatures(ctx, []string{patientID})
	if err != nil {
		return nil, err
	}
	return result[patientID], nil
}

func (s *FeastSource) BatchGetPatientFeatures(ctx context.Context, patientIDs []string) (map[string]map[string]float64, error) {
	if len(patientIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityRows := make([]map[string]interface{}, len(patientIDs))
	for i, id := range patientIDs {
		entityRows[i] = map[string]interface{}{s.EntityKey: id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: entityRows,
		Project:    s.Project,
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string]float64, len(patientIDs))
	for i, row := range resp.Rows {
		features := make(map[string]float64, len(row.Values))
		for ref, val := range row.Values {
			if f, ok := conv.ToFloat64(val); ok {
				features[bareName(ref)] = f
			}
		}
		if len(features) > 0 {
			result[patientIDs[i]] = features
		}
	}
	return result, nil
}

func (s *FeastSource) Close(ctx context.Context) error {
	return s.Client.Close()
}

// bareName 去掉特征引用中的 view 前缀："patient_labs:bacteria_count" → "bacteria_count"。
func bareName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == ':' {
			return ref[i+1:]
		}
	}
	return ref
}

var _ core.FeatureSource = (*FeastSource)(nil)
