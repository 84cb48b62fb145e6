package core

import "context"

// FeatureSource 是患者特征来源的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（feature、feast）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 上传的表格行缺列时，按患者 ID 从特征库补齐化验/临床特征
//   - 注意：补齐发生在 schema 对齐之前，且绝不覆盖上传值；
//     对齐仍按完整性契约校验，缺失照常报错（补齐不是默认填充）
//
// 实现：
//   - feature.StoreSource（基于 core.KeyValueStore）
//   - feature.FeastSource（基于 feast 在线特征服务）
type FeatureSource interface {
	// Name 返回特征来源名称（用于日志/监控）
	Name() string

	// GetPatientFeatures 获取单个患者的特征
	GetPatientFeatures(ctx context.Context, patientID string) (map[string]float64, error)

	// BatchGetPatientFeatures 批量获取患者特征（减少网络往返）
	BatchGetPatientFeatures(ctx context.Context, patientIDs []string) (map[string]map[string]float64, error)

	// Close 关闭特征来源，释放资源
	Close(ctx context.Context) error
}
