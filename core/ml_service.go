package core

import "context"

// MLService 是远程推理服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（service）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - model.RemoteModel：某些抗生素模型部署在独立推理服务上
//     （TensorFlow Serving、TorchServe、自定义 REST 服务等），
//     本地仅保留阈值判定
//
// 实现：
//   - service.RESTClient 实现此接口
type MLService interface {
	// Predict 批量预测
	Predict(ctx context.Context, req *MLPredictRequest) (*MLPredictResponse, error)

	// Health 健康检查
	Health(ctx context.Context) error

	// Close 关闭连接
	Close(ctx context.Context) error
}

// MLPredictRequest 预测请求
type MLPredictRequest struct {
	// Instances 特征实例列表（每个实例是一个按 schema 顺序排列的特征向量）
	// 格式：[[f1, f2, f3, ...], ...]
	Instances [][]float64

	// Features 特征字典列表（可选，与 Instances 二选一）
	// 格式：[{"age": 34, "bacteria_count": 1200}, ...]
	Features []map[string]float64

	// ModelName 模型名称（可选，如果服务支持多模型）
	ModelName string

	// ModelVersion 模型版本（可选）
	ModelVersion string

	// Params 额外参数（可选）
	Params map[string]interface{}
}

// MLPredictResponse 预测响应
type MLPredictResponse struct {
	// Predictions 预测结果列表（与请求实例一一对应；此处约定为耐药类概率）
	Predictions []float64

	// Outputs 原始输出（可选，用于调试）
	Outputs interface{}

	// ModelVersion 模型版本（如果服务返回）
	ModelVersion string
}
