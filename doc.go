// Package amrkit 是一个抗生素耐药性预测工具包（Antimicrobial Resistance Kit）。
//
// 设计要点：
// - Pipeline-first: 预测逻辑通过 Node 串联（Reconcile → Predict → Explain → Rule）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - Node 可扩展: 自定义 Node 即可插拔扩展（本地或远程模型均可）
package amrkit

import "github.com/rushteam/amrkit/pipeline"

// 轻量 facade：便于用户直接 import "amrkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindReconcile   = pipeline.KindReconcile
	KindEnrich      = pipeline.KindEnrich
	KindPredict     = pipeline.KindPredict
	KindExplain     = pipeline.KindExplain
	KindRule        = pipeline.KindRule
	KindPostProcess = pipeline.KindPostProcess
)
