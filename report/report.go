// Package report 将预测、概率、归因与建议组装为不可变的 Report，
// 并渲染为三种输出表示：交互片段（结构化 JSON）、表格导出（CSV）、
// 打印文档（PDF 字节流）。
//
// 本包不做任何 I/O：渲染只产出内存字节流，落盘/下发由外层传输协作方负责。
package report

import "github.com/rushteam/amrkit/core"

// Assemble 将一次请求的产出合并为 Report。
// preds 须已按 Registry 顺序排列（ensemble 保证）；组装后不再修改。
// 建议为空且整组判定均敏感时，补充固定的无耐药结论；存在耐药判定时
// 不补充，空建议列表原样保留（规则集未覆盖该场景）。
func Assemble(patientID string, preds []*core.Prediction, suggestions []string) *core.Report {
	sugg := suggestions
	if len(sugg) == 0 && !anyResistant(preds) {
		sugg = []string{core.NoResistanceSummary}
	}
	return &core.Report{
		PatientID:   patientID,
		Predictions: preds,
		Suggestions: sugg,
	}
}

func anyResistant(preds []*core.Prediction) bool {
	for _, p := range preds {
		if p.Resistant {
			return true
		}
	}
	return false
}
