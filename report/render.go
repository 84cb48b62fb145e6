package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/rushteam/amrkit/core"
)

// Format 是渲染目标格式。
type Format string

const (
	// FormatFragment 交互片段：结构化 JSON，字段即展示所需数据（判定、概率、归因、建议）
	FormatFragment Format = "fragment"
	// FormatTabular 表格导出：CSV，每个抗生素一行
	FormatTabular Format = "tabular"
	// FormatDocument 打印文档：PDF 字节流，相同 Report 字节级可复现
	FormatDocument Format = "document"
)

// Render 将 Report 渲染为指定格式的字节流。各格式相互独立：
// 一种格式失败不影响其余格式。未知格式返回 RenderError。
func Render(r *core.Report, format Format) ([]byte, error) {
	switch format {
	case FormatFragment:
		return renderFragment(r)
	case FormatTabular:
		return renderTabular(r)
	case FormatDocument:
		return renderDocument(r)
	default:
		return nil, core.NewRenderError(string(format), fmt.Errorf("unknown format"))
	}
}

// Fragment 是交互片段的结构化载荷，面向展示层但不绑定任何呈现技术。
type Fragment struct {
	PatientID    string                `json:"patient_id,omitempty"`
	Results      []FragmentResult      `json:"results"`
	Explanations []FragmentExplanation `json:"explanations,omitempty"`
	Suggestions  []string              `json:"suggestions"`
	Summary      string                `json:"summary"`
}

// FragmentResult 是单个抗生素的判定行。
type FragmentResult struct {
	Antibiotic  string  `json:"antibiotic"`
	Verdict     string  `json:"verdict"`
	Probability float64 `json:"probability"`
	Percent     string  `json:"percent"` // 整数百分比文案，如 "81%"
}

// FragmentExplanation 是单个耐药标签的归因区块（图表就绪）。
type FragmentExplanation struct {
	Antibiotic string            `json:"antibiotic"`
	Items      []FragmentFeature `json:"items"`
}

// FragmentFeature 是一条归因：Impact 按展示精度（4 位小数）格式化。
type FragmentFeature struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
	Impact  string  `json:"impact"`
}

func renderFragment(r *core.Report) ([]byte, error) {
	frag := Fragment{
		PatientID:   r.PatientID,
		Results:     make([]FragmentResult, 0, len(r.Predictions)),
		Suggestions: r.Suggestions,
		Summary:     r.Summary(),
	}
	for _, p := range r.Predictions {
		frag.Results = append(frag.Results, FragmentResult{
			Antibiotic:  p.Antibiotic,
			Verdict:     p.Verdict(),
			Probability: p.Probability,
			Percent:     fmt.Sprintf("%.0f%%", p.Probability*100),
		})
		if !p.Resistant || len(p.Attributions) == 0 {
			continue
		}
		exp := FragmentExplanation{
			Antibiotic: p.Antibiotic,
			Items:      make([]FragmentFeature, 0, len(p.Attributions)),
		}
		for _, a := range p.Attributions {
			exp.Items = append(exp.Items, FragmentFeature{
				Feature: a.Feature,
				Value:   a.Value,
				Impact:  fmt.Sprintf("%.4f", a.Value),
			})
		}
		frag.Explanations = append(frag.Explanations, exp)
	}

	data, err := json.Marshal(frag)
	if err != nil {
		return nil, core.NewRenderError(string(FormatFragment), err)
	}
	return data, nil
}

func renderTabular(r *core.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Antibiotic", "Prediction", "Probability"}); err != nil {
		return nil, core.NewRenderError(string(FormatTabular), err)
	}
	for _, p := range r.Predictions {
		row := []string{
			p.Antibiotic,
			p.Verdict(),
			fmt.Sprintf("%.2f%%", p.Probability*100),
		}
		if err := w.Write(row); err != nil {
			return nil, core.NewRenderError(string(FormatTabular), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, core.NewRenderError(string(FormatTabular), err)
	}
	return buf.Bytes(), nil
}
