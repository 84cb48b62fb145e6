package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rushteam/amrkit/core"
)

// documentEpoch 是文档元数据中固定的创建/修改时间。
// 必须是非零时刻：fpdf 对零值时间会回退到 time.Now()。
var documentEpoch = time.Unix(0, 0).UTC()

// renderDocument 生成打印文档（PDF）。
// 可复现性契约：文档体内不含墙钟时间/随机 ID，创建与修改时间固定为
// documentEpoch，因此相同 Report 的两次渲染字节级一致。产物命名中的
// 外部标识由调用方在文件系统层面补充，绝不进入文档体。
func renderDocument(r *core.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(documentEpoch)
	pdf.SetModificationDate(documentEpoch)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "AMR Prediction Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	for _, p := range r.Predictions {
		line := fmt.Sprintf("%s: %s (%.1f%%)", p.Antibiotic, p.Verdict(), p.Probability*100)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Clinical Decision Suggestions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, s := range r.Suggestions {
		pdf.CellFormat(0, 7, "- "+s, "", 1, "L", false, 0, "")
	}

	attrs := r.Attributions()
	if len(attrs) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Top Contributing Features", "", 1, "L", false, 0, "")
		// 按组顺序遍历，避免 map 迭代顺序破坏可复现性
		for _, p := range r.Predictions {
			list, ok := attrs[p.Antibiotic]
			if !ok {
				continue
			}
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 7, p.Antibiotic, "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
			for i, a := range list {
				line := fmt.Sprintf("%d. %s (Impact: %.4f)", i+1, a.Feature, a.Value)
				pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, core.NewRenderError(string(FormatDocument), err)
	}
	return buf.Bytes(), nil
}
