package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-board/internal/repository"
)

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportActivityLogs 导出全部审计日志为 Excel
	ExportActivityLogs(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportActivityLogs 输出格式：
//   - Sheet "审计日志"
//   - 表头：ID | 时间 | 模型 | 记录 ID | 记录名称 | 操作 | 描述
//   - 按写入顺序逐行输出
func (s *exportService) ExportActivityLogs(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.repo.ActivityLog.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询审计日志失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "审计日志"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "时间", "模型", "记录 ID", "记录名称", "操作", "描述"}
	widths := []float64{8, 22, 12, 10, 30, 10, 60}
	for i, w := range widths {
		f.SetColWidth(sheetName, colName(i), colName(i), w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for i := range entries {
		e := &entries[i]
		f.SetCellValue(sheetName, cell("A", row), e.ID)
		f.SetCellValue(sheetName, cell("B", row), formatTimestamp(e.CreatedAt))
		f.SetCellValue(sheetName, cell("C", row), e.ModelName)
		if e.RecordID != nil {
			f.SetCellValue(sheetName, cell("D", row), *e.RecordID)
		}
		if e.RecordName != nil {
			f.SetCellValue(sheetName, cell("E", row), *e.RecordName)
		}
		f.SetCellValue(sheetName, cell("F", row), e.Operation.Label())
		f.SetCellValue(sheetName, cell("G", row), e.HumanReadable())
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("activity_logs_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
