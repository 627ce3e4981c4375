package service

import (
	"bytes"
	"fmt"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/xuri/excelize/v2"
)

const planSheetName = "Plano de Estudos"

var planHeaders = []string{"Matéria", "Prioridade", "Horas", "Horas Exatas"}

// PlanExporter gera planilhas Excel com o plano de estudos
type PlanExporter struct{}

// NewPlanExporter cria um novo exportador de planos
func NewPlanExporter() *PlanExporter {
	return &PlanExporter{}
}

// Generate gera a planilha a partir de um plano resolvido
func (g *PlanExporter) Generate(result *model.PlanResult, budget float64) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, planSheetName); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	if err := g.writeHeaders(f); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}

	if err := g.writeAllocations(f, result); err != nil {
		return nil, fmt.Errorf("escrever dados: %w", err)
	}

	if err := g.writeSummary(f, result, budget); err != nil {
		return nil, fmt.Errorf("escrever resumo: %w", err)
	}

	if err := g.autoFitColumns(f, len(planHeaders)); err != nil {
		return nil, fmt.Errorf("ajustar colunas: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}

// writeHeaders escreve os cabeçalhos da planilha
func (g *PlanExporter) writeHeaders(f *excelize.File) error {
	// Estilo do cabeçalho
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	for col, header := range planHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(planSheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(planSheetName, cell, cell, style); err != nil {
			return err
		}
	}

	return nil
}

// writeAllocations escreve as matérias selecionadas
func (g *PlanExporter) writeAllocations(f *excelize.File, result *model.PlanResult) error {
	styleOdd, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F2F2F2"},
			Pattern: 1,
		},
	})
	styleEven, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFFFF"},
			Pattern: 1,
		},
	})

	for row, alloc := range result.Allocations {
		excelRow := row + 2 // Linha 1 é header

		style := styleEven
		if row%2 == 1 {
			style = styleOdd
		}

		values := []interface{}{alloc.Name, alloc.Priority, alloc.Hours, alloc.ExactHours}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, excelRow)
			if err := f.SetCellValue(planSheetName, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(planSheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeSummary escreve a linha de totais abaixo das alocações
func (g *PlanExporter) writeSummary(f *excelize.File, result *model.PlanResult, budget float64) error {
	row := len(result.Allocations) + 3

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	entries := []struct {
		label string
		value interface{}
	}{
		{"Total alocado", result.TotalHours},
		{"Horas disponíveis", budget},
		{"Matérias atendidas", result.SelectedCount},
	}
	for i, entry := range entries {
		labelCell, _ := excelize.CoordinatesToCellName(1, row+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, row+i)
		if err := f.SetCellValue(planSheetName, labelCell, entry.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(planSheetName, labelCell, labelCell, bold); err != nil {
			return err
		}
		if err := f.SetCellValue(planSheetName, valueCell, entry.value); err != nil {
			return err
		}
	}

	return nil
}

// autoFitColumns ajusta a largura das colunas
func (g *PlanExporter) autoFitColumns(f *excelize.File, numCols int) error {
	for col := 1; col <= numCols; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(planSheetName, colName, colName, 18); err != nil {
			return err
		}
	}
	return nil
}
