package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"filasling/internal/dto"
)

const exportSheet = "Fila"

var exportHeaders = []string{
	"ID", "Nome", "Motivo", "Telefone", "Setor", "User NS", "Etapa", "Nome da etapa",
	"Atendente", "Email do atendente", "Número do sistema", "Criado em", "Atualizado em", "Saída da etapa 1",
}

type ReportServiceInterface interface {
	ExportTickets(ctx context.Context, filter dto.TicketListFilterDTO) (*excelize.File, error)
}

type ReportService struct {
	ticketService TicketServiceInterface
	logger        *zap.Logger
}

func NewReportService(ticketService TicketServiceInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{ticketService: ticketService, logger: logger}
}

// ExportTickets выгружает ту же очередь, что и GET /tickets, в XLSX.
func (s *ReportService) ExportTickets(ctx context.Context, filter dto.TicketListFilterDTO) (*excelize.File, error) {
	tickets, err := s.ticketService.GetTickets(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("erro ao preparar planilha: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
		_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", style)
	}

	for i, t := range tickets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := ticketRow(t)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(exportSheet, "B", "C", 30)
	_ = f.SetColWidth(exportSheet, "I", "J", 28)
	_ = f.SetColWidth(exportSheet, "L", "N", 20)

	s.logger.Info("Fila exportada", zap.Int("tickets", len(tickets)))
	return f, nil
}

func ticketRow(t dto.TicketDTO) []interface{} {
	const dateFmt = "02/01/2006 15:04"
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	var numeroSistema interface{} = ""
	if t.NumeroSistema != nil {
		numeroSistema = *t.NumeroSistema
	}
	saida := ""
	if t.DataSaidaEtapa1 != nil {
		saida = t.DataSaidaEtapa1.Format(dateFmt)
	}

	return []interface{}{
		t.ID, t.Nome, t.Motivo, str(t.Telefone), str(t.Setor), str(t.UserNS), t.EtapaNumero, str(t.EtapaNome),
		str(t.NomeAtendente), str(t.EmailAtendente), numeroSistema,
		t.DataCriado.Format(dateFmt), t.DataAtualizado.Format(dateFmt), saida,
	}
}
