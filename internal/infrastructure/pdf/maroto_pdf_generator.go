// Package pdf implementa el reporte de inventario descargable (GET /api/dashboard/report).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del sistema  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / proveedores / categorías / valor      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Stock bajo (SKU | Producto | Cant. | Mín. | Precio) │
//	│  TABLA: Mayor stock                                         │
//	│  TABLA: Últimos movimientos                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 153, Green: 51, Blue: 102}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title   string
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador; title encabeza cada reporte.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	return &MarotoReportGenerator{
		title:   title,
		printer: message.NewPrinter(language.Spanish),
	}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	stats *dto.DashboardStatsDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS CON STOCK BAJO", colorAlert))
	m.AddRows(productHeaderRow())
	m.AddRows(g.productRows(stats.LowStockProducts)...)

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("PRODUCTOS CON MAYOR STOCK", colorPrimary))
	m.AddRows(productHeaderRow())
	m.AddRows(g.productRows(stats.TopProducts)...)

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("ÚLTIMOS MOVIMIENTOS", colorPrimary))
	m.AddRows(transactionHeaderRow())
	m.AddRows(g.transactionRows(stats.RecentTransactions)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario", props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) summaryRow(stats *dto.DashboardStatsDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Productos", g.printer.Sprintf("%d", stats.TotalProducts)),
		cell("Proveedores", g.printer.Sprintf("%d", stats.TotalSuppliers)),
		cell("Categorías", g.printer.Sprintf("%d", stats.TotalCategories)),
		cell("Marcas", g.printer.Sprintf("%d", stats.TotalBrands)),
		cell("Valor del stock", g.money(stats.StockValue)),
		cell("Stock bajo", g.printer.Sprintf("%d", len(stats.LowStockProducts))),
	)
}

func sectionTitle(label string, color *props.Color) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 2}),
	))
}

func productHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Precio", 3, align.Right),
	)
}

func (g *MarotoReportGenerator) productRows(products []dto.ProductSummaryDTO) []core.Row {
	if len(products) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1})),
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", p.MinQuantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(p.CurrentPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func transactionHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 3, align.Left),
		h("Producto", 4, align.Left),
		h("Tipo", 2, align.Center),
		h("Cant.", 1, align.Right),
		h("Usuario", 2, align.Left),
	)
}

func (g *MarotoReportGenerator) transactionRows(txs []dto.TransactionResponse) []core.Row {
	if len(txs) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(tx.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(nonEmpty(tx.ProductName, tx.ProductID), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(tx.Type, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", tx.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(tx.PerformedBy, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin registros", props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores locales: 1234.5 → "$1.234,50".
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("$%.2f", f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
