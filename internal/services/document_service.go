package services

import (
	"fmt"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DocumentService renders printable documents for submitted orders
type DocumentService interface {
	// GeneratePurchaseOrder renders a purchase-order PDF for one of the
	// dealer's submitted orders. Returns the bytes and a filename.
	GeneratePurchaseOrder(dealerID string, orderID uuid.UUID) ([]byte, string, error)
}

type documentService struct {
	orderService OrderService
}

// NewDocumentService creates a new document service
func NewDocumentService(orderService OrderService) DocumentService {
	return &documentService{orderService: orderService}
}

func (s *documentService) GeneratePurchaseOrder(dealerID string, orderID uuid.UUID) ([]byte, string, error) {
	order, err := s.orderService.GetOrder(dealerID, orderID)
	if err != nil {
		return nil, "", err
	}
	if order.Status != models.OrderStatusSubmitted {
		return nil, "", validationError("status", "Only a submitted order has a purchase order document")
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, order)
	s.addItemsTable(m, order)
	s.addTotals(m, order)
	s.addShipping(m, order)

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	filename := fmt.Sprintf("%s.pdf", order.PONumber)
	return doc.GetBytes(), filename, nil
}

func (s *documentService) addHeader(m core.Maroto, order *models.Order) {
	m.AddRow(30,
		col.New(6).Add(
			text.New("PURCHASE ORDER", props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(fmt.Sprintf("# %s", order.PONumber), props.Text{
				Size:  10,
				Top:   10,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{
				Size:  10,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Dealer: %s", order.DealerID), props.Text{
				Size:  10,
				Top:   5,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(5, line.NewCol(12))
}

func (s *documentService) addItemsTable(m core.Maroto, order *models.Order) {
	m.AddRow(8,
		col.New(6).Add(
			text.New("Item", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
		col.New(2).Add(
			text.New("Qty", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
		),
		col.New(2).Add(
			text.New("Price", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New("Total", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if item.Variant != nil {
			for _, opt := range item.Variant.Options {
				name = fmt.Sprintf("%s / %s: %s", name, opt.Name, opt.Value)
			}
		}

		m.AddRow(8,
			col.New(6).Add(
				text.New(name, props.Text{
					Size:  9,
					Align: align.Left,
				}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%d", item.Quantity), props.Text{
					Size:  9,
					Align: align.Center,
				}),
			),
			col.New(2).Add(
				text.New(formatMoney(item.UnitPrice), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
			col.New(2).Add(
				text.New(formatMoney(item.TotalPrice), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		)
	}

	m.AddRow(3, line.NewCol(12))
}

func (s *documentService) addTotals(m core.Maroto, order *models.Order) {
	subtotal := order.TotalAmount - order.TaxAmount

	m.AddRow(6,
		col.New(8),
		col.New(2).Add(
			text.New("Subtotal:", props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New(formatMoney(subtotal), props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(
			text.New("Tax:", props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New(formatMoney(order.TaxAmount), props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(
			text.New("Total:", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New(formatMoney(order.TotalAmount), props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
}

func (s *documentService) addShipping(m core.Maroto, order *models.Order) {
	if order.Shipping == nil {
		return
	}

	m.AddRow(5, line.NewCol(12))
	m.AddRow(25,
		col.New(12).Add(
			text.New("SHIP TO:", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(order.Shipping.Address, props.Text{
				Size:  9,
				Top:   5,
				Align: align.Left,
			}),
			text.New(fmt.Sprintf("%s | %s", order.Shipping.Phone, order.Shipping.Email), props.Text{
				Size:  9,
				Top:   10,
				Align: align.Left,
			}),
		),
	)
}
