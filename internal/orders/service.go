package orders

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/internal/orderitems"
	"github.com/scentvault/storefront-backend/internal/shipping"
	"github.com/scentvault/storefront-backend/pkg/db/models"
	"github.com/scentvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

// Service normalizes order lines and records draft orders.
type Service interface {
	Normalize(ctx context.Context, raw []byte) ([]orderitems.NormalizedOrderItem, error)
	CreateDraft(ctx context.Context, input DraftInput) (*DraftResult, error)
	Get(ctx context.Context, orderID string) (*OrderView, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	shipping ShippingQuoter
	logg     *logger.Logger
}

// NewService wires the orders service.
func NewService(repo Repository, tx txRunner, quoter ShippingQuoter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if quoter == nil {
		return nil, fmt.Errorf("shipping quoter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, shipping: quoter, logg: logg}, nil
}

func (s *service) Normalize(_ context.Context, raw []byte) ([]orderitems.NormalizedOrderItem, error) {
	items, err := orderitems.DecodeAll(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "items must be valid json")
	}
	return items, nil
}

func (s *service) CreateDraft(ctx context.Context, input DraftInput) (*DraftResult, error) {
	if len(bytes.TrimSpace(input.Items)) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items are required")
	}
	items, err := s.Normalize(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}

	cart := make([]shipping.CartItem, 0, len(items))
	for _, item := range items {
		cart = append(cart, shipping.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	quote, err := s.shipping.Quote(ctx, shipping.Input{Items: cart, MultiAddress: input.MultiAddress})
	if err != nil {
		return nil, err
	}

	order := buildOrder(items, quote, input.MultiAddress)
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreateOrder(ctx, order)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	logCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(s.logg.WithFields(logCtx, map[string]any{
		"items": len(items),
		"total": order.Total.String(),
	}), "draft order created")

	return &DraftResult{Order: viewFromModel(order), Quote: quote}, nil
}

// buildOrder totals the order with decimal arithmetic so item prices sum exactly.
func buildOrder(items []orderitems.NormalizedOrderItem, quote *shipping.Quote, multiAddress bool) *models.Order {
	subtotal := decimal.Zero
	rows := make([]models.OrderItem, 0, len(items))
	for i, item := range items {
		price := decimal.NewFromFloat(item.Price).Round(2)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		rows = append(rows, models.OrderItem{
			Position:   i,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      price,
			ImageURL:   item.ImageURL,
			VendorID:   item.VendorID,
			VendorName: item.VendorName,
		})
	}

	shippingCost := decimal.NewFromFloat(quote.Cost).Round(2)
	return &models.Order{
		Status:           enums.OrderStatusPendingPayment,
		MultiAddress:     multiAddress,
		Subtotal:         subtotal,
		ShippingCost:     shippingCost,
		Total:            subtotal.Add(shippingCost),
		TotalWeightKG:    decimal.NewFromFloat(quote.TotalWeight).Round(3),
		ShippingSchedule: quote.ConsolidatedSchedule,
		Items:            rows,
	}
}

func (s *service) Get(ctx context.Context, orderID string) (*OrderView, error) {
	id, err := uuid.Parse(strings.TrimSpace(orderID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a uuid")
	}
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return viewFromModel(order), nil
}
