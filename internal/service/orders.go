package service

import (
	"context"
	"strings"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultShippingMethod = "standard"

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type AddressInput = models.Address

type OrderInput struct {
	Customer        CustomerInput
	CustomerID      *uuid.UUID
	Items           []OrderItemInput
	Total           decimal.Decimal
	ShippingMethod  string
	ShippingAddress *AddressInput
	PaymentMethod   string
	Notes           string
}

type OrderPatch struct {
	Status          *models.OrderStatus
	Notes           *string
	ShippingAddress *AddressInput
	Customer        *CustomerInput
}

type OrderService struct {
	store    Store
	notifier Notifier
	rates    map[string]decimal.Decimal
	now      func() time.Time
	log      *zap.Logger
}

// NewOrderService: при пустой таблице rates доставка бесплатна для любого способа.
func NewOrderService(store Store, notifier Notifier, rates map[string]decimal.Decimal, log *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
		rates:    rates,
		now:      time.Now,
		log:      log,
	}
}

func (s *OrderService) shippingCost(method string) (decimal.Decimal, error) {
	if len(s.rates) == 0 {
		return decimal.Zero, nil
	}
	cost, ok := s.rates[method]
	if !ok {
		return decimal.Zero, ErrUnknownShippingMethod
	}
	return cost, nil
}

func (s *OrderService) newOrderNumber() (string, error) {
	rnd, err := nanorand.Gen(6)
	if err != nil {
		return "", err
	}
	return "LI-" + s.now().UTC().Format("060102") + "-" + strings.ToUpper(rnd), nil
}

// CreateOrder пересчитывает цены по каталогу и списывает остатки в одной транзакции.
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	method := strings.ToLower(strings.TrimSpace(in.ShippingMethod))
	if method == "" {
		method = defaultShippingMethod
	}
	shipping, err := s.shippingCost(method)
	if err != nil {
		return nil, err
	}

	number, err := s.newOrderNumber()
	if err != nil {
		return nil, err
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = "card"
	}

	var o *models.Order
	err = s.store.WithTx(ctx, func(tx Repos) error {
		ids := make([]uuid.UUID, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := tx.Products.BatchGetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, it := range in.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			item := models.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.Quantity,
			}
			if len(p.Images) > 0 {
				item.Image = p.Images[0]
			}
			items = append(items, item)
		}

		subtotal = subtotal.Round(2)
		total := subtotal.Add(shipping).Round(2)
		if !totalsMatch(in.Total, total) {
			return ErrTotalMismatch
		}

		for _, it := range items {
			ok, err := tx.Products.TryTakeStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{Name: it.Name}
			}
		}

		o = &models.Order{
			OrderNumber:     number,
			Customer:        in.Customer.model(),
			CustomerID:      in.CustomerID,
			Items:           models.NewJSONB(items),
			Subtotal:        subtotal,
			ShippingCost:    shipping,
			Total:           total,
			Status:          models.OrderPending,
			ShippingMethod:  method,
			ShippingAddress: models.NewJSONB(in.ShippingAddress),
			PaymentMethod:   payment,
			Notes:           strings.TrimSpace(in.Notes),
		}
		return tx.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.StringFixed(2)),
	)
	s.notifier.OrderCreated(ctx, o)
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f OwnerFilter) ([]models.Order, error) {
	return s.store.Repos().Orders.List(ctx, f)
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.store.Repos().Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// UpdateOrder: отмена возвращает товар на склад, снятие отмены списывает его снова.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, patch OrderPatch) (*models.Order, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	fields := map[string]any{}
	setTrimmed(fields, "notes", patch.Notes)
	if patch.ShippingAddress != nil {
		fields["shipping_address"] = models.NewJSONB(patch.ShippingAddress)
	}
	if patch.Customer != nil {
		setCustomer(fields, patch.Customer.model())
	}

	var (
		out     *models.Order
		changed bool
	)
	err := s.store.WithTx(ctx, func(tx Repos) error {
		cur, err := tx.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrOrderNotFound
		}

		if patch.Status != nil && *patch.Status != cur.Status {
			next := *patch.Status
			switch {
			case next == models.OrderCancelled:
				if err := restoreItems(ctx, tx, cur.Items.Val); err != nil {
					return err
				}
			case cur.Status == models.OrderCancelled:
				for _, it := range cur.Items.Val {
					ok, err := tx.Products.TryTakeStock(ctx, it.ProductID, it.Quantity)
					if err != nil {
						return err
					}
					if !ok {
						return &InsufficientStockError{Name: it.Name}
					}
				}
			}
			fields["status"] = string(next)
			changed = true
		}

		o, err := tx.Orders.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifier.OrderStatusChanged(ctx, out)
	}
	return out, nil
}

// DeleteOrder: остатки возвращаются, только если заказ ещё не отгружен.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx Repos) error {
		cur, err := tx.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrOrderNotFound
		}
		if cur.Status.InWarehouse() {
			if err := restoreItems(ctx, tx, cur.Items.Val); err != nil {
				return err
			}
		}
		ok, err := tx.Orders.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderNotFound
		}
		return nil
	})
}

// restoreItems пропускает товары, удалённые из каталога после заказа.
func restoreItems(ctx context.Context, tx Repos, items []models.OrderItem) error {
	for _, it := range items {
		if _, err := tx.Products.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
