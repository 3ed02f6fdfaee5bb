package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/cart"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/invoice"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/metrics"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/operator"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/order"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/report"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	productSvc  product.Service
	orderSvc    order.Service
	operatorSvc operator.Service
	reports     report.Repository
	stats       *metrics.CheckoutStats
}

func NewHandler(
	productSvc product.Service,
	orderSvc order.Service,
	operatorSvc operator.Service,
	reports report.Repository,
	stats *metrics.CheckoutStats,
) *Handler {
	return &Handler{
		productSvc:  productSvc,
		orderSvc:    orderSvc,
		operatorSvc: operatorSvc,
		reports:     reports,
		stats:       stats,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"metrics": h.stats.Snapshot(),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input operator.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, op, err := h.operatorSvc.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, operator.ErrInvalidCredentials) {
			utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"operator": op,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := product.ListOptions{
		Search: r.URL.Query().Get("q"),
		Limit:  parseInt32(r.URL.Query().Get("limit")),
		Page:   parseInt32(r.URL.Query().Get("page")),
	}

	products, err := h.productSvc.List(r.Context(), opts)
	if err != nil {
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.productSvc.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.NewProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.productSvc.Create(r.Context(), input)
	if err != nil {
		if isValidationErr(err) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) RestockProduct(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	newStock, err := h.productSvc.Restock(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrInvalidRestock):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, product.ErrProductNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"current_stock": newStock})
}

// Checkout converts the submitted cart into a persisted order. On failure
// nothing is written, so the client keeps its cart and may retry.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var input order.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	actorID, _ := utils.GetOperatorIDFromContext(r.Context())
	input.ActorID = actorID

	o, err := h.orderSvc.Checkout(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrInvalidDiscount),
			errors.Is(err, order.ErrInvalidPaymentMethod),
			errors.Is(err, cart.ErrInvalidQuantity),
			isValidationErr(err):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, product.ErrProductNotFound):
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, order.ErrStockUnavailable):
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		default:
			utils.WriteJSONError(w, "checkout failed", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter order.OrderFilterInput
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if pm := q.Get("payment_method"); pm != "" {
		m := order.PaymentMethod(pm)
		filter.PaymentMethod = &m
	}
	if from := parseTime(q.Get("from")); from != nil {
		filter.DateFrom = from
	}
	if to := parseTime(q.Get("to")); to != nil {
		filter.DateTo = to
	}

	var sort *order.OrderSortInput
	if field := q.Get("sort"); field != "" {
		sort = &order.OrderSortInput{
			Field:     order.OrderSortField(field),
			Direction: order.SortDirection(q.Get("dir")),
		}
	}

	limit := parseInt32(q.Get("limit"))
	page := parseInt32(q.Get("page"))

	orders, err := h.orderSvc.GetOrders(r.Context(), &filter, sort, &limit, &page)
	if err != nil {
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderSvc.GetOrderDetail(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

// GetOrderInvoice renders the order as a receipt. format=base64 returns an
// email-attachable JSON payload; the default streams the document itself.
func (h *Handler) GetOrderInvoice(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderSvc.GetOrderDetail(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	doc := invoice.Render(o)

	if r.URL.Query().Get("format") == "base64" {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"filename": doc.Filename,
			"content":  doc.Base64,
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}

func (h *Handler) DailySales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	to := time.Now().UTC()
	if t := parseTime(q.Get("to")); t != nil {
		to = *t
	}
	from := to.AddDate(0, 0, -30)
	if t := parseTime(q.Get("from")); t != nil {
		from = *t
	}

	sales, err := h.reports.DailySales(r.Context(), from, to)
	if err != nil {
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"daily_sales": sales})
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.reports.LowStock(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func isValidationErr(err error) bool {
	return errors.Is(err, product.ErrNameRequired) ||
		errors.Is(err, product.ErrNegativePrice) ||
		errors.Is(err, product.ErrInvalidTaxRate) ||
		errors.Is(err, product.ErrNegativeStock)
}

func parseInt32(s string) int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return nil
		}
	}
	return &t
}
