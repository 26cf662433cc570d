// Package websvc реализует server-rendered HTTP-интерфейс заказов.
package websvc

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/notify"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
)

//go:embed templates/*.html
var templatesFS embed.FS

// sessionCookie хранит идентификатор сессии, под которым внешний компонент
// корзины пишет её содержимое.
const sessionCookie = "shop_session"

// Handler обрабатывает HTTP-запросы жизненного цикла заказов.
type Handler struct {
	workflow *orders.Workflow
	logger   *log.Entry
	tmpl     *template.Template
	now      func() time.Time
}

// NewHandler конструирует handler и разбирает встроенные шаблоны.
func NewHandler(workflow *orders.Workflow, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "web")
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"dollars": notify.FormatAmount,
	}).ParseFS(templatesFS, "templates/*.html"))

	return &Handler{
		workflow: workflow,
		logger:   logger,
		tmpl:     tmpl,
		now:      time.Now,
	}
}

type createPage struct {
	Form   domain.CheckoutForm
	Errors map[string]string
	Cart   []domain.CartLine
	Total  int64
}

// CreateForm показывает форму оформления с текущим содержимым корзины.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	lines, err := h.workflow.Cart(r.Context(), sessionID)
	if err != nil {
		h.serverError(w, err, "read cart")
		return
	}
	h.render(w, http.StatusOK, "create.html", createPage{Cart: lines, Total: cartTotal(lines)})
}

// Create оформляет заказ из корзины; невалидная форма повторно рендерится
// с замечаниями по полям, частичный заказ при этом не создаётся.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	form := domain.CheckoutForm{
		FirstName:  r.PostFormValue("first_name"),
		LastName:   r.PostFormValue("last_name"),
		Email:      r.PostFormValue("email"),
		Address:    r.PostFormValue("address"),
		PostalCode: r.PostFormValue("postal_code"),
		City:       r.PostFormValue("city"),
	}

	order, err := h.workflow.Create(r.Context(), sessionID, form)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		lines, cartErr := h.workflow.Cart(r.Context(), sessionID)
		if cartErr != nil {
			h.serverError(w, cartErr, "read cart")
			return
		}
		h.render(w, http.StatusUnprocessableEntity, "create.html", createPage{
			Form:   form.Normalize(),
			Errors: verr.Fields,
			Cart:   lines,
			Total:  cartTotal(lines),
		})
		return
	case errors.Is(err, domain.ErrMailTransport):
		// Заказ уже зафиксирован, но письмо не ушло: рассинхронизацию
		// видит пользователь, отката нет.
		h.logger.WithError(err).WithField("order_id", order.ID).Error("order committed, notification failed")
		http.Error(w, "order is placed but the confirmation mail could not be sent", http.StatusBadGateway)
		return
	case err != nil:
		h.serverError(w, err, "create order")
		return
	}

	h.render(w, http.StatusOK, "created.html", order)
}

// List показывает заказы, ещё доступные для отмены (созданные за 24 часа).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ordersList, err := h.workflow.List(r.Context(), h.now().UTC())
	if err != nil {
		h.serverError(w, err, "list orders")
		return
	}
	h.render(w, http.StatusOK, "list.html", ordersList)
}

// CancelConfirm показывает заказ с позициями перед подтверждением отмены.
// Выборка строгая: отсутствующий заказ здесь — 500, в отличие от
// tolerant-поведения самой отмены (404).
func (h *Handler) CancelConfirm(w http.ResponseWriter, r *http.Request) {
	order, err := h.workflow.GetForCancellation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serverError(w, err, "load order for cancellation")
		return
	}
	h.render(w, http.StatusOK, "cancel.html", order)
}

// Cancel отменяет заказ целиком и возвращает пользователя к списку.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.workflow.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	switch {
	case domain.IsNotFound(err):
		http.NotFound(w, r)
		return
	case errors.Is(err, domain.ErrMailTransport):
		http.Error(w, "cancellation mail could not be sent, the order is kept", http.StatusBadGateway)
		return
	case err != nil:
		h.serverError(w, err, "cancel order")
		return
	}
	http.Redirect(w, r, "/orders/list", http.StatusSeeOther)
}

// CancelItem отменяет одну позицию заказа и возвращает пользователя к списку.
func (h *Handler) CancelItem(w http.ResponseWriter, r *http.Request) {
	err := h.workflow.CancelItem(r.Context(), chi.URLParam(r, "id"))
	switch {
	case domain.IsNotFound(err):
		http.NotFound(w, r)
		return
	case errors.Is(err, domain.ErrMailTransport):
		http.Error(w, "cancellation mail could not be sent, the item is kept", http.StatusBadGateway)
		return
	case err != nil:
		h.serverError(w, err, "cancel order item")
		return
	}
	http.Redirect(w, r, "/orders/list", http.StatusSeeOther)
}

// sessionID возвращает идентификатор сессии из cookie, выдавая новый
// при первом визите.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.WithError(err).WithField("template", name).Error("template rendering failed")
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error, op string) {
	h.logger.WithError(err).Error(op + " failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func cartTotal(lines []domain.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.CostMinor()
	}
	return total
}
