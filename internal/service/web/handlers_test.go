package websvc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/mail"
	"github.com/vladislavdragonenkov/orders/internal/notify"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
	websvc "github.com/vladislavdragonenkov/orders/internal/service/web"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

const testSession = "session-1"

type webEnv struct {
	repo   domain.OrderRepository
	carts  *memory.CartRepository
	sender *mail.MockSender
	router http.Handler
}

func newWebEnv(t *testing.T) *webEnv {
	t.Helper()

	env := &webEnv{
		repo:   memory.NewOrderRepository(),
		carts:  memory.NewCartRepository(),
		sender: mail.NewMockSender(),
	}
	workflow := orders.NewWorkflow(
		env.repo,
		env.carts,
		env.sender,
		notify.NewComposer("orders@shop.example"),
		nil,
	)
	env.router = websvc.NewRouter(websvc.NewHandler(workflow, nil))
	return env
}

func (env *webEnv) fillCart(t *testing.T) {
	t.Helper()

	require.NoError(t, env.carts.Put(context.Background(), testSession, []domain.CartLine{
		{ProductID: "p-1", ProductName: "Widget", PriceMinor: 500, Qty: 2},
		{ProductID: "p-2", ProductName: "Gadget", PriceMinor: 300, Qty: 1},
	}))
}

func (env *webEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: testSession})

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func validFormValues() url.Values {
	return url.Values{
		"first_name":  {"Ann"},
		"last_name":   {"Smith"},
		"email":       {"ann@example.com"},
		"address":     {"1 Main st"},
		"postal_code": {"10001"},
		"city":        {"Springfield"},
	}
}

// createOrder оформляет заказ через HTTP и возвращает его из репозитория.
func (env *webEnv) createOrder(t *testing.T) domain.Order {
	t.Helper()

	env.fillCart(t)
	rec := env.do(http.MethodPost, "/orders/create", validFormValues())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	listed, err := env.repo.ListCreatedBetween(time.Now().UTC().Add(-time.Hour), time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	return listed[0]
}

func TestCreateForm_ShowsCart(t *testing.T) {
	env := newWebEnv(t)
	env.fillCart(t)

	rec := env.do(http.MethodGet, "/orders/create", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "$5.0")
	assert.Contains(t, body, "$13.0")
}

func TestCreateForm_EmptyCart(t *testing.T) {
	env := newWebEnv(t)

	rec := env.do(http.MethodGet, "/orders/create", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestCreateForm_IssuesSessionCookie(t *testing.T) {
	env := newWebEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/create", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "shop_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestCreate_Success(t *testing.T) {
	env := newWebEnv(t)
	order := env.createOrder(t)

	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(1300), order.TotalMinor())

	// Корзина очищена после оформления.
	lines, err := env.carts.Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.Len(t, env.sender.Messages(), 1)
}

func TestCreate_ValidationRerendersForm(t *testing.T) {
	env := newWebEnv(t)
	env.fillCart(t)

	form := validFormValues()
	form.Set("email", "not-an-email")

	rec := env.do(http.MethodPost, "/orders/create", form)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "enter a valid email address")
	// Введённые значения сохраняются в форме.
	assert.Contains(t, body, `value="Ann"`)

	// Ни заказа, ни письма.
	listed, err := env.repo.ListCreatedBetween(time.Now().UTC().Add(-time.Hour), time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Empty(t, env.sender.Messages())
}

func TestCreate_MailFailure(t *testing.T) {
	env := newWebEnv(t)
	env.fillCart(t)
	env.sender.SendErr = assert.AnError

	rec := env.do(http.MethodPost, "/orders/create", validFormValues())

	require.Equal(t, http.StatusBadGateway, rec.Code)

	// Заказ уже зафиксирован, несмотря на сбой почты.
	listed, err := env.repo.ListCreatedBetween(time.Now().UTC().Add(-time.Hour), time.Now().UTC())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestList_ShowsRecentOrder(t *testing.T) {
	env := newWebEnv(t)
	order := env.createOrder(t)

	rec := env.do(http.MethodGet, "/orders/list", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), order.ID)
}

func TestCancelConfirm_ShowsOrder(t *testing.T) {
	env := newWebEnv(t)
	order := env.createOrder(t)

	rec := env.do(http.MethodGet, "/orders/cancel/"+order.ID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, order.ID)
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "Gadget")
}

func TestCancelConfirm_MissingOrderIsServerError(t *testing.T) {
	env := newWebEnv(t)

	rec := env.do(http.MethodGet, "/orders/cancel/absent", nil)

	// Строгая выборка страницы подтверждения: 500, а не 404.
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCancel_DeletesOrderAndRedirects(t *testing.T) {
	env := newWebEnv(t)
	order := env.createOrder(t)

	rec := env.do(http.MethodPost, "/orders/cancel/"+order.ID, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders/list", rec.Header().Get("Location"))

	_, err := env.repo.Get(order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCancel_MissingOrderIsNotFound(t *testing.T) {
	env := newWebEnv(t)

	rec := env.do(http.MethodPost, "/orders/cancel/absent", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelItem_DeletesSingleItem(t *testing.T) {
	env := newWebEnv(t)
	order := env.createOrder(t)
	require.Len(t, order.Items, 2)

	rec := env.do(http.MethodPost, "/orders/items/cancel/"+order.Items[0].ID, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders/list", rec.Header().Get("Location"))

	stored, err := env.repo.Get(order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestCancelItem_MissingItemIsNotFound(t *testing.T) {
	env := newWebEnv(t)

	rec := env.do(http.MethodPost, "/orders/items/cancel/absent", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
