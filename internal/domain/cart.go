package domain

// CartLine — одна строка сессионной корзины: товар, количество и цена
// на момент добавления. Корзина наполняется внешним компонентом,
// здесь она только читается и очищается.
type CartLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceMinor  int64  `json:"price_minor"`
	Qty         int32  `json:"qty"`
}

// CostMinor возвращает стоимость строки корзины: qty * price.
func (l CartLine) CostMinor() int64 {
	return int64(l.Qty) * l.PriceMinor
}
